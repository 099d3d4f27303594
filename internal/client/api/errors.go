package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// Sentinel targets for errors.Is checks across packages.
var (
	ErrConflict    = errors.New("version conflict")
	ErrRateLimited = errors.New("rate limited")
	ErrNetwork     = errors.New("network failure")
)

// ConflictError is a 409 response: the submitted base_version lost the
// compare-and-swap race. Carries the server's latest copy so the caller can
// fast-forward or surface a three-way decision.
type ConflictError struct {
	Info models.ConflictInfo
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: server at %d, client base %d",
		e.Info.LatestVersion, e.Info.YourBaseVersion)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// RateLimitError is a 429 response. RetryAfter holds the server-suggested
// wait, already defaulted if the header was absent or unparseable.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimited }

// NetworkError means no response was received at all: connection refused,
// DNS failure, timeout. Only this class is eligible for the durable queue.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError is any other non-2xx status the server answered with.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Detail)
}
