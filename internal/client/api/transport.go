package api

import (
	"context"

	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

//go:generate moq -out transport_mock.go . Transport

// Transport performs one versioned save call and classifies its outcome.
// Implementations must distinguish "no response received" (*NetworkError)
// from "response received with an error status" (*ConflictError,
// *RateLimitError, *APIError).
type Transport interface {
	// SaveDocument issues a compare-and-swap update for one document.
	SaveDocument(ctx context.Context, accessToken, docID string, req api.SaveRequest) (*api.SaveResponse, error)

	// GetDocument fetches the server's current copy of a document.
	GetDocument(ctx context.Context, accessToken, docID string) (*api.Document, error)
}
