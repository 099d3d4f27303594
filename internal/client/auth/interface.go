package auth

import (
	"context"

	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service manages the account session: registration, login, logout and the
// bearer credential every save carries. AccessToken transparently refreshes
// an expired token, so the save engine can treat it as a plain TokenSource.
type Service interface {
	// Register creates a new account and logs it in.
	Register(ctx context.Context, username, password string) error

	// Login authenticates and persists the issued token pair.
	Login(ctx context.Context, username, password string) error

	// Logout discards the stored session.
	Logout(ctx context.Context) error

	// Status returns the stored session, or ErrNotLoggedIn.
	Status(ctx context.Context) (*storage.AuthData, error)

	// AccessToken returns a valid access token, refreshing it first when
	// the stored one has expired. Returns ErrNotLoggedIn without a
	// session.
	AccessToken(ctx context.Context) (string, error)
}
