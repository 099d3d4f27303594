package storage

import (
	"context"
	"time"
)

// AuthStorage persists the bearer credentials for the logged-in user.
// Tokens are stored as received from the server; this engine never
// interprets them.
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if valid authentication exists (not expired)
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents authentication information in storage.
type AuthData struct {
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

// Expired reports whether the access token lifetime has elapsed.
func (a *AuthData) Expired(now time.Time) bool {
	return a.ExpiresAt > 0 && now.Unix() >= a.ExpiresAt
}
