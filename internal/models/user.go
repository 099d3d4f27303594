package models

import "time"

// User represents a registered account on the server side.
type User struct {
	ID           string    `json:"id"` // UUID
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // argon2id encoded hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is a server-side refresh token record. The token value is an
// opaque random string, not a JWT.
type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
