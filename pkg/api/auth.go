package api

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	UserID  string `json:"user_id"` // UUID of the new user
	Message string `json:"message"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer credential.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`  // JWT access token
	RefreshToken string `json:"refresh_token"` // opaque refresh token
	ExpiresIn    int64  `json:"expires_in"`    // access token lifetime in seconds
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ErrorResponse is the generic error body for non-2xx statuses.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}
