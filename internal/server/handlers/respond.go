// Package handlers implements the HTTP handlers of the writersroom API:
// account auth, versioned document saves and health.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// contextKey is the type for request context keys.
type contextKey string

const (
	// UserIDKey stores the authenticated user id in the request context
	UserIDKey contextKey = "user_id"
	// UsernameKey stores the authenticated username in the request context
	UsernameKey contextKey = "username"
)

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsername extracts the authenticated username from the request context.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// sendJSON writes a JSON response with the given status.
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes the standard error body.
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Detail: message}, statusCode)
}
