// Package auth manages the client session: account registration, login and
// the refresh of the bearer credential the save engine attaches to every
// request. Tokens are opaque to this package; it only tracks their expiry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/validation"
	pkgapi "github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// ErrNotLoggedIn is returned when an operation needs a session and none is
// stored, or the stored session could not be refreshed.
var ErrNotLoggedIn = errors.New("not logged in")

// expirySkew renews tokens slightly before their nominal expiry so a save
// does not race the server-side cutoff.
const expirySkew = 30 * time.Second

// tokenAPI is the slice of the HTTP client this service needs.
type tokenAPI interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Refresh(ctx context.Context, req pkgapi.RefreshRequest) (*pkgapi.TokenResponse, error)
}

// service is the production Service backed by the HTTP API and durable
// token storage.
type service struct {
	api     tokenAPI
	store   storage.AuthStorage
	logger  *slog.Logger
	nowFunc func() time.Time

	// Serializes refreshes so concurrent saves trigger at most one.
	mu gosync.Mutex
}

var _ Service = (*service)(nil)

// NewService creates the session service. The api argument is satisfied by
// *api.Client.
func NewService(api tokenAPI, store storage.AuthStorage, logger *slog.Logger) Service {
	return &service{
		api:     api,
		store:   store,
		logger:  logger,
		nowFunc: time.Now,
	}
}

func (s *service) Register(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	resp, err := s.api.Register(ctx, pkgapi.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.logger.Info("registered", "username", username, "user_id", resp.UserID)

	if err := s.login(ctx, username, password, resp.UserID); err != nil {
		return err
	}
	return nil
}

func (s *service) Login(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	return s.login(ctx, username, password, "")
}

func (s *service) login(ctx context.Context, username, password, userID string) error {
	tokens, err := s.api.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	auth := &storage.AuthData{
		Username:     username,
		UserID:       userID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    s.nowFunc().Unix() + tokens.ExpiresIn,
	}
	if err := s.store.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("logged in", "username", username)
	return nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

func (s *service) Status(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.store.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	return auth, nil
}

func (s *service) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth, err := s.store.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}

	if !auth.Expired(s.nowFunc().Add(expirySkew)) {
		return auth.AccessToken, nil
	}

	tokens, err := s.api.Refresh(ctx, pkgapi.RefreshRequest{RefreshToken: auth.RefreshToken})
	if err != nil {
		var apiErr *httpapi.APIError
		if errors.As(err, &apiErr) {
			// The refresh token itself was rejected; the session is
			// gone for good.
			s.logger.Warn("refresh token rejected", "status", apiErr.Status)
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("refresh token: %w", err)
	}

	auth.AccessToken = tokens.AccessToken
	auth.RefreshToken = tokens.RefreshToken
	auth.ExpiresAt = s.nowFunc().Unix() + tokens.ExpiresIn
	if err := s.store.SaveAuth(ctx, auth); err != nil {
		return "", fmt.Errorf("save refreshed session: %w", err)
	}
	s.logger.Debug("access token refreshed", "username", auth.Username)
	return auth.AccessToken, nil
}
