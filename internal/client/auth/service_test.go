package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	pkgapi "github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// mockAuthStorage implements storage.AuthStorage in memory.
type mockAuthStorage struct {
	data    *storage.AuthData
	saveErr error
	getErr  error
}

func (m *mockAuthStorage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *auth
	m.data = &cp
	return nil
}

func (m *mockAuthStorage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, storage.ErrAuthNotFound
	}
	cp := *m.data
	return &cp, nil
}

func (m *mockAuthStorage) DeleteAuth(ctx context.Context) error {
	if m.data == nil {
		return storage.ErrAuthNotFound
	}
	m.data = nil
	return nil
}

func (m *mockAuthStorage) IsAuthenticated(ctx context.Context) (bool, error) {
	return m.data != nil && !m.data.Expired(time.Now()), nil
}

// mockTokenAPI implements tokenAPI.
type mockTokenAPI struct {
	registerResp *pkgapi.RegisterResponse
	registerErr  error
	loginResp    *pkgapi.TokenResponse
	loginErr     error
	refreshResp  *pkgapi.TokenResponse
	refreshErr   error
	refreshCalls int
}

func (m *mockTokenAPI) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	return m.registerResp, m.registerErr
}

func (m *mockTokenAPI) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockTokenAPI) Refresh(ctx context.Context, req pkgapi.RefreshRequest) (*pkgapi.TokenResponse, error) {
	m.refreshCalls++
	return m.refreshResp, m.refreshErr
}

func newTestService(api tokenAPI, store storage.AuthStorage) *service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return NewService(api, store, logger).(*service)
}

func TestLogin_StoresTokenPairWithExpiry(t *testing.T) {
	api := &mockTokenAPI{loginResp: &pkgapi.TokenResponse{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    900,
	}}
	store := &mockAuthStorage{}
	svc := newTestService(api, store)
	now := time.Unix(10_000, 0)
	svc.nowFunc = func() time.Time { return now }

	require.NoError(t, svc.Login(context.Background(), "alice", "long-password"))

	require.NotNil(t, store.data)
	assert.Equal(t, "alice", store.data.Username)
	assert.Equal(t, "access-1", store.data.AccessToken)
	assert.Equal(t, "refresh-1", store.data.RefreshToken)
	assert.Equal(t, now.Unix()+900, store.data.ExpiresAt)
}

func TestLogin_RejectsInvalidUsername(t *testing.T) {
	svc := newTestService(&mockTokenAPI{}, &mockAuthStorage{})
	require.Error(t, svc.Login(context.Background(), "a!", "long-password"))
}

func TestRegister_CreatesAccountThenLogsIn(t *testing.T) {
	api := &mockTokenAPI{
		registerResp: &pkgapi.RegisterResponse{UserID: "user-42"},
		loginResp: &pkgapi.TokenResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresIn:    900,
		},
	}
	store := &mockAuthStorage{}
	svc := newTestService(api, store)

	require.NoError(t, svc.Register(context.Background(), "alice", "long-password"))

	require.NotNil(t, store.data)
	assert.Equal(t, "user-42", store.data.UserID)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := newTestService(&mockTokenAPI{}, &mockAuthStorage{})
	require.Error(t, svc.Register(context.Background(), "alice", "short"))
}

func TestAccessToken_ReturnsStoredTokenWhileFresh(t *testing.T) {
	api := &mockTokenAPI{}
	store := &mockAuthStorage{data: &storage.AuthData{
		Username:    "alice",
		AccessToken: "access-1",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}}
	svc := newTestService(api, store)

	token, err := svc.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
	assert.Zero(t, api.refreshCalls)
}

func TestAccessToken_RefreshesExpiredToken(t *testing.T) {
	api := &mockTokenAPI{refreshResp: &pkgapi.TokenResponse{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		ExpiresIn:    900,
	}}
	store := &mockAuthStorage{data: &storage.AuthData{
		Username:     "alice",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute).Unix(),
	}}
	svc := newTestService(api, store)

	token, err := svc.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, 1, api.refreshCalls)
	assert.Equal(t, "refresh-2", store.data.RefreshToken, "rotated pair is persisted")
}

func TestAccessToken_RefreshesWithinSkewWindow(t *testing.T) {
	api := &mockTokenAPI{refreshResp: &pkgapi.TokenResponse{
		AccessToken: "access-2",
		ExpiresIn:   900,
	}}
	store := &mockAuthStorage{data: &storage.AuthData{
		AccessToken: "access-1",
		ExpiresAt:   time.Now().Add(10 * time.Second).Unix(),
	}}
	svc := newTestService(api, store)

	token, err := svc.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", token, "a token inside the skew window is renewed early")
}

func TestAccessToken_NotLoggedIn(t *testing.T) {
	svc := newTestService(&mockTokenAPI{}, &mockAuthStorage{})
	_, err := svc.AccessToken(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAccessToken_RejectedRefreshEndsSession(t *testing.T) {
	api := &mockTokenAPI{refreshErr: &httpapi.APIError{Status: 401, Detail: "invalid refresh token"}}
	store := &mockAuthStorage{data: &storage.AuthData{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute).Unix(),
	}}
	svc := newTestService(api, store)

	_, err := svc.AccessToken(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAccessToken_NetworkErrorIsNotFatal(t *testing.T) {
	api := &mockTokenAPI{refreshErr: &httpapi.NetworkError{Err: errors.New("connection refused")}}
	store := &mockAuthStorage{data: &storage.AuthData{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute).Unix(),
	}}
	svc := newTestService(api, store)

	_, err := svc.AccessToken(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, err, httpapi.ErrNetwork)
}

func TestStatusAndLogout(t *testing.T) {
	store := &mockAuthStorage{data: &storage.AuthData{Username: "alice"}}
	svc := newTestService(&mockTokenAPI{}, store)

	auth, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", auth.Username)

	require.NoError(t, svc.Logout(context.Background()))
	_, err = svc.Status(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)

	// Logging out twice is fine
	require.NoError(t, svc.Logout(context.Background()))
}
