package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docuflow/internal/domain"
	"docuflow/pkg/logger"
	apperrors "docuflow/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAuthAPI is a hand-written stand-in for the backend auth endpoints.
type MockAuthAPI struct {
	token       string
	loginErr    error
	registerErr error
	loginCalls  []domain.LoginPayload
}

func (m *MockAuthAPI) Login(ctx context.Context, payload domain.LoginPayload) (string, error) {
	m.loginCalls = append(m.loginCalls, payload)
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.token, nil
}

func (m *MockAuthAPI) Register(ctx context.Context, payload domain.RegisterPayload) error {
	return m.registerErr
}

func newTestAuthService(t *testing.T, api *MockAuthAPI) (*AuthService, *TokenStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "state")
	tokens := NewTokenStore(dir)
	return NewAuthService(api, tokens, logger.NewNopLogger()), tokens, dir
}

func TestAuthService_LoginStoresToken(t *testing.T) {
	api := &MockAuthAPI{token: "t1"}
	auth, tokens, _ := newTestAuthService(t, api)

	err := auth.Login(context.Background(), "a@b.com", "x")

	require.NoError(t, err)
	assert.Equal(t, "t1", tokens.Token())
	assert.True(t, auth.IsAuthenticated())
	require.Len(t, api.loginCalls, 1)
	assert.Equal(t, domain.LoginPayload{Email: "a@b.com", Password: "x"}, api.loginCalls[0])
}

func TestAuthService_LoginFailureStoresNothing(t *testing.T) {
	api := &MockAuthAPI{loginErr: apperrors.NewAuthError("Invalid credentials")}
	auth, tokens, _ := newTestAuthService(t, api)

	err := auth.Login(context.Background(), "a@b.com", "wrong")

	require.Error(t, err)
	assert.Empty(t, tokens.Token())
	assert.False(t, auth.IsAuthenticated())
}

func TestAuthService_SetTokenUpdatesCellSynchronously(t *testing.T) {
	auth, tokens, dir := newTestAuthService(t, &MockAuthAPI{})

	var seen []string
	tokens.Subscribe(func(token string) { seen = append(seen, token) })

	require.NoError(t, auth.SetToken("t2"))

	assert.Equal(t, []string{"t2"}, seen)
	data, err := os.ReadFile(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, "t2", string(data))
}

func TestTokenStore_LoadsPersistedToken(t *testing.T) {
	auth, _, dir := newTestAuthService(t, &MockAuthAPI{})
	require.NoError(t, auth.SetToken("survivor"))

	// A fresh store over the same directory sees the persisted token.
	reloaded := NewTokenStore(dir)
	assert.Equal(t, "survivor", reloaded.Token())
}

func TestAuthService_LogoutClearsAllPersistedState(t *testing.T) {
	auth, tokens, dir := newTestAuthService(t, &MockAuthAPI{})
	require.NoError(t, auth.SetToken("t3"))

	require.NoError(t, auth.Logout())

	assert.False(t, auth.IsAuthenticated())
	assert.Empty(t, tokens.Token())
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "state dir should be removed on logout")
}
