package service

import (
	"context"

	"docuflow/internal/domain"
)

// AuthAPI is the slice of the backend client the auth service depends on.
type AuthAPI interface {
	Login(ctx context.Context, payload domain.LoginPayload) (string, error)
	Register(ctx context.Context, payload domain.RegisterPayload) error
}

// AuthService owns the bearer token lifecycle: login, registration, logout
// and the derived "is authenticated" predicate.
type AuthService struct {
	api    AuthAPI
	tokens *TokenStore
	logger domain.Logger
}

// NewAuthService creates a new auth service instance.
func NewAuthService(api AuthAPI, tokens *TokenStore, logger domain.Logger) *AuthService {
	return &AuthService{
		api:    api,
		tokens: tokens,
		logger: logger,
	}
}

// Login exchanges credentials for a token and stores it. The caller surfaces
// failures as a notification; nothing is stored on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, domain.LoginPayload{Email: email, Password: password})
	if err != nil {
		s.logger.Warn("Login failed", "email", email)
		return err
	}
	return s.SetToken(token)
}

// Register creates a new account. The backend's validation messages travel
// back in the returned error.
func (s *AuthService) Register(ctx context.Context, payload domain.RegisterPayload) error {
	return s.api.Register(ctx, payload)
}

// SetToken persists or clears the stored token and updates the reactive cell
// synchronously.
func (s *AuthService) SetToken(token string) error {
	return s.tokens.Set(token)
}

// Token returns the current bearer token, or "" when anonymous.
func (s *AuthService) Token() string {
	return s.tokens.Token()
}

// IsAuthenticated is derived from token presence, never set independently.
func (s *AuthService) IsAuthenticated() bool {
	return s.tokens.Token() != ""
}

// Logout clears the token and every other locally persisted key.
func (s *AuthService) Logout() error {
	s.logger.Info("Logging out")
	return s.tokens.Clear()
}
