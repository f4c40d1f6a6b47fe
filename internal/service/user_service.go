package service

import (
	"context"

	"docuflow/internal/domain"
	"docuflow/internal/state"
)

// UserAPI is the slice of the backend client the user resolver depends on.
type UserAPI interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	ListUsers(ctx context.Context, page, size int) ([]domain.User, error)
}

// UserService resolves the authenticated principal. It watches the token
// cell and refetches the profile whenever the token appears or changes; on
// fetch failure the resolved user resets to nil rather than going stale.
type UserService struct {
	api         UserAPI
	logger      domain.Logger
	user        *state.Cell[*domain.User]
	unsubscribe func()
}

// NewUserService creates the resolver and performs an initial resolve when a
// token is already present.
func NewUserService(api UserAPI, tokens *TokenStore, logger domain.Logger) *UserService {
	s := &UserService{
		api:    api,
		logger: logger,
		user:   state.NewCell[*domain.User](nil),
	}
	s.unsubscribe = tokens.Subscribe(s.onTokenChange)
	s.onTokenChange(tokens.Token())
	return s
}

func (s *UserService) onTokenChange(token string) {
	if token == "" {
		s.user.Set(nil)
		return
	}
	user, err := s.api.CurrentUser(context.Background())
	if err != nil {
		s.logger.Warn("Failed to resolve current user", "error", err)
		s.user.Set(nil)
		return
	}
	s.user.Set(user)
}

// User returns the resolved principal, or nil when unresolved.
func (s *UserService) User() *domain.User {
	return s.user.Get()
}

// Role returns the resolved role, or "" when unresolved.
func (s *UserService) Role() domain.Role {
	if user := s.user.Get(); user != nil {
		return user.Role
	}
	return ""
}

// IsUser reports whether the resolved role is USER. False when unresolved.
func (s *UserService) IsUser() bool {
	return s.Role() == domain.RoleUser
}

// IsReviewer reports whether the resolved role is REVIEWER. False when
// unresolved.
func (s *UserService) IsReviewer() bool {
	return s.Role() == domain.RoleReviewer
}

// Subscribe registers fn to run whenever the resolved user changes.
func (s *UserService) Subscribe(fn func(*domain.User)) func() {
	return s.user.Subscribe(fn)
}

// ListUsers fetches one page of users for the filter dropdowns. No role
// filtering is applied client-side.
func (s *UserService) ListUsers(ctx context.Context, page, size int) ([]domain.User, error) {
	return s.api.ListUsers(ctx, page, size)
}

// Close detaches the resolver from the token cell.
func (s *UserService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
