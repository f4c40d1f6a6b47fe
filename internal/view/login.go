package view

import (
	"context"

	"docuflow/internal/domain"
	"docuflow/internal/state"
)

// AuthFlow is the slice of the auth service the auth pages depend on.
type AuthFlow interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, payload domain.RegisterPayload) error
}

// LoginPage is the credential form. A successful login stores the token
// (inside the auth flow) and navigates to the dashboard.
type LoginPage struct {
	auth AuthFlow
	nav  domain.Navigator

	loading      *state.Cell[bool]
	errorMessage *state.Cell[string]
}

// NewLoginPage creates the login page.
func NewLoginPage(auth AuthFlow, nav domain.Navigator) *LoginPage {
	return &LoginPage{
		auth:         auth,
		nav:          nav,
		loading:      state.NewCell(false),
		errorMessage: state.NewCell(""),
	}
}

// Submit validates the form and attempts the login. An invalid form blocks
// submission silently; a rejected login surfaces an inline error message
// rather than an exception.
func (p *LoginPage) Submit(ctx context.Context, email, password string) {
	payload := domain.LoginPayload{Email: email, Password: password}
	if err := validate.Struct(payload); err != nil {
		return
	}

	p.loading.Set(true)
	if err := p.auth.Login(ctx, email, password); err != nil {
		p.errorMessage.Set("Login failed. Please check your credentials.")
		p.loading.Set(false)
		return
	}
	p.loading.Set(false)
	p.nav.Navigate(domain.RouteDashboard)
}

// Loading reports whether a login is in flight.
func (p *LoginPage) Loading() bool { return p.loading.Get() }

// ErrorMessage returns the inline failure message, or "".
func (p *LoginPage) ErrorMessage() string { return p.errorMessage.Get() }
