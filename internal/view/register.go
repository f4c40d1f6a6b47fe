package view

import (
	"context"

	"docuflow/internal/domain"
	"docuflow/internal/state"
	apperrors "docuflow/pkg/errors"
)

// registerFallbackMessage is shown when the backend error carries no
// recognizable message.
const registerFallbackMessage = "Registration failed. Try a different email."

// RegisterPage is the account-creation form.
type RegisterPage struct {
	auth  AuthFlow
	nav   domain.Navigator
	toast domain.Notifier

	loading *state.Cell[bool]
}

// NewRegisterPage creates the register page.
func NewRegisterPage(auth AuthFlow, nav domain.Navigator, toast domain.Notifier) *RegisterPage {
	return &RegisterPage{
		auth:    auth,
		nav:     nav,
		toast:   toast,
		loading: state.NewCell(false),
	}
}

// Submit validates the form and attempts registration. Backend validation
// messages (a single string or a joined list) surface in one notification;
// success navigates to the login page.
func (p *RegisterPage) Submit(ctx context.Context, payload domain.RegisterPayload) {
	if err := validate.Struct(payload); err != nil {
		return
	}

	p.loading.Set(true)
	if err := p.auth.Register(ctx, payload); err != nil {
		p.toast.Show(apperrors.MessageOf(err, registerFallbackMessage), domain.NotifyError)
		p.loading.Set(false)
		return
	}
	p.loading.Set(false)
	p.toast.Show("Registration successful!", domain.NotifySuccess)
	p.nav.Navigate(domain.RouteLogin)
}

// Loading reports whether a registration is in flight.
func (p *RegisterPage) Loading() bool { return p.loading.Get() }
