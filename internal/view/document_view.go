package view

import (
	"context"

	"docuflow/internal/domain"
	"docuflow/internal/state"
	apperrors "docuflow/pkg/errors"
)

// DocumentView presents a single document and the status-transition actions
// the current role is allowed to trigger. Mutations never update review
// state optimistically: status actions refetch the document so the view
// cannot drift from server-computed side effects such as timestamps.
type DocumentView struct {
	id     string
	api    DocumentAPI
	roles  RoleSource
	toast  domain.Notifier
	nav    domain.Navigator
	logger domain.Logger

	document      *state.Cell[*domain.Document]
	name          *state.Cell[string]
	initialName   *state.Cell[string]
	statusLoading *state.Cell[bool]
}

// NewDocumentView creates the view for one document id.
func NewDocumentView(id string, api DocumentAPI, roles RoleSource, toast domain.Notifier, nav domain.Navigator, logger domain.Logger) *DocumentView {
	return &DocumentView{
		id:            id,
		api:           api,
		roles:         roles,
		toast:         toast,
		nav:           nav,
		logger:        logger,
		document:      state.NewCell[*domain.Document](nil),
		name:          state.NewCell(""),
		initialName:   state.NewCell(""),
		statusLoading: state.NewCell(false),
	}
}

// Load fetches the document. A load failure is a blocking error for this
// view, unlike listing reads.
func (v *DocumentView) Load(ctx context.Context) {
	doc, err := v.api.GetDocument(ctx, v.id)
	if err != nil {
		v.logger.Error("Failed to load document", err, "id", v.id)
		v.toast.Show("Failed to load document", domain.NotifyError)
		return
	}
	v.document.Set(doc)
	v.name.Set(doc.Name)
	v.initialName.Set(doc.Name)
}

// Refresh refetches the document to resynchronize with server truth.
func (v *DocumentView) Refresh(ctx context.Context) {
	doc, err := v.api.GetDocument(ctx, v.id)
	if err != nil {
		v.logger.Error("Failed to refresh document", err, "id", v.id)
		v.toast.Show("Failed to refresh document", domain.NotifyError)
		return
	}
	v.document.Set(doc)
	v.name.Set(doc.Name)
	v.initialName.Set(doc.Name)
}

// OnNameChange tracks the edited name without saving it.
func (v *DocumentView) OnNameChange(name string) {
	v.name.Set(name)
}

// SaveName renames the document. Rename is the one mutation that updates
// local state directly instead of refetching.
func (v *DocumentView) SaveName(ctx context.Context) {
	name := v.name.Get()
	if err := v.api.RenameDocument(ctx, v.id, name); err != nil {
		v.toast.Show("Failed to update name", domain.NotifyError)
		return
	}
	if doc := v.document.Get(); doc != nil {
		updated := *doc
		updated.Name = name
		v.document.Set(&updated)
	}
	v.initialName.Set(name)
	v.toast.Show("Name updated successfully", domain.NotifySuccess)
}

// Delete removes the document and returns to the dashboard.
func (v *DocumentView) Delete(ctx context.Context) {
	if err := v.api.DeleteDocument(ctx, v.id); err != nil {
		v.toast.Show("Failed to delete document", domain.NotifyError)
		return
	}
	v.toast.Show("Document deleted", domain.NotifySuccess)
	v.nav.Navigate(domain.RouteDashboard)
}

// Revoke pulls the document back from review and refetches it.
func (v *DocumentView) Revoke(ctx context.Context) {
	if err := v.api.RevokeReview(ctx, v.id); err != nil {
		v.toast.Show("Failed to revoke document", domain.NotifyError)
		return
	}
	v.toast.Show("Document revoked from review", domain.NotifySuccess)
	v.Refresh(ctx)
}

// SendToReview submits the document for review and refetches it.
func (v *DocumentView) SendToReview(ctx context.Context) {
	if err := v.api.SendToReview(ctx, v.id); err != nil {
		v.toast.Show("Failed to send document to review", domain.NotifyError)
		return
	}
	v.toast.Show("Document sent to review", domain.NotifySuccess)
	v.Refresh(ctx)
}

// SetUnderReview marks the document as being reviewed.
func (v *DocumentView) SetUnderReview(ctx context.Context) {
	v.ChangeStatus(ctx, domain.StatusUnderReview)
}

// ChangeStatus applies a reviewer transition. Non-reviewers are a silent
// no-op here; the backend is the authoritative enforcer either way. On
// success the document is refetched rather than patched locally.
func (v *DocumentView) ChangeStatus(ctx context.Context, status domain.DocumentStatus) {
	if !v.roles.IsReviewer() {
		return
	}
	v.statusLoading.Set(true)
	defer v.statusLoading.Set(false)

	if err := v.api.ChangeStatus(ctx, v.id, status); err != nil {
		v.toast.Show(apperrors.MessageOf(err, "Failed to change status"), domain.NotifyError)
		return
	}
	v.toast.Show("Status changed to "+string(status), domain.NotifySuccess)
	v.Refresh(ctx)
}

// GoBack returns to the dashboard.
func (v *DocumentView) GoBack() {
	v.nav.Navigate(domain.RouteDashboard)
}

// CanDelete reports whether the delete action applies: creator role with the
// document in DRAFT or REVOKE. Computed fresh on every read.
func (v *DocumentView) CanDelete() bool {
	doc := v.document.Get()
	if doc == nil || !v.roles.IsUser() {
		return false
	}
	return doc.Status == domain.StatusDraft || doc.Status == domain.StatusRevoke
}

// CanRevoke reports whether the revoke action applies: USER role with the
// document in READY_FOR_REVIEW.
func (v *DocumentView) CanRevoke() bool {
	doc := v.document.Get()
	return doc != nil && v.roles.IsUser() && doc.Status == domain.StatusReadyForReview
}

// CanSendToReview reports whether the send-to-review action applies: USER
// role with the document in DRAFT.
func (v *DocumentView) CanSendToReview() bool {
	doc := v.document.Get()
	return doc != nil && v.roles.IsUser() && doc.Status == domain.StatusDraft
}

func (v *DocumentView) Document() *domain.Document { return v.document.Get() }
func (v *DocumentView) Name() string               { return v.name.Get() }
func (v *DocumentView) InitialName() string        { return v.initialName.Get() }
func (v *DocumentView) StatusLoading() bool        { return v.statusLoading.Get() }
