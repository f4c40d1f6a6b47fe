package view

import (
	"context"
	"testing"

	"docuflow/internal/domain"
	"docuflow/pkg/logger"
	apperrors "docuflow/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentViewFixture struct {
	api   *MockDocumentAPI
	toast *MockNotifier
	nav   *MockNavigator
	view  *DocumentView
}

func newDocumentViewFixture(doc *domain.Document, roles *MockRoles) *documentViewFixture {
	f := &documentViewFixture{
		api:   &MockDocumentAPI{doc: doc},
		toast: &MockNotifier{},
		nav:   &MockNavigator{},
	}
	f.view = NewDocumentView(doc.ID, f.api, roles, f.toast, f.nav, logger.NewNopLogger())
	return f
}

func TestDocumentView_LoadPopulatesNameFields(t *testing.T) {
	doc := &domain.Document{ID: "d1", Name: "Contract", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})

	f.view.Load(context.Background())

	require.NotNil(t, f.view.Document())
	assert.Equal(t, "Contract", f.view.Name())
	assert.Equal(t, "Contract", f.view.InitialName())
}

func TestDocumentView_LoadFailureNotifies(t *testing.T) {
	doc := &domain.Document{ID: "d1"}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	f.api.getErr = apperrors.NewNotFoundError("Document not found")

	f.view.Load(context.Background())

	assert.Nil(t, f.view.Document())
	assert.Equal(t, notification{"Failed to load document", domain.NotifyError}, f.toast.last())
}

func TestDocumentView_ActionGating(t *testing.T) {
	cases := []struct {
		status        domain.DocumentStatus
		canDelete     bool
		canRevoke     bool
		canSendReview bool
	}{
		{domain.StatusDraft, true, false, true},
		{domain.StatusRevoke, true, false, false},
		{domain.StatusReadyForReview, false, true, false},
		{domain.StatusUnderReview, false, false, false},
		{domain.StatusApproved, false, false, false},
		{domain.StatusDeclined, false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			doc := &domain.Document{ID: "d1", Status: tc.status}
			asUser := newDocumentViewFixture(doc, &MockRoles{user: true})
			asUser.view.Load(context.Background())

			assert.Equal(t, tc.canDelete, asUser.view.CanDelete())
			assert.Equal(t, tc.canRevoke, asUser.view.CanRevoke())
			assert.Equal(t, tc.canSendReview, asUser.view.CanSendToReview())

			// Reviewers get none of the creator actions.
			asReviewer := newDocumentViewFixture(doc, &MockRoles{reviewer: true})
			asReviewer.view.Load(context.Background())
			assert.False(t, asReviewer.view.CanDelete())
			assert.False(t, asReviewer.view.CanRevoke())
			assert.False(t, asReviewer.view.CanSendToReview())
		})
	}
}

func TestDocumentView_GatingFalseBeforeLoad(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})

	assert.False(t, f.view.CanDelete())
	assert.False(t, f.view.CanRevoke())
	assert.False(t, f.view.CanSendToReview())
}

func TestDocumentView_SaveNameUpdatesLocally(t *testing.T) {
	doc := &domain.Document{ID: "d1", Name: "Contract", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.view.OnNameChange("Contract v2")
	f.view.SaveName(ctx)

	require.Equal(t, []string{"Contract v2"}, f.api.renameCalls)
	// Rename patches local state instead of refetching.
	assert.Equal(t, 1, f.api.getCalls)
	assert.Equal(t, "Contract v2", f.view.Document().Name)
	assert.Equal(t, "Contract v2", f.view.InitialName())
	assert.Equal(t, notification{"Name updated successfully", domain.NotifySuccess}, f.toast.last())
}

func TestDocumentView_SaveNameFailureKeepsDocument(t *testing.T) {
	doc := &domain.Document{ID: "d1", Name: "Contract", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.api.renameErr = apperrors.NewValidationError("name should not be empty")
	f.view.OnNameChange("")
	f.view.SaveName(ctx)

	assert.Equal(t, "Contract", f.view.Document().Name)
	assert.Equal(t, "Contract", f.view.InitialName())
	assert.Equal(t, notification{"Failed to update name", domain.NotifyError}, f.toast.last())
}

func TestDocumentView_DeleteNavigatesToDashboard(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.view.Delete(ctx)

	assert.Equal(t, []string{"d1"}, f.api.deleteCalls)
	assert.Equal(t, notification{"Document deleted", domain.NotifySuccess}, f.toast.last())
	assert.Equal(t, []string{domain.RouteDashboard}, f.nav.routes)
}

func TestDocumentView_DeleteFailureStaysPut(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	f.api.deleteErr = apperrors.NewAuthError("Forbidden")

	f.view.Delete(context.Background())

	assert.Empty(t, f.nav.routes)
	assert.Equal(t, notification{"Failed to delete document", domain.NotifyError}, f.toast.last())
}

func TestDocumentView_SendToReviewRefetches(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.api.doc = &domain.Document{ID: "d1", Status: domain.StatusReadyForReview}
	f.view.SendToReview(ctx)

	assert.Equal(t, []string{"d1"}, f.api.sendCalls)
	assert.Equal(t, 2, f.api.getCalls)
	assert.Equal(t, domain.StatusReadyForReview, f.view.Document().Status)
	assert.Equal(t, notification{"Document sent to review", domain.NotifySuccess}, f.toast.last())
}

func TestDocumentView_RevokeRefetches(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusReadyForReview}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.api.doc = &domain.Document{ID: "d1", Status: domain.StatusRevoke}
	f.view.Revoke(ctx)

	assert.Equal(t, []string{"d1"}, f.api.revokeCalls)
	assert.Equal(t, domain.StatusRevoke, f.view.Document().Status)
	assert.Equal(t, notification{"Document revoked from review", domain.NotifySuccess}, f.toast.last())
}

func TestDocumentView_ChangeStatusAsReviewer(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusUnderReview}
	f := newDocumentViewFixture(doc, &MockRoles{reviewer: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.api.doc = &domain.Document{ID: "d1", Status: domain.StatusDeclined}
	f.view.ChangeStatus(ctx, domain.StatusDeclined)

	require.Equal(t, []changeStatusCall{{ID: "d1", Status: domain.StatusDeclined}}, f.api.changeCalls)
	assert.Equal(t, domain.StatusDeclined, f.view.Document().Status)
	assert.Equal(t, notification{"Status changed to DECLINED", domain.NotifySuccess}, f.toast.last())
	assert.False(t, f.view.StatusLoading())
}

func TestDocumentView_ChangeStatusIgnoredForNonReviewers(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusUnderReview}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.view.ChangeStatus(ctx, domain.StatusApproved)

	assert.Empty(t, f.api.changeCalls)
	assert.Empty(t, f.toast.shown, "no notification for the ignored action")
}

func TestDocumentView_ChangeStatusFailureShowsBackendMessage(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusDraft}
	f := newDocumentViewFixture(doc, &MockRoles{reviewer: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.api.changeErr = apperrors.NewValidationError("Illegal status transition")
	f.view.ChangeStatus(ctx, domain.StatusApproved)

	assert.Equal(t, notification{"Illegal status transition", domain.NotifyError}, f.toast.last())
	assert.Equal(t, 1, f.api.getCalls, "no refetch after a failed transition")
}

func TestDocumentView_SetUnderReview(t *testing.T) {
	doc := &domain.Document{ID: "d1", Status: domain.StatusReadyForReview}
	f := newDocumentViewFixture(doc, &MockRoles{reviewer: true})
	ctx := context.Background()
	f.view.Load(ctx)

	f.view.SetUnderReview(ctx)

	require.Len(t, f.api.changeCalls, 1)
	assert.Equal(t, domain.StatusUnderReview, f.api.changeCalls[0].Status)
}

func TestDocumentView_GoBack(t *testing.T) {
	doc := &domain.Document{ID: "d1"}
	f := newDocumentViewFixture(doc, &MockRoles{user: true})

	f.view.GoBack()

	assert.Equal(t, []string{domain.RouteDashboard}, f.nav.routes)
}
