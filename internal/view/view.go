// Package view holds the screen-level state machines: the document listing,
// the single-document view, the upload dialog and the auth pages. Views own
// reactive cells, call the backend through narrow interfaces and report every
// action outcome through the notifier.
package view

import (
	"context"
	"io"

	"docuflow/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Pagination defaults shared by the listing screens.
const (
	DefaultPage          = 1
	DefaultPageSize      = 5
	DefaultUsersPageSize = 5

	// fetchPageSize is the fixed page size used by the accumulation loop,
	// not the display page size.
	fetchPageSize = 50
)

// PageSizeOptions are the page sizes offered by the listing view.
var PageSizeOptions = []int{5, 10, 20}

var validate = validator.New()

// DocumentAPI is the slice of the backend client the document views depend on.
type DocumentAPI interface {
	ListDocuments(ctx context.Context, q domain.ListQuery) (*domain.DocumentListResponse, error)
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
	UploadDocument(ctx context.Context, name string, status domain.DocumentStatus, filename string, file io.Reader) (*domain.Document, error)
	RenameDocument(ctx context.Context, id, name string) error
	DeleteDocument(ctx context.Context, id string) error
	SendToReview(ctx context.Context, id string) error
	RevokeReview(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, id string, status domain.DocumentStatus) error
}

// RoleSource exposes the resolved role of the authenticated principal. Both
// report false while the role is unresolved.
type RoleSource interface {
	IsUser() bool
	IsReviewer() bool
}

// UserDirectory lists users for the creator filter dropdown.
type UserDirectory interface {
	ListUsers(ctx context.Context, page, size int) ([]domain.User, error)
}
