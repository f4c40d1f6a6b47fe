package view

import (
	"context"
	"io"

	"docuflow/internal/domain"
)

// Hand-written doubles for view testing.

type listCall = domain.ListQuery

type changeStatusCall struct {
	ID     string
	Status domain.DocumentStatus
}

type uploadCall struct {
	Name     string
	Status   domain.DocumentStatus
	Filename string
}

type MockDocumentAPI struct {
	// docs is the full backend-side result set the list endpoint pages over.
	docs    []domain.Document
	listErr error
	// failOnFetchPage makes only that accumulation page fail when set.
	failOnFetchPage int

	doc    *domain.Document
	getErr error

	uploadDoc *domain.Document
	uploadErr error

	renameErr error
	deleteErr error
	sendErr   error
	revokeErr error
	changeErr error

	listCalls   []listCall
	getCalls    int
	uploadCalls []uploadCall
	renameCalls []string
	deleteCalls []string
	sendCalls   []string
	revokeCalls []string
	changeCalls []changeStatusCall
}

func (m *MockDocumentAPI) ListDocuments(ctx context.Context, q domain.ListQuery) (*domain.DocumentListResponse, error) {
	m.listCalls = append(m.listCalls, q)
	if m.listErr != nil && (m.failOnFetchPage == 0 || m.failOnFetchPage == q.Page) {
		return nil, m.listErr
	}
	start := (q.Page - 1) * q.Size
	if start > len(m.docs) {
		start = len(m.docs)
	}
	end := start + q.Size
	if end > len(m.docs) {
		end = len(m.docs)
	}
	return &domain.DocumentListResponse{
		Results: m.docs[start:end],
		Count:   len(m.docs),
	}, nil
}

func (m *MockDocumentAPI) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.doc, nil
}

func (m *MockDocumentAPI) UploadDocument(ctx context.Context, name string, status domain.DocumentStatus, filename string, file io.Reader) (*domain.Document, error) {
	m.uploadCalls = append(m.uploadCalls, uploadCall{Name: name, Status: status, Filename: filename})
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.uploadDoc, nil
}

func (m *MockDocumentAPI) RenameDocument(ctx context.Context, id, name string) error {
	m.renameCalls = append(m.renameCalls, name)
	return m.renameErr
}

func (m *MockDocumentAPI) DeleteDocument(ctx context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	return m.deleteErr
}

func (m *MockDocumentAPI) SendToReview(ctx context.Context, id string) error {
	m.sendCalls = append(m.sendCalls, id)
	return m.sendErr
}

func (m *MockDocumentAPI) RevokeReview(ctx context.Context, id string) error {
	m.revokeCalls = append(m.revokeCalls, id)
	return m.revokeErr
}

func (m *MockDocumentAPI) ChangeStatus(ctx context.Context, id string, status domain.DocumentStatus) error {
	m.changeCalls = append(m.changeCalls, changeStatusCall{ID: id, Status: status})
	return m.changeErr
}

type MockRoles struct {
	user     bool
	reviewer bool
}

func (m *MockRoles) IsUser() bool     { return m.user }
func (m *MockRoles) IsReviewer() bool { return m.reviewer }

type MockDirectory struct {
	users     []domain.User
	err       error
	listCalls [][2]int
}

func (m *MockDirectory) ListUsers(ctx context.Context, page, size int) ([]domain.User, error) {
	m.listCalls = append(m.listCalls, [2]int{page, size})
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

type notification struct {
	Message string
	Kind    domain.NotificationKind
}

type MockNotifier struct {
	shown []notification
}

func (m *MockNotifier) Show(message string, kind domain.NotificationKind) {
	m.shown = append(m.shown, notification{Message: message, Kind: kind})
}

func (m *MockNotifier) last() notification {
	if len(m.shown) == 0 {
		return notification{}
	}
	return m.shown[len(m.shown)-1]
}

type MockNavigator struct {
	routes []string
}

func (m *MockNavigator) Navigate(route string) {
	m.routes = append(m.routes, route)
}

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}
