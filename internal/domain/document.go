package domain

import "time"

// DocumentStatus is a document's position in the review workflow.
type DocumentStatus string

const (
	StatusDraft          DocumentStatus = "DRAFT"
	StatusRevoke         DocumentStatus = "REVOKE"
	StatusReadyForReview DocumentStatus = "READY_FOR_REVIEW"
	StatusUnderReview    DocumentStatus = "UNDER_REVIEW"
	StatusApproved       DocumentStatus = "APPROVED"
	StatusDeclined       DocumentStatus = "DECLINED"
)

// DocumentStatuses lists every workflow state in display order.
var DocumentStatuses = []DocumentStatus{
	StatusDraft,
	StatusRevoke,
	StatusReadyForReview,
	StatusUnderReview,
	StatusApproved,
	StatusDeclined,
}

// ReviewStatuses are the states a reviewer may move a document into.
var ReviewStatuses = []DocumentStatus{
	StatusUnderReview,
	StatusApproved,
	StatusDeclined,
}

// IsValid reports whether s is one of the known workflow states.
func (s DocumentStatus) IsValid() bool {
	for _, known := range DocumentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Creator is the user who originally uploaded a document. Same shape as User;
// alias so the two are interchangeable.
type Creator = User

// Document represents one uploaded document and its review state.
// The creator and file URL are immutable after upload.
type Document struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    DocumentStatus `json:"status"`
	FileURL   string         `json:"fileUrl"`
	Creator   Creator        `json:"creator"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DocumentListResponse is the envelope returned by the document list endpoint.
type DocumentListResponse struct {
	Results []Document `json:"results"`
	Count   int        `json:"count"`
}

// ListQuery carries the document list parameters. Page is 1-based. Zero-value
// fields are omitted from the request entirely rather than sent empty.
// At most one of CreatorID and CreatorEmail is set at any time.
type ListQuery struct {
	Page         int
	Size         int
	Sort         string // "field,direction", e.g. "updatedAt,desc"
	Status       DocumentStatus
	CreatorID    string
	CreatorEmail string
}
