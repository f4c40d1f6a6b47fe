package domain

// Role is a user's role in the review workflow.
type Role string

const (
	RoleUser     Role = "USER"
	RoleReviewer Role = "REVIEWER"
)

// User represents a user in the system. Role is authoritative from the
// backend profile endpoint and never mutated locally.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// UserListResponse is the envelope returned by the user list endpoint.
type UserListResponse struct {
	Results []User `json:"results"`
}
