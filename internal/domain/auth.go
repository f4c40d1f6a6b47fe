package domain

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required"`
}
