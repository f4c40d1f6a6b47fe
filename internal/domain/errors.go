package domain

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotAuthenticated = errors.New("not authenticated")
)
