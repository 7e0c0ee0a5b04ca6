package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates a request without a logged-in session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates the session role lacks the required permission.
	ErrForbidden = errors.New("forbidden")
)
