package domain

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the entity exists but the caller is not its owner.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a write collided with an existing row
	// (duplicate transaction content, taken email).
	ErrConflict = errors.New("conflict")
	// ErrBadRequest indicates an invalid field combination or enum value.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")
)
