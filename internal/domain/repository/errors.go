package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a unique email constraint trips.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrForbidden is returned when a mutation targets a row owned by
	// someone else.
	ErrForbidden = errors.New("not the resource owner")
)
