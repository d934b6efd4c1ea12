package storage

import "errors"

var (
	// ErrNotFound is returned when a post, publisher, or user id does not
	// resolve in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed input the store cannot act on.
	ErrInvalidInput = errors.New("invalid input")
)
