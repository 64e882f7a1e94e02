package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrInvalidEncoding is returned when a file's content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 content")
	// ErrEmptyPath is returned when an operation receives an empty path.
	ErrEmptyPath = errors.New("empty path")
)
