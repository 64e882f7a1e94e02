// Package storage defines the file access the marking pipeline relies on.
// It abstracts reading inputs and writing results so that the marker can be
// exercised without touching disk, and so that writes stay all-or-nothing.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// Reader loads whole text files.
type Reader interface {
	// ReadFile returns the full content of path. Content that is not valid
	// UTF-8 is rejected with ErrInvalidEncoding.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Writer persists whole text files.
type Writer interface {
	// WriteFile replaces the content of path with data. Implementations must
	// never leave path holding a partial write.
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Storage combines Reader and Writer.
type Storage interface {
	Reader
	Writer
}
