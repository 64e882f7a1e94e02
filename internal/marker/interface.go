package marker

import (
	"context"
	"skipmark/pkg/domain"
)

// Request describes one marking run.
type Request struct {
	// Source is the file whose lines are scanned.
	Source string
	// Reference is the list of lines to mark.
	Reference string
	// Destination selects where the marked text goes. It is ignored by check runs.
	Destination domain.Destination
	// Check computes the report without writing anything.
	Check bool
}

// Marker prefixes the marker token to referenced lines of a source file.
type Marker interface {
	MarkFile(ctx context.Context, req Request) (*domain.Report, error)
}
