package domain

import "time"

// Report summarises one marking run.
type Report struct {
	// Source is the path of the scanned file.
	Source string
	// Destination is where the result was written; zero for check runs.
	Destination Destination
	// ReferenceKeys is the size of the loaded reference set.
	ReferenceKeys int

	// Lines is the number of lines read from the source.
	Lines int
	// Marked counts lines that received the marker in this run.
	Marked int
	// AlreadyMarked counts lines that carried the marker before the run.
	AlreadyMarked int
	// Passed counts lines emitted unchanged because they were not referenced.
	Passed int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// Changed reports whether the run altered any line.
func (r Report) Changed() bool {
	return r.Marked > 0
}
