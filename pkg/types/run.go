// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus is the outcome of one extraction run.
type RunStatus string

const (
	RunOK               RunStatus = "ok"
	RunSourceError      RunStatus = "source_error"
	RunDestinationError RunStatus = "destination_error"
)

// Run records a single extraction, as kept in the run history.
type Run struct {
	// ID is assigned by the history store.
	ID int64 `json:"id" yaml:"id"`

	// Source is the presentation path as given on the command line.
	Source string `json:"source" yaml:"source"`

	// Destination is the report path that was written (or attempted).
	Destination string `json:"destination" yaml:"destination"`

	// Slides is the number of slides in the presentation. Zero when the
	// source could not be read.
	Slides int `json:"slides" yaml:"slides"`

	// WithNotes counts slides whose trimmed notes were non-empty.
	WithNotes int `json:"with_notes" yaml:"with_notes"`

	Status RunStatus `json:"status" yaml:"status"`

	// Error is the failure message, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}
