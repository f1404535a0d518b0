// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes writes the speaker notes of a presentation to a plain-text
// report, one numbered block per slide.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/speaker-notes/internal/pptx"
	"github.com/pdiddy/speaker-notes/pkg/types"
)

// DefaultDestination is the report path used when none is given.
const DefaultDestination = types.DefaultOutput

// Presentation is the view of a loaded presentation the extractor needs:
// the slide count and the optional notes text of each slide.
type Presentation interface {
	// Len returns the number of slides.
	Len() int
	// NotesText returns the notes of the slide at 0-based position i and
	// whether the slide has notes at all.
	NotesText(i int) (string, bool)
}

// Loader opens a presentation file. pptx files are handled by PPTXLoader.
type Loader interface {
	Load(path string) (Presentation, error)
}

// PPTXLoader loads Office Open XML presentations.
type PPTXLoader struct{}

// Load opens the presentation at path.
func (PPTXLoader) Load(path string) (Presentation, error) {
	p, err := pptx.Open(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Recorder receives a record of every run. A nil Recorder disables history.
type Recorder interface {
	Record(ctx context.Context, run types.Run) error
}

// SourceReadError reports that the presentation could not be opened or parsed.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("reading presentation %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// DestinationWriteError reports that the report file could not be created
// or written. A partially written file is left in place.
type DestinationWriteError struct {
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("writing notes to %s: %v", e.Path, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }

// Result summarizes a successful extraction.
type Result struct {
	Source      string
	Destination string
	Slides      int
	WithNotes   int
}

// Extractor writes speaker-notes reports.
type Extractor struct {
	// Loader opens the source presentation. Nil means PPTXLoader.
	Loader Loader

	// Out receives the confirmation line. Nil means os.Stdout.
	Out io.Writer

	// Log receives diagnostics. The zero value logs nothing.
	Log zerolog.Logger

	// Recorder, when set, is told about every run.
	Recorder Recorder
}

// Extract writes the notes of every slide in source to destination,
// truncating any existing file. An empty destination means
// DefaultDestination. The source is read before the destination is
// touched, so a source failure leaves the destination unchanged.
func (x *Extractor) Extract(source, destination string) (Result, error) {
	if destination == "" {
		destination = DefaultDestination
	}
	start := time.Now()
	res := Result{Source: source, Destination: destination}

	res, err := x.extract(res)
	x.record(res, start, err)
	if err != nil {
		return res, err
	}

	fmt.Fprintf(x.out(), "Speaker notes saved to: %s\n", destination)
	return res, nil
}

func (x *Extractor) extract(res Result) (Result, error) {
	x.Log.Debug().Str("source", res.Source).Msg("loading presentation")
	p, err := x.loader().Load(res.Source)
	if err != nil {
		return res, &SourceReadError{Path: res.Source, Err: err}
	}

	report := BuildReport(p)
	res.Slides = len(report.Entries)
	res.WithNotes = report.WithNotes()
	x.Log.Debug().Int("slides", res.Slides).Int("with_notes", res.WithNotes).Msg("built report")

	if err := writeReport(res.Destination, report); err != nil {
		return res, &DestinationWriteError{Path: res.Destination, Err: err}
	}
	x.Log.Info().
		Str("source", res.Source).
		Str("destination", res.Destination).
		Int("slides", res.Slides).
		Int("with_notes", res.WithNotes).
		Msg("extracted speaker notes")
	return res, nil
}

// writeReport creates path and writes the report. The file is closed on
// every path; the first error wins.
func writeReport(path string, r Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = r.WriteTo(f)
	return err
}

func (x *Extractor) record(res Result, start time.Time, runErr error) {
	if x.Recorder == nil {
		return
	}
	run := types.Run{
		Source:      res.Source,
		Destination: res.Destination,
		Slides:      res.Slides,
		WithNotes:   res.WithNotes,
		Status:      types.RunOK,
		StartedAt:   start.UTC(),
		Duration:    time.Since(start),
	}
	if runErr != nil {
		run.Error = runErr.Error()
		var srcErr *SourceReadError
		if errors.As(runErr, &srcErr) {
			run.Status = types.RunSourceError
		} else {
			run.Status = types.RunDestinationError
		}
	}
	if err := x.Recorder.Record(context.Background(), run); err != nil {
		x.Log.Warn().Err(err).Msg("could not record run history")
	}
}

func (x *Extractor) loader() Loader {
	if x.Loader == nil {
		return PPTXLoader{}
	}
	return x.Loader
}

func (x *Extractor) out() io.Writer {
	if x.Out == nil {
		return os.Stdout
	}
	return x.Out
}
