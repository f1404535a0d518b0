// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// NoNotesMarker stands in for slides without notes or with blank notes.
const NoNotesMarker = "(No notes)"

// Entry is one block of the report.
type Entry struct {
	// Slide is the 1-based slide position.
	Slide int

	// Text is the trimmed notes text, or NoNotesMarker.
	Text string

	// HasNotes reports whether Text came from the slide rather than the marker.
	HasNotes bool
}

// Report is the ordered list of per-slide blocks.
type Report struct {
	Entries []Entry
}

// BuildReport produces one entry per slide, in presentation order.
func BuildReport(p Presentation) Report {
	n := p.Len()
	r := Report{Entries: make([]Entry, n)}
	for i := 0; i < n; i++ {
		e := Entry{Slide: i + 1, Text: NoNotesMarker}
		if text, ok := p.NotesText(i); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				e.Text = trimmed
				e.HasNotes = true
			}
		}
		r.Entries[i] = e
	}
	return r
}

// WithNotes counts entries that carry slide text.
func (r Report) WithNotes() int {
	n := 0
	for _, e := range r.Entries {
		if e.HasNotes {
			n++
		}
	}
	return n
}

// WriteTo writes each entry as "Slide {n}:\n{text}\n\n".
func (r Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range r.Entries {
		n, err := bw.WriteString("Slide " + strconv.Itoa(e.Slide) + ":\n" + e.Text + "\n\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// String returns the serialized report.
func (r Report) String() string {
	var b strings.Builder
	r.WriteTo(&b)
	return b.String()
}
