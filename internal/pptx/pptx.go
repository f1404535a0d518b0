// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx reads slides and speaker notes from Office Open XML
// presentations (.pptx, .pptm, .potx, .ppsx).
//
// A presentation is a zip package. The main part (ppt/presentation.xml)
// lists slides in display order through p:sldIdLst; each entry is a
// relationship ID that resolves to a slide part. A slide may relate to one
// notes slide part, whose body placeholder holds the speaker notes.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Slide is one slide of a presentation with its optional speaker notes.
type Slide struct {
	// Number is the 1-based position of the slide in display order.
	Number int

	// Part is the package part name of the slide (e.g. "ppt/slides/slide3.xml").
	Part string

	// Notes is the plain text of the notes body. Only meaningful when
	// HasNotes is true.
	Notes string

	// HasNotes reports whether the slide has a notes slide with a body
	// placeholder. The text itself may still be empty.
	HasNotes bool
}

// Presentation is a parsed presentation. It holds no open file handles.
type Presentation struct {
	slides []Slide
}

// Open reads and parses the presentation at path.
func Open(path string) (*Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening presentation: %w", err)
	}
	return Parse(bytes.NewReader(data), int64(len(data)))
}

// Parse reads a presentation package from r.
func Parse(r io.ReaderAt, size int64) (*Presentation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a presentation package: %w", err)
	}
	pkg := newPackage(zr)

	mainPart, err := pkg.mainPart()
	if err != nil {
		return nil, err
	}

	var pres presentationXML
	if err := pkg.decode(mainPart, &pres); err != nil {
		return nil, err
	}
	rels, err := pkg.relationships(mainPart)
	if err != nil {
		return nil, err
	}

	p := &Presentation{slides: make([]Slide, 0, len(pres.SlideIDs))}
	for i, id := range pres.SlideIDs {
		rel, ok := rels.byID(id.RelID)
		if !ok {
			return nil, fmt.Errorf("slide %d: relationship %q not found in %s", i+1, id.RelID, mainPart)
		}
		slidePart := rel.resolve(mainPart)
		if !pkg.has(slidePart) {
			return nil, fmt.Errorf("slide %d: part %s missing from package", i+1, slidePart)
		}

		slide := Slide{Number: i + 1, Part: slidePart}
		slide.Notes, slide.HasNotes, err = pkg.slideNotes(slidePart)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		p.slides = append(p.slides, slide)
	}
	return p, nil
}

// Len returns the number of slides.
func (p *Presentation) Len() int {
	return len(p.slides)
}

// Slides returns the slides in display order.
func (p *Presentation) Slides() []Slide {
	out := make([]Slide, len(p.slides))
	copy(out, p.slides)
	return out
}

// NotesText returns the notes of the slide at 0-based position i and
// whether the slide has a notes text frame at all.
func (p *Presentation) NotesText(i int) (string, bool) {
	if i < 0 || i >= len(p.slides) {
		return "", false
	}
	s := p.slides[i]
	return s.Notes, s.HasNotes
}
