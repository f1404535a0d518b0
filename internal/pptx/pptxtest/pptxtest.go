// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptxtest builds minimal presentation packages for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkg  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsPres = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDraw = "http://schemas.openxmlformats.org/drawingml/2006/main"

	relTypeOfficeDocument = nsRel + "/officeDocument"
	relTypeSlide          = nsRel + "/slide"
	relTypeNotesSlide     = nsRel + "/notesSlide"
)

// Slide describes one slide of a deck.
type Slide struct {
	// Notes is the notes body text. Lines separated by "\n" become separate
	// paragraphs.
	Notes string

	// NoNotes omits the notes slide part entirely.
	NoNotes bool

	// NoBody writes a notes slide that has a slide image placeholder but
	// no body placeholder.
	NoBody bool
}

// Deck describes a presentation package.
type Deck struct {
	Slides []Slide

	// Reverse numbers slide parts in reverse display order, so part name
	// order and display order disagree.
	Reverse bool
}

// WithNotes returns slides whose notes are the given strings.
func WithNotes(notes ...string) []Slide {
	slides := make([]Slide, len(notes))
	for i, n := range notes {
		slides[i] = Slide{Notes: n}
	}
	return slides
}

// Bytes renders the deck as a .pptx zip package.
func (d Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"_rels/.rels": relsXML(rel{"rId1", relTypeOfficeDocument, "ppt/presentation.xml"}),
	}

	var sldIDs strings.Builder
	presRels := make([]rel, 0, len(d.Slides))
	for i, s := range d.Slides {
		partNum := i + 1
		if d.Reverse {
			partNum = len(d.Slides) - i
		}
		relID := fmt.Sprintf("rId%d", i+2)
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="%s"/>`, 256+i, relID)
		presRels = append(presRels, rel{relID, relTypeSlide, fmt.Sprintf("slides/slide%d.xml", partNum)})

		slidePart := fmt.Sprintf("ppt/slides/slide%d.xml", partNum)
		files[slidePart] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld><p:spTree/></p:cSld></p:sld>`, nsDraw, nsRel, nsPres)

		if s.NoNotes {
			continue
		}
		files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", partNum)] = relsXML(
			rel{"rId1", relTypeNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", partNum)},
		)
		files[fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", partNum)] = NotesXML(s.Notes, !s.NoBody)
	}

	files["ppt/presentation.xml"] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:sldIdLst>%s</p:sldIdLst></p:presentation>`,
		nsDraw, nsRel, nsPres, sldIDs.String())
	files["ppt/_rels/presentation.xml.rels"] = relsXML(presRels...)

	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the deck into dir/name and returns the file path.
func Write(t *testing.T, dir, name string, d Deck) string {
	t.Helper()
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// NotesXML renders a notes slide part. When withBody is false the part
// has only a slide image placeholder.
func NotesXML(notes string, withBody bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld><p:spTree>`, nsDraw, nsRel, nsPres)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr/><p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`)
	if withBody {
		b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`)
		for _, line := range strings.Split(notes, "\n") {
			b.WriteString(`<a:p>`)
			if line != "" {
				b.WriteString(`<a:r><a:rPr lang="en-US" dirty="0"/><a:t>`)
				xml.EscapeText(&b, []byte(line))
				b.WriteString(`</a:t></a:r>`)
			}
			b.WriteString(`<a:endParaRPr lang="en-US"/></a:p>`)
		}
		b.WriteString(`</p:txBody></p:sp>`)
	}
	b.WriteString(`</p:spTree></p:cSld></p:notes>`)
	return b.String()
}

type rel struct {
	id, typ, target string
}

func relsXML(rels ...rel) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">`, nsPkg)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, r.target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}
