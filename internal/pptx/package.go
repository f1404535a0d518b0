// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	defaultMainPart = "ppt/presentation.xml"

	relOfficeDocument = "/officeDocument"
	relNotesSlide     = "/notesSlide"

	targetModeExternal = "External"
)

// opcPackage indexes the parts of a zip package by lower-cased part name;
// Open Packaging part names compare case-insensitively.
type opcPackage struct {
	parts map[string]*zip.File
}

func newPackage(zr *zip.Reader) *opcPackage {
	pkg := &opcPackage{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.parts[partKey(f.Name)] = f
	}
	return pkg
}

func partKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

func (pkg *opcPackage) has(part string) bool {
	_, ok := pkg.parts[partKey(part)]
	return ok
}

// mainPart returns the presentation part named by the package-level
// officeDocument relationship.
func (pkg *opcPackage) mainPart() (string, error) {
	rels, err := pkg.relationships("")
	if err != nil {
		return "", err
	}
	if rel, ok := rels.byType(relOfficeDocument); ok {
		part := rel.resolve("")
		if pkg.has(part) {
			return part, nil
		}
	}
	if pkg.has(defaultMainPart) {
		return defaultMainPart, nil
	}
	return "", fmt.Errorf("no presentation part in package")
}

// decode unmarshals the XML part into v.
func (pkg *opcPackage) decode(part string, v any) error {
	f, ok := pkg.parts[partKey(part)]
	if !ok {
		return fmt.Errorf("part %s missing from package", part)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", part, err)
	}
	defer rc.Close()

	if err := newDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", part, err)
	}
	return nil
}

// newDecoder returns an XML decoder for a package part. Parts may be UTF-8
// or UTF-16; a byte order mark switches the input to UTF-8 before the XML
// declaration is read, so a declared UTF-16 encoding is already satisfied.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(label) {
		case "utf-16", "utf-16le", "utf-16be":
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}
	return d
}

// relationships reads the relationship part belonging to source. The
// package-level relationships belong to source "". A missing relationship
// part means the source has no relationships.
func (pkg *opcPackage) relationships(source string) (relationshipSet, error) {
	relsPart := path.Join(path.Dir(source), "_rels", path.Base(source)+".rels")
	if source == "" {
		relsPart = "_rels/.rels"
	}
	if !pkg.has(relsPart) {
		return nil, nil
	}
	var doc relationshipsXML
	if err := pkg.decode(relsPart, &doc); err != nil {
		return nil, err
	}
	return relationshipSet(doc.Items), nil
}

// slideNotes returns the notes text of the slide part and whether the
// slide has a notes text frame.
func (pkg *opcPackage) slideNotes(slidePart string) (string, bool, error) {
	rels, err := pkg.relationships(slidePart)
	if err != nil {
		return "", false, err
	}
	rel, ok := rels.byType(relNotesSlide)
	if !ok {
		return "", false, nil
	}
	notesPart := rel.resolve(slidePart)

	var doc notesXML
	if err := pkg.decode(notesPart, &doc); err != nil {
		return "", false, err
	}
	body := doc.bodyText()
	if body == nil {
		return "", false, nil
	}
	return body.text(), true, nil
}

type relationshipSet []relationship

func (rs relationshipSet) byID(id string) (relationship, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return relationship{}, false
}

// byType returns the first internal relationship whose type URI ends with
// suffix. Matching on the suffix accepts both the transitional and the
// strict relationship namespaces.
func (rs relationshipSet) byType(suffix string) (relationship, bool) {
	for _, r := range rs {
		if r.TargetMode == targetModeExternal {
			continue
		}
		if strings.HasSuffix(r.Type, suffix) {
			return r, true
		}
	}
	return relationship{}, false
}

// resolve returns the part name the relationship targets, relative to the
// part that owns the relationship.
func (r relationship) resolve(source string) string {
	target := r.Target
	if u, err := url.PathUnescape(target); err == nil {
		target = u
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}
