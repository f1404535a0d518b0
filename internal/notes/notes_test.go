// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/speaker-notes/internal/pptx/pptxtest"
	"github.com/pdiddy/speaker-notes/pkg/types"
)

// fakeSlide is one slide of a fakePresentation.
type fakeSlide struct {
	text string
	ok   bool
}

// fakePresentation implements Presentation from canned slides.
type fakePresentation []fakeSlide

func (p fakePresentation) Len() int { return len(p) }

func (p fakePresentation) NotesText(i int) (string, bool) {
	return p[i].text, p[i].ok
}

// fakeLoader implements Loader, returning a canned presentation or error.
type fakeLoader struct {
	pres  Presentation
	err   error
	calls int
}

func (f *fakeLoader) Load(path string) (Presentation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pres, nil
}

// fakeRecorder collects runs.
type fakeRecorder struct {
	runs []types.Run
	err  error
}

func (f *fakeRecorder) Record(_ context.Context, run types.Run) error {
	f.runs = append(f.runs, run)
	return f.err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuildReport(t *testing.T) {
	tests := []struct {
		name string
		pres fakePresentation
		want []Entry
	}{
		{
			name: "empty presentation",
			pres: fakePresentation{},
			want: []Entry{},
		},
		{
			name: "marker for absent and blank notes",
			pres: fakePresentation{
				{text: "Intro", ok: true},
				{},
				{text: "   ", ok: true},
				{text: "", ok: true},
				{text: "\t\n", ok: true},
			},
			want: []Entry{
				{Slide: 1, Text: "Intro", HasNotes: true},
				{Slide: 2, Text: NoNotesMarker},
				{Slide: 3, Text: NoNotesMarker},
				{Slide: 4, Text: NoNotesMarker},
				{Slide: 5, Text: NoNotesMarker},
			},
		},
		{
			name: "trims surrounding whitespace only",
			pres: fakePresentation{
				{text: "  line one\n\n  line two  \n", ok: true},
			},
			want: []Entry{
				{Slide: 1, Text: "line one\n\n  line two", HasNotes: true},
			},
		},
		{
			name: "literal marker text is kept as notes",
			pres: fakePresentation{
				{text: NoNotesMarker, ok: true},
			},
			want: []Entry{
				{Slide: 1, Text: NoNotesMarker, HasNotes: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildReport(tt.pres)
			assert.Equal(t, tt.want, r.Entries)
		})
	}
}

func TestBuildReport_Completeness(t *testing.T) {
	for _, n := range []int{1, 2, 17, 250} {
		t.Run(fmt.Sprintf("%d slides", n), func(t *testing.T) {
			pres := make(fakePresentation, n)
			for i := range pres {
				if i%3 == 0 {
					pres[i] = fakeSlide{text: fmt.Sprintf("notes %d", i), ok: true}
				}
			}

			r := BuildReport(pres)
			require.Len(t, r.Entries, n)
			for i, e := range r.Entries {
				assert.Equal(t, i+1, e.Slide)
			}

			out := r.String()
			assert.Equal(t, n, strings.Count(out, "Slide "))
			assert.True(t, strings.HasSuffix(out, "\n\n"))
		})
	}
}

func TestReport_WriteTo(t *testing.T) {
	r := BuildReport(fakePresentation{
		{text: "Intro", ok: true},
		{},
		{text: "   ", ok: true},
	})

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)

	want := "Slide 1:\nIntro\n\nSlide 2:\n(No notes)\n\nSlide 3:\n(No notes)\n\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, 1, r.WithNotes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReport_WriteToError(t *testing.T) {
	r := BuildReport(fakePresentation{{text: "x", ok: true}})
	_, err := r.WriteTo(failingWriter{})
	assert.EqualError(t, err, "disk full")
}

func TestExtract_ScenarioA(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "deck.pptx", pptxtest.Deck{Slides: []pptxtest.Slide{
		{Notes: "Intro"},
		{NoNotes: true},
		{Notes: "   "},
	}})
	dst := filepath.Join(dir, "notes.txt")

	var out bytes.Buffer
	x := &Extractor{Out: &out}
	res, err := x.Extract(src, dst)
	require.NoError(t, err)

	assert.Equal(t, "Slide 1:\nIntro\n\nSlide 2:\n(No notes)\n\nSlide 3:\n(No notes)\n\n", readFile(t, dst))
	assert.Equal(t, Result{Source: src, Destination: dst, Slides: 3, WithNotes: 1}, res)
	assert.Equal(t, "Speaker notes saved to: "+dst+"\n", out.String())
}

func TestExtract_EmptyPresentation(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "empty.pptx", pptxtest.Deck{})
	dst := filepath.Join(dir, "notes.txt")

	x := &Extractor{Out: &bytes.Buffer{}}
	res, err := x.Extract(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
	assert.Equal(t, 0, res.Slides)
}

func TestExtract_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "notes.txt")

	var out bytes.Buffer
	x := &Extractor{Out: &out}
	_, err := x.Extract(filepath.Join(dir, "missing.pptx"), dst)

	var srcErr *SourceReadError
	require.ErrorAs(t, err, &srcErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading presentation")

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "destination must not be created")
	assert.Empty(t, out.String())
}

func TestExtract_SourceFailureLeavesDestination(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(dst, []byte("previous report"), 0o644))

	x := &Extractor{Loader: &fakeLoader{err: errors.New("not a zip")}, Out: &bytes.Buffer{}}
	_, err := x.Extract("deck.pptx", dst)

	var srcErr *SourceReadError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "deck.pptx", srcErr.Path)
	assert.Equal(t, "previous report", readFile(t, dst))
}

func TestExtract_MissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "deck.pptx", pptxtest.Deck{Slides: pptxtest.WithNotes("a")})
	dst := filepath.Join(dir, "no-such-dir", "notes.txt")

	loader := &fakeLoader{pres: fakePresentation{{text: "a", ok: true}}}
	var out bytes.Buffer
	x := &Extractor{Loader: loader, Out: &out}
	_, err := x.Extract(src, dst)

	var dstErr *DestinationWriteError
	require.ErrorAs(t, err, &dstErr)
	assert.Equal(t, dst, dstErr.Path)
	assert.Contains(t, err.Error(), "writing notes to")
	assert.Equal(t, 1, loader.calls, "source is read before the destination is opened")

	_, statErr := os.Stat(filepath.Dir(dst))
	assert.True(t, os.IsNotExist(statErr), "parent directory must not be created")
	assert.Empty(t, out.String())
}

func TestExtract_OverwritesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "deck.pptx", pptxtest.Deck{Slides: pptxtest.WithNotes("one", "", "three")})
	dst := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(dst, []byte(strings.Repeat("unrelated content\n", 100)), 0o644))

	x := &Extractor{Out: &bytes.Buffer{}}
	_, err := x.Extract(src, dst)
	require.NoError(t, err)
	first := readFile(t, dst)

	_, err = x.Extract(src, dst)
	require.NoError(t, err)
	second := readFile(t, dst)

	assert.Equal(t, "Slide 1:\none\n\nSlide 2:\n(No notes)\n\nSlide 3:\nthree\n\n", first)
	assert.Equal(t, first, second)
}

func TestExtract_DefaultDestination(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "deck.pptx", pptxtest.Deck{Slides: pptxtest.WithNotes("hi")})
	t.Chdir(dir)

	var out bytes.Buffer
	x := &Extractor{Out: &out}
	res, err := x.Extract(src, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultDestination, res.Destination)
	assert.Equal(t, "Slide 1:\nhi\n\n", readFile(t, filepath.Join(dir, DefaultDestination)))
	assert.Equal(t, "Speaker notes saved to: speaker_notes.txt\n", out.String())
}

func TestExtract_RecordsRuns(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "deck.pptx", pptxtest.Deck{Slides: pptxtest.WithNotes("a", "")})
	rec := &fakeRecorder{}
	x := &Extractor{Out: &bytes.Buffer{}, Recorder: rec}

	_, err := x.Extract(src, filepath.Join(dir, "ok.txt"))
	require.NoError(t, err)
	_, err = x.Extract(filepath.Join(dir, "missing.pptx"), filepath.Join(dir, "x.txt"))
	require.Error(t, err)
	_, err = x.Extract(src, filepath.Join(dir, "nope", "x.txt"))
	require.Error(t, err)

	require.Len(t, rec.runs, 3)
	assert.Equal(t, types.RunOK, rec.runs[0].Status)
	assert.Equal(t, 2, rec.runs[0].Slides)
	assert.Equal(t, 1, rec.runs[0].WithNotes)
	assert.Empty(t, rec.runs[0].Error)

	assert.Equal(t, types.RunSourceError, rec.runs[1].Status)
	assert.Contains(t, rec.runs[1].Error, "reading presentation")

	assert.Equal(t, types.RunDestinationError, rec.runs[2].Status)
	assert.Equal(t, 2, rec.runs[2].Slides)
}

func TestExtract_RecorderFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	src := pptxtest.Write(t, dir, "deck.pptx", pptxtest.Deck{Slides: pptxtest.WithNotes("a")})

	var logBuf bytes.Buffer
	x := &Extractor{
		Out:      &bytes.Buffer{},
		Log:      zerolog.New(&logBuf),
		Recorder: &fakeRecorder{err: errors.New("database is locked")},
	}
	_, err := x.Extract(src, filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)

	assert.Contains(t, logBuf.String(), "could not record run history")
	assert.Contains(t, logBuf.String(), "database is locked")
}
