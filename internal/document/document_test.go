// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/program-extract/internal/pdftest"
	"github.com/pdiddy/program-extract/pkg/types"
)

func TestOpen_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "book.pdf")
			},
		},
		{
			name: "directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "not a pdf",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "book.pdf")
				require.NoError(t, os.WriteFile(path, []byte("plain text, no header"), 0o644))
				return path
			},
		},
		{
			name: "malformed fixture",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "blocks.yaml")
				require.NoError(t, os.WriteFile(path, []byte("pages: [[[\n"), 0o644))
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			src, err := Open(path)
			require.Error(t, err)
			assert.Nil(t, src)
			assert.True(t, errors.Is(err, ErrDocumentOpen), "error %v should match ErrDocumentOpen", err)

			var openErr *OpenError
			require.True(t, errors.As(err, &openErr))
			assert.Equal(t, path, openErr.Path)
		})
	}
}

func openFiles(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	return len(entries)
}

func TestOpen_MalformedPDFReleasesFile(t *testing.T) {
	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("no /proc/self/fd on this platform")
	}

	valid := pdftest.Build([][]pdftest.Line{
		{{Font: "Helvetica", Size: 9, X: 72, Y: 700, Text: "Dr. Jane Doe"}},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{name: "header only", data: []byte("%PDF-1.4\n")},
		{name: "truncated", data: valid[:len(valid)/2]},
		{name: "broken xref", data: bytes.Replace(valid, []byte("xref"), []byte("xxxx"), 1)},
		{name: "garbage trailer", data: append(bytes.Clone(valid[:len(valid)-40]), []byte("startxref\n99999\n%%EOF\n")...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "book.pdf")
			require.NoError(t, os.WriteFile(path, tt.data, 0o644))

			before := openFiles(t)
			for i := 0; i < 10; i++ {
				src, err := Open(path)
				require.Error(t, err)
				assert.Nil(t, src)
				assert.True(t, errors.Is(err, ErrDocumentOpen))
			}
			assert.LessOrEqual(t, openFiles(t), before, "failed opens must not leave files open")
		})
	}
}

func TestOpen_MissingFileUnwrapsNotExist(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpen_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.pdf")
	pdftest.Write(t, path, [][]pdftest.Line{
		{
			{Font: "Helvetica-Bold", Size: 14, X: 72, Y: 700, Text: "Dr. Jane Doe"},
			{Font: "Helvetica", Size: 8, X: 72, Y: 680, Text: "MIT"},
		},
		{
			{Font: "Helvetica", Size: 9.5, X: 72, Y: 700, Text: "This talk discusses..."},
		},
	})

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 2, src.NumPages())

	page, err := src.Page(1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	require.Len(t, page.Blocks, 2)

	assert.Equal(t, "Dr. Jane Doe", page.Blocks[0].Text)
	assert.Equal(t, "Helvetica-Bold", page.Blocks[0].Font)
	assert.InDelta(t, 14, page.Blocks[0].FontSize, 0.001)
	assert.InDelta(t, 72, page.Blocks[0].X, 0.001)
	assert.InDelta(t, 700, page.Blocks[0].Y, 0.001)
	assert.Equal(t, 1, page.Blocks[0].Page)

	assert.Equal(t, "MIT", page.Blocks[1].Text)
	assert.InDelta(t, 8, page.Blocks[1].FontSize, 0.001)

	page, err = src.Page(2)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, "This talk discusses...", page.Blocks[0].Text)
	assert.Equal(t, 2, page.Blocks[0].Page)

	_, err = src.Page(3)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestWalk(t *testing.T) {
	f := NewFixture("test")
	for n := 1; n <= 3; n++ {
		f.AddPage(types.Page{Number: n}, nil)
	}
	src := newFixtureSource(f)

	tests := []struct {
		name    string
		start   int
		want    []int
		wantErr bool
	}{
		{name: "from first page", start: 1, want: []int{1, 2, 3}},
		{name: "from middle", start: 2, want: []int{2, 3}},
		{name: "last page only", start: 3, want: []int{3}},
		{name: "past the end", start: 5, want: nil},
		{name: "zero start rejected", start: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			err := Walk(src, tt.start, func(p types.Page) error {
				got = append(got, p.Number)
				return nil
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalk_StopsOnCallbackError(t *testing.T) {
	f := NewFixture("test")
	for n := 1; n <= 3; n++ {
		f.AddPage(types.Page{Number: n}, nil)
	}
	stop := errors.New("stop")

	var visited int
	err := Walk(newFixtureSource(f), 1, func(p types.Page) error {
		visited++
		if p.Number == 2 {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}
