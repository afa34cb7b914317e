// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document reads source documents page by page and turns positioned
// glyphs into styled text blocks for classification.
//
// PDFs are decoded with github.com/ledongthuc/pdf. YAML block fixtures
// (written by the blocks command) are accepted as an alternative source so
// extraction heuristics can be tuned without re-reading the PDF.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/program-extract/pkg/types"
)

// ErrDocumentOpen matches every failure to open a source document.
var ErrDocumentOpen = errors.New("cannot open document")

// ErrPageRange reports a page number outside the document.
var ErrPageRange = errors.New("page out of range")

// OpenError reports a missing, unreadable or corrupt source document.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening document %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDocumentOpen) hold for any OpenError.
func (e *OpenError) Is(target error) bool { return target == ErrDocumentOpen }

// PageError reports a page that could not be decoded.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("reading page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// Source is an opened document. Pages are numbered from 1.
type Source interface {
	// NumPages returns the number of the last page.
	NumPages() int

	// Page returns the text blocks of page n.
	Page(n int) (types.Page, error)

	// Close releases the underlying file.
	Close() error
}

// Open opens path as a PDF, or as a block fixture when the extension is
// .yaml or .yml. Any failure is returned as an *OpenError.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &OpenError{Path: path, Err: errors.New("is a directory")}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return openFixture(path)
	default:
		return openPDF(path)
	}
}

// Walk calls fn for every page of src from start to the last page
// inclusive. A start past the last page calls fn zero times. Walk stops at
// the first error from src or fn.
func Walk(src Source, start int, fn func(types.Page) error) error {
	if start < 1 {
		return fmt.Errorf("start page %d: must be at least 1", start)
	}
	for n := start; n <= src.NumPages(); n++ {
		page, err := src.Page(n)
		if err != nil {
			return err
		}
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}
