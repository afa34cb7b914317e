// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet writes extracted records to a spreadsheet with a fixed
// header. Workbooks are produced with github.com/xuri/excelize/v2; CSV is
// available for plain-text consumers.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/program-extract/pkg/types"
)

// Format identifies the output file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const (
	defaultSheetName   = "Program"
	defaultHeaderColor = "749BFF"
)

// Header is the first row of every output file.
var Header = []string{
	"Name",
	"Affiliations",
	"Session name",
	"Persons Location",
	"Topic Title",
	"Presentation Abstract",
}

// ErrWrite matches every failure to produce the output file.
var ErrWrite = errors.New("cannot write spreadsheet")

// WriteError reports an output path that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing spreadsheet %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrWrite) hold for any WriteError.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// FormatFor returns the explicit format when set, otherwise the format
// implied by the extension of path. Unknown extensions default to xlsx.
func FormatFor(path, explicit string) (Format, error) {
	switch Format(strings.ToLower(explicit)) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case "":
	default:
		return "", fmt.Errorf("unknown output format %q (want xlsx or csv)", explicit)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV, nil
	}
	return FormatXLSX, nil
}

// Rows converts records to table rows in arrival order. With dedupe set, a
// record whose session and name were already seen is skipped.
func Rows(records []types.Record, dedupe bool) [][]string {
	rows := make([][]string, 0, len(records))
	seen := make(map[[2]string]bool)
	for _, r := range records {
		if dedupe {
			key := [2]string{r.Session, r.Name}
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		rows = append(rows, []string{r.Name, r.Affiliations, r.Session, r.Location, r.Title, r.Abstract})
	}
	return rows
}

// Write encodes records to path, replacing any existing file. The file is
// written under a temporary name in the same directory and renamed into
// place, so a failed run leaves an earlier file untouched.
func Write(path string, records []types.Record, cfg types.SheetConfig) error {
	format, err := FormatFor(path, cfg.Format)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".program-extract-*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}

	if err := Encode(tmp, format, Rows(records, cfg.Dedupe), cfg); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Encode writes the header and rows to w in the given format.
func Encode(w io.Writer, format Format, rows [][]string, cfg types.SheetConfig) error {
	switch format {
	case FormatCSV:
		return encodeCSV(w, rows)
	case FormatXLSX:
		return encodeXLSX(w, rows, cfg)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}
