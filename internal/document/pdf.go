// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/program-extract/pkg/types"
)

// pdfSource reads pages through github.com/ledongthuc/pdf.
type pdfSource struct {
	f *os.File
	r *pdf.Reader
}

// openPDF opens path with the PDF reader. The library panics on some
// malformed files, so panics are reported as open failures. The file is
// closed on every failure path.
func openPDF(path string) (src Source, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, &OpenError{Path: path, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
		if err != nil {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &pdfSource{f: f, r: r}, nil
}

func (s *pdfSource) NumPages() int {
	return s.r.NumPage()
}

func (s *pdfSource) Page(n int) (page types.Page, err error) {
	if n < 1 || n > s.r.NumPage() {
		return types.Page{}, &PageError{Page: n, Err: ErrPageRange}
	}

	defer func() {
		if r := recover(); r != nil {
			page, err = types.Page{}, &PageError{Page: n, Err: fmt.Errorf("decoding content: %v", r)}
		}
	}()

	p := s.r.Page(n)
	if p.V.IsNull() {
		return types.Page{Number: n}, nil
	}
	return types.Page{
		Number: n,
		Blocks: groupGlyphs(n, p.Content().Text),
	}, nil
}

func (s *pdfSource) Close() error {
	return s.f.Close()
}
