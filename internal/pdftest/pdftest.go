// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small uncompressed PDFs for tests. Each line of
// text is drawn with a standard Type1 font reference, WinAnsi encoding and
// fixed glyph widths, which is enough for text-layer readers to recover
// fonts, sizes and positions.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// Line is one string drawn at (X, Y) in the given font and size.
type Line struct {
	Font string
	Size float64
	X, Y float64
	Text string
}

// glyphWidth is the advance of every glyph, in thousandths of an em.
const glyphWidth = 500

// Build returns a PDF with one page per element of pages.
func Build(pages [][]Line) []byte {
	fonts := map[string]int{}
	var fontNames []string
	for _, lines := range pages {
		for _, l := range lines {
			if _, ok := fonts[l.Font]; !ok {
				fonts[l.Font] = len(fontNames)
				fontNames = append(fontNames, l.Font)
			}
		}
	}

	// 1 catalog, 2 page tree, then fonts, then a page and content per page.
	firstFont := 3
	firstPage := firstFont + len(fontNames)
	total := firstPage + 2*len(pages) - 1

	var buf bytes.Buffer
	offsets := make([]int, total+1)
	obj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))

	widths := strings.TrimSpace(strings.Repeat(fmt.Sprintf("%d ", glyphWidth), 126-32+1))
	var resources strings.Builder
	resources.WriteString("<< /Font << ")
	for i, name := range fontNames {
		obj(firstFont+i, fmt.Sprintf(
			"<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
			name, widths))
		fmt.Fprintf(&resources, "/F%d %d 0 R ", i+1, firstFont+i)
	}
	resources.WriteString(">> >>")

	for i, lines := range pages {
		var content strings.Builder
		for _, l := range lines {
			fmt.Fprintf(&content, "BT /F%d %g Tf %g %g Td (%s) Tj ET\n",
				fonts[l.Font]+1, l.Size, l.X, l.Y, escape(l.Text))
		}
		pageNum := firstPage + 2*i
		obj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources %s /Contents %d 0 R >>",
			resources.String(), pageNum+1))
		stream := content.String()
		obj(pageNum+1, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)
	return buf.Bytes()
}

// Write builds a PDF from pages and writes it to path.
func Write(t testing.TB, path string, pages [][]Line) {
	t.Helper()
	if err := os.WriteFile(path, Build(pages), 0o644); err != nil {
		t.Fatal(err)
	}
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
