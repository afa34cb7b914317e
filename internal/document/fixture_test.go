// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/program-extract/pkg/types"
)

func TestFixture_WriteThenOpen(t *testing.T) {
	f := NewFixture("book.pdf")
	f.AddPage(types.Page{Number: 44, Blocks: []types.TextBlock{
		{Text: "Dr. Jane Doe", Font: "TimesNewRomanPS-ItalicMT", FontSize: 9, X: 50, Y: 700},
		{Text: "MIT", Font: "TimesNewRomanPS-ItalicMT", FontSize: 8, X: 50, Y: 690},
	}}, []types.Role{types.RoleName, types.RoleAffiliation})
	f.AddPage(types.Page{Number: 46, Blocks: []types.TextBlock{
		{Text: "continued abstract", FontSize: 9.134},
	}}, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteFixture(&buf, f))
	assert.Contains(t, buf.String(), "source: book.pdf")
	assert.Contains(t, buf.String(), "role: affiliation")

	path := filepath.Join(t.TempDir(), "blocks.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 46, src.NumPages())

	page, err := src.Page(44)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 2)
	assert.Equal(t, types.TextBlock{
		Text: "Dr. Jane Doe", Font: "TimesNewRomanPS-ItalicMT", FontSize: 9, X: 50, Y: 700, Page: 44,
	}, page.Blocks[0])

	// Pages absent from the fixture read as empty.
	page, err = src.Page(45)
	require.NoError(t, err)
	assert.Equal(t, 45, page.Number)
	assert.Empty(t, page.Blocks)

	page, err = src.Page(46)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)
	assert.InDelta(t, 9.134, page.Blocks[0].FontSize, 1e-9)

	_, err = src.Page(47)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestReadFixture_RejectsBadPageNumber(t *testing.T) {
	_, err := ReadFixture(bytes.NewBufferString("pages:\n  - number: 0\n    blocks: []\n"))
	assert.Error(t, err)
}
