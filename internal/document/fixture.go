// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/program-extract/pkg/types"
)

// Fixture is the on-disk YAML form of a document's text blocks. The blocks
// command writes it; Open reads it back as a Source.
type Fixture struct {
	Source string        `yaml:"source,omitempty"`
	Pages  []FixturePage `yaml:"pages"`
}

// FixturePage stores the blocks of one page.
type FixturePage struct {
	Number int            `yaml:"number"`
	Blocks []FixtureBlock `yaml:"blocks"`
}

// FixtureBlock is a TextBlock plus an optional classification note.
type FixtureBlock struct {
	Text string     `yaml:"text"`
	Font string     `yaml:"font,omitempty"`
	Size float64    `yaml:"size"`
	X    float64    `yaml:"x,omitempty"`
	Y    float64    `yaml:"y,omitempty"`
	Role types.Role `yaml:"role,omitempty"`
}

// NewFixture returns an empty fixture describing source.
func NewFixture(source string) *Fixture {
	return &Fixture{Source: source}
}

// AddPage appends p. roles, when non-nil, annotates p.Blocks index by index.
func (f *Fixture) AddPage(p types.Page, roles []types.Role) {
	fp := FixturePage{Number: p.Number, Blocks: make([]FixtureBlock, len(p.Blocks))}
	for i, b := range p.Blocks {
		fp.Blocks[i] = FixtureBlock{
			Text: b.Text,
			Font: b.Font,
			Size: b.FontSize,
			X:    b.X,
			Y:    b.Y,
		}
		if i < len(roles) {
			fp.Blocks[i].Role = roles[i]
		}
	}
	f.Pages = append(f.Pages, fp)
}

// WriteFixture encodes f as YAML to w.
func WriteFixture(w io.Writer, f *Fixture) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}
	return enc.Close()
}

// ReadFixture decodes a YAML fixture from r.
func ReadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	for _, p := range f.Pages {
		if p.Number < 1 {
			return nil, fmt.Errorf("parsing fixture: page number %d must be at least 1", p.Number)
		}
	}
	return &f, nil
}

// fixtureSource serves pages from a decoded Fixture. Page numbers missing
// from the fixture read as empty pages.
type fixtureSource struct {
	pages    map[int]FixturePage
	numPages int
}

func openFixture(path string) (Source, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer fh.Close()

	f, err := ReadFixture(fh)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return newFixtureSource(f), nil
}

func newFixtureSource(f *Fixture) *fixtureSource {
	s := &fixtureSource{pages: make(map[int]FixturePage, len(f.Pages))}
	for _, p := range f.Pages {
		s.pages[p.Number] = p
		if p.Number > s.numPages {
			s.numPages = p.Number
		}
	}
	return s
}

func (s *fixtureSource) NumPages() int { return s.numPages }

func (s *fixtureSource) Page(n int) (types.Page, error) {
	if n < 1 || n > s.numPages {
		return types.Page{}, &PageError{Page: n, Err: ErrPageRange}
	}
	fp := s.pages[n]
	page := types.Page{Number: n, Blocks: make([]types.TextBlock, 0, len(fp.Blocks))}
	for _, b := range fp.Blocks {
		page.Blocks = append(page.Blocks, types.TextBlock{
			Text:     b.Text,
			Font:     b.Font,
			FontSize: b.Size,
			X:        b.X,
			Y:        b.Y,
			Page:     n,
		})
	}
	return page, nil
}

func (s *fixtureSource) Close() error { return nil }
