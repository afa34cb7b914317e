// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/program-extract/pkg/types"
)

const (
	// lineTolerance is the baseline drift, as a fraction of font size,
	// still treated as the same line.
	lineTolerance = 0.5

	// spaceGap is the horizontal gap, as a fraction of font size, that
	// separates two words. Half of a quarter-em space.
	spaceGap = 0.125

	// sizeEpsilon absorbs float noise when comparing font sizes.
	sizeEpsilon = 0.01
)

// run accumulates consecutive glyphs that share a style and a line.
type run struct {
	font string
	size float64
	x, y float64
	end  float64
	b    strings.Builder
}

func newRun(g pdf.Text) *run {
	r := &run{font: g.Font, size: g.FontSize, x: g.X, y: g.Y}
	r.b.WriteString(g.S)
	r.end = g.X + g.W
	return r
}

// continues reports whether g extends the run: same font and size, same
// baseline, and not jumping back to the left of the run.
func (r *run) continues(g pdf.Text) bool {
	if g.Font != r.font || math.Abs(g.FontSize-r.size) > sizeEpsilon {
		return false
	}
	if math.Abs(g.Y-r.y) > r.size*lineTolerance {
		return false
	}
	return g.X >= r.end-r.size
}

func (r *run) add(g pdf.Text) {
	if g.X-r.end > r.size*spaceGap {
		r.b.WriteByte(' ')
	}
	r.b.WriteString(g.S)
	if end := g.X + g.W; end > r.end {
		r.end = end
	}
}

func (r *run) block(page int) types.TextBlock {
	return types.TextBlock{
		Text:     strings.Join(strings.Fields(r.b.String()), " "),
		Font:     r.font,
		FontSize: r.size,
		X:        r.x,
		Y:        r.y,
		Page:     page,
	}
}

// groupGlyphs merges the glyphs of one page, in content-stream order, into
// styled single-line text blocks. Blocks with no visible text are dropped.
func groupGlyphs(page int, glyphs []pdf.Text) []types.TextBlock {
	var blocks []types.TextBlock
	var cur *run

	flush := func() {
		if cur == nil {
			return
		}
		if b := cur.block(page); b.Text != "" {
			blocks = append(blocks, b)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if cur != nil && cur.continues(g) {
			cur.add(g)
			continue
		}
		flush()
		cur = newRun(g)
	}
	flush()

	return blocks
}
