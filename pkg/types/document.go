// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TextBlock is a run of text on one line that shares a single font and size.
// Blocks are produced by the document reader in content-stream order and
// consumed immediately by the classifier.
type TextBlock struct {
	// Text is the block content with surrounding whitespace trimmed.
	Text string `json:"text" yaml:"text"`

	// Font is the PostScript font name (e.g. "TimesNewRomanPS-BoldMT").
	Font string `json:"font,omitempty" yaml:"font,omitempty"`

	// FontSize is the rendered font size in points.
	FontSize float64 `json:"size" yaml:"size"`

	// X and Y locate the start of the block in page space (origin bottom-left).
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`

	// Page is the 1-based page number the block was read from.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}

// Page holds the text blocks of one document page.
type Page struct {
	// Number is the 1-based page number.
	Number int `json:"number" yaml:"number"`

	// Blocks lists the page's text blocks in rendering order.
	Blocks []TextBlock `json:"blocks" yaml:"blocks"`
}
