// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Rule matches text blocks by font, size band and leading text. Every
// configured constraint must hold. A rule with no constraints at all
// matches nothing.
type Rule struct {
	// Prefixes lists case-sensitive leading strings; the block must start
	// with one of them when the list is non-empty.
	Prefixes []string `mapstructure:"prefixes" yaml:"prefixes,omitempty"`

	// Font is a case-sensitive substring of the block font name.
	Font string `mapstructure:"font" yaml:"font,omitempty"`

	// MinSize and MaxSize bound the font size inclusively. Zero leaves the
	// bound open.
	MinSize float64 `mapstructure:"min_size" yaml:"min_size,omitempty"`
	MaxSize float64 `mapstructure:"max_size" yaml:"max_size,omitempty"`
}

// SessionPolicy decides which record a session block belongs to.
type SessionPolicy string

const (
	// SessionCurrent attaches a session block to the open record when that
	// record has no session yet; otherwise the session waits for the next
	// record.
	SessionCurrent SessionPolicy = "current"

	// SessionNext treats a session block as a heading for the records that
	// follow it, until the next session block.
	SessionNext SessionPolicy = "next"
)

// ClassifierConfig holds the block classification heuristics.
type ClassifierConfig struct {
	Name        Rule `mapstructure:"name" yaml:"name"`
	Affiliation Rule `mapstructure:"affiliation" yaml:"affiliation"`
	Title       Rule `mapstructure:"title" yaml:"title"`
	Abstract    Rule `mapstructure:"abstract" yaml:"abstract"`

	// Session lists alternative rules; a block matching any of them is a
	// session heading. Their prefixes also keep headings out of abstracts.
	Session []Rule `mapstructure:"session" yaml:"session"`

	// Keywords are leading words that disqualify a block from being a
	// name or a title (e.g. "Session", "Abstract").
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`

	// AbstractKeyword marks a block as abstract text regardless of its
	// font. The keyword itself is stripped.
	AbstractKeyword string `mapstructure:"abstract_keyword" yaml:"abstract_keyword"`

	// AffiliationSeparator joins consecutive affiliation blocks.
	AffiliationSeparator string `mapstructure:"affiliation_separator" yaml:"affiliation_separator"`

	// SessionPolicy selects current or next record association.
	SessionPolicy SessionPolicy `mapstructure:"session_policy" yaml:"session_policy"`
}

// SheetConfig holds spreadsheet output settings.
type SheetConfig struct {
	// SheetName is the worksheet name used for .xlsx output.
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`

	// HeaderColor is the RGB hex fill of the header row (e.g. "749BFF").
	HeaderColor string `mapstructure:"header_color" yaml:"header_color"`

	// Format forces "xlsx" or "csv"; empty selects by output extension.
	Format string `mapstructure:"format" yaml:"format,omitempty"`

	// Dedupe skips rows whose session and name were already written.
	Dedupe bool `mapstructure:"dedupe" yaml:"dedupe"`
}

// LoggingConfig controls logger level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // "info", "debug", etc.
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// ExtractConfig groups everything one extraction run needs.
type ExtractConfig struct {
	// Input is the source document path (.pdf, or a .yaml block fixture).
	Input string `mapstructure:"input" yaml:"input"`

	// Output is the spreadsheet path. An existing file is overwritten.
	Output string `mapstructure:"output" yaml:"output"`

	// StartPage is the 1-based page where extraction begins.
	StartPage int `mapstructure:"start_page" yaml:"start_page"`

	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`
	Sheet      SheetConfig      `mapstructure:"sheet" yaml:"sheet"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}
