// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads extraction settings through viper. Every constant the
// program used to embed (input and output names, start page, font bands)
// is a default here and can be overridden by a YAML file, environment
// variables (PROGRAM_EXTRACT_*) or command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/program-extract/pkg/types"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// PROGRAM_EXTRACT_START_PAGE or PROGRAM_EXTRACT_SHEET_DEDUPE.
const EnvPrefix = "PROGRAM_EXTRACT"

// Font names and sizes of the program book the defaults were tuned on.
const (
	fontAuthors  = "TimesNewRomanPS-ItalicMT"
	fontTitle    = "TimesNewRomanPS-BoldMT"
	fontSession  = "TimesNewRomanPS-BoldItal"
	sizeSession  = 9.5
	sizeAuthors  = 9.0
	sizeAffil    = 8.0
	sizeTitle    = 9.0
	sizeAbstract = 9.134002685546875

	// sizeSlack widens exact sizes into bands.
	sizeSlack = 0.05
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "book.pdf")
	v.SetDefault("output", "result.xlsx")
	v.SetDefault("start_page", 44)

	v.SetDefault("classifier.name.font", fontAuthors)
	v.SetDefault("classifier.name.min_size", sizeAuthors-sizeSlack)
	v.SetDefault("classifier.name.max_size", sizeAuthors+sizeSlack)

	v.SetDefault("classifier.affiliation.font", fontAuthors)
	v.SetDefault("classifier.affiliation.min_size", sizeAffil-sizeSlack)
	v.SetDefault("classifier.affiliation.max_size", sizeAffil+sizeSlack)

	v.SetDefault("classifier.title.font", fontTitle)
	v.SetDefault("classifier.title.min_size", sizeTitle-sizeSlack)
	v.SetDefault("classifier.title.max_size", sizeTitle+sizeSlack)

	v.SetDefault("classifier.abstract.min_size", sizeAbstract-0.001)
	v.SetDefault("classifier.abstract.max_size", sizeAbstract+0.001)

	v.SetDefault("classifier.session", []map[string]any{
		{"prefixes": []string{"Session"}},
		{"font": fontSession, "min_size": sizeSession - sizeSlack, "max_size": sizeSession + sizeSlack},
	})

	v.SetDefault("classifier.keywords", []string{"Session", "Abstract"})
	v.SetDefault("classifier.abstract_keyword", "Abstract")
	v.SetDefault("classifier.affiliation_separator", ", ")
	v.SetDefault("classifier.session_policy", string(types.SessionCurrent))

	v.SetDefault("sheet.sheet_name", "Program")
	v.SetDefault("sheet.header_color", "749BFF")
	v.SetDefault("sheet.format", "")
	v.SetDefault("sheet.dedupe", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// New returns a viper instance with defaults and environment binding.
// Config file discovery is left to the caller.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (types.ExtractConfig, error) {
	var cfg types.ExtractConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings an extraction run depends on.
func Validate(cfg types.ExtractConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Input) == "" {
		errs = append(errs, errors.New("input path cannot be empty"))
	}
	if strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, errors.New("output path cannot be empty"))
	}
	if cfg.StartPage < 1 {
		errs = append(errs, fmt.Errorf("start_page must be at least 1, got %d", cfg.StartPage))
	}

	switch cfg.Classifier.SessionPolicy {
	case types.SessionCurrent, types.SessionNext, "":
	default:
		errs = append(errs, fmt.Errorf("session_policy %q must be %q or %q",
			cfg.Classifier.SessionPolicy, types.SessionCurrent, types.SessionNext))
	}

	rules := []struct {
		name string
		rule types.Rule
	}{
		{"name", cfg.Classifier.Name},
		{"affiliation", cfg.Classifier.Affiliation},
		{"title", cfg.Classifier.Title},
		{"abstract", cfg.Classifier.Abstract},
	}
	for i, r := range cfg.Classifier.Session {
		rules = append(rules, struct {
			name string
			rule types.Rule
		}{fmt.Sprintf("session[%d]", i), r})
	}
	for _, r := range rules {
		if r.rule.MinSize < 0 || r.rule.MaxSize < 0 {
			errs = append(errs, fmt.Errorf("classifier.%s: sizes cannot be negative", r.name))
		}
		if r.rule.MaxSize > 0 && r.rule.MinSize > r.rule.MaxSize {
			errs = append(errs, fmt.Errorf("classifier.%s: min_size %g exceeds max_size %g",
				r.name, r.rule.MinSize, r.rule.MaxSize))
		}
	}
	if len(cfg.Classifier.Name.Prefixes) == 0 && cfg.Classifier.Name.Font == "" &&
		cfg.Classifier.Name.MinSize == 0 && cfg.Classifier.Name.MaxSize == 0 {
		errs = append(errs, errors.New("classifier.name: at least one constraint is required"))
	}

	switch strings.ToLower(cfg.Sheet.Format) {
	case "", "xlsx", "csv":
	default:
		errs = append(errs, fmt.Errorf("sheet.format %q must be xlsx or csv", cfg.Sheet.Format))
	}

	return errors.Join(errs...)
}
