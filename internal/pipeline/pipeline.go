// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one extraction: open the source document, classify
// its pages from the start page on, and write the records to a spreadsheet.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/program-extract/internal/classify"
	"github.com/pdiddy/program-extract/internal/document"
	"github.com/pdiddy/program-extract/internal/sheet"
	"github.com/pdiddy/program-extract/pkg/types"
)

// Summary counts what one run processed.
type Summary struct {
	Pages   int
	Blocks  int
	Skipped int
	Records int
}

// Run extracts records from cfg.Input and writes them to cfg.Output. The
// output is written once, after the whole document has been read, so a
// failure to open or read the input never touches it.
func Run(ctx context.Context, cfg types.ExtractConfig, log *logrus.Logger) (Summary, error) {
	records, sum, err := Extract(ctx, cfg, log)
	if err != nil {
		return sum, err
	}

	if err := sheet.Write(cfg.Output, records, cfg.Sheet); err != nil {
		return sum, err
	}

	log.WithFields(logrus.Fields{
		"output":  cfg.Output,
		"records": sum.Records,
		"pages":   sum.Pages,
		"skipped": sum.Skipped,
	}).Info("spreadsheet written")
	return sum, nil
}

// Extract reads and classifies cfg.Input and returns the completed records
// in document order, including the record still open at the end.
func Extract(ctx context.Context, cfg types.ExtractConfig, log *logrus.Logger) ([]types.Record, Summary, error) {
	var sum Summary

	src, err := document.Open(cfg.Input)
	if err != nil {
		return nil, sum, err
	}
	defer src.Close()

	log.WithFields(logrus.Fields{
		"input":      cfg.Input,
		"pages":      src.NumPages(),
		"start_page": cfg.StartPage,
	}).Info("document opened")
	if cfg.StartPage > src.NumPages() {
		log.WithField("start_page", cfg.StartPage).Warn("start page is past the end of the document")
	}

	c := classify.New(cfg.Classifier)
	c.Observe = func(b types.TextBlock, role types.Role) {
		if role != types.RoleNone {
			return
		}
		log.WithFields(logrus.Fields{
			"page": b.Page,
			"font": b.Font,
			"size": b.FontSize,
			"text": b.Text,
		}).Debug("block ignored")
	}

	var records []types.Record
	err = document.Walk(src, cfg.StartPage, func(p types.Page) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		done := c.Classify(p)
		records = append(records, done...)
		sum.Pages++
		sum.Blocks += len(p.Blocks)

		log.WithFields(logrus.Fields{
			"page":      p.Number,
			"blocks":    len(p.Blocks),
			"completed": len(done),
			"state":     c.State().String(),
		}).Debug("page classified")
		return nil
	})
	if err != nil {
		return nil, sum, err
	}

	records = append(records, c.Flush()...)
	sum.Records = len(records)
	sum.Skipped = c.Stats()[types.RoleNone]

	if sum.Skipped > 0 {
		log.WithField("blocks", sum.Skipped).Info("blocks matched no rule and were ignored")
	}
	return records, sum, nil
}
