// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/program-extract/internal/classify"
	"github.com/pdiddy/program-extract/internal/document"
	"github.com/pdiddy/program-extract/pkg/types"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks [input]",
	Short: "Dump the text blocks of a document as YAML",
	Long: `Blocks prints every text block from the start page on, with its font,
size and position, as a YAML fixture. With --classify each block is
annotated with the role the classifier gave it, which shows which font
bands to put in the config file.

The output can be edited and passed back to extract as its input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	annotate, _ := cmd.Flags().GetBool("classify")
	outPath, _ := cmd.Flags().GetString("out")

	src, err := document.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	fixture := document.NewFixture(cfg.Input)

	var roles []types.Role
	var c *classify.Classifier
	if annotate {
		c = classify.New(cfg.Classifier)
		c.Observe = func(_ types.TextBlock, r types.Role) {
			roles = append(roles, r)
		}
	}

	err = document.Walk(src, cfg.StartPage, func(p types.Page) error {
		roles = roles[:0]
		if c != nil {
			c.Classify(p)
		}
		fixture.AddPage(p, roles)
		return nil
	})
	if err != nil {
		return err
	}

	if outPath == "" {
		if err := document.WriteFixture(cmd.OutOrStdout(), fixture); err != nil {
			return err
		}
	} else if err := writeFixtureFile(outPath, fixture); err != nil {
		return err
	}

	log.WithField("pages", len(fixture.Pages)).Info("blocks written")
	return nil
}

// writeFixtureFile writes fixture to path. A failed close is reported, since
// it can mean the YAML never reached the disk.
func writeFixtureFile(path string, fixture *document.Fixture) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := document.WriteFixture(f, fixture); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func init() {
	blocksCmd.Flags().Int("start-page", 44, "1-based page to start from")
	blocksCmd.Flags().Bool("classify", false, "annotate each block with its classified role")
	blocksCmd.Flags().String("out", "", "write YAML to this file instead of stdout")

	rootCmd.AddCommand(blocksCmd)
}
