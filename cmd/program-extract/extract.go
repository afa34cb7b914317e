// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/program-extract/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [input]",
	Short: "Extract program records from a PDF into a spreadsheet",
	Long: `Extract reads the input document from the start page to the end, groups
its text into styled blocks, classifies each block as a name, affiliation,
session, title or abstract, and writes one row per presenter.

A record starts at each name block and collects the blocks that follow it,
across page breaks, until the next name. The output file is replaced only
after the whole document has been read. The input may also be a YAML block
fixture written by the blocks command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	sum, err := pipeline.Run(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d record(s) from %d page(s) into %s (%d block(s) ignored)\n",
		sum.Records, sum.Pages, cfg.Output, sum.Skipped)
	return nil
}

func init() {
	extractCmd.Flags().StringP("output", "o", "result.xlsx", "output spreadsheet (.xlsx or .csv)")
	extractCmd.Flags().Int("start-page", 44, "1-based page to start extraction from")
	extractCmd.Flags().String("session-policy", "current", "session association: current or next")
	extractCmd.Flags().Bool("dedupe", false, "skip rows repeating an earlier session and name")
	extractCmd.Flags().String("format", "", "force output format: xlsx or csv")

	rootCmd.AddCommand(extractCmd)
}
