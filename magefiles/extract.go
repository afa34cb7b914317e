//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

// Extract runs the extractor on book.pdf in the working directory, writing
// result.xlsx. Set PROGRAM_EXTRACT_* variables to override settings.
func Extract() error {
	ensureBuilt()
	return sh.RunV(filepath.Join(binDir, binName), "extract", "book.pdf", "-o", "result.xlsx")
}

// Blocks dumps the classified text blocks of book.pdf to blocks.yaml for
// tuning the font bands in program-extract.yaml.
func Blocks() error {
	ensureBuilt()
	out := "blocks.yaml"
	if err := sh.RunV(filepath.Join(binDir, binName), "blocks", "book.pdf", "--classify", "--out", out); err != nil {
		return err
	}
	_, err := os.Stat(out)
	return err
}
