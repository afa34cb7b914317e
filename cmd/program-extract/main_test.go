// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/program-extract/internal/document"
	"github.com/pdiddy/program-extract/pkg/types"
)

const testConfigYAML = `
classifier:
  name: {font: "", min_size: 12, max_size: 0}
  affiliation: {font: "", min_size: 0, max_size: 8.5}
  title: {font: "", min_size: 10, max_size: 11.99}
  abstract: {min_size: 9, max_size: 9.99}
logging:
  level: error
`

// setup writes a config file and a two-page block fixture into a temp dir.
func setup(t *testing.T) (dir, configPath, input string) {
	t.Helper()
	dir = t.TempDir()

	configPath = filepath.Join(dir, "program-extract.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigYAML), 0o644))

	f := document.NewFixture("synthetic")
	f.AddPage(types.Page{Number: 1, Blocks: []types.TextBlock{
		{Text: "Dr. Jane Doe", FontSize: 14},
		{Text: "MIT", FontSize: 8},
		{Text: "Keynote Title", FontSize: 11},
	}}, nil)
	f.AddPage(types.Page{Number: 2, Blocks: []types.TextBlock{
		{Text: "This talk discusses...", FontSize: 9.5},
		{Text: "Session: Opening", FontSize: 9.5},
	}}, nil)

	var buf bytes.Buffer
	require.NoError(t, document.WriteFixture(&buf, f))
	input = filepath.Join(dir, "blocks.yaml")
	require.NoError(t, os.WriteFile(input, buf.Bytes(), 0o644))
	return dir, configPath, input
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "program-extract dev\n", out)
}

func TestExtractCommand(t *testing.T) {
	dir, configPath, input := setup(t)
	output := filepath.Join(dir, "talks.csv")

	out, err := execute(t, "extract", input, "--config", configPath, "--start-page", "1", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Extracted 1 record(s) from 2 page(s)")

	fh, err := os.Open(output)
	require.NoError(t, err)
	defer fh.Close()
	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Affiliations", "Session name", "Persons Location", "Topic Title", "Presentation Abstract"}, rows[0])
	assert.Equal(t, []string{"Dr. Jane Doe", "MIT", "Session: Opening", "", "Keynote Title", "This talk discusses..."}, rows[1])
}

func TestExtractCommand_MissingInput(t *testing.T) {
	dir, configPath, _ := setup(t)
	output := filepath.Join(dir, "result.xlsx")

	_, err := execute(t, "extract", filepath.Join(dir, "book.pdf"), "--config", configPath, "--start-page", "1", "-o", output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrDocumentOpen))

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBlocksCommand(t *testing.T) {
	_, configPath, input := setup(t)

	out, err := execute(t, "blocks", input, "--config", configPath, "--start-page", "2", "--classify")
	require.NoError(t, err)

	fixture, err := document.ReadFixture(bytes.NewBufferString(out))
	require.NoError(t, err)
	require.Len(t, fixture.Pages, 1)
	assert.Equal(t, 2, fixture.Pages[0].Number)
	require.Len(t, fixture.Pages[0].Blocks, 2)

	// Starting at page 2 there is no open record, so abstract text is ignored.
	assert.Equal(t, types.RoleNone, fixture.Pages[0].Blocks[0].Role)
	assert.Equal(t, types.RoleSession, fixture.Pages[0].Blocks[1].Role)
}

func TestBlocksCommand_OutFile(t *testing.T) {
	dir, configPath, input := setup(t)
	outPath := filepath.Join(dir, "dump.yaml")

	out, err := execute(t, "blocks", input, "--config", configPath, "--start-page", "1", "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, out, "nothing goes to stdout with --out")

	fh, err := os.Open(outPath)
	require.NoError(t, err)
	defer fh.Close()
	fixture, err := document.ReadFixture(fh)
	require.NoError(t, err)
	require.Len(t, fixture.Pages, 2)
	assert.Equal(t, "Dr. Jane Doe", fixture.Pages[0].Blocks[0].Text)
}

func TestWriteFixtureFile_Failures(t *testing.T) {
	fixture := document.NewFixture("synthetic")
	fixture.AddPage(types.Page{Number: 1, Blocks: []types.TextBlock{{Text: "Dr. Jane Doe", FontSize: 14}}}, nil)

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name: "missing directory",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "no", "dump.yaml")
			},
			wantErr: "creating",
		},
		{
			name: "device full",
			path: func(t *testing.T) string {
				if _, err := os.Stat("/dev/full"); err != nil {
					t.Skip("no /dev/full on this platform")
				}
				return "/dev/full"
			},
			wantErr: "/dev/full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeFixtureFile(tt.path(t), fixture)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
