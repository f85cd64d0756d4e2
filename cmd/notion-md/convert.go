// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Maximophone/notion-md-converter/internal/markdown"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert between snapshot, payload, and Markdown files offline",
	Long: `Convert maps a local file between the three representations with no
network access. The source format comes from --from (api, payload, or
markdown; default inferred from the input extension, JSON meaning
payload) and the target from the output extension: .json writes a
payload, .md writes Markdown.

Snapshots sanitize to payloads first, so "convert page_api.json page.md"
performs the full snapshot → payload → Markdown pipeline.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "input format: api, payload, or markdown (default: inferred from extension)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	inputPath, outputPath := args[0], args[1]

	if from == "" {
		switch strings.ToLower(filepath.Ext(inputPath)) {
		case ".md":
			from = "markdown"
		case ".json":
			from = "payload"
		default:
			return fmt.Errorf("cannot infer input format from %q: pass --from", inputPath)
		}
	}

	doc, err := loadDocument(inputPath, from)
	if err != nil {
		return err
	}

	var content []byte
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".md":
		content = []byte(markdown.Serialize(doc))
	case ".json":
		content, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
	default:
		return fmt.Errorf("unknown output extension on %q: want .md or .json", outputPath)
	}

	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("Converted %s -> %s\n", inputPath, outputPath)
	return nil
}
