// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maximophone/notion-md-converter/internal/catalog"
	"github.com/Maximophone/notion-md-converter/internal/markdown"
	"github.com/Maximophone/notion-md-converter/internal/notion"
	"github.com/Maximophone/notion-md-converter/internal/pageid"
	"github.com/Maximophone/notion-md-converter/internal/sanitize"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <page-url>",
	Short: "Fetch a Notion page and save it as snapshot, payload, or Markdown",
	Long: `Fetch downloads a page as a raw API snapshot (--format api), a clean
creation-safe payload (--format payload), or Markdown text
(--format markdown). Pagination and nested block subtrees are resolved
before conversion.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("format", "f", "payload", "output format: api, payload, or markdown")
	fetchCmd.Flags().StringP("output", "o", "", "output filename (default: <page-id>_<format>.<ext>)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	pageID := pageid.Extract(args[0])
	if pageID == "" {
		return fmt.Errorf("could not extract a page ID from %q", args[0])
	}

	cfg, err := notionConfig()
	if err != nil {
		return err
	}
	client := notion.NewClient(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Fetching page %s...\n", pageID)
	snapshot, err := client.FetchPage(ctx, pageID)
	if err != nil {
		return err
	}

	var content []byte
	ext := ".json"
	title := ""
	switch format {
	case "api":
		content, err = json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
	case "payload":
		doc := sanitize.Sanitize(snapshot)
		title = doc.Title()
		content, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
	case "markdown":
		doc := sanitize.Sanitize(snapshot)
		title = doc.Title()
		content = []byte(markdown.Serialize(doc))
		ext = ".md"
	default:
		return fmt.Errorf("unknown format %q: want api, payload, or markdown", format)
	}

	if output == "" {
		output = fmt.Sprintf("%s_%s%s", pageID, format, ext)
	}
	if err := os.WriteFile(output, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("Saved %s\n", output)

	recordTransfer(ctx, catalog.Transfer{
		PageID:    pageID,
		Title:     title,
		Direction: catalog.DirectionFetch,
		Format:    format,
		Path:      output,
	})
	return nil
}

// recordTransfer appends to the local transfer history. Failures warn but
// never fail the command.
func recordTransfer(ctx context.Context, t catalog.Transfer) {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: transfer history unavailable: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, t); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record transfer: %v\n", err)
	}
}
