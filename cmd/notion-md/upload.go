// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Maximophone/notion-md-converter/internal/catalog"
	"github.com/Maximophone/notion-md-converter/internal/markdown"
	"github.com/Maximophone/notion-md-converter/internal/notion"
	"github.com/Maximophone/notion-md-converter/internal/pageid"
	"github.com/Maximophone/notion-md-converter/internal/sanitize"
	"github.com/Maximophone/notion-md-converter/pkg/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file> <parent-url>",
	Short: "Create a Notion page from a Markdown or JSON file",
	Long: `Upload creates a new page under a parent page or database from a
Markdown file, a payload JSON file, or a raw API snapshot JSON file.
The input type is inferred from the extension (.md or .json) unless
--type says otherwise; snapshots are sanitized before creation.`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringP("type", "T", "", "input type: markdown, payload, or api (default: inferred from extension)")
	uploadCmd.Flags().StringP("parent-type", "p", "page", "parent container type: page or database")
	uploadCmd.Flags().StringP("title", "t", "", "title override for the new page")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	inputType, _ := cmd.Flags().GetString("type")
	parentType, _ := cmd.Flags().GetString("parent-type")
	title, _ := cmd.Flags().GetString("title")

	inputPath := args[0]
	parentID := pageid.Extract(args[1])
	if parentID == "" {
		return fmt.Errorf("could not extract a page ID from %q", args[1])
	}

	if inputType == "" {
		switch strings.ToLower(filepath.Ext(inputPath)) {
		case ".md":
			inputType = "markdown"
		case ".json":
			inputType = "payload"
		default:
			return fmt.Errorf("cannot infer input type from %q: pass --type", inputPath)
		}
	}

	doc, err := loadDocument(inputPath, inputType)
	if err != nil {
		return err
	}

	switch parentType {
	case "page":
		doc.Parent = &types.Parent{PageID: parentID}
	case "database":
		doc.Parent = &types.Parent{DatabaseID: parentID}
	default:
		return fmt.Errorf("unknown parent type %q: want page or database", parentType)
	}

	if title != "" {
		if doc.Properties == nil {
			doc.Properties = map[string]types.PropertyValue{}
		}
		doc.Properties["title"] = types.PropertyValue{Title: []types.RichText{types.PlainText(title)}}
	}

	cfg, err := notionConfig()
	if err != nil {
		return err
	}
	client := notion.NewClient(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Uploading %s as %s...\n", inputPath, inputType)
	page, err := client.CreatePage(ctx, doc)
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}

	fmt.Printf("Created page %s\n", page.ID)
	if page.URL != "" {
		fmt.Printf("URL: %s\n", page.URL)
	}

	recordTransfer(ctx, catalog.Transfer{
		PageID:    pageid.Extract(page.ID),
		Title:     doc.Title(),
		Direction: catalog.DirectionUpload,
		Format:    inputType,
		Path:      inputPath,
	})
	return nil
}

// loadDocument reads an input file into a Document according to its type.
func loadDocument(path, inputType string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch inputType {
	case "markdown":
		return markdown.Parse(string(data)), nil
	case "payload":
		var doc types.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing payload %s: %w", path, err)
		}
		return &doc, nil
	case "api":
		var snapshot any
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
		}
		return sanitize.Sanitize(snapshot), nil
	}
	return nil, fmt.Errorf("unknown input type %q: want markdown, payload, or api", inputType)
}
