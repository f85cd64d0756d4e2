// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Maximophone/notion-md-converter/internal/catalog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent page transfers",
	Long: `History lists recent fetches and uploads recorded in the local
transfer catalog, newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "maximum rows to list (default from config)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	transfers, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(transfers) == 0 {
		fmt.Println("No transfers recorded.")
		return nil
	}

	for _, t := range transfers {
		title := t.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %-6s  %-8s  %s  %s\n",
			t.Timestamp.Format("2006-01-02 15:04"), t.Direction, t.Format, title, t.Path)
	}
	return nil
}
