// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notion-md CLI: fetch Notion pages
// as snapshots, payloads, or Markdown; upload files back as new pages; and
// convert between the three representations offline.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Maximophone/notion-md-converter/internal/secrets"
	"github.com/Maximophone/notion-md-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the notion-md CLI.
var rootCmd = &cobra.Command{
	Use:   "notion-md",
	Short: "Convert Notion pages to and from Markdown",
	Long: `notion-md moves documents between three representations: raw API
snapshots (the block tree with server metadata), clean payloads (the same
tree stripped to creation-safe fields), and Markdown text.

fetch downloads a page in any of the three formats, upload creates a new
page from a Markdown or JSON file, and convert maps between formats
offline with no network access.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notion-md.yaml or ~/.config/notion-md/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notion-md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notion-md"))
		}
	}

	viper.SetDefault("notion.timeout", "30s")
	viper.SetDefault("notion.user_agent", "notion-md/"+version)
	viper.SetDefault("notion.max_retries", 5)
	viper.SetDefault("notion.block_batch_size", 100)
	viper.SetDefault("catalog.dir", ".notion-md")
	viper.SetDefault("catalog.max_results", 20)

	viper.SetEnvPrefix("NOTION_MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// notionConfig resolves the API client configuration from config file,
// environment, and loaded secrets.
func notionConfig() (types.NotionConfig, error) {
	cfg := types.NotionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("notion.timeout"),
			UserAgent: viper.GetString("notion.user_agent"),
		},
		BaseURL:        viper.GetString("notion.base_url"),
		Version:        viper.GetString("notion.version"),
		MaxRetries:     viper.GetInt("notion.max_retries"),
		BlockBatchSize: viper.GetInt("notion.block_batch_size"),
	}
	cfg.Token = secrets.Token(loadedSecrets)
	if cfg.Token == "" {
		return cfg, fmt.Errorf("no Notion token: set %s or create .secrets/%s", secrets.TokenEnv, secrets.TokenKey)
	}
	return cfg, nil
}

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		Dir:        viper.GetString("catalog.dir"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

// commandTimeout bounds one CLI invocation's API traffic.
const commandTimeout = 10 * time.Minute

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
