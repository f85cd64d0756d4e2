package types

import "time"

// HTTPConfig holds shared HTTP settings for the Notion API client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "notion-md/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// NotionConfig holds settings for the Notion API collaborator.
type NotionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Token authenticates against the Notion API. Usually loaded from
	// .secrets/notion-token or the NOTION_TOKEN environment variable.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// BaseURL is the API endpoint (default https://api.notion.com/v1).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Version is the Notion-Version header value (default 2022-06-28).
	Version string `json:"version" yaml:"version"`

	// MaxRetries is the number of retry attempts on rate-limited requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// BlockBatchSize bounds how many blocks one create/append request may
	// carry (the API limit is 100).
	BlockBatchSize int `json:"block_batch_size" yaml:"block_batch_size"`
}

// CatalogConfig holds settings for the local transfer-history catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database (default ".notion-md").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of history rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AppConfig groups all configuration for the notion-md CLI.
type AppConfig struct {
	Notion  NotionConfig  `json:"notion" yaml:"notion"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
