// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notion is the thin collaborator around the Notion HTTP API: a
// snapshot fetch with pagination and has_children expansion resolved, and a
// page-creation operation that chunks blocks under the per-request limit.
// The conversion core never imports this package; it only defines the
// shapes passed across the boundary.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Maximophone/notion-md-converter/internal/httputil"
	"github.com/Maximophone/notion-md-converter/pkg/types"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	defaultVersion = "2022-06-28"
	defaultTimeout = 30 * time.Second

	// apiBlockLimit is the Notion per-request block count limit.
	apiBlockLimit = 100
)

// Client talks to the Notion API.
type Client struct {
	http *http.Client
	cfg  types.NotionConfig
}

// NewClient builds a client from config, applying defaults for unset fields.
func NewClient(cfg types.NotionConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BlockBatchSize <= 0 || cfg.BlockBatchSize > apiBlockLimit {
		cfg.BlockBatchSize = apiBlockLimit
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// apiError is the error body the API returns for non-2xx responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do executes one API call and decodes the response into out. Rate-limited
// requests retry with backoff before surfacing.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", c.cfg.Version)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("notion API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("notion API %s %s: HTTP %d %s: %s", method, path, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("notion API %s %s: HTTP %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing notion response: %w", err)
	}
	return nil
}

// childrenPage is one page of a block-children listing.
type childrenPage struct {
	Results    []map[string]any `json:"results"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor"`
}

// FetchBlocks returns the full block tree under a page or block, with
// pagination resolved and each has_children subtree recursively expanded
// into the block's children field.
func (c *Client) FetchBlocks(ctx context.Context, blockID string) ([]map[string]any, error) {
	var collected []map[string]any
	cursor := ""

	for {
		params := url.Values{"page_size": {"100"}}
		if cursor != "" {
			params.Set("start_cursor", cursor)
		}
		path := fmt.Sprintf("/blocks/%s/children?%s", blockID, params.Encode())

		var page childrenPage
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		for _, block := range page.Results {
			if hasChildren, _ := block["has_children"].(bool); hasChildren {
				id, _ := block["id"].(string)
				children, err := c.FetchBlocks(ctx, id)
				if err != nil {
					return nil, err
				}
				block["children"] = children
			}
			collected = append(collected, block)
		}

		if !page.HasMore {
			return collected, nil
		}
		cursor = page.NextCursor
	}
}

// FetchPage returns a full page snapshot: the page object with its block
// tree attached under "children".
func (c *Client) FetchPage(ctx context.Context, pageID string) (map[string]any, error) {
	var page map[string]any
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return nil, err
	}
	blocks, err := c.FetchBlocks(ctx, pageID)
	if err != nil {
		return nil, err
	}
	page["children"] = blocks
	return page, nil
}
