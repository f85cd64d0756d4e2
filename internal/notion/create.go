// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

// CreatedPage identifies a newly created page.
type CreatedPage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// createPageRequest is the POST /pages body.
type createPageRequest struct {
	Parent     *types.Parent                  `json:"parent"`
	Properties map[string]types.PropertyValue `json:"properties"`
	Children   []*types.Block                 `json:"children,omitempty"`
}

// appendRequest is the PATCH /blocks/{id}/children body.
type appendRequest struct {
	Children []*types.Block `json:"children"`
}

type appendResponse struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

// CreatePage creates a new page from a Document, chunking children into
// batches under the per-request block limit. The page is created with the
// first batch; remaining batches append to the page, and nested children of
// created blocks append recursively afterwards; the creation API does not
// accept deeply nested payloads in one call.
func (c *Client) CreatePage(ctx context.Context, doc *types.Document) (*CreatedPage, error) {
	if doc.Parent == nil {
		return nil, fmt.Errorf("document has no parent: set a parent page or database ID")
	}

	children, err := cloneBlocks(doc.Children)
	if err != nil {
		return nil, fmt.Errorf("preparing blocks: %w", err)
	}
	stripDisplayNames(children)

	shells, pending := splitForCreation(children)

	batch := c.cfg.BlockBatchSize
	first := shells
	if len(first) > batch {
		first = first[:batch]
	}

	req := createPageRequest{
		Parent:     doc.Parent,
		Properties: doc.Properties,
		Children:   first,
	}
	var page CreatedPage
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}

	// Append the remaining top-level batches.
	for i := batch; i < len(shells); i += batch {
		end := min(i+batch, len(shells))
		var resp appendResponse
		if err := c.do(ctx, http.MethodPatch, "/blocks/"+page.ID+"/children", appendRequest{Children: shells[i:end]}, &resp); err != nil {
			return nil, fmt.Errorf("appending blocks %d-%d: %w", i, end, err)
		}
	}

	// The create response does not carry block IDs, so list the created
	// top-level blocks and attach each one's pending subtree.
	if hasPending(pending) {
		created, err := c.FetchBlocks(ctx, page.ID)
		if err != nil {
			return nil, fmt.Errorf("listing created blocks: %w", err)
		}
		for i, block := range created {
			if i >= len(pending) || len(pending[i]) == 0 {
				continue
			}
			id, _ := block["id"].(string)
			if err := c.appendChildren(ctx, id, pending[i]); err != nil {
				return nil, err
			}
		}
	}

	return &page, nil
}

// appendChildren appends a block sequence under a parent, recursing into
// each created block's pending subtree.
func (c *Client) appendChildren(ctx context.Context, parentID string, blocks []*types.Block) error {
	shells, pending := splitForCreation(blocks)

	batch := c.cfg.BlockBatchSize
	for i := 0; i < len(shells); i += batch {
		end := min(i+batch, len(shells))

		var resp appendResponse
		if err := c.do(ctx, http.MethodPatch, "/blocks/"+parentID+"/children", appendRequest{Children: shells[i:end]}, &resp); err != nil {
			return fmt.Errorf("appending children to block %s: %w", parentID, err)
		}

		for j, created := range resp.Results {
			idx := i + j
			if idx < len(pending) && len(pending[idx]) > 0 {
				if err := c.appendChildren(ctx, created.ID, pending[idx]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// splitForCreation separates each block from its children so the shells fit
// one request and the children append afterwards. Table, column_list, and
// column blocks keep their children nested; the API requires rows and
// columns inline at creation.
func splitForCreation(blocks []*types.Block) (shells []*types.Block, pending [][]*types.Block) {
	shells = make([]*types.Block, 0, len(blocks))
	pending = make([][]*types.Block, 0, len(blocks))

	for _, block := range blocks {
		if block == nil {
			continue
		}
		if block.Type.NestsChildrenUnderType() {
			shells = append(shells, block)
			pending = append(pending, nil)
			continue
		}
		children := block.Children
		block.Children = nil
		shells = append(shells, block)
		pending = append(pending, children)
	}
	return shells, pending
}

func hasPending(pending [][]*types.Block) bool {
	for _, p := range pending {
		if len(p) > 0 {
			return true
		}
	}
	return false
}

// cloneBlocks deep-copies a block tree so creation-side mutation never
// touches the caller's document.
func cloneBlocks(blocks []*types.Block) ([]*types.Block, error) {
	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, err
	}
	var out []*types.Block
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// stripDisplayNames clears display-only user names everywhere in a block
// tree; the creation API rejects them.
func stripDisplayNames(blocks []*types.Block) {
	for _, block := range blocks {
		if block == nil {
			continue
		}
		stripSpanNames(block.RichTextContent())
		if block.TableRow != nil {
			for _, cell := range block.TableRow.Cells {
				stripSpanNames(cell)
			}
		}
		stripDisplayNames(block.NestedChildren())
		if block.Type.NestsChildrenUnderType() {
			stripDisplayNames(block.Children)
		}
	}
}

func stripSpanNames(spans []types.RichText) {
	for i := range spans {
		if spans[i].Mention != nil && spans[i].Mention.User != nil {
			spans[i].Mention.User.Name = ""
		}
	}
}
