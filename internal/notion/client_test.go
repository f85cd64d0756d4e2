// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchBlocksPaginatesAndExpands(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path+"?cursor="+r.URL.Query().Get("start_cursor"))

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		switch {
		case r.URL.Path == "/blocks/root/children" && r.URL.Query().Get("start_cursor") == "":
			respondJSON(t, w, map[string]any{
				"results": []map[string]any{
					{"id": "a", "type": "toggle", "has_children": true},
					{"id": "b", "type": "paragraph", "has_children": false},
				},
				"has_more":    true,
				"next_cursor": "cur-2",
			})
		case r.URL.Path == "/blocks/root/children":
			respondJSON(t, w, map[string]any{
				"results":  []map[string]any{{"id": "c", "type": "divider"}},
				"has_more": false,
			})
		case r.URL.Path == "/blocks/a/children":
			respondJSON(t, w, map[string]any{
				"results":  []map[string]any{{"id": "a-1", "type": "paragraph"}},
				"has_more": false,
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(types.NotionConfig{BaseURL: server.URL, Token: "test-token"})

	blocks, err := client.FetchBlocks(context.Background(), "root")
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, "a", blocks[0]["id"])
	nested, ok := blocks[0]["children"].([]map[string]any)
	require.True(t, ok, "has_children subtree attaches under children")
	require.Len(t, nested, 1)
	assert.Equal(t, "a-1", nested[0]["id"])

	assert.Equal(t, "b", blocks[1]["id"])
	assert.Equal(t, "c", blocks[2]["id"])

	assert.Equal(t, []string{
		"/blocks/root/children?cursor=",
		"/blocks/a/children?cursor=",
		"/blocks/root/children?cursor=cur-2",
	}, calls)
}

func TestFetchPageAttachesChildren(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages/p-1":
			respondJSON(t, w, map[string]any{
				"id":         "p-1",
				"properties": map[string]any{},
			})
		case "/blocks/p-1/children":
			respondJSON(t, w, map[string]any{
				"results":  []map[string]any{{"id": "b-1", "type": "paragraph"}},
				"has_more": false,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(types.NotionConfig{BaseURL: server.URL, Token: "t"})

	page, err := client.FetchPage(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", page["id"])
	children, ok := page["children"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, children, 1)
}

func TestAPIErrorSurfacesCodeAndMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		respondJSON(t, w, map[string]any{
			"code":    "object_not_found",
			"message": "Could not find page",
		})
	}))
	defer server.Close()

	client := NewClient(types.NotionConfig{BaseURL: server.URL, Token: "t"})

	_, err := client.FetchPage(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object_not_found")
	assert.Contains(t, err.Error(), "Could not find page")
	assert.Contains(t, err.Error(), "404")
}

func TestCreatePageRequiresParent(t *testing.T) {
	client := NewClient(types.NotionConfig{Token: "t"})

	_, err := client.CreatePage(context.Background(), &types.Document{
		Properties: map[string]types.PropertyValue{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parent")
}

func TestCreatePageBatchesAndAppendsNested(t *testing.T) {
	mentionSpan := types.RichText{
		Type:    types.RichTextMention,
		Mention: &types.Mention{Type: types.MentionUser, User: &types.UserRef{ID: "u-1", Name: "Ada"}},
	}
	para := func(text string) *types.Block {
		return &types.Block{Type: types.BlockParagraph, Paragraph: &types.TextContent{
			RichText: []types.RichText{types.PlainText(text)},
		}}
	}

	first := para("one")
	first.Children = []*types.Block{
		{Type: types.BlockParagraph, Paragraph: &types.TextContent{RichText: []types.RichText{mentionSpan}}},
	}
	doc := &types.Document{
		Parent:     &types.Parent{PageID: "parent-1"},
		Properties: map[string]types.PropertyValue{},
		Children:   []*types.Block{first, para("two"), para("three")},
	}

	var calls []string
	bodies := map[string]json.RawMessage{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		calls = append(calls, key)
		if r.Method != http.MethodGet {
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			bodies[key] = data
		}

		switch key {
		case "POST /pages":
			respondJSON(t, w, map[string]any{"id": "page-1", "url": "https://notion.so/page-1"})
		case "PATCH /blocks/page-1/children":
			respondJSON(t, w, map[string]any{"results": []map[string]any{{"id": "b-3"}}})
		case "GET /blocks/page-1/children":
			respondJSON(t, w, map[string]any{
				"results": []map[string]any{
					{"id": "b-1", "type": "paragraph"},
					{"id": "b-2", "type": "paragraph"},
					{"id": "b-3", "type": "paragraph"},
				},
				"has_more": false,
			})
		case "PATCH /blocks/b-1/children":
			respondJSON(t, w, map[string]any{"results": []map[string]any{{"id": "c-1"}}})
		default:
			t.Errorf("unexpected request: %s", key)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(types.NotionConfig{BaseURL: server.URL, Token: "t", BlockBatchSize: 2})

	page, err := client.CreatePage(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "page-1", page.ID)

	assert.Equal(t, []string{
		"POST /pages",
		"PATCH /blocks/page-1/children",
		"GET /blocks/page-1/children",
		"PATCH /blocks/b-1/children",
	}, calls)

	// The create call carries only the first batch, as child-free shells.
	var createBody struct {
		Parent   map[string]any   `json:"parent"`
		Children []map[string]any `json:"children"`
	}
	require.NoError(t, json.Unmarshal(bodies["POST /pages"], &createBody))
	assert.Equal(t, "parent-1", createBody.Parent["page_id"])
	require.Len(t, createBody.Children, 2)
	_, hasChildren := createBody.Children[0]["children"]
	assert.False(t, hasChildren, "nested children append after creation")

	// The nested append carries the stripped mention: no display name.
	appendBody := string(bodies["PATCH /blocks/b-1/children"])
	assert.Contains(t, appendBody, `"u-1"`)
	assert.NotContains(t, appendBody, "_name")
	assert.NotContains(t, appendBody, "Ada")

	// The caller's document is untouched.
	assert.Len(t, doc.Children[0].Children, 1)
	assert.Equal(t, "Ada", doc.Children[0].Children[0].Paragraph.RichText[0].Mention.User.Name)
}
