// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize strips server-only fields from raw API snapshots and
// normalizes them into the typed payload model. It is total over any
// decoded JSON input: unknown block kinds, mention types, and property
// types are dropped or degraded, never errors, and the caller's snapshot
// structures are never mutated.
package sanitize

import (
	"github.com/Maximophone/notion-md-converter/pkg/types"
)

// groupingWrappers are snapshot-only envelope kinds that group consecutive
// list items. They are never valid creation input; their children splice
// directly into the parent sequence.
var groupingWrappers = map[string]bool{
	"bulleted_list": true,
	"numbered_list": true,
}

// Sanitize converts a raw snapshot, either a bare block sequence or a full
// page object as decoded JSON, into a clean Document payload. Identity and
// audit fields disappear by construction: only creation-safe fields are read
// into the typed model.
func Sanitize(snapshot any) *types.Document {
	doc := &types.Document{
		Properties: map[string]types.PropertyValue{},
		Children:   []*types.Block{},
	}

	switch v := snapshot.(type) {
	case []any:
		doc.Children = cleanBlocks(v)
	case []map[string]any:
		raw := make([]any, len(v))
		for i, m := range v {
			raw[i] = m
		}
		doc.Children = cleanBlocks(raw)
	case map[string]any:
		if props, ok := v["properties"].(map[string]any); ok {
			doc.Properties = cleanProperties(props)
		}
		if children, ok := v["children"].([]any); ok {
			doc.Children = cleanBlocks(children)
		}
	}
	return doc
}

// cleanBlocks cleans a raw block sequence, splicing grouping wrappers into
// the surrounding sequence and dropping blocks that cannot be mapped.
func cleanBlocks(raw []any) []*types.Block {
	blocks := make([]*types.Block, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := m["type"].(string)
		if groupingWrappers[kind] {
			blocks = append(blocks, cleanBlocks(rawChildren(m, kind))...)
			continue
		}
		if b := cleanBlock(m); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// rawChildren collects a block's raw children from both places snapshots
// put them: the top-level children field and the kind payload. Snapshots are
// inconsistent about this; downstream the typed model has one home per kind.
func rawChildren(m map[string]any, kind string) []any {
	var children []any
	if top, ok := m["children"].([]any); ok {
		children = append(children, top...)
	}
	if payload, ok := m[kind].(map[string]any); ok {
		if nested, ok := payload["children"].([]any); ok {
			children = append(children, nested...)
		}
	}
	return children
}

func cleanBlock(m map[string]any) *types.Block {
	kind, _ := m["type"].(string)
	payload, _ := m[kind].(map[string]any)

	block := &types.Block{Type: types.BlockType(kind)}
	switch block.Type {
	case types.BlockParagraph:
		block.Paragraph = &types.TextContent{RichText: cleanRichText(payload["rich_text"])}
	case types.BlockHeading1:
		block.Heading1 = cleanHeading(payload)
	case types.BlockHeading2:
		block.Heading2 = cleanHeading(payload)
	case types.BlockHeading3:
		block.Heading3 = cleanHeading(payload)
	case types.BlockBulletedListItem:
		block.BulletedListItem = &types.TextContent{RichText: cleanRichText(payload["rich_text"])}
	case types.BlockNumberedListItem:
		block.NumberedListItem = &types.TextContent{RichText: cleanRichText(payload["rich_text"])}
	case types.BlockToDo:
		checked, _ := payload["checked"].(bool)
		block.ToDo = &types.ToDoContent{RichText: cleanRichText(payload["rich_text"]), Checked: checked}
	case types.BlockToggle:
		block.Toggle = &types.TextContent{RichText: cleanRichText(payload["rich_text"])}
	case types.BlockQuote:
		block.Quote = &types.TextContent{RichText: cleanRichText(payload["rich_text"])}
	case types.BlockDivider:
		block.Divider = &struct{}{}
	case types.BlockCode:
		block.Code = cleanCode(payload)
	case types.BlockTable:
		block.Table = cleanTable(m, payload)
		return block // rows live under the payload; nothing to hoist
	case types.BlockTableRow:
		block.TableRow = cleanTableRow(payload)
	case types.BlockCallout:
		block.Callout = cleanCallout(payload)
	case types.BlockLinkToPage:
		pageID, _ := payload["page_id"].(string)
		if pageID == "" {
			return nil
		}
		block.LinkToPage = &types.LinkToPage{Type: "page_id", PageID: pageID}
	case types.BlockColumnList:
		block.ColumnList = &types.ColumnList{Children: cleanBlocks(rawChildren(m, kind))}
		return block
	case types.BlockColumn:
		block.Column = &types.Column{Children: cleanBlocks(rawChildren(m, kind))}
		return block
	default:
		return nil
	}

	// All remaining kinds hoist children to the uniform top-level field.
	if children := cleanBlocks(rawChildren(m, kind)); len(children) > 0 {
		block.Children = children
	}
	return block
}

func cleanHeading(payload map[string]any) *types.HeadingContent {
	toggleable, _ := payload["is_toggleable"].(bool)
	return &types.HeadingContent{
		RichText:     cleanRichText(payload["rich_text"]),
		IsToggleable: toggleable,
	}
}

// cleanCode rebuilds a code block's spans as one plain span concatenating
// the rendered plain text of each original span. The snapshot's styled spans
// silently lose line breaks upstream; the plain-text projection is captured
// before marker stripping, so it keeps every newline.
func cleanCode(payload map[string]any) *types.CodeContent {
	var text string
	if spans, ok := payload["rich_text"].([]any); ok {
		for _, item := range spans {
			text += plainProjection(item)
		}
	}
	language, _ := payload["language"].(string)
	return &types.CodeContent{
		RichText: []types.RichText{types.PlainText(text)},
		Language: language,
	}
}

// plainProjection reads a span's rendered plain text, falling back to its
// literal content when the snapshot carries no projection (as a payload fed
// back through sanitize does).
func plainProjection(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	if plain, ok := m["plain_text"].(string); ok {
		return plain
	}
	if text, ok := m["text"].(map[string]any); ok {
		content, _ := text["content"].(string)
		return content
	}
	if eq, ok := m["equation"].(map[string]any); ok {
		expr, _ := eq["expression"].(string)
		return expr
	}
	return ""
}

func cleanTable(m, payload map[string]any) *types.TableContent {
	width, _ := asInt(payload["table_width"])
	colHeader, _ := payload["has_column_header"].(bool)
	rowHeader, _ := payload["has_row_header"].(bool)
	return &types.TableContent{
		TableWidth:      width,
		HasColumnHeader: colHeader,
		HasRowHeader:    rowHeader,
		Children:        cleanBlocks(rawChildren(m, "table")),
	}
}

func cleanTableRow(payload map[string]any) *types.TableRow {
	row := &types.TableRow{Cells: [][]types.RichText{}}
	cells, _ := payload["cells"].([]any)
	for _, cell := range cells {
		spans := cleanRichText(cell)
		if spans == nil {
			spans = []types.RichText{}
		}
		row.Cells = append(row.Cells, spans)
	}
	return row
}

func cleanCallout(payload map[string]any) *types.CalloutContent {
	content := &types.CalloutContent{RichText: cleanRichText(payload["rich_text"])}
	if icon, ok := payload["icon"].(map[string]any); ok {
		if t, _ := icon["type"].(string); t == "emoji" {
			emoji, _ := icon["emoji"].(string)
			content.Icon = types.EmojiIcon(emoji)
		}
	}
	return content
}

// cleanRichText narrows a raw span array to creation-safe spans. Text spans
// that reduce to empty content with no link are dropped; they fail
// validation downstream.
func cleanRichText(raw any) []types.RichText {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	spans := make([]types.RichText, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if span, ok := cleanSpan(m); ok {
			spans = append(spans, span)
		}
	}
	if len(spans) == 0 {
		return nil
	}
	return spans
}

func cleanSpan(m map[string]any) (types.RichText, bool) {
	kind, _ := m["type"].(string)
	annotations := cleanAnnotations(m["annotations"])

	switch kind {
	case "equation":
		eq, _ := m["equation"].(map[string]any)
		expr, _ := eq["expression"].(string)
		return types.RichText{
			Type:        types.RichTextEquation,
			Equation:    &types.Equation{Expression: expr},
			Annotations: annotations,
		}, true

	case "mention":
		mention, ok := cleanMention(m["mention"])
		if !ok {
			return types.RichText{}, false
		}
		return types.RichText{
			Type:        types.RichTextMention,
			Mention:     mention,
			Annotations: annotations,
		}, true

	case "text":
		text, _ := m["text"].(map[string]any)
		content, _ := text["content"].(string)
		span := types.RichText{
			Type:        types.RichTextText,
			Text:        &types.Text{Content: content},
			Annotations: annotations,
		}
		if link, ok := text["link"].(map[string]any); ok {
			if url, _ := link["url"].(string); url != "" {
				span.Text.Link = &types.Link{URL: url}
			}
		}
		if span.Text.Content == "" && span.Text.Link == nil {
			return types.RichText{}, false
		}
		return span, true
	}

	// Unknown span kinds degrade to their plain-text projection.
	if content := plainProjection(m); content != "" {
		span := types.PlainText(content)
		span.Annotations = annotations
		return span, true
	}
	return types.RichText{}, false
}

// cleanAnnotations narrows raw annotations to the five style flags. Code
// suppresses every other flag; all-false annotations collapse to nil.
func cleanAnnotations(raw any) *types.Annotations {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	a := types.Annotations{}
	a.Bold, _ = m["bold"].(bool)
	a.Italic, _ = m["italic"].(bool)
	a.Strikethrough, _ = m["strikethrough"].(bool)
	a.Underline, _ = m["underline"].(bool)
	a.Code, _ = m["code"].(bool)
	if a.Code {
		a = types.Annotations{Code: true}
	}
	if a.IsZero() {
		return nil
	}
	return &a
}

// cleanMention narrows a mention to the minimal creation-safe shape per
// type: user, page, and database keep only their ID (plus a display-only
// name for users); dates pass through. Anything else is dropped.
func cleanMention(raw any) (*types.Mention, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	kind, _ := m["type"].(string)

	switch types.MentionType(kind) {
	case types.MentionUser:
		user, _ := m["user"].(map[string]any)
		id, _ := user["id"].(string)
		if id == "" {
			return nil, false
		}
		name, _ := user["name"].(string)
		if name == "" {
			name, _ = user["_name"].(string)
		}
		return &types.Mention{Type: types.MentionUser, User: &types.UserRef{ID: id, Name: name}}, true

	case types.MentionPage:
		page, _ := m["page"].(map[string]any)
		id, _ := page["id"].(string)
		if id == "" {
			return nil, false
		}
		return &types.Mention{Type: types.MentionPage, Page: &types.PageRef{ID: id}}, true

	case types.MentionDatabase:
		db, _ := m["database"].(map[string]any)
		id, _ := db["id"].(string)
		if id == "" {
			return nil, false
		}
		return &types.Mention{Type: types.MentionDatabase, Database: &types.DatabaseRef{ID: id}}, true

	case types.MentionDate:
		date, _ := m["date"].(map[string]any)
		start, _ := date["start"].(string)
		if start == "" {
			return nil, false
		}
		end, _ := date["end"].(string)
		tz, _ := date["time_zone"].(string)
		return &types.Mention{Type: types.MentionDate, Date: &types.DateValue{Start: start, End: end, TimeZone: tz}}, true
	}
	return nil, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
