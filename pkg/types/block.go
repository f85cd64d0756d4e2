// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for Notion documents: the
// block tree, rich text spans, page properties, and configuration. The JSON
// shape of these types is the payload wire format: what the Notion creation
// API accepts, free of server-only fields.
package types

// BlockType identifies one of the supported block kinds.
type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockToggle           BlockType = "toggle"
	BlockQuote            BlockType = "quote"
	BlockDivider          BlockType = "divider"
	BlockCode             BlockType = "code"
	BlockTable            BlockType = "table"
	BlockTableRow         BlockType = "table_row"
	BlockCallout          BlockType = "callout"
	BlockLinkToPage       BlockType = "link_to_page"
	BlockColumnList       BlockType = "column_list"
	BlockColumn           BlockType = "column"
)

// Block is one node of the document tree: a type tag, exactly one populated
// per-type payload, and ordered children. Children live at the top level for
// every kind except column_list, column, and table, whose children stay
// nested under the type payload (the creation API rejects them elsewhere).
type Block struct {
	Type BlockType `json:"type" yaml:"type"`

	Paragraph        *TextContent    `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Heading1         *HeadingContent `json:"heading_1,omitempty" yaml:"heading_1,omitempty"`
	Heading2         *HeadingContent `json:"heading_2,omitempty" yaml:"heading_2,omitempty"`
	Heading3         *HeadingContent `json:"heading_3,omitempty" yaml:"heading_3,omitempty"`
	BulletedListItem *TextContent    `json:"bulleted_list_item,omitempty" yaml:"bulleted_list_item,omitempty"`
	NumberedListItem *TextContent    `json:"numbered_list_item,omitempty" yaml:"numbered_list_item,omitempty"`
	ToDo             *ToDoContent    `json:"to_do,omitempty" yaml:"to_do,omitempty"`
	Toggle           *TextContent    `json:"toggle,omitempty" yaml:"toggle,omitempty"`
	Quote            *TextContent    `json:"quote,omitempty" yaml:"quote,omitempty"`
	Divider          *struct{}       `json:"divider,omitempty" yaml:"divider,omitempty"`
	Code             *CodeContent    `json:"code,omitempty" yaml:"code,omitempty"`
	Table            *TableContent   `json:"table,omitempty" yaml:"table,omitempty"`
	TableRow         *TableRow       `json:"table_row,omitempty" yaml:"table_row,omitempty"`
	Callout          *CalloutContent `json:"callout,omitempty" yaml:"callout,omitempty"`
	LinkToPage       *LinkToPage     `json:"link_to_page,omitempty" yaml:"link_to_page,omitempty"`
	ColumnList       *ColumnList     `json:"column_list,omitempty" yaml:"column_list,omitempty"`
	Column           *Column         `json:"column,omitempty" yaml:"column,omitempty"`

	// Children holds nested blocks for every kind that nests at the top
	// level (list continuation, toggle disclosure, callout body).
	Children []*Block `json:"children,omitempty" yaml:"children,omitempty"`
}

// TextContent is the payload shared by paragraph, list items, toggle, and quote.
type TextContent struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
}

// HeadingContent is the payload of heading_1..3.
type HeadingContent struct {
	RichText     []RichText `json:"rich_text" yaml:"rich_text"`
	IsToggleable bool       `json:"is_toggleable,omitempty" yaml:"is_toggleable,omitempty"`
}

// ToDoContent is the payload of a to_do block.
type ToDoContent struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Checked  bool       `json:"checked" yaml:"checked"`
}

// CodeContent is the payload of a code block. RichText is a single plain
// span after sanitizing; Language defaults to "plain text".
type CodeContent struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Language string     `json:"language,omitempty" yaml:"language,omitempty"`
}

// TableContent is the payload of a table block. Rows are table_row children
// nested here, not on the Block, matching the creation API.
type TableContent struct {
	TableWidth      int      `json:"table_width" yaml:"table_width"`
	HasColumnHeader bool     `json:"has_column_header" yaml:"has_column_header"`
	HasRowHeader    bool     `json:"has_row_header" yaml:"has_row_header"`
	Children        []*Block `json:"children,omitempty" yaml:"children,omitempty"`
}

// TableRow is the payload of a table_row block: one rich-text sequence per cell.
type TableRow struct {
	Cells [][]RichText `json:"cells" yaml:"cells"`
}

// CalloutContent is the payload of a callout block.
type CalloutContent struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Icon is a callout icon. Only emoji icons survive conversion.
type Icon struct {
	Type  string `json:"type" yaml:"type"`
	Emoji string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
}

// EmojiIcon builds an emoji icon.
func EmojiIcon(emoji string) *Icon {
	return &Icon{Type: "emoji", Emoji: emoji}
}

// LinkToPage is the payload of a link_to_page block.
type LinkToPage struct {
	Type   string `json:"type" yaml:"type"`
	PageID string `json:"page_id,omitempty" yaml:"page_id,omitempty"`
}

// ColumnList is the payload of a column_list block. Its column children must
// stay nested here; the creation API rejects them at the top level.
type ColumnList struct {
	Children []*Block `json:"children,omitempty" yaml:"children,omitempty"`
}

// Column is the payload of a column block, with the same nesting rule as ColumnList.
type Column struct {
	Children []*Block `json:"children,omitempty" yaml:"children,omitempty"`
}

// NestsChildrenUnderType reports whether children of this kind belong under
// the type payload rather than the Block's top-level Children. This is the
// single place the column/table exceptions live.
func (t BlockType) NestsChildrenUnderType() bool {
	switch t {
	case BlockColumnList, BlockColumn, BlockTable:
		return true
	}
	return false
}

// NestedChildren returns the children of a block regardless of where its
// kind stores them.
func (b *Block) NestedChildren() []*Block {
	switch {
	case b.ColumnList != nil:
		return b.ColumnList.Children
	case b.Column != nil:
		return b.Column.Children
	case b.Table != nil:
		return b.Table.Children
	}
	return b.Children
}

// SetNestedChildren stores children in the location the block's kind requires.
func (b *Block) SetNestedChildren(children []*Block) {
	switch {
	case b.ColumnList != nil:
		b.ColumnList.Children = children
	case b.Column != nil:
		b.Column.Children = children
	case b.Table != nil:
		b.Table.Children = children
	default:
		b.Children = children
	}
}

// RichTextContent returns the primary rich-text sequence of a text-bearing
// block, or nil for kinds without one.
func (b *Block) RichTextContent() []RichText {
	switch {
	case b.Paragraph != nil:
		return b.Paragraph.RichText
	case b.Heading1 != nil:
		return b.Heading1.RichText
	case b.Heading2 != nil:
		return b.Heading2.RichText
	case b.Heading3 != nil:
		return b.Heading3.RichText
	case b.BulletedListItem != nil:
		return b.BulletedListItem.RichText
	case b.NumberedListItem != nil:
		return b.NumberedListItem.RichText
	case b.ToDo != nil:
		return b.ToDo.RichText
	case b.Toggle != nil:
		return b.Toggle.RichText
	case b.Quote != nil:
		return b.Quote.RichText
	case b.Code != nil:
		return b.Code.RichText
	case b.Callout != nil:
		return b.Callout.RichText
	}
	return nil
}
