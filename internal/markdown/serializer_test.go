// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

func docOf(blocks ...*types.Block) *types.Document {
	return &types.Document{Properties: map[string]types.PropertyValue{}, Children: blocks}
}

func TestSerializeBasicBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block *types.Block
		want  string
	}{
		{
			name:  "paragraph",
			block: paraBlock("hello"),
			want:  "hello",
		},
		{
			name:  "heading",
			block: &types.Block{Type: types.BlockHeading2, Heading2: &types.HeadingContent{RichText: spansOf("Section")}},
			want:  "## Section",
		},
		{
			name:  "toggle heading",
			block: &types.Block{Type: types.BlockHeading1, Heading1: &types.HeadingContent{RichText: spansOf("Open me"), IsToggleable: true}},
			want:  "# [>] Open me",
		},
		{
			name:  "bullet",
			block: bulletBlock("point"),
			want:  "- point",
		},
		{
			name:  "unchecked todo",
			block: &types.Block{Type: types.BlockToDo, ToDo: &types.ToDoContent{RichText: spansOf("task")}},
			want:  "- [ ] task",
		},
		{
			name:  "checked todo",
			block: &types.Block{Type: types.BlockToDo, ToDo: &types.ToDoContent{RichText: spansOf("task"), Checked: true}},
			want:  "- [x] task",
		},
		{
			name:  "toggle item",
			block: &types.Block{Type: types.BlockToggle, Toggle: &types.TextContent{RichText: spansOf("more")}},
			want:  "- [>] more",
		},
		{
			name:  "divider",
			block: &types.Block{Type: types.BlockDivider, Divider: &struct{}{}},
			want:  "---",
		},
		{
			name:  "multi-line quote",
			block: &types.Block{Type: types.BlockQuote, Quote: &types.TextContent{RichText: spansOf("one\ntwo")}},
			want:  "> one\n> two",
		},
		{
			name:  "code",
			block: &types.Block{Type: types.BlockCode, Code: &types.CodeContent{RichText: spansOf("x := 1"), Language: "go"}},
			want:  "```go\nx := 1\n```",
		},
		{
			name:  "link to page",
			block: &types.Block{Type: types.BlockLinkToPage, LinkToPage: &types.LinkToPage{Type: "page_id", PageID: "p-9"}},
			want:  `<notion-page id="p-9"></notion-page>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(docOf(tt.block)))
		})
	}
}

func TestSerializeNumberedCounterResets(t *testing.T) {
	doc := docOf(
		numberedBlock("a"),
		numberedBlock("b"),
		paraBlock("interlude"),
		numberedBlock("c"),
	)

	want := "1. a\n2. b\ninterlude\n1. c"
	assert.Equal(t, want, Serialize(doc))
}

func TestSerializeOrderedMarkerStyles(t *testing.T) {
	// Marker style cycles with depth: arabic, letters, roman.
	doc := docOf(
		numberedBlock("one",
			numberedBlock("sub",
				numberedBlock("deep"))),
	)

	want := "1. one\n   a. sub\n      i. deep"
	assert.Equal(t, want, Serialize(doc))
}

func TestSerializeSiblingCountersAdvanceIndependently(t *testing.T) {
	doc := docOf(
		numberedBlock("one", numberedBlock("one-a"), numberedBlock("one-b")),
		numberedBlock("two", numberedBlock("two-a")),
	)

	got := Serialize(doc)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1. one", lines[0])
	assert.Equal(t, "   a. one-a", lines[1])
	assert.Equal(t, "   b. one-b", lines[2])
	assert.Equal(t, "2. two", lines[3])
	// The nested counter resets for the second item's children: its previous
	// sibling at that level was not a numbered item.
	assert.Equal(t, "   a. two-a", lines[4])
}

func TestSerializeNestedBlocksIndent(t *testing.T) {
	doc := docOf(bulletBlock("parent", bulletBlock("child"), paraBlock("note")))

	want := "- parent\n    - child\n    note"
	assert.Equal(t, want, Serialize(doc))
}

func TestSerializeTableWithHeader(t *testing.T) {
	table := &types.Block{Type: types.BlockTable, Table: &types.TableContent{
		TableWidth:      2,
		HasColumnHeader: true,
		Children: []*types.Block{
			{Type: types.BlockTableRow, TableRow: &types.TableRow{Cells: [][]types.RichText{spansOf("Col1"), spansOf("Col2")}}},
			{Type: types.BlockTableRow, TableRow: &types.TableRow{Cells: [][]types.RichText{spansOf("A"), spansOf("B")}}},
		},
	}}

	want := "| Col1   | Col2 |\n| :------: | :---: |\n| A      |  B   |"
	got := Serialize(docOf(table))
	require.Equal(t, want, got)

	// The emitted text parses back to the same table shape.
	doc := Parse(got)
	require.Len(t, doc.Children, 1)
	back := doc.Children[0]
	require.Equal(t, types.BlockTable, back.Type)
	assert.True(t, back.Table.HasColumnHeader)
	assert.Equal(t, 2, back.Table.TableWidth)
	require.Len(t, back.Table.Children, 2)
	assert.Equal(t, [][]types.RichText{spansOf("A"), spansOf("B")}, back.Table.Children[1].TableRow.Cells)
}

func TestSerializeTableWithoutHeader(t *testing.T) {
	table := &types.Block{Type: types.BlockTable, Table: &types.TableContent{
		TableWidth: 2,
		Children: []*types.Block{
			{Type: types.BlockTableRow, TableRow: &types.TableRow{Cells: [][]types.RichText{spansOf("aa"), spansOf("b")}}},
			{Type: types.BlockTableRow, TableRow: &types.TableRow{Cells: [][]types.RichText{spansOf("c"), spansOf("dd")}}},
		},
	}}

	got := Serialize(docOf(table))
	assert.Equal(t, "| aa | b  |\n| c  | dd |", got)
	assert.NotContains(t, got, ":-")
}

func TestSerializeCallout(t *testing.T) {
	block := &types.Block{Type: types.BlockCallout, Callout: &types.CalloutContent{
		RichText: spansOf("Remember this"),
		Icon:     types.EmojiIcon("💡"),
	}}
	block.Children = []*types.Block{paraBlock("extra note")}

	want := "<aside>\n💡 Remember this\nextra note\n</aside>"
	assert.Equal(t, want, Serialize(docOf(block)))
}

func TestSerializeColumns(t *testing.T) {
	block := &types.Block{Type: types.BlockColumnList, ColumnList: &types.ColumnList{
		Children: []*types.Block{
			{Type: types.BlockColumn, Column: &types.Column{Children: []*types.Block{paraBlock("Left")}}},
			{Type: types.BlockColumn, Column: &types.Column{Children: []*types.Block{bulletBlock("item")}}},
		},
	}}

	want := "<notion-columns>\n<notion-column>\nLeft\n</notion-column>\n<notion-column>\n- item\n</notion-column>\n</notion-columns>"
	assert.Equal(t, want, Serialize(docOf(block)))
}

func TestSerializeFrontMatter(t *testing.T) {
	score := 4.5
	doc := &types.Document{
		Properties: map[string]types.PropertyValue{
			"Name":  {Title: spansOf("My Page")},
			"Score": {Number: &score},
			"Tags":  {MultiSelect: []types.SelectOption{{Name: "alpha"}, {Name: "beta"}}},
			"When":  {Date: &types.DateValue{Start: "2024-01-01"}},
		},
		Children: []*types.Block{paraBlock("Body")},
	}

	want := strings.Join([]string{
		"---",
		"ntn:title:Name: My Page",
		"ntn:number:Score: 4.5",
		"ntn:multi_select:Tags:",
		"  - alpha",
		"  - beta",
		"ntn:date:When:",
		"  start: 2024-01-01",
		"---",
		"Body",
	}, "\n")
	assert.Equal(t, want, Serialize(doc))
}

func TestSerializeSkipsUnknownBlocks(t *testing.T) {
	doc := docOf(
		paraBlock("kept"),
		&types.Block{Type: types.BlockTableRow, TableRow: &types.TableRow{}},
		&types.Block{Type: types.BlockType("mystery")},
	)

	assert.Equal(t, "kept", Serialize(doc))
}

func TestSerializeEmptyHeadingEmitsNothing(t *testing.T) {
	doc := docOf(&types.Block{Type: types.BlockHeading1, Heading1: &types.HeadingContent{}})

	assert.Equal(t, "", Serialize(doc))
}

// A full document survives a parse/serialize cycle byte for byte: no
// spacing is invented between blocks, so blank lines belong to explicit
// empty paragraphs in the source.
func TestMarkdownRoundTrip(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"ntn:title:Name: Page",
		"ntn:select:Status: Done",
		"---",
		"# Overview",
		"",
		"Intro with **bold** and `code`.",
		"- first",
		"    - deeper",
		"- second",
		"",
		"1. one",
		"2. two",
		"",
		"> a quote",
		"> second line",
		"",
		"```go",
		`fmt.Println("hi")`,
		"```",
		"",
		"---",
		"<aside>",
		"💡 Note to self",
		"</aside>",
		"<notion-columns>",
		"<notion-column>",
		"Left",
		"</notion-column>",
		"<notion-column>",
		"Right",
		"</notion-column>",
		"</notion-columns>",
		"- [ ] task",
		"- [x] done task",
	}, "\n")

	doc := Parse(text)
	require.Equal(t, text, Serialize(doc))

	// A second cycle is stable too.
	assert.Equal(t, text, Serialize(Parse(Serialize(doc))))
}

func TestRoundTripPreservesKindSequence(t *testing.T) {
	doc := docOf(
		&types.Block{Type: types.BlockHeading1, Heading1: &types.HeadingContent{RichText: spansOf("T")}},
		paraBlock("p"),
		&types.Block{Type: types.BlockParagraph, Paragraph: &types.TextContent{RichText: []types.RichText{}}},
		bulletBlock("b"),
		numberedBlock("n"),
		&types.Block{Type: types.BlockDivider, Divider: &struct{}{}},
	)

	back := Parse(Serialize(doc))

	kinds := make([]types.BlockType, len(back.Children))
	for i, b := range back.Children {
		kinds[i] = b.Type
	}
	assert.Equal(t, []types.BlockType{
		types.BlockHeading1,
		types.BlockParagraph,
		types.BlockParagraph,
		types.BlockBulletedListItem,
		types.BlockNumberedListItem,
		types.BlockDivider,
	}, kinds)
}
