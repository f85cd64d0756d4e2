// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

func spansOf(text string) []types.RichText {
	return []types.RichText{types.PlainText(text)}
}

func paraBlock(text string) *types.Block {
	return &types.Block{Type: types.BlockParagraph, Paragraph: &types.TextContent{RichText: DecodeRichText(text)}}
}

func bulletBlock(text string, children ...*types.Block) *types.Block {
	b := &types.Block{Type: types.BlockBulletedListItem, BulletedListItem: &types.TextContent{RichText: spansOf(text)}}
	b.Children = children
	return b
}

func numberedBlock(text string, children ...*types.Block) *types.Block {
	b := &types.Block{Type: types.BlockNumberedListItem, NumberedListItem: &types.TextContent{RichText: spansOf(text)}}
	b.Children = children
	return b
}

func TestParseBasicDocument(t *testing.T) {
	doc := Parse("# Title\n- Item 1\n  - Nested\n1. First")

	require.NotNil(t, doc)
	assert.Empty(t, doc.Properties)

	want := []*types.Block{
		{Type: types.BlockHeading1, Heading1: &types.HeadingContent{RichText: spansOf("Title")}},
		bulletBlock("Item 1", bulletBlock("Nested")),
		numberedBlock("First"),
	}
	assert.Equal(t, want, doc.Children)
}

func TestParseHeadings(t *testing.T) {
	doc := Parse("# One\n## Two\n### Three")

	require.Len(t, doc.Children, 3)
	assert.Equal(t, types.BlockHeading1, doc.Children[0].Type)
	assert.Equal(t, types.BlockHeading2, doc.Children[1].Type)
	assert.Equal(t, types.BlockHeading3, doc.Children[2].Type)
	assert.Equal(t, spansOf("Two"), doc.Children[1].Heading2.RichText)
	assert.False(t, doc.Children[1].Heading2.IsToggleable)
}

func TestParseToggleHeadingCollectsChildren(t *testing.T) {
	doc := Parse("## [>] Details\n  hidden line")

	require.Len(t, doc.Children, 1)
	h := doc.Children[0]
	assert.Equal(t, types.BlockHeading2, h.Type)
	assert.True(t, h.Heading2.IsToggleable)
	assert.Equal(t, spansOf("Details"), h.Heading2.RichText)
	require.Len(t, h.Children, 1)
	assert.Equal(t, paraBlock("hidden line"), h.Children[0])
}

func TestParseDividers(t *testing.T) {
	doc := Parse("---\n***\n___")

	require.Len(t, doc.Children, 3)
	for _, b := range doc.Children {
		assert.Equal(t, types.BlockDivider, b.Type)
	}
}

func TestParseBlankLineBecomesEmptyParagraph(t *testing.T) {
	doc := Parse("a\n\nb")

	require.Len(t, doc.Children, 3)
	assert.Equal(t, types.BlockParagraph, doc.Children[1].Type)
	assert.Empty(t, doc.Children[1].Paragraph.RichText)
}

func TestParseQuoteSpansLines(t *testing.T) {
	doc := Parse("> first line\n> second line\nafter")

	require.Len(t, doc.Children, 2)
	q := doc.Children[0]
	require.Equal(t, types.BlockQuote, q.Type)
	assert.Equal(t, spansOf("first line\nsecond line"), q.Quote.RichText)
	assert.Equal(t, paraBlock("after"), doc.Children[1])
}

func TestParseCodeFence(t *testing.T) {
	doc := Parse("```go\nx := 1\n\ny := 2\n```")

	require.Len(t, doc.Children, 1)
	c := doc.Children[0]
	require.Equal(t, types.BlockCode, c.Type)
	assert.Equal(t, "go", c.Code.Language)
	assert.Equal(t, spansOf("x := 1\n\ny := 2"), c.Code.RichText)
}

func TestParseCodeFenceDefaultLanguage(t *testing.T) {
	doc := Parse("```\nbody\n```")

	require.Len(t, doc.Children, 1)
	assert.Equal(t, "plain text", doc.Children[0].Code.Language)
}

func TestParseCodeFenceIgnoresInlineSyntax(t *testing.T) {
	doc := Parse("```\n**not bold**\n```")

	require.Len(t, doc.Children, 1)
	assert.Equal(t, spansOf("**not bold**"), doc.Children[0].Code.RichText)
}

func TestParseListItems(t *testing.T) {
	doc := Parse("- [ ] open task\n- [x] done task\n- [>] more\n- plain")

	require.Len(t, doc.Children, 4)

	assert.Equal(t, types.BlockToDo, doc.Children[0].Type)
	assert.False(t, doc.Children[0].ToDo.Checked)
	assert.Equal(t, spansOf("open task"), doc.Children[0].ToDo.RichText)

	assert.Equal(t, types.BlockToDo, doc.Children[1].Type)
	assert.True(t, doc.Children[1].ToDo.Checked)

	assert.Equal(t, types.BlockToggle, doc.Children[2].Type)
	assert.Equal(t, spansOf("more"), doc.Children[2].Toggle.RichText)

	assert.Equal(t, types.BlockBulletedListItem, doc.Children[3].Type)
}

func TestParseOrderedMarkersNormalize(t *testing.T) {
	// Numeric, alphabetic, and roman markers all produce numbered items; the
	// marker text itself is not retained.
	doc := Parse("1. one\n   a. sub\n      i. deep")

	require.Len(t, doc.Children, 1)
	one := doc.Children[0]
	assert.Equal(t, numberedBlock("one", numberedBlock("sub", numberedBlock("deep"))), one)
}

func TestParseLinkToPageTag(t *testing.T) {
	doc := Parse(`<notion-page id="abc-123"></notion-page>`)

	require.Len(t, doc.Children, 1)
	b := doc.Children[0]
	require.Equal(t, types.BlockLinkToPage, b.Type)
	assert.Equal(t, "page_id", b.LinkToPage.Type)
	assert.Equal(t, "abc-123", b.LinkToPage.PageID)
}

func TestParseCallout(t *testing.T) {
	doc := Parse("<aside>\n💡 Remember this\nextra note\n</aside>")

	require.Len(t, doc.Children, 1)
	c := doc.Children[0]
	require.Equal(t, types.BlockCallout, c.Type)
	require.NotNil(t, c.Callout.Icon)
	assert.Equal(t, "💡", c.Callout.Icon.Emoji)
	assert.Equal(t, spansOf("Remember this"), c.Callout.RichText)
	require.Len(t, c.Children, 1)
	assert.Equal(t, paraBlock("extra note"), c.Children[0])
}

func TestParseCalloutWithoutIcon(t *testing.T) {
	doc := Parse("<aside>\njust text\n</aside>")

	require.Len(t, doc.Children, 1)
	c := doc.Children[0]
	assert.Nil(t, c.Callout.Icon)
	assert.Equal(t, spansOf("just text"), c.Callout.RichText)
}

func TestParseColumns(t *testing.T) {
	doc := Parse("<notion-columns>\n<notion-column>\nLeft\n</notion-column>\n<notion-column>\n- item\n</notion-column>\n</notion-columns>")

	require.Len(t, doc.Children, 1)
	list := doc.Children[0]
	require.Equal(t, types.BlockColumnList, list.Type)
	require.Len(t, list.ColumnList.Children, 2)

	first := list.ColumnList.Children[0]
	require.Equal(t, types.BlockColumn, first.Type)
	assert.Equal(t, []*types.Block{paraBlock("Left")}, first.Column.Children)

	second := list.ColumnList.Children[1]
	assert.Equal(t, []*types.Block{bulletBlock("item")}, second.Column.Children)
}

func TestParseTableWithHeader(t *testing.T) {
	doc := Parse("| Col1   | Col2 |\n| :------: | :---: |\n| A      |  B   |")

	require.Len(t, doc.Children, 1)
	tbl := doc.Children[0]
	require.Equal(t, types.BlockTable, tbl.Type)
	assert.Equal(t, 2, tbl.Table.TableWidth)
	assert.True(t, tbl.Table.HasColumnHeader)

	require.Len(t, tbl.Table.Children, 2)
	header := tbl.Table.Children[0].TableRow
	assert.Equal(t, [][]types.RichText{spansOf("Col1"), spansOf("Col2")}, header.Cells)
	data := tbl.Table.Children[1].TableRow
	assert.Equal(t, [][]types.RichText{spansOf("A"), spansOf("B")}, data.Cells)
}

func TestParseTablePadsRaggedRows(t *testing.T) {
	doc := Parse("| h1 | h2 | h3 |\n| :--- | :--- | :--- |\n| a |")

	require.Len(t, doc.Children, 1)
	tbl := doc.Children[0].Table
	assert.Equal(t, 3, tbl.TableWidth)
	require.Len(t, tbl.Children, 2)
	assert.Equal(t, [][]types.RichText{spansOf("a"), {}, {}}, tbl.Children[1].TableRow.Cells)
}

func TestParseFrontMatterProperties(t *testing.T) {
	text := "---\n" +
		"ntn:title:Name: My Page\n" +
		"ntn:number:Score: 4.5\n" +
		"ntn:checkbox:Done: true\n" +
		"ntn:multi_select:Tags:\n" +
		"  - alpha\n" +
		"  - beta\n" +
		"ntn:date:When:\n" +
		"  start: \"2024-01-01\"\n" +
		"plain-key: ignored\n" +
		"ntn:bogus:Thing: ignored\n" +
		"---\n" +
		"Body"

	doc := Parse(text)

	require.Len(t, doc.Properties, 4)
	assert.Equal(t, spansOf("My Page"), doc.Properties["Name"].Title)

	require.NotNil(t, doc.Properties["Score"].Number)
	assert.Equal(t, 4.5, *doc.Properties["Score"].Number)

	require.NotNil(t, doc.Properties["Done"].Checkbox)
	assert.True(t, *doc.Properties["Done"].Checkbox)

	assert.Equal(t, []types.SelectOption{{Name: "alpha"}, {Name: "beta"}}, doc.Properties["Tags"].MultiSelect)

	require.NotNil(t, doc.Properties["When"].Date)
	assert.Equal(t, "2024-01-01", doc.Properties["When"].Date.Start)

	assert.Equal(t, []*types.Block{paraBlock("Body")}, doc.Children)
}

func TestParseUnclosedFrontMatterIsBody(t *testing.T) {
	doc := Parse("---\nnot front matter")

	assert.Empty(t, doc.Properties)
	require.Len(t, doc.Children, 2)
	assert.Equal(t, types.BlockDivider, doc.Children[0].Type)
	assert.Equal(t, paraBlock("not front matter"), doc.Children[1])
}

func TestParseEmptyInput(t *testing.T) {
	doc := Parse("")

	assert.Empty(t, doc.Properties)
	require.Len(t, doc.Children, 1)
	assert.Equal(t, types.BlockParagraph, doc.Children[0].Type)
}
