// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strconv"
	"strings"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

// serializer holds the per-call numbered-list counters, keyed by indent
// level. A fresh serializer backs every Serialize call, so conversions stay
// independent across calls.
type serializer struct {
	counters map[int]int
}

// Serialize renders a Document as Markdown, the inverse of Parse. Properties
// emit as a front-matter region; blank lines come only from explicit empty
// paragraph blocks, so the kind sequence survives a round trip.
func Serialize(doc *types.Document) string {
	s := &serializer{counters: make(map[int]int)}

	lines := emitFrontMatter(doc.Properties)
	lines = append(lines, s.emitBlocks(doc.Children, 0)...)

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// emitBlocks renders a sibling sequence at one indent level. The numbered
// counter for the level resets whenever the run of numbered items is
// interrupted by a different kind and re-arms on the next numbered item.
func (s *serializer) emitBlocks(blocks []*types.Block, level int) []string {
	var lines []string
	var prevType types.BlockType

	for _, block := range blocks {
		if block == nil {
			continue
		}
		if block.Type == types.BlockNumberedListItem && prevType != types.BlockNumberedListItem {
			s.counters[level] = 0
		}
		lines = append(lines, s.emitBlock(block, level)...)
		prevType = block.Type
	}
	return lines
}

func (s *serializer) emitBlock(block *types.Block, level int) []string {
	indent := strings.Repeat("    ", level)

	var lines []string
	switch block.Type {
	case types.BlockParagraph:
		text := EncodeRichText(block.Paragraph.RichText)
		if text == "" {
			lines = []string{""}
		} else {
			lines = []string{indent + text}
		}

	case types.BlockHeading1:
		lines = headingLines(indent, "#", block.Heading1)
	case types.BlockHeading2:
		lines = headingLines(indent, "##", block.Heading2)
	case types.BlockHeading3:
		lines = headingLines(indent, "###", block.Heading3)

	case types.BlockBulletedListItem:
		lines = []string{indent + "- " + EncodeRichText(block.BulletedListItem.RichText)}

	case types.BlockNumberedListItem:
		s.counters[level]++
		// Three spaces per level keeps the marker aligned with list text.
		numIndent := strings.Repeat("   ", level)
		lines = []string{numIndent + orderedMarker(level, s.counters[level]) + " " + EncodeRichText(block.NumberedListItem.RichText)}

	case types.BlockToDo:
		box := "[ ]"
		if block.ToDo.Checked {
			box = "[x]"
		}
		lines = []string{indent + "- " + box + " " + EncodeRichText(block.ToDo.RichText)}

	case types.BlockToggle:
		lines = []string{indent + "- [>] " + EncodeRichText(block.Toggle.RichText)}

	case types.BlockQuote:
		for _, part := range strings.Split(EncodeRichText(block.Quote.RichText), "\n") {
			lines = append(lines, indent+"> "+part)
		}

	case types.BlockDivider:
		lines = []string{indent + "---"}

	case types.BlockCode:
		lines = emitCode(block.Code, indent)

	case types.BlockTable:
		lines = emitTable(block.Table, indent)

	case types.BlockCallout:
		return s.emitCallout(block, level)

	case types.BlockLinkToPage:
		if block.LinkToPage.PageID != "" {
			lines = []string{indent + `<notion-page id="` + block.LinkToPage.PageID + `"></notion-page>`}
		}

	case types.BlockColumnList:
		return s.emitColumns(block, level)

	default:
		// Unknown kinds (including bare table_row blocks) emit nothing.
		return nil
	}

	if len(block.Children) > 0 {
		childLines := s.emitBlocks(block.Children, level+1)
		lines = append(lines, trimTrailingBlank(childLines)...)
	}
	return lines
}

func headingLines(indent, marker string, h *types.HeadingContent) []string {
	text := EncodeRichText(h.RichText)
	if text == "" {
		return nil
	}
	if h.IsToggleable {
		return []string{indent + marker + " [>] " + text}
	}
	return []string{indent + marker + " " + text}
}

func emitCode(code *types.CodeContent, indent string) []string {
	lines := []string{indent + "```" + code.Language}
	for _, line := range strings.Split(types.PlainTextValue(code.RichText), "\n") {
		lines = append(lines, indent+line)
	}
	return append(lines, indent+"```")
}

func (s *serializer) emitCallout(block *types.Block, level int) []string {
	lines := []string{"<aside>"}

	text := EncodeRichText(block.Callout.RichText)
	if text != "" {
		if block.Callout.Icon != nil && block.Callout.Icon.Emoji != "" {
			text = block.Callout.Icon.Emoji + " " + text
		}
		lines = append(lines, text)
	}

	if len(block.Children) > 0 {
		lines = append(lines, trimTrailingBlank(s.emitBlocks(block.Children, level))...)
	}
	return append(lines, "</aside>")
}

func (s *serializer) emitColumns(block *types.Block, level int) []string {
	lines := []string{"<notion-columns>"}
	for _, column := range block.ColumnList.Children {
		if column == nil || column.Column == nil {
			continue
		}
		lines = append(lines, "<notion-column>")
		lines = append(lines, trimTrailingBlank(s.emitBlocks(column.Column.Children, level))...)
		lines = append(lines, "</notion-column>")
	}
	return append(lines, "</notion-columns>")
}

// emitTable renders a table with computed column widths. With a header, the
// first column is sized to the widest content plus two and later columns to
// their header text; without one, every column is sized to its widest
// content and no separator is emitted. Column 0 is left-aligned, the rest
// center-padded.
func emitTable(table *types.TableContent, indent string) []string {
	cells := tableCellText(table)
	if len(cells) == 0 {
		return nil
	}
	cols := len(cells[0])

	widths := make([]int, cols)
	for j := 0; j < cols; j++ {
		for _, row := range cells {
			if n := len(row[j]); n > widths[j] {
				widths[j] = n
			}
		}
	}
	if table.HasColumnHeader {
		widths[0] += 2
		for j := 1; j < cols; j++ {
			widths[j] = len(cells[0][j])
		}
	}

	var lines []string
	for i, row := range cells {
		rendered := make([]string, cols)
		for j, cell := range row {
			if j == 0 {
				rendered[j] = padRight(cell, widths[j])
			} else {
				rendered[j] = padCenter(cell, widths[j])
			}
		}
		lines = append(lines, indent+"| "+strings.Join(rendered, " | ")+" |")

		if i == 0 && table.HasColumnHeader {
			seps := make([]string, cols)
			seps[0] = ":" + strings.Repeat("-", widths[0]) + ":"
			for j := 1; j < cols; j++ {
				seps[j] = ":" + strings.Repeat("-", max(3, widths[j]-2)) + ":"
			}
			lines = append(lines, indent+"| "+strings.Join(seps, " | ")+" |")
		}
	}
	return lines
}

// tableCellText renders every cell to inline Markdown, padding ragged rows
// to a uniform width.
func tableCellText(table *types.TableContent) [][]string {
	var out [][]string
	cols := table.TableWidth
	for _, row := range table.Children {
		if row == nil || row.TableRow == nil {
			continue
		}
		if len(row.TableRow.Cells) > cols {
			cols = len(row.TableRow.Cells)
		}
	}
	for _, row := range table.Children {
		if row == nil || row.TableRow == nil {
			continue
		}
		rendered := make([]string, cols)
		for j := 0; j < cols; j++ {
			if j < len(row.TableRow.Cells) {
				rendered[j] = EncodeRichText(row.TableRow.Cells[j])
			}
		}
		out = append(out, rendered)
	}
	return out
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// orderedMarker renders the list marker for a numbered item: arabic at the
// outermost pattern level, lowercase letters one level in, lowercase roman
// numerals one further, cycling every three levels.
func orderedMarker(level, n int) string {
	switch level % 3 {
	case 1:
		return alphaMarker(n) + "."
	case 2:
		return romanMarker(n) + "."
	}
	return strconv.Itoa(n) + "."
}

// alphaMarker counts a..z then wraps to two letters: aa, ab, ...
func alphaMarker(n int) string {
	if n <= 0 {
		n = 1
	}
	var out string
	for n > 0 {
		n--
		out = string(rune('a'+n%26)) + out
		n /= 26
	}
	return out
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func romanMarker(n int) string {
	if n <= 0 {
		n = 1
	}
	var b strings.Builder
	for _, rn := range romanNumerals {
		for n >= rn.value {
			b.WriteString(rn.symbol)
			n -= rn.value
		}
	}
	return b.String()
}
