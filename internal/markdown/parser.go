// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown converts between Notion block trees and Markdown text.
// Parse and Serialize are total functions: unrecognized syntax degrades to
// paragraph blocks and unknown structures are skipped, never errors.
package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

var (
	todoRe            = regexp.MustCompile(`^- \[([ x])\] `)
	orderedRe         = regexp.MustCompile(`^(?:\d+|[a-z]{1,2}|[ivxlcdm]{1,7})\.\s+`)
	pageTagRe         = regexp.MustCompile(`^<notion-page id="([^"]+)">\s*</notion-page>$`)
	tableSepRe        = regexp.MustCompile(`^[|\s:\-]+$`)
	indentedOrderedRe = regexp.MustCompile(`^\s*(?:\d+|[a-z]{1,2}|[ivxlcdm]{1,7})\. `)
)

// parser holds the line cursor for one Parse call. Multi-line constructs
// (quotes, fences, tables, callouts, columns) advance the cursor by a
// variable number of lines per step.
type parser struct {
	lines []string
	pos   int
}

// Parse converts Markdown text into a Document. It never fails: any text
// yields a document, with unrecognized lines becoming paragraphs. A leading
// front-matter region populates the document properties; a leading heading
// is an ordinary heading_1 block, never the page title.
func Parse(text string) *types.Document {
	p := &parser{lines: strings.Split(text, "\n")}
	doc := &types.Document{
		Properties: p.frontMatter(),
	}
	doc.Children = p.parseBlocks(0)
	if doc.Children == nil {
		doc.Children = []*types.Block{}
	}
	return doc
}

// frontMatter consumes a leading delimited property region, if present, and
// leaves the cursor on the first body line.
func (p *parser) frontMatter() map[string]types.PropertyValue {
	if len(p.lines) == 0 || strings.TrimSpace(p.lines[0]) != frontMatterDelim {
		return map[string]types.PropertyValue{}
	}
	for i := 1; i < len(p.lines); i++ {
		if strings.TrimSpace(p.lines[i]) == frontMatterDelim {
			props := parseFrontMatter(p.lines[1:i])
			p.pos = i + 1
			return props
		}
	}
	// No closing delimiter: the opening --- is body content (a divider).
	return map[string]types.PropertyValue{}
}

// parseBlocks consumes lines at parentIndent into a block sequence, stopping
// when a line falls below parentIndent. Lines indented deeper than the
// current context were consumed (or will be skipped) by child collection.
func (p *parser) parseBlocks(parentIndent int) []*types.Block {
	var blocks []*types.Block

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		indent := indentLevel(line)

		if parentIndent > 0 && indent < parentIndent {
			break
		}
		if indent > parentIndent {
			p.pos++
			continue
		}

		block := p.parseBlock(strings.TrimSpace(line), indent)
		if block != nil {
			blocks = append(blocks, block)
		}
		p.pos++
	}
	return blocks
}

// parseBlock dispatches one trimmed line to its block constructor. Dispatch
// order is significant: toggle headings before plain headings, checkbox and
// toggle items before plain bullets, tables before the paragraph fallback.
func (p *parser) parseBlock(line string, indent int) *types.Block {
	switch {
	case line == "":
		return emptyParagraph()

	case strings.HasPrefix(line, "### [>] "):
		return p.toggleHeading(line[8:], 3, indent)
	case strings.HasPrefix(line, "## [>] "):
		return p.toggleHeading(line[7:], 2, indent)
	case strings.HasPrefix(line, "# [>] "):
		return p.toggleHeading(line[6:], 1, indent)

	case strings.HasPrefix(line, "### "):
		return headingBlock(line[4:], 3, false)
	case strings.HasPrefix(line, "## "):
		return headingBlock(line[3:], 2, false)
	case strings.HasPrefix(line, "# "):
		return headingBlock(line[2:], 1, false)

	case line == "---" || line == "***" || line == "___":
		return &types.Block{Type: types.BlockDivider, Divider: &struct{}{}}

	case strings.HasPrefix(line, "> "):
		return p.parseQuote(line[2:])

	case strings.HasPrefix(line, "```"):
		return p.parseCode(line)

	case line == "<aside>":
		return p.parseCallout()

	case pageTagRe.MatchString(line):
		id := pageTagRe.FindStringSubmatch(line)[1]
		return &types.Block{Type: types.BlockLinkToPage, LinkToPage: &types.LinkToPage{Type: "page_id", PageID: id}}

	case line == "<notion-columns>":
		return p.parseColumns()

	case todoRe.MatchString(line):
		m := todoRe.FindStringSubmatch(line)
		block := &types.Block{Type: types.BlockToDo, ToDo: &types.ToDoContent{
			RichText: DecodeRichText(line[len(m[0]):]),
			Checked:  m[1] == "x",
		}}
		block.Children = p.collectChildren(indent)
		return block

	case strings.HasPrefix(line, "- [>] "):
		block := &types.Block{Type: types.BlockToggle, Toggle: &types.TextContent{
			RichText: DecodeRichText(line[6:]),
		}}
		block.Children = p.collectChildren(indent)
		return block

	case strings.HasPrefix(line, "- "):
		block := &types.Block{Type: types.BlockBulletedListItem, BulletedListItem: &types.TextContent{
			RichText: DecodeRichText(line[2:]),
		}}
		block.Children = p.collectChildren(indent)
		return block

	case orderedRe.MatchString(line):
		// All ordered markers (numeric, alphabetic, roman) normalize to a
		// numbered item; re-serialization regenerates markers from depth.
		marker := orderedRe.FindString(line)
		block := &types.Block{Type: types.BlockNumberedListItem, NumberedListItem: &types.TextContent{
			RichText: DecodeRichText(line[len(marker):]),
		}}
		block.Children = p.collectChildren(indent)
		return block

	case strings.Contains(line, "|") && p.isTableRow(line):
		return p.parseTable()
	}

	return &types.Block{Type: types.BlockParagraph, Paragraph: &types.TextContent{
		RichText: DecodeRichText(line),
	}}
}

func emptyParagraph() *types.Block {
	// Blank lines survive as empty paragraphs so vertical spacing round-trips.
	return &types.Block{Type: types.BlockParagraph, Paragraph: &types.TextContent{RichText: []types.RichText{}}}
}

func headingBlock(text string, level int, toggleable bool) *types.Block {
	content := &types.HeadingContent{RichText: DecodeRichText(text), IsToggleable: toggleable}
	switch level {
	case 1:
		return &types.Block{Type: types.BlockHeading1, Heading1: content}
	case 2:
		return &types.Block{Type: types.BlockHeading2, Heading2: content}
	}
	return &types.Block{Type: types.BlockHeading3, Heading3: content}
}

func (p *parser) toggleHeading(text string, level, indent int) *types.Block {
	block := headingBlock(text, level, true)
	block.Children = p.collectChildren(indent)
	return block
}

// collectChildren consumes the run of lines indented deeper than
// parentIndent immediately following the current line, parsing each as a
// child block. A line at or below parentIndent ends the run.
func (p *parser) collectChildren(parentIndent int) []*types.Block {
	var children []*types.Block

	next := p.pos + 1
	for next < len(p.lines) {
		line := p.lines[next]
		indent := indentLevel(line)
		if indent <= parentIndent {
			break
		}
		p.pos = next
		child := p.parseBlock(strings.TrimSpace(line), indent)
		if child != nil {
			children = append(children, child)
		}
		next = p.pos + 1
	}
	return children
}

// parseQuote greedily consumes immediately following quote lines into one
// multi-line quote block.
func (p *parser) parseQuote(first string) *types.Block {
	quoted := []string{first}
	for p.pos+1 < len(p.lines) {
		next := strings.TrimSpace(p.lines[p.pos+1])
		if !strings.HasPrefix(next, "> ") {
			break
		}
		quoted = append(quoted, next[2:])
		p.pos++
	}
	return &types.Block{Type: types.BlockQuote, Quote: &types.TextContent{
		RichText: DecodeRichText(strings.Join(quoted, "\n")),
	}}
}

// parseCode consumes lines verbatim until the closing fence. The text after
// the opening fence is the language tag.
func (p *parser) parseCode(fence string) *types.Block {
	language := strings.TrimSpace(fence[3:])
	if language == "" {
		language = "plain text"
	}

	var codeLines []string
	p.pos++
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			break
		}
		codeLines = append(codeLines, line)
		p.pos++
	}

	return &types.Block{Type: types.BlockCode, Code: &types.CodeContent{
		RichText: []types.RichText{types.PlainText(strings.Join(codeLines, "\n"))},
		Language: language,
	}}
}

// parseCallout consumes an <aside> region. The first non-empty line carries
// the icon (a leading emoji, when present) and the primary rich text;
// further non-empty lines become paragraph children.
func (p *parser) parseCallout() *types.Block {
	content := &types.CalloutContent{RichText: []types.RichText{}}
	block := &types.Block{Type: types.BlockCallout, Callout: content}

	sawText := false
	p.pos++
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if line == "</aside>" {
			break
		}
		if line == "" {
			p.pos++
			continue
		}
		if !sawText {
			emoji, rest := leadingEmoji(line)
			if emoji != "" {
				content.Icon = types.EmojiIcon(emoji)
			}
			content.RichText = DecodeRichText(rest)
			sawText = true
		} else {
			block.Children = append(block.Children, &types.Block{
				Type:      types.BlockParagraph,
				Paragraph: &types.TextContent{RichText: DecodeRichText(line)},
			})
		}
		p.pos++
	}
	return block
}

// parseColumns consumes a <notion-columns> region. Each <notion-column>
// group re-parses as an independent sub-document whose children become one
// column's content.
func (p *parser) parseColumns() *types.Block {
	list := &types.ColumnList{}

	p.pos++
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if line == "</notion-columns>" {
			break
		}
		if line == "<notion-column>" {
			var group []string
			p.pos++
			for p.pos < len(p.lines) {
				inner := p.lines[p.pos]
				if strings.TrimSpace(inner) == "</notion-column>" {
					break
				}
				group = append(group, inner)
				p.pos++
			}
			sub := &parser{lines: group}
			list.Children = append(list.Children, &types.Block{
				Type:   types.BlockColumn,
				Column: &types.Column{Children: sub.parseBlocks(0)},
			})
		}
		p.pos++
	}
	return &types.Block{Type: types.BlockColumnList, ColumnList: list}
}

// isTableRow reports whether the current line belongs to a table: either the
// next line is a header separator, or the previous line already carried pipes.
func (p *parser) isTableRow(line string) bool {
	if p.pos+1 < len(p.lines) {
		next := strings.TrimSpace(p.lines[p.pos+1])
		if strings.Contains(next, "|") && tableSepRe.MatchString(next) {
			return true
		}
	}
	if p.pos > 0 {
		return strings.Contains(p.lines[p.pos-1], "|")
	}
	return false
}

// parseTable consumes consecutive pipe-delimited lines. A separator line
// sets the header flag and contributes no row. Ragged rows are padded with
// empty cells.
func (p *parser) parseTable() *types.Block {
	var rows []*types.Block
	hasHeader := false

	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if line == "" || !strings.Contains(line, "|") {
			p.pos--
			break
		}
		if tableSepRe.MatchString(line) {
			hasHeader = true
			p.pos++
			continue
		}

		cells := splitTableCells(line)
		row := &types.TableRow{Cells: make([][]types.RichText, len(cells))}
		for i, cell := range cells {
			spans := DecodeRichText(cell)
			if spans == nil {
				spans = []types.RichText{}
			}
			row.Cells[i] = spans
		}
		rows = append(rows, &types.Block{Type: types.BlockTableRow, TableRow: row})
		p.pos++
	}

	if len(rows) == 0 {
		return nil
	}

	width := 0
	for _, row := range rows {
		if n := len(row.TableRow.Cells); n > width {
			width = n
		}
	}
	for _, row := range rows {
		for len(row.TableRow.Cells) < width {
			row.TableRow.Cells = append(row.TableRow.Cells, []types.RichText{})
		}
	}

	return &types.Block{Type: types.BlockTable, Table: &types.TableContent{
		TableWidth:      width,
		HasColumnHeader: hasHeader,
		Children:        rows,
	}}
}

// splitTableCells splits a table line on pipes, trimming each segment and
// dropping the empty leading/trailing segments produced by edge pipes.
func splitTableCells(line string) []string {
	cells := strings.Split(line, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// indentLevel derives the nesting level from leading spaces: two spaces per
// level, except ordered-list lines which use three (their markers are wider).
func indentLevel(line string) int {
	spaces := len(line) - len(strings.TrimLeft(line, " "))
	if indentedOrderedRe.MatchString(line) {
		return spaces / 3
	}
	return spaces / 2
}

// leadingEmoji splits a leading emoji rune (plus any variation selector) off
// a callout's first text line.
func leadingEmoji(s string) (emoji, rest string) {
	r, size := utf8.DecodeRuneInString(s)
	if !isEmoji(r) {
		return "", s
	}
	end := size
	if r2, size2 := utf8.DecodeRuneInString(s[end:]); r2 == 0xFE0F {
		end += size2
	}
	return s[:end], strings.TrimLeft(s[end:], " ")
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x2190 && r <= 0x21FF: // arrows
		return true
	}
	return r > 0x2000 && r < 0x3000 && unicode.IsSymbol(r)
}
