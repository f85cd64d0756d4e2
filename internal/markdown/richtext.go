// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

// mentionDateLayout is the readable form used for date mentions in Markdown.
const mentionDateLayout = "January 02, 2006"

// isoDateLayouts are the snapshot date formats accepted when rendering a
// date mention. Dates in none of these formats pass through verbatim.
var isoDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// EncodeRichText renders a span sequence as inline Markdown. Style markers
// apply with fixed precedence: code suppresses all other markers; bold and
// italic combine into a triple asterisk; strikethrough and underline wrap
// next; a link wraps outermost so the link text keeps its styling.
func EncodeRichText(spans []types.RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(encodeSpan(span))
	}
	return b.String()
}

func encodeSpan(span types.RichText) string {
	switch {
	case span.Equation != nil:
		return "$" + span.Equation.Expression + "$"
	case span.Mention != nil:
		return encodeMention(span.Mention)
	case span.Text != nil:
		return encodeText(span)
	}
	return ""
}

func encodeText(span types.RichText) string {
	content := span.Text.Content

	var a types.Annotations
	if span.Annotations != nil {
		a = *span.Annotations
	}

	if a.Code {
		content = "`" + content + "`"
	} else {
		switch {
		case a.Bold && a.Italic:
			content = "***" + content + "***"
		case a.Bold:
			content = "**" + content + "**"
		case a.Italic:
			content = "*" + content + "*"
		}
		if a.Strikethrough {
			content = "~~" + content + "~~"
		}
		if a.Underline {
			content = "<u>" + content + "</u>"
		}
	}

	if span.Text.Link != nil {
		content = fmt.Sprintf("[%s](%s)", content, span.Text.Link.URL)
	}
	return content
}

func encodeMention(m *types.Mention) string {
	switch m.Type {
	case types.MentionUser:
		if m.User == nil {
			return ""
		}
		name := m.User.Name
		if name == "" {
			name = "User"
		}
		return fmt.Sprintf("<notion-user id=%q>@%s</notion-user>", m.User.ID, name)
	case types.MentionPage:
		if m.Page == nil {
			return ""
		}
		return fmt.Sprintf("<notion-page id=%q></notion-page>", m.Page.ID)
	case types.MentionDate:
		if m.Date == nil || m.Date.Start == "" {
			return ""
		}
		return "<notion-date>" + readableDate(m.Date.Start) + "</notion-date>"
	}
	// Database mentions have no inline rendering.
	return ""
}

// readableDate reformats an ISO start date to its long form, or returns the
// input verbatim when it does not parse.
func readableDate(start string) string {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, start); err == nil {
			return t.Format(mentionDateLayout)
		}
	}
	return start
}

// inlineMatcher pairs a compiled pattern with a span constructor. The slice
// order is the tie-break when two patterns match at the same position:
// equations and mentions win over generic emphasis.
type inlineMatcher struct {
	re   *regexp.Regexp
	make func(groups []string) types.RichText
}

var inlineMatchers = []inlineMatcher{
	{
		re: regexp.MustCompile(`\$([^$\n]+)\$`),
		make: func(g []string) types.RichText {
			return types.RichText{Type: types.RichTextEquation, Equation: &types.Equation{Expression: g[1]}}
		},
	},
	{
		re: regexp.MustCompile(`<notion-user id="([^"]+)">@([^<]*)</notion-user>`),
		make: func(g []string) types.RichText {
			return types.RichText{Type: types.RichTextMention, Mention: &types.Mention{
				Type: types.MentionUser,
				User: &types.UserRef{ID: g[1], Name: g[2]},
			}}
		},
	},
	{
		re: regexp.MustCompile(`<notion-page id="([^"]+)">\s*</notion-page>`),
		make: func(g []string) types.RichText {
			return types.RichText{Type: types.RichTextMention, Mention: &types.Mention{
				Type: types.MentionPage,
				Page: &types.PageRef{ID: g[1]},
			}}
		},
	},
	{
		re: regexp.MustCompile(`<notion-date>([^<]+)</notion-date>`),
		make: func(g []string) types.RichText {
			return types.RichText{Type: types.RichTextMention, Mention: &types.Mention{
				Type: types.MentionDate,
				Date: &types.DateValue{Start: isoDate(g[1])},
			}}
		},
	},
	{
		re: regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`),
		make: func(g []string) types.RichText {
			return types.RichText{Type: types.RichTextText, Text: &types.Text{
				Content: g[1],
				Link:    &types.Link{URL: g[2]},
			}}
		},
	},
	{
		re:   regexp.MustCompile("`([^`]+)`"),
		make: styledSpan(types.Annotations{Code: true}),
	},
	{
		re:   regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`),
		make: styledSpan(types.Annotations{Bold: true, Italic: true}),
	},
	{
		re:   regexp.MustCompile(`\*\*([^*]+)\*\*`),
		make: styledSpan(types.Annotations{Bold: true}),
	},
	{
		re:   regexp.MustCompile(`\*([^*]+)\*`),
		make: styledSpan(types.Annotations{Italic: true}),
	},
	{
		re:   regexp.MustCompile(`~~([^~]+)~~`),
		make: styledSpan(types.Annotations{Strikethrough: true}),
	},
	{
		re:   regexp.MustCompile(`<u>([^<]+)</u>`),
		make: styledSpan(types.Annotations{Underline: true}),
	},
}

func styledSpan(a types.Annotations) func([]string) types.RichText {
	return func(g []string) types.RichText {
		style := a
		return types.RichText{
			Type:        types.RichTextText,
			Text:        &types.Text{Content: g[1]},
			Annotations: &style,
		}
	}
}

// isoDate converts a readable mention date back to ISO form, or returns it
// verbatim when it does not parse.
func isoDate(readable string) string {
	if t, err := time.Parse(mentionDateLayout, readable); err == nil {
		return t.Format("2006-01-02")
	}
	return readable
}

// DecodeRichText scans inline Markdown left to right and produces a span
// sequence. At each step the matcher with the earliest match wins; matcher
// order breaks ties. Matched content is taken literally and never re-scanned,
// so patterns do not nest.
func DecodeRichText(text string) []types.RichText {
	if text == "" {
		return nil
	}

	var spans []types.RichText
	remaining := text
	for remaining != "" {
		bestStart := len(remaining)
		var bestLoc []int
		bestIdx := -1
		for i, m := range inlineMatchers {
			loc := m.re.FindStringSubmatchIndex(remaining)
			if loc != nil && loc[0] < bestStart {
				bestStart = loc[0]
				bestLoc = loc
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			spans = append(spans, types.PlainText(remaining))
			break
		}

		if bestLoc[0] > 0 {
			spans = append(spans, types.PlainText(remaining[:bestLoc[0]]))
		}

		m := inlineMatchers[bestIdx]
		groups := make([]string, 0, len(bestLoc)/2)
		for g := 0; g < len(bestLoc); g += 2 {
			if bestLoc[g] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, remaining[bestLoc[g]:bestLoc[g+1]])
		}
		spans = append(spans, m.make(groups))

		remaining = remaining[bestLoc[1]:]
	}
	return spans
}
