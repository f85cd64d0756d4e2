// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RichTextType identifies the variant of a rich-text span.
type RichTextType string

const (
	RichTextText     RichTextType = "text"
	RichTextEquation RichTextType = "equation"
	RichTextMention  RichTextType = "mention"
)

// RichText is one styled run inside a block: literal text, an equation, or a
// mention. A span is immutable once constructed; a slice of spans reads as
// concatenation.
type RichText struct {
	Type        RichTextType `json:"type" yaml:"type"`
	Text        *Text        `json:"text,omitempty" yaml:"text,omitempty"`
	Equation    *Equation    `json:"equation,omitempty" yaml:"equation,omitempty"`
	Mention     *Mention     `json:"mention,omitempty" yaml:"mention,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Text is the literal-content variant, with an optional link.
type Text struct {
	Content string `json:"content" yaml:"content"`
	Link    *Link  `json:"link,omitempty" yaml:"link,omitempty"`
}

// Link is a URL attached to a text span.
type Link struct {
	URL string `json:"url" yaml:"url"`
}

// Equation is an inline equation expression.
type Equation struct {
	Expression string `json:"expression" yaml:"expression"`
}

// Annotations are the independent style flags of a span. A code span never
// carries the other flags: code takes priority and suppresses them.
type Annotations struct {
	Bold          bool `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty" yaml:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Underline     bool `json:"underline,omitempty" yaml:"underline,omitempty"`
	Code          bool `json:"code,omitempty" yaml:"code,omitempty"`
}

// IsZero reports whether no style flag is set.
func (a Annotations) IsZero() bool {
	return a == Annotations{}
}

// MentionType identifies the variant of a mention span.
type MentionType string

const (
	MentionUser     MentionType = "user"
	MentionPage     MentionType = "page"
	MentionDatabase MentionType = "database"
	MentionDate     MentionType = "date"
)

// Mention references a user, page, database, or date. Each variant carries
// only its creation-safe fields.
type Mention struct {
	Type     MentionType  `json:"type" yaml:"type"`
	User     *UserRef     `json:"user,omitempty" yaml:"user,omitempty"`
	Page     *PageRef     `json:"page,omitempty" yaml:"page,omitempty"`
	Database *DatabaseRef `json:"database,omitempty" yaml:"database,omitempty"`
	Date     *DateValue   `json:"date,omitempty" yaml:"date,omitempty"`
}

// UserRef is a user mention target. Name is display-only bookkeeping carried
// under an underscore key; the creation path strips it.
type UserRef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"_name,omitempty" yaml:"_name,omitempty"`
}

// PageRef is a page mention target.
type PageRef struct {
	ID string `json:"id" yaml:"id"`
}

// DatabaseRef is a database mention target.
type DatabaseRef struct {
	ID string `json:"id" yaml:"id"`
}

// DateValue is a date mention or date property value.
type DateValue struct {
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end,omitempty" yaml:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
}

// PlainText builds a single unstyled text span.
func PlainText(content string) RichText {
	return RichText{Type: RichTextText, Text: &Text{Content: content}}
}

// PlainTextValue returns the rendered plain content of a span sequence,
// ignoring styling, links, and non-text variants other than equations.
func PlainTextValue(spans []RichText) string {
	var out string
	for _, s := range spans {
		switch {
		case s.Text != nil:
			out += s.Text.Content
		case s.Equation != nil:
			out += s.Equation.Expression
		}
	}
	return out
}
