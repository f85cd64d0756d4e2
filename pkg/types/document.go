// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Parent identifies where a page is created: under a page or a database.
// Exactly one field is set.
type Parent struct {
	PageID     string `json:"page_id,omitempty" yaml:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty" yaml:"database_id,omitempty"`
}

// Document is the root payload: page properties plus the ordered top-level
// block tree. It is the wire format for the payload JSON representation and
// the input shape of the page-creation collaborator.
type Document struct {
	Parent     *Parent                  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Properties map[string]PropertyValue `json:"properties" yaml:"properties"`
	Children   []*Block                 `json:"children" yaml:"children"`
}

// Title returns the plain text of the document's title property, or "".
func (d *Document) Title() string {
	for _, pv := range d.Properties {
		if pv.Title != nil {
			return PlainTextValue(pv.Title)
		}
	}
	return ""
}
