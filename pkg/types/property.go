// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PropertyType identifies a supported page-property type. Snapshot property
// types outside this set are dropped by the sanitizer rather than erroring.
type PropertyType string

const (
	PropTitle       PropertyType = "title"
	PropRichText    PropertyType = "rich_text"
	PropNumber      PropertyType = "number"
	PropURL         PropertyType = "url"
	PropEmail       PropertyType = "email"
	PropPhoneNumber PropertyType = "phone_number"
	PropCheckbox    PropertyType = "checkbox"
	PropSelect      PropertyType = "select"
	PropMultiSelect PropertyType = "multi_select"
	PropStatus      PropertyType = "status"
	PropPeople      PropertyType = "people"
	PropDate        PropertyType = "date"
	PropFiles       PropertyType = "files"
)

// PropertyValue is a tagged variant over the supported property types.
// Exactly one field is set; values carry only creation-safe sub-fields
// (a select is `{name}`, never color or option ID).
type PropertyValue struct {
	Title       []RichText     `json:"title,omitempty" yaml:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty" yaml:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty" yaml:"number,omitempty"`
	URL         string         `json:"url,omitempty" yaml:"url,omitempty"`
	Email       string         `json:"email,omitempty" yaml:"email,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty" yaml:"checkbox,omitempty"`
	Select      *SelectOption  `json:"select,omitempty" yaml:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty" yaml:"multi_select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty" yaml:"status,omitempty"`
	People      []UserRef      `json:"people,omitempty" yaml:"people,omitempty"`
	Date        *DateValue     `json:"date,omitempty" yaml:"date,omitempty"`
	Files       []FileRef      `json:"files,omitempty" yaml:"files,omitempty"`
}

// Type returns the property type tag of the populated variant, or "" when
// the value is empty.
func (p PropertyValue) Type() PropertyType {
	switch {
	case p.Title != nil:
		return PropTitle
	case p.RichText != nil:
		return PropRichText
	case p.Number != nil:
		return PropNumber
	case p.URL != "":
		return PropURL
	case p.Email != "":
		return PropEmail
	case p.PhoneNumber != "":
		return PropPhoneNumber
	case p.Checkbox != nil:
		return PropCheckbox
	case p.Select != nil:
		return PropSelect
	case p.MultiSelect != nil:
		return PropMultiSelect
	case p.Status != nil:
		return PropStatus
	case p.People != nil:
		return PropPeople
	case p.Date != nil:
		return PropDate
	case p.Files != nil:
		return PropFiles
	}
	return ""
}

// SelectOption is a select, multi_select, or status option, name only.
type SelectOption struct {
	Name string `json:"name" yaml:"name"`
}

// FileRef is an external file attachment.
type FileRef struct {
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string        `json:"type" yaml:"type"`
	External *ExternalFile `json:"external,omitempty" yaml:"external,omitempty"`
}

// ExternalFile holds the URL of an externally hosted file.
type ExternalFile struct {
	URL string `json:"url" yaml:"url"`
}

// ExternalFileRef builds a files entry pointing at an external URL.
func ExternalFileRef(url string) FileRef {
	return FileRef{Type: "external", External: &ExternalFile{URL: url}}
}
