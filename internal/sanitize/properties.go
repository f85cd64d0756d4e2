// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sanitize

import "github.com/Maximophone/notion-md-converter/pkg/types"

// propertyProbeOrder is the detection order for property values that carry
// no explicit type tag (a payload fed back through sanitize, for example).
var propertyProbeOrder = []types.PropertyType{
	types.PropTitle, types.PropRichText, types.PropNumber, types.PropURL,
	types.PropEmail, types.PropPhoneNumber, types.PropCheckbox,
	types.PropSelect, types.PropMultiSelect, types.PropStatus,
	types.PropPeople, types.PropDate, types.PropFiles,
}

// cleanProperties narrows page properties to their creation-safe shapes.
// Unsupported property types (formula, rollup, relation, timestamps, …) are
// dropped rather than erroring.
func cleanProperties(raw map[string]any) map[string]types.PropertyValue {
	props := make(map[string]types.PropertyValue)
	for name, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if pv, ok := cleanProperty(m); ok {
			props[name] = pv
		}
	}
	return props
}

func cleanProperty(m map[string]any) (types.PropertyValue, bool) {
	if tag, ok := m["type"].(string); ok {
		return cleanPropertyValue(types.PropertyType(tag), m[tag])
	}
	for _, t := range propertyProbeOrder {
		if value, ok := m[string(t)]; ok {
			return cleanPropertyValue(t, value)
		}
	}
	return types.PropertyValue{}, false
}

func cleanPropertyValue(t types.PropertyType, value any) (types.PropertyValue, bool) {
	switch t {
	case types.PropTitle:
		if spans := cleanRichText(value); spans != nil {
			return types.PropertyValue{Title: spans}, true
		}
	case types.PropRichText:
		if spans := cleanRichText(value); spans != nil {
			return types.PropertyValue{RichText: spans}, true
		}
	case types.PropNumber:
		if n, ok := value.(float64); ok {
			return types.PropertyValue{Number: &n}, true
		}
	case types.PropURL:
		if s, ok := value.(string); ok && s != "" {
			return types.PropertyValue{URL: s}, true
		}
	case types.PropEmail:
		if s, ok := value.(string); ok && s != "" {
			return types.PropertyValue{Email: s}, true
		}
	case types.PropPhoneNumber:
		if s, ok := value.(string); ok && s != "" {
			return types.PropertyValue{PhoneNumber: s}, true
		}
	case types.PropCheckbox:
		if b, ok := value.(bool); ok {
			return types.PropertyValue{Checkbox: &b}, true
		}
	case types.PropSelect:
		if opt, ok := selectName(value); ok {
			return types.PropertyValue{Select: &opt}, true
		}
	case types.PropStatus:
		if opt, ok := selectName(value); ok {
			return types.PropertyValue{Status: &opt}, true
		}
	case types.PropMultiSelect:
		items, ok := value.([]any)
		if !ok {
			return types.PropertyValue{}, false
		}
		opts := make([]types.SelectOption, 0, len(items))
		for _, item := range items {
			if opt, ok := selectName(item); ok {
				opts = append(opts, opt)
			}
		}
		return types.PropertyValue{MultiSelect: opts}, true
	case types.PropPeople:
		items, ok := value.([]any)
		if !ok {
			return types.PropertyValue{}, false
		}
		people := make([]types.UserRef, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if id, _ := m["id"].(string); id != "" {
					people = append(people, types.UserRef{ID: id})
				}
			}
		}
		return types.PropertyValue{People: people}, true
	case types.PropDate:
		if m, ok := value.(map[string]any); ok {
			start, _ := m["start"].(string)
			if start != "" {
				end, _ := m["end"].(string)
				tz, _ := m["time_zone"].(string)
				return types.PropertyValue{Date: &types.DateValue{Start: start, End: end, TimeZone: tz}}, true
			}
		}
	case types.PropFiles:
		items, ok := value.([]any)
		if !ok {
			return types.PropertyValue{}, false
		}
		files := make([]types.FileRef, 0, len(items))
		for _, item := range items {
			if url := fileURL(item); url != "" {
				files = append(files, types.ExternalFileRef(url))
			}
		}
		return types.PropertyValue{Files: files}, true
	}
	return types.PropertyValue{}, false
}

// selectName extracts the option name from a select/status value. Color and
// option IDs never survive.
func selectName(value any) (types.SelectOption, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return types.SelectOption{}, false
	}
	name, _ := m["name"].(string)
	if name == "" {
		return types.SelectOption{}, false
	}
	return types.SelectOption{Name: name}, true
}

// fileURL pulls a usable URL out of a files entry, preferring the external
// URL and falling back to the hosted-file URL.
func fileURL(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	if ext, ok := m["external"].(map[string]any); ok {
		if url, _ := ext["url"].(string); url != "" {
			return url
		}
	}
	if hosted, ok := m["file"].(map[string]any); ok {
		if url, _ := hosted["url"].(string); url != "" {
			return url
		}
	}
	return ""
}
