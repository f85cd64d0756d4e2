// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

// frontMatterDelim opens and closes the front-matter region.
const frontMatterDelim = "---"

// propKeyPrefix marks a front-matter key as a typed page property. Keys take
// the form ntn:<type>:<name>, e.g. "ntn:title:Name" or "ntn:select:Status".
const propKeyPrefix = "ntn"

// parseFrontMatter decodes a front-matter region into page properties. The
// region is parsed as YAML; keys without the ntn: prefix, unknown property
// types, and values of the wrong shape are dropped, never errors.
func parseFrontMatter(region []string) map[string]types.PropertyValue {
	props := make(map[string]types.PropertyValue)

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(region, "\n")), &raw); err != nil {
		return props
	}

	for key, value := range raw {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) != 3 || parts[0] != propKeyPrefix || parts[2] == "" {
			continue
		}
		if pv, ok := decodeProperty(types.PropertyType(parts[1]), value); ok {
			props[parts[2]] = pv
		}
	}
	return props
}

// decodeProperty coerces a YAML value into a typed property value.
func decodeProperty(t types.PropertyType, value any) (types.PropertyValue, bool) {
	switch t {
	case types.PropTitle:
		return types.PropertyValue{Title: []types.RichText{types.PlainText(scalarString(value))}}, true
	case types.PropRichText:
		return types.PropertyValue{RichText: []types.RichText{types.PlainText(scalarString(value))}}, true
	case types.PropURL:
		return types.PropertyValue{URL: scalarString(value)}, true
	case types.PropEmail:
		return types.PropertyValue{Email: scalarString(value)}, true
	case types.PropPhoneNumber:
		return types.PropertyValue{PhoneNumber: scalarString(value)}, true
	case types.PropNumber:
		if n, ok := scalarNumber(value); ok {
			return types.PropertyValue{Number: &n}, true
		}
	case types.PropCheckbox:
		if b, ok := value.(bool); ok {
			return types.PropertyValue{Checkbox: &b}, true
		}
	case types.PropSelect:
		return types.PropertyValue{Select: &types.SelectOption{Name: scalarString(value)}}, true
	case types.PropStatus:
		return types.PropertyValue{Status: &types.SelectOption{Name: scalarString(value)}}, true
	case types.PropMultiSelect:
		if items, ok := stringList(value); ok {
			opts := make([]types.SelectOption, len(items))
			for i, item := range items {
				opts[i] = types.SelectOption{Name: item}
			}
			return types.PropertyValue{MultiSelect: opts}, true
		}
	case types.PropPeople:
		if items, ok := stringList(value); ok {
			people := make([]types.UserRef, len(items))
			for i, item := range items {
				people[i] = types.UserRef{ID: item}
			}
			return types.PropertyValue{People: people}, true
		}
	case types.PropFiles:
		if items, ok := stringList(value); ok {
			files := make([]types.FileRef, len(items))
			for i, item := range items {
				files[i] = types.ExternalFileRef(item)
			}
			return types.PropertyValue{Files: files}, true
		}
	case types.PropDate:
		if m, ok := value.(map[string]any); ok {
			date := &types.DateValue{
				Start:    scalarString(m["start"]),
				End:      scalarString(m["end"]),
				TimeZone: scalarString(m["time_zone"]),
			}
			if date.Start != "" {
				return types.PropertyValue{Date: date}, true
			}
		}
	}
	return types.PropertyValue{}, false
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func scalarNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func stringList(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = scalarString(item)
	}
	return out, true
}

// emitFrontMatter renders page properties as a front-matter region, the
// exact inverse of parseFrontMatter. Property names are sorted so output is
// deterministic. An empty property map emits nothing.
func emitFrontMatter(props map[string]types.PropertyValue) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		if props[name].Type() != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	lines := []string{frontMatterDelim}
	for _, name := range names {
		lines = append(lines, emitProperty(name, props[name])...)
	}
	lines = append(lines, frontMatterDelim)
	return lines
}

func emitProperty(name string, pv types.PropertyValue) []string {
	key := fmt.Sprintf("%s:%s:%s", propKeyPrefix, pv.Type(), name)

	scalar := func(v string) []string {
		return []string{fmt.Sprintf("%s: %s", key, v)}
	}

	switch pv.Type() {
	case types.PropTitle:
		return scalar(types.PlainTextValue(pv.Title))
	case types.PropRichText:
		return scalar(types.PlainTextValue(pv.RichText))
	case types.PropNumber:
		return scalar(strconv.FormatFloat(*pv.Number, 'f', -1, 64))
	case types.PropURL:
		return scalar(pv.URL)
	case types.PropEmail:
		return scalar(pv.Email)
	case types.PropPhoneNumber:
		return scalar(pv.PhoneNumber)
	case types.PropCheckbox:
		return scalar(strconv.FormatBool(*pv.Checkbox))
	case types.PropSelect:
		return scalar(pv.Select.Name)
	case types.PropStatus:
		return scalar(pv.Status.Name)
	case types.PropMultiSelect:
		items := make([]string, len(pv.MultiSelect))
		for i, opt := range pv.MultiSelect {
			items[i] = opt.Name
		}
		return listProperty(key, items)
	case types.PropPeople:
		items := make([]string, len(pv.People))
		for i, person := range pv.People {
			items[i] = person.ID
		}
		return listProperty(key, items)
	case types.PropFiles:
		items := make([]string, 0, len(pv.Files))
		for _, f := range pv.Files {
			if f.External != nil {
				items = append(items, f.External.URL)
			}
		}
		return listProperty(key, items)
	case types.PropDate:
		lines := []string{key + ":", "  start: " + pv.Date.Start}
		if pv.Date.End != "" {
			lines = append(lines, "  end: "+pv.Date.End)
		}
		if pv.Date.TimeZone != "" {
			lines = append(lines, "  time_zone: "+pv.Date.TimeZone)
		}
		return lines
	}
	return nil
}

func listProperty(key string, items []string) []string {
	lines := []string{key + ":"}
	for _, item := range items {
		lines = append(lines, "  - "+item)
	}
	return lines
}
