// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pageid extracts the 32-character Notion page ID from the forms
// users paste: raw hex IDs, hyphenated UUIDs, and notion.so URLs with or
// without slugs and query parameters.
package pageid

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	hexIDRe = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
	uuidRe  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	hexIDSearchRe = regexp.MustCompile(`[0-9a-fA-F]{32}`)
	uuidSearchRe  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// Extract returns the normalized lowercase 32-hex page ID found in s, or ""
// when none is present. IDs in URL paths win over query-string IDs (view
// IDs live in the query).
func Extract(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if hexIDRe.MatchString(s) {
		return strings.ToLower(s)
	}
	if uuidRe.MatchString(s) {
		return normalizeUUID(s)
	}

	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		path := u.Path
		if m := hexIDSearchRe.FindString(path); m != "" {
			return strings.ToLower(m)
		}
		if m := uuidSearchRe.FindString(path); m != "" {
			return normalizeUUID(m)
		}
		// Slug tails end with "-<32hex>".
		if i := strings.LastIndex(path, "-"); i >= 0 {
			if tail := path[i+1:]; hexIDRe.MatchString(tail) {
				return strings.ToLower(tail)
			}
		}
	}

	// Last resort: first 32-hex sequence anywhere in the input.
	if m := hexIDSearchRe.FindString(s); m != "" {
		return strings.ToLower(m)
	}
	return ""
}

func normalizeUUID(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}
