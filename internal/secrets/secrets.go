// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// The CLI reads the Notion integration token from the "notion-token" key,
// with the NOTION_TOKEN environment variable taking precedence.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenKey is the secret file holding the Notion integration token.
const TokenKey = "notion-token"

// TokenEnv is the environment variable that overrides the token file.
const TokenEnv = "NOTION_TOKEN"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Token resolves the Notion token: the environment variable wins, then the
// loaded secrets map. An empty string means no token is configured.
func Token(loaded map[string]string) string {
	if v := os.Getenv(TokenEnv); v != "" {
		return v
	}
	return loaded[TokenKey]
}
