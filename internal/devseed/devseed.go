// Package devseed loads table fixtures used to pre-populate the in-memory
// store in mock mode and in the sandbox.
//
// A seed file is either JSON or YAML (chosen by extension) and maps table
// names to their entries:
//
//	limelight:
//	  tv: 1
//	  tx: -4.5
//	  ta: 42.5
package devseed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a single seeded value.
type Entry struct {
	Table string
	Key   string
	Value float64
}

// LoadTableSeed reads the seed file at path.
func LoadTableSeed(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devseed: read %s: %w", path, err)
	}
	return ParseTableSeed(data, filepath.Ext(path))
}

// ParseTableSeed decodes seed data. ext selects the format: ".yaml"/".yml"
// for YAML, anything else is treated as JSON.
func ParseTableSeed(data []byte, ext string) ([]Entry, error) {
	var raw map[string]map[string]float64
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("devseed: decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("devseed: decode json: %w", err)
		}
	}

	tables := make([]string, 0, len(raw))
	for name := range raw {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	var entries []Entry
	for _, name := range tables {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("devseed: table name is required")
		}
		keys := make([]string, 0, len(raw[name]))
		for key := range raw[name] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("devseed: table %q has an entry without key", name)
			}
			entries = append(entries, Entry{Table: name, Key: key, Value: raw[name][key]})
		}
	}
	return entries, nil
}
