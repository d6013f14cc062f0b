// Package teamnames translates upstream (English) team names into display names.
package teamnames

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Table maps upstream team names to display names. The zero value translates nothing.
type Table struct {
	names map[string]string
}

type document struct {
	Teams map[string]string `yaml:"teams"`
}

// New builds a table from an in-memory mapping.
func New(names map[string]string) *Table {
	t := &Table{names: make(map[string]string, len(names))}
	for k, v := range names {
		t.names[k] = v
	}
	return t
}

// Load reads a YAML document of the form:
//
//	teams:
//	  Zenit St. Petersburg: Зенит
//
// An empty path yields an empty table. A missing file is an error.
func Load(path string) (*Table, error) {
	if path == "" {
		return New(nil), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("team names file %s: %w", path, err)
		}
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes a YAML team-name document.
func Parse(raw []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse team names: %w", err)
	}
	return New(doc.Teams), nil
}

// Translate returns the display name for name, or name itself when unknown.
func (t *Table) Translate(name string) string {
	if t == nil {
		return name
	}
	if v, ok := t.names[name]; ok && v != "" {
		return v
	}
	return name
}

// Len reports how many names the table knows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}
