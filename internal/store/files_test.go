package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJSONCreatesDirsAndSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	if err := writeJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := writeJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	again, _ := os.Stat(path)
	if !again.ModTime().Equal(info.ModTime()) {
		t.Fatalf("expected unchanged document not rewritten")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file cleaned up")
	}
}

func TestReadJSONMissing(t *testing.T) {
	var v map[string]int
	if err := readJSON(filepath.Join(t.TempDir(), "none.json"), &v); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
}
