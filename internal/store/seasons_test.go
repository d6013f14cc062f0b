package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/football-tracker/internal/domain/seasons"
	"github.com/preston-bernstein/football-tracker/internal/testutil"
)

func TestSeasonStoreMissingFileIsEmpty(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	s := NewSeasonStore(filepath.Join(t.TempDir(), "seasons", "seasons.json"), logger)

	list, err := s.Load()
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %+v err %v", list, err)
	}
	if !strings.Contains(buf.String(), "season list missing") {
		t.Fatalf("expected missing file to be logged, got %q", buf.String())
	}
	if _, err := s.Current(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for current season, got %v", err)
	}
}

func TestSeasonStoreAppendAssignsSequentialIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seasons", "seasons.json")
	s := NewSeasonStore(path, nil)

	first, err := s.Append(seasons.Season{RemoteSeasonID: 3900, League: "Premier League"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := s.Append(seasons.Season{RemoteSeasonID: 4208, League: "Premier League", ID: 42})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if first.ID != 0 || second.ID != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", first.ID, second.ID)
	}

	current, err := s.Current()
	if err != nil || current.RemoteSeasonID != 4208 {
		t.Fatalf("expected last season current, got %+v err %v", current, err)
	}

	raw, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(raw), "[\n    {") {
		t.Fatalf("expected 4-space indented array, got:\n%s", raw)
	}
}

func TestSeasonStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seasons.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewSeasonStore(path, nil).Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}
