package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "todos.json"), filepath.Join(dir, "legacy.json"), logging.Discard()), dir
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := newStore(t)
	forest, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if forest == nil || len(forest) != 0 {
		t.Errorf("forest = %v, want empty", forest)
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := newStore(t)
	child := model.Todo{ID: "c", Title: "child", Completed: true, CreatedAt: "2024-01-01T00:00:00.000Z", Priority: model.PriorityLow}
	original := model.Forest{{
		ID: "p", Title: "parent", CreatedAt: "2024-01-01T00:00:00.000Z", Priority: model.PriorityHigh,
		Children: []model.Todo{child},
	}}

	if err := s.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasSuffix(string(b), "\n") || !strings.Contains(string(b), `"children": []`) {
		t.Errorf("unexpected file layout:\n%s", b)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "p" || len(loaded[0].Children) != 1 {
		t.Fatalf("loaded = %+v", loaded)
	}
	if !loaded[0].Completed {
		t.Error("load should reconcile the stale parent flag")
	}
	if loaded[0].Children[0].Priority != model.PriorityLow {
		t.Errorf("child priority = %q", loaded[0].Children[0].Priority)
	}
}

func TestLoadFallsBackToLegacy(t *testing.T) {
	s, dir := newStore(t)
	legacy := `[{"id":"old","title":"from legacy","completed":false}]`
	if err := os.WriteFile(filepath.Join(dir, "legacy.json"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	forest, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(forest) != 1 || forest[0].ID != "old" || forest[0].Priority != model.PriorityMedium {
		t.Errorf("forest = %+v", forest)
	}

	if err := os.WriteFile(s.Path(), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	forest, err = s.Load()
	if err != nil || len(forest) != 0 {
		t.Errorf("primary file should win: %v, %v", forest, err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	s, _ := newStore(t)
	if err := os.WriteFile(s.Path(), []byte(`[{"id":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadWrongShape(t *testing.T) {
	s, _ := newStore(t)
	if err := os.WriteFile(s.Path(), []byte(`{"todos":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	forest, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(forest) != 0 {
		t.Errorf("non-array data should load as empty, got %v", forest)
	}
}
