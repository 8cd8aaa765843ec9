// Package session holds the current todo forest for a CLI run or TUI
// program and routes every user action through the tree engine.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tree"
)

var (
	// ErrNotFound is returned when an id matches no todo.
	ErrNotFound = errors.New("todo not found")
	// ErrUnchanged is returned when a batch or move selects nothing to do.
	ErrUnchanged = errors.New("nothing changed")
)

// Store persists the forest.
type Store interface {
	Load() (model.Forest, error)
	Save(model.Forest) error
}

// Op is a tree mutation: it returns the next forest and whether it changed.
type Op func(model.Forest) (model.Forest, bool)

// Options tune a session. Zero values pick defaults.
type Options struct {
	HistoryLimit int
	Now          func() time.Time
	Logger       *log.Logger
}

// Session is the single owner of the forest value.
type Session struct {
	store   Store
	forest  model.Forest
	history *History
	now     func() time.Time
	log     *log.Logger
	dirty   bool
}

// Open loads the forest from store.
func Open(store Store, opts Options) (*Session, error) {
	forest, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	s := &Session{
		store:   store,
		forest:  forest,
		history: NewHistory(opts.HistoryLimit),
		now:     opts.Now,
		log:     opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = log.Default()
	}
	return s, nil
}

// Forest returns the current forest. Callers must not modify it.
func (s *Session) Forest() model.Forest { return s.forest }

// Stats counts every todo.
func (s *Session) Stats() tree.Stats { return tree.CollectStats(s.forest) }

// CanUndo reports whether Undo has something to restore.
func (s *Session) CanUndo() bool { return s.history.Len() > 0 }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Apply runs op. When it reports a change, the previous forest is pushed
// onto the history and the result, reconciled, becomes current.
func (s *Session) Apply(name string, op Op) bool {
	next, changed := op(s.forest)
	if !changed {
		s.log.Debug("operation ignored", "op", name)
		return false
	}
	s.history.Push(s.forest)
	s.forest = tree.ReconcileTree(next)
	s.dirty = true
	s.log.Debug("operation applied", "op", name, "undo", s.history.Len())
	return true
}

// Undo restores the forest before the last applied operation.
func (s *Session) Undo() bool {
	prev, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.forest = prev
	s.dirty = true
	s.log.Debug("undo", "remaining", s.history.Len())
	return true
}

// Save writes the forest if anything changed since Open or the last Save.
func (s *Session) Save() error {
	if !s.dirty {
		return nil
	}
	if err := s.store.Save(s.forest); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.dirty = false
	return nil
}

// CSV exports the current forest.
func (s *Session) CSV() string { return tree.ToCSV(s.forest) }

// ExportTo writes the CSV export to path, creating missing directories.
func (s *Session) ExportTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, []byte(s.CSV()), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	s.log.Info("exported csv", "path", path, "todos", s.Stats().Total)
	return nil
}

// Find looks a todo up by id.
func (s *Session) Find(id string) (model.Todo, bool) { return tree.Find(s.forest, id) }
