package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tree"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

// Store reads and writes the todo forest as a JSON array.
type Store struct {
	path   string
	legacy string
	log    *log.Logger
}

// New returns a store for path. When path does not exist, legacy (if not
// empty) is read instead; saves always go to path.
func New(path, legacy string, logger *log.Logger) *Store {
	return &Store{path: path, legacy: legacy, log: logger}
}

// Path is where Save writes.
func (s *Store) Path() string { return s.path }

// Load returns the stored forest, normalized and reconciled. A missing
// file is an empty forest; a file that is not valid JSON is an error.
func (s *Store) Load() (model.Forest, error) {
	raw, from, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		s.log.Debug("no data file, starting empty", "path", s.path)
		return model.Forest{}, nil
	}
	forest := tree.ReconcileTree(tree.Normalize(raw))
	s.log.Debug("loaded todos", "path", from, "total", tree.CollectStats(forest).Total)
	return forest, nil
}

// Save writes the forest with 2-space indentation and a trailing newline.
func (s *Store) Save(forest model.Forest) error {
	if forest == nil {
		forest = model.Forest{}
	}
	b, err := json.MarshalIndent(forest, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	s.log.Debug("saved todos", "path", s.path)
	return nil
}

// readRaw decodes the first existing file into an untyped value. Both
// files missing yields a nil value and no error.
func (s *Store) readRaw() (any, string, error) {
	for _, p := range []string{s.path, s.legacy} {
		if p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, p, fmt.Errorf("read file: %w", err)
		}
		if p != s.path {
			s.log.Info("using legacy data file", "path", p)
		}
		var raw any
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, p, fmt.Errorf("json unmarshal %s: %w", p, err)
		}
		return raw, p, nil
	}
	return nil, "", nil
}
