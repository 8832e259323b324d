// Package prefs persists the user's display preferences in a small TOML
// file. It is the only state benchscope writes.
package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

type Prefs struct {
	Theme    string `toml:"theme,omitempty"`
	PageSize int    `toml:"page_size,omitempty"`
}

// Store reads and writes Prefs at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath is ~/.config/benchscope/prefs.toml (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "benchscope", "prefs.toml"), nil
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Load returns zero Prefs when the file does not exist yet.
func (s *Store) Load() (Prefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p Prefs
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, err
	}
	if err := toml.Unmarshal(b, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// Save writes p atomically.
func (s *Store) Save(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := toml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
