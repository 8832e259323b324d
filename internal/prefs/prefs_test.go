package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "prefs.toml"))
	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Prefs{}, p)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s := NewStore(path)
	require.NoError(t, s.Save(Prefs{Theme: "light", PageSize: 50}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "theme = 'light'")

	p, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Prefs{Theme: "light", PageSize: 50}, p)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = [unclosed"), 0o600))
	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
