package statefile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), ".installed"))
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	langs, recovered := s.Load()
	assert.Empty(t, langs)
	assert.False(t, recovered, "a missing file is a fresh install, not a recovery")
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save([]string{"python", "go", "rust"}))

	langs, recovered := s.Load()
	assert.False(t, recovered)
	assert.Equal(t, []string{"go", "python", "rust"}, langs)
}

func TestStore_SaveSortsAndDeduplicates(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save([]string{"rust", "python", "rust", "c", "python"}))

	langs, recovered := s.Load()
	assert.False(t, recovered)
	assert.Equal(t, []string{"c", "python", "rust"}, langs)
}

func TestStore_LoadMalformedFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	langs, recovered := s.Load()
	assert.Empty(t, langs)
	assert.True(t, recovered, "malformed content must recover to empty, not fail")
}

func TestStore_LoadWrongShape(t *testing.T) {
	// Valid JSON but not an array of strings.
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"python": true}`), 0644))

	langs, recovered := s.Load()
	assert.Empty(t, langs)
	assert.True(t, recovered)
}

func TestStore_RecoveryThenSaveRestoresFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("garbage"), 0644))

	_, recovered := s.Load()
	require.True(t, recovered)

	// The next save rewrites the whole file; the damage is gone.
	require.NoError(t, s.Save([]string{"python"}))
	langs, recovered := s.Load()
	assert.False(t, recovered)
	assert.Equal(t, []string{"python"}, langs)
}

func TestStore_FileIsPlainJSONArray(t *testing.T) {
	// The on-disk format is the external contract: a flat JSON string array
	// readable without this package.
	s := newTestStore(t)
	require.NoError(t, s.Save([]string{"json", "go"}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var langs []string
	require.NoError(t, json.Unmarshal(data, &langs))
	assert.Equal(t, []string{"go", "json"}, langs)
}

func TestStore_SaveEmptySet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(nil))

	langs, recovered := s.Load()
	assert.Empty(t, langs)
	assert.False(t, recovered)
}
