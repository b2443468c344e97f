package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/home/u/.tsforge")

	assert.Equal(t, "/home/u/.tsforge", p.Root)
	assert.Equal(t, filepath.Join("/home/u/.tsforge", "parsers"), p.ParsersDir)
	assert.Equal(t, filepath.Join("/home/u/.tsforge", "build"), p.BuildDir)
	assert.Equal(t, filepath.Join("/home/u/.tsforge", ".installed"), p.StateFile)
	assert.Equal(t, filepath.Join("/home/u/.tsforge", "forge.db"), p.ReceiptsDB)
	assert.Equal(t, filepath.Join("/home/u/.tsforge", "config.toml"), p.ConfigFile)
}

func TestPaths_PerLanguage(t *testing.T) {
	p := NewPaths("/root")

	assert.Equal(t, filepath.Join("/root", "parsers", "python"), p.CloneDir("python"))
	assert.Equal(t, filepath.Join("/root", "build", "python"), p.LangBuildDir("python"))
	assert.Equal(t, filepath.Join("/root", "build", "python", grammar.ArtifactName()), p.ArtifactPath("python"))
}

func TestPaths_EnsureDirsIdempotent(t *testing.T) {
	p := NewPaths(filepath.Join(t.TempDir(), "root"))

	require.NoError(t, p.EnsureDirs())
	require.NoError(t, p.EnsureDirs())

	for _, d := range []string{p.Root, p.ParsersDir, p.BuildDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestDefaultRoot(t *testing.T) {
	root := DefaultRoot()
	assert.Equal(t, ".tsforge", filepath.Base(root))
}
