package grammar

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LookupKnown(t *testing.T) {
	spec, ok := Lookup("python")
	require.True(t, ok)
	assert.Equal(t, "python", spec.Name)
	assert.Equal(t, "https://github.com/tree-sitter/tree-sitter-python", spec.RepoURL)
	assert.Equal(t, LayoutDefault, spec.Layout)
	assert.Equal(t, "src", spec.SourceDir)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, ok := Lookup("cobol")
	assert.False(t, ok)
}

func TestRegistry_NamesSortedAndComplete(t *testing.T) {
	names := Names()
	assert.Len(t, names, Count())
	assert.True(t, sort.StringsAreSorted(names))

	for _, name := range names {
		spec, ok := Lookup(name)
		require.True(t, ok)
		assert.Equal(t, name, spec.Name, "map key must match Spec.Name")
	}
}

func TestRegistry_EveryEntryWellFormed(t *testing.T) {
	for _, name := range Names() {
		spec, _ := Lookup(name)
		assert.NotEmpty(t, spec.RepoURL, "%s: missing repo URL", name)
		assert.True(t, strings.HasPrefix(spec.RepoURL, "https://"), "%s: URL scheme", name)
		assert.NotEmpty(t, spec.SourceDir, "%s: missing source dir", name)
	}
}

func TestRegistry_TypescriptSplitLayout(t *testing.T) {
	spec, ok := Lookup("typescript")
	require.True(t, ok)
	assert.Equal(t, LayoutSplit, spec.Layout)
	assert.Equal(t, "typescript/src", spec.SourceDir)
	assert.Equal(t, "src", spec.ScannerDir)
	assert.Contains(t, spec.ExtraIncludes, "typescript/src")
	assert.True(t, spec.Submodules)
}

func TestRegistry_PhpAltCompiler(t *testing.T) {
	spec, ok := Lookup("php")
	require.True(t, ok)
	assert.Equal(t, LayoutNested, spec.Layout)
	assert.Equal(t, "php/src", spec.SourceDir)
	assert.Equal(t, "clang", spec.AltCompiler)
	assert.Contains(t, spec.ExtraIncludes, "php_only/src")
}

func TestRegistry_ScannerFallbackFlags(t *testing.T) {
	// The MSVC two-object retry is deliberately narrow.
	var withFallback []string
	for _, name := range Names() {
		spec, _ := Lookup(name)
		if spec.WinScannerFallback {
			withFallback = append(withFallback, name)
		}
	}
	assert.ElementsMatch(t, []string{"yaml", "markdown"}, withFallback)

	for _, name := range withFallback {
		spec, _ := Lookup(name)
		assert.Equal(t, LayoutAuxScanner, spec.Layout, "%s", name)
		assert.NotEmpty(t, spec.WinDefines, "%s", name)
	}
}

func TestArtifactName(t *testing.T) {
	name := ArtifactName()
	assert.True(t, strings.HasPrefix(name, "parser."))
	assert.Equal(t, "parser"+ArtifactExt(), name)
}
