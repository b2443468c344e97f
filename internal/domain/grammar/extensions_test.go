package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.py", "python"},
		{"/abs/path/to/app.js", "javascript"},
		{"lib.rs", "rust"},
		{"server.go", "go"},
		{"header.h", "c"},
		{"impl.cpp", "cpp"},
		{"config.YAML", "yaml"}, // extension match is case-insensitive
		{"notes.md", "markdown"},
		{"Program.cs", "c_sharp"},
		{"Makefile", ""},
		{"archive.tar.gz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), "path %q", tt.path)
	}
}

func TestDetectLanguage_AllMappedLanguagesExist(t *testing.T) {
	// Every extension must map into the registry; a dangling mapping would
	// send the parse path to an uninstallable grammar.
	for ext, lang := range extToLang {
		_, ok := Lookup(lang)
		assert.True(t, ok, "extension %s maps to unregistered language %s", ext, lang)
	}
}

func TestExtensionsFor(t *testing.T) {
	assert.ElementsMatch(t, []string{".yaml", ".yml"}, ExtensionsFor("yaml"))
	assert.ElementsMatch(t, []string{".cpp", ".hpp"}, ExtensionsFor("cpp"))
	assert.Empty(t, ExtensionsFor("regex"), "regex has no file extension mapping")
}
