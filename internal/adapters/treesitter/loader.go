// Package treesitter is the boundary to the external parsing runtime. It
// hands built shared-library artifacts to go-tree-sitter: dlopen the
// per-language parser library via purego, resolve the grammar's C entry
// point, and wrap it as a tree-sitter Language.
package treesitter

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ArtifactPaths resolves a language name to its shared-library path.
// Implemented by app.Paths.
type ArtifactPaths interface {
	ArtifactPath(lang string) string
}

// Loader loads grammar shared libraries from the build tree and caches the
// resulting languages for reuse.
type Loader struct {
	paths   ArtifactPaths
	mu      sync.Mutex
	loaded  map[string]*tree_sitter.Language
	handles []uintptr
}

// NewLoader creates a loader over the install tree's artifact paths.
func NewLoader(paths ArtifactPaths) *Loader {
	return &Loader{
		paths:  paths,
		loaded: make(map[string]*tree_sitter.Language),
	}
}

// CSymbolName returns the C entry point for a language's grammar,
// tree_sitter_{name} with dashes folded to underscores.
func CSymbolName(lang string) string {
	return "tree_sitter_" + strings.ReplaceAll(lang, "-", "_")
}

// ArtifactPath returns the shared-library path for a language, or "" when no
// artifact has been built.
func (l *Loader) ArtifactPath(lang string) string {
	p := l.paths.ArtifactPath(lang)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// Load dlopens the artifact for a language and resolves its grammar.
// Results are cached; subsequent calls for the same language return the
// cached value.
func (l *Loader) Load(lang string) (*tree_sitter.Language, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.loaded[lang]; ok {
		return cached, nil
	}

	soPath := l.paths.ArtifactPath(lang)
	if _, err := os.Stat(soPath); err != nil {
		return nil, fmt.Errorf("grammar %q: no artifact at %s (run: tsforge install %s)", lang, soPath, lang)
	}

	handle, err := purego.Dlopen(soPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("grammar %q: dlopen %s: %w", lang, soPath, err)
	}
	l.handles = append(l.handles, handle)

	symName := CSymbolName(lang)
	var langFunc func() uintptr
	purego.RegisterLibFunc(&langFunc, handle, symName)

	ptr := langFunc()
	if ptr == 0 {
		return nil, fmt.Errorf("grammar %q: %s() returned null", lang, symName)
	}

	// Convert uintptr from C (purego) to unsafe.Pointer without triggering go vet's
	// unsafeptr check. Safe because ptr is a static TSLanguage* from the grammar
	// library, not a Go-managed pointer that could be moved by GC.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))
	l.loaded[lang] = language
	return language, nil
}

// Close drops all cached languages and handles.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handles = nil
	l.loaded = make(map[string]*tree_sitter.Language)
}
