package ports

import "path/filepath"

// SourceSet is the ordered collection of translation units for one grammar
// build, classified by compilation kind. Created fresh per install attempt and
// consumed entirely within one build; never persisted.
type SourceSet struct {
	C   []string // .c files, absolute paths
	CXX []string // .cc/.cpp files, absolute paths
}

// Empty reports whether the set holds no translation units.
func (s SourceSet) Empty() bool {
	return len(s.C) == 0 && len(s.CXX) == 0
}

// All returns every source path, C first then C++.
func (s SourceSet) All() []string {
	out := make([]string, 0, len(s.C)+len(s.CXX))
	out = append(out, s.C...)
	out = append(out, s.CXX...)
	return out
}

// Classify appends path to the C or C++ partition based on its extension.
// Unknown extensions are treated as C.
func (s *SourceSet) Classify(path string) {
	switch filepath.Ext(path) {
	case ".cc", ".cpp", ".cxx":
		s.CXX = append(s.CXX, path)
	default:
		s.C = append(s.C, path)
	}
}

// Builder compiles a grammar's translation units and links them into a single
// shared library. Implementations select flags per translation-unit kind and
// per-grammar include requirements, and remove intermediate artifacts (objects,
// debug files, import libs) after every attempt, success or failure.
type Builder interface {
	// Build compiles sources and links them into buildDir, returning the
	// absolute path of the shared library. A non-zero compiler or linker exit
	// is fatal for the language, except narrow documented fallbacks.
	Build(language, cloneDir string, sources SourceSet, buildDir string) (string, error)
}
