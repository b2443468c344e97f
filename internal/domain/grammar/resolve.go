package grammar

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mvp-scale/tsforge/internal/ports"
)

// Resolve enumerates the translation units required to build a grammar from
// its clone directory, applying the layout rule from the Spec table. The
// returned set is deduplicated (a scanner matched by both a glob and an
// explicit check appears once) and classified C vs C++ by extension.
//
// An empty result is an error: building is impossible without translation
// units.
func Resolve(spec Spec, cloneDir string) (ports.SourceSet, error) {
	var files []string

	switch spec.Layout {
	case LayoutSplit:
		// Nested dialect sources plus the shared scanner directory at the
		// clone root; both contribute.
		files = append(files, globC(filepath.Join(cloneDir, spec.SourceDir))...)
		files = append(files, globC(filepath.Join(cloneDir, spec.ScannerDir))...)

	case LayoutNested:
		files = append(files, globC(filepath.Join(cloneDir, spec.SourceDir))...)
		files = appendScanner(files, filepath.Join(cloneDir, spec.ScannerDir))

	case LayoutAuxScanner:
		files = append(files, globC(filepath.Join(cloneDir, spec.SourceDir))...)
		files = appendScanner(files, filepath.Join(cloneDir, spec.ScannerDir))

	default:
		files = globC(filepath.Join(cloneDir, spec.SourceDir))
		if len(files) == 0 {
			files = recursiveC(cloneDir)
		}
	}

	var set ports.SourceSet
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		set.Classify(f)
	}

	if set.Empty() {
		return set, fmt.Errorf("no source files found for %s in %s", spec.Name, cloneDir)
	}
	return set, nil
}

// globC returns all .c files directly inside dir. A missing directory yields
// nothing.
func globC(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.c"))
	if err != nil {
		return nil
	}
	return matches
}

// appendScanner adds dir/scanner.cc and dir/scanner.c when they exist. Some
// grammars ship the scanner in C++, some in C, some migrated between releases;
// both spellings are checked.
func appendScanner(files []string, dir string) []string {
	for _, name := range []string{"scanner.cc", "scanner.c"} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			files = append(files, p)
		}
	}
	return files
}

// recursiveC walks the whole clone for .c files, the fallback for grammars
// that do not use a conventional src/ directory at all.
func recursiveC(root string) []string {
	var out []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".c" {
			out = append(out, path)
		}
		return nil
	})
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
