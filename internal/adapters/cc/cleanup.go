package cc

import (
	"os"
	"path/filepath"
)

// intermediateExts are the build by-products swept after every attempt:
// objects, MSVC debug databases, incremental-link state, and the import
// library/exports pair that /LD emits next to a DLL.
var intermediateExts = []string{".exp", ".lib", ".obj", ".pdb", ".ilk", ".o"}

// removeIntermediates deletes intermediate build artifacts from buildDir,
// leaving only the final shared library. Failures are swallowed on purpose:
// a leftover object file never invalidates a finished artifact, and cleanup
// must not turn a successful build into a failure.
func removeIntermediates(buildDir string) {
	for _, ext := range intermediateExts {
		matches, err := filepath.Glob(filepath.Join(buildDir, "*"+ext))
		if err != nil {
			continue
		}
		for _, m := range matches {
			os.Remove(m)
		}
	}
}
