// Package cc implements the ports.Builder interface by driving native
// compilers as external processes. Two strategies exist: Unix (compile
// translation units to objects, link with the C++ driver) and MSVC (response
// file + one-shot /LD, with a narrow two-object fallback), plus a clang path
// for the one grammar whose sources MSVC cannot digest.
//
// Per-grammar include paths, defines, and strategy flags all come from the
// grammar.Spec table; the driver never branches on language names.
package cc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
	"github.com/mvp-scale/tsforge/internal/ports"
)

// Driver builds grammar shared libraries with the resolved toolchain.
type Driver struct {
	toolchain ports.Toolchain
	clang     string // alternate compiler executable, default "clang"
	goos      string // runtime.GOOS; a field so tests can exercise the Windows strategies
}

// NewDriver creates a driver. clang overrides the alternate-compiler
// executable; empty selects "clang".
func NewDriver(tc ports.Toolchain, clang string) *Driver {
	if clang == "" {
		clang = "clang"
	}
	return &Driver{toolchain: tc, clang: clang, goos: runtime.GOOS}
}

// Build compiles sources and links them into buildDir/parser.<ext>.
// Intermediates are removed after every attempt, success or failure, so the
// build directory retains only the final shared library.
func (d *Driver) Build(language, cloneDir string, sources ports.SourceSet, buildDir string) (string, error) {
	spec, ok := grammar.Lookup(language)
	if !ok {
		return "", fmt.Errorf("unsupported language: %s", language)
	}
	if sources.Empty() {
		return "", fmt.Errorf("no source files to build for %s", language)
	}
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return "", fmt.Errorf("create build dir: %w", err)
	}

	defer removeIntermediates(buildDir)

	artifact := filepath.Join(buildDir, grammar.ArtifactName())

	// Grammars with an alternate compiler bypass the primary toolchain
	// entirely on Windows: no MSVC discovery happens, so a machine with only
	// clang installed can still build them.
	if d.goos == "windows" && spec.AltCompiler != "" {
		if err := d.buildAltCompiler(spec, cloneDir, sources, buildDir, artifact); err != nil {
			return "", err
		}
		return artifact, nil
	}

	ctx, err := d.toolchain.Resolve()
	if err != nil {
		return "", err
	}
	if ctx.Kind == "msvc" {
		err = d.buildMSVC(ctx, spec, cloneDir, sources, buildDir, artifact)
	} else {
		err = d.buildUnix(ctx, spec, cloneDir, sources, buildDir, artifact)
	}
	if err != nil {
		return "", err
	}
	return artifact, nil
}

// includeDirs resolves the include search paths for a grammar: the
// conventional src/ directory plus the table's extra rows. Both build
// strategies consume the same list.
func includeDirs(spec grammar.Spec, cloneDir string) []string {
	dirs := []string{filepath.Join(cloneDir, "src")}
	for _, rel := range spec.ExtraIncludes {
		dirs = append(dirs, filepath.Join(cloneDir, rel))
	}
	return dirs
}

// run executes a compiler subprocess with the toolchain's environment
// overrides, surfacing stdout+stderr in the error on non-zero exit.
func run(env []string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", name, err, out)
	}
	return nil
}
