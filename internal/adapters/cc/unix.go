package cc

import (
	"path/filepath"
	"strings"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
	"github.com/mvp-scale/tsforge/internal/ports"
)

// Compile flags shared by every Unix translation unit: position-independent
// code, optimization, debug symbols, warnings on. Grammar generators emit
// switch fallthroughs by design, hence the suppression.
var unixCommonFlags = []string{
	"-fPIC", "-O2", "-g", "-Wall", "-Wextra", "-Wno-implicit-fallthrough",
}

// buildUnix compiles each translation unit to an object with the compiler
// matching its kind, then links every object into one shared library using
// the C++ driver, which guarantees correct C++ runtime linkage whenever any
// C++ scanner is in the mix.
func (d *Driver) buildUnix(ctx *ports.ToolchainContext, spec grammar.Spec, cloneDir string, sources ports.SourceSet, buildDir, artifact string) error {
	includes := includeDirs(spec, cloneDir)

	var objects []string
	for _, src := range sources.C {
		obj := objPath(buildDir, src, ".o")
		if err := d.compileUnix(ctx.CC, "-std=gnu11", includes, src, obj, ctx.Env); err != nil {
			return err
		}
		objects = append(objects, obj)
	}
	for _, src := range sources.CXX {
		obj := objPath(buildDir, src, ".o")
		if err := d.compileUnix(ctx.CXX, "-std=c++11", includes, src, obj, ctx.Env); err != nil {
			return err
		}
		objects = append(objects, obj)
	}

	args := []string{"-shared", "-O2", "-g", "-o", artifact}
	args = append(args, objects...)
	return run(ctx.Env, ctx.LD, args...)
}

// compileUnix compiles one translation unit to an object file.
func (d *Driver) compileUnix(compiler, std string, includes []string, src, obj string, env []string) error {
	args := append([]string{}, unixCommonFlags...)
	args = append(args, std, "-c")
	for _, inc := range includes {
		args = append(args, "-I", inc)
	}
	args = append(args, src, "-o", obj)
	return run(env, compiler, args...)
}

// objPath derives the object file path for a source inside the build dir.
func objPath(buildDir, src, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(buildDir, stem+ext)
}
