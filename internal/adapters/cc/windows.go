package cc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
	"github.com/mvp-scale/tsforge/internal/ports"
)

// buildMSVC is the general Windows strategy: write every source path into a
// response file (cl's command line has a length limit the bigger grammars
// exceed), then compile and link in one /LD invocation. Grammars flagged with
// WinScannerFallback get one retry with a reduced strategy before failing.
func (d *Driver) buildMSVC(ctx *ports.ToolchainContext, spec grammar.Spec, cloneDir string, sources ports.SourceSet, buildDir, artifact string) error {
	rsp := filepath.Join(buildDir, "sources.rsp")
	var b strings.Builder
	for _, src := range sources.All() {
		// Plain quoting: cl does not unescape response-file contents, so
		// Go-style %q would double every backslash in the paths.
		b.WriteString(`"` + src + `"` + "\n")
	}
	if err := os.WriteFile(rsp, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write response file: %w", err)
	}
	defer os.Remove(rsp)

	args := []string{
		"/nologo", "/O2", "/MT",
		"/D_CRT_SECURE_NO_WARNINGS", "/DNDEBUG",
		"/LD", "/utf-8", "/W3", "/Zi", "/std:c++20",
	}
	for _, inc := range includeDirs(spec, cloneDir) {
		args = append(args, "/I", inc)
	}
	for _, def := range spec.WinDefines {
		args = append(args, "/D"+def)
	}
	if spec.WinForceInclude != "" {
		header := filepath.Join(cloneDir, filepath.FromSlash(spec.WinForceInclude))
		if _, err := os.Stat(header); err == nil {
			args = append(args, "/FI", header)
		}
	}
	args = append(args, "/Fe:"+artifact, "@"+rsp)

	if err := run(ctx.Env, ctx.CC, args...); err != nil {
		if spec.WinScannerFallback {
			return d.buildMSVCScannerPair(ctx, cloneDir, buildDir, artifact, err)
		}
		return fmt.Errorf("compile %s: %w", spec.Name, err)
	}
	return nil
}

// buildMSVCScannerPair is the reduced retry: compile the generated parser and
// the standalone scanner as two separate objects, then link the pair
// explicitly. Triggered only for grammars carrying the WinScannerFallback
// flag.
func (d *Driver) buildMSVCScannerPair(ctx *ports.ToolchainContext, cloneDir, buildDir, artifact string, cause error) error {
	srcDir := filepath.Join(cloneDir, "src")
	scanner := filepath.Join(srcDir, "scanner.c")
	if _, err := os.Stat(scanner); err != nil {
		return fmt.Errorf("scanner fallback: no %s after failed build: %w", scanner, cause)
	}

	var objects []string
	for _, src := range []string{filepath.Join(srcDir, "parser.c"), scanner} {
		obj := objPath(buildDir, src, ".obj")
		compileArgs := []string{
			"/nologo", "/O2", "/MT", "/c",
			"/D_CRT_SECURE_NO_WARNINGS", "/DNDEBUG",
			"/I", srcDir,
			"/Fo" + obj,
			src,
		}
		if err := run(ctx.Env, ctx.CC, compileArgs...); err != nil {
			return fmt.Errorf("scanner fallback compile %s: %w", filepath.Base(src), err)
		}
		objects = append(objects, obj)
	}

	linkArgs := append([]string{"/nologo", "/DLL", "/OUT:" + artifact}, objects...)
	if err := run(ctx.Env, ctx.LD, linkArgs...); err != nil {
		return fmt.Errorf("scanner fallback link: %w", err)
	}
	return nil
}

// buildAltCompiler bypasses the primary toolchain entirely: compile every
// translation unit with the table's alternate compiler, then link the objects
// into the shared library with the same compiler. Used where the grammar's
// generated sources are incompatible with MSVC's defaults.
func (d *Driver) buildAltCompiler(spec grammar.Spec, cloneDir string, sources ports.SourceSet, buildDir, artifact string) error {
	var includes []string
	for _, rel := range spec.ExtraIncludes {
		includes = append(includes, filepath.Join(cloneDir, rel))
	}

	var objects []string
	for _, src := range sources.All() {
		obj := objPath(buildDir, src, ".obj")
		args := []string{"-O2", "-std=c11", "-D_CRT_SECURE_NO_WARNINGS", "-DNDEBUG"}
		for _, inc := range includes {
			args = append(args, "-I", inc)
		}
		args = append(args, "-c", src, "-o", obj)
		if err := run(nil, d.clang, args...); err != nil {
			return fmt.Errorf("%s compile %s: %w", d.clang, filepath.Base(src), err)
		}
		objects = append(objects, obj)
	}

	args := []string{"-shared", "-O2", "-o", artifact}
	args = append(args, objects...)
	if err := run(nil, d.clang, args...); err != nil {
		return fmt.Errorf("%s link: %w", d.clang, err)
	}
	return nil
}
