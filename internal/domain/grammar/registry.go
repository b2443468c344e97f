// Package grammar holds the static registry of supported tree-sitter grammars
// and the source-set resolution rules for their inconsistent upstream layouts.
//
// Upstream grammar repos do not agree on where generated parsers and
// hand-written scanners live, whether the scanner is C or C++, or which include
// paths a build needs. All of that variance is captured here as data: one Spec
// row per language, consulted uniformly by the source resolver and by both
// compiler-driver strategies. Components never branch on language names.
package grammar

import "sort"

// Layout selects how a grammar's translation units are enumerated from its
// clone directory.
type Layout int

const (
	// LayoutDefault collects src/*.c, falling back to a recursive *.c search
	// of the whole clone when src/ yields nothing.
	LayoutDefault Layout = iota

	// LayoutSplit collects from a nested language-specific source directory
	// plus the shared scanner directory at the clone root. Used by typescript,
	// whose repo hosts two dialects over one scanner.
	LayoutSplit

	// LayoutNested collects from an inner source directory and appends a
	// scanner that may be implemented in either C or C++; both extensions are
	// checked. Used by php.
	LayoutNested

	// LayoutAuxScanner collects src/*.c and appends src/scanner.cc or
	// src/scanner.c when present alongside. Used by yaml and markdown.
	LayoutAuxScanner
)

// Spec describes one supported grammar: where it lives upstream and every
// per-grammar quirk the build pipeline must honor.
type Spec struct {
	Name    string
	RepoURL string
	Layout  Layout

	// SourceDir is the layout's primary source directory relative to the
	// clone root ("src" unless the layout says otherwise).
	SourceDir string

	// ScannerDir is the directory searched for the auxiliary scanner, for
	// layouts that have one.
	ScannerDir string

	// ExtraIncludes are include directories relative to the clone root,
	// appended on top of the default SourceDir include. The same rows feed
	// both the Unix and Windows compile strategies.
	ExtraIncludes []string

	// Submodules marks grammars that vendor part of their sources as a nested
	// repository and need submodule init/update after cloning.
	Submodules bool

	// AltCompiler names a compiler that replaces the primary toolchain
	// entirely on Windows. php's generated sources do not survive MSVC's
	// defaults, so it builds with clang end to end.
	AltCompiler string

	// WinScannerFallback enables the narrow MSVC retry: on compile failure,
	// build just the generated parser and the standalone scanner as two
	// objects and link them explicitly.
	//
	// Only yaml and markdown carry this flag, matching the upstream state
	// when they were last validated. Revisit if other grammars start failing
	// the one-shot /LD build the same way.
	WinScannerFallback bool

	// WinDefines are extra preprocessor defines for the MSVC strategy.
	WinDefines []string

	// WinForceInclude is a header force-included (/FI) on MSVC when it exists
	// in the clone, relative to the clone root.
	WinForceInclude string
}

// registry is the closed set of supported grammars. URLs match the upstream
// projects each grammar is generated from.
var registry = map[string]Spec{
	"python":     {Name: "python", RepoURL: "https://github.com/tree-sitter/tree-sitter-python", Layout: LayoutDefault, SourceDir: "src"},
	"javascript": {Name: "javascript", RepoURL: "https://github.com/tree-sitter/tree-sitter-javascript", Layout: LayoutDefault, SourceDir: "src"},
	"typescript": {
		Name: "typescript", RepoURL: "https://github.com/tree-sitter/tree-sitter-typescript",
		Layout: LayoutSplit, SourceDir: "typescript/src", ScannerDir: "src",
		ExtraIncludes: []string{"typescript/src"},
		Submodules:    true,
	},
	"rust":    {Name: "rust", RepoURL: "https://github.com/tree-sitter/tree-sitter-rust", Layout: LayoutDefault, SourceDir: "src"},
	"go":      {Name: "go", RepoURL: "https://github.com/tree-sitter/tree-sitter-go", Layout: LayoutDefault, SourceDir: "src"},
	"cpp":     {Name: "cpp", RepoURL: "https://github.com/tree-sitter/tree-sitter-cpp", Layout: LayoutDefault, SourceDir: "src"},
	"c":       {Name: "c", RepoURL: "https://github.com/tree-sitter/tree-sitter-c", Layout: LayoutDefault, SourceDir: "src"},
	"java":    {Name: "java", RepoURL: "https://github.com/tree-sitter/tree-sitter-java", Layout: LayoutDefault, SourceDir: "src"},
	"ruby":    {Name: "ruby", RepoURL: "https://github.com/tree-sitter/tree-sitter-ruby", Layout: LayoutDefault, SourceDir: "src"},
	"php": {
		Name: "php", RepoURL: "https://github.com/tree-sitter/tree-sitter-php",
		Layout: LayoutNested, SourceDir: "php/src", ScannerDir: "php/src",
		ExtraIncludes: []string{"php_only/src"},
		AltCompiler:   "clang",
	},
	"c_sharp": {Name: "c_sharp", RepoURL: "https://github.com/tree-sitter/tree-sitter-c-sharp", Layout: LayoutDefault, SourceDir: "src"},
	"html":    {Name: "html", RepoURL: "https://github.com/tree-sitter/tree-sitter-html", Layout: LayoutDefault, SourceDir: "src"},
	"css":     {Name: "css", RepoURL: "https://github.com/tree-sitter/tree-sitter-css", Layout: LayoutDefault, SourceDir: "src"},
	"bash":    {Name: "bash", RepoURL: "https://github.com/tree-sitter/tree-sitter-bash", Layout: LayoutDefault, SourceDir: "src"},
	"yaml": {
		Name: "yaml", RepoURL: "https://github.com/ikatyang/tree-sitter-yaml",
		Layout: LayoutAuxScanner, SourceDir: "src", ScannerDir: "src",
		ExtraIncludes:      []string{"."},
		WinScannerFallback: true,
		WinDefines:         []string{"LOG_TOKENS", "YYDEBUG"},
		WinForceInclude:    "php_only/src/scanner.h",
	},
	"json":  {Name: "json", RepoURL: "https://github.com/tree-sitter/tree-sitter-json", Layout: LayoutDefault, SourceDir: "src"},
	"toml":  {Name: "toml", RepoURL: "https://github.com/tree-sitter/tree-sitter-toml", Layout: LayoutDefault, SourceDir: "src"},
	"regex": {Name: "regex", RepoURL: "https://github.com/tree-sitter/tree-sitter-regex", Layout: LayoutDefault, SourceDir: "src"},
	"markdown": {
		Name: "markdown", RepoURL: "https://github.com/ikatyang/tree-sitter-markdown",
		Layout: LayoutAuxScanner, SourceDir: "src", ScannerDir: "src",
		ExtraIncludes:      []string{"."},
		WinScannerFallback: true,
		WinDefines:         []string{"LOG_TOKENS", "YYDEBUG"},
		WinForceInclude:    "php_only/src/scanner.h",
	},
}

// Lookup returns the Spec for a language name.
func Lookup(name string) (Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns all supported language names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of supported grammars.
func Count() int {
	return len(registry)
}
