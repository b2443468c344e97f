package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
	"github.com/mvp-scale/tsforge/internal/ports"
)

// Stage names the steps of one install, in order. Failed is reachable from
// any of them.
type Stage string

const (
	StageCloning   Stage = "cloning"
	StageResolving Stage = "resolving"
	StageBuilding  Stage = "building"
	StageInstalled Stage = "installed"
	StageFailed    Stage = "failed"
)

// Installer orchestrates grammar installation: consult the installed set,
// clone (or reuse) the grammar source, resolve its translation units, drive
// the compiler, then persist the updated set. The set is only ever written
// after a successful build.
type Installer struct {
	paths     *Paths
	store     ports.StateStore
	receipts  ports.ReceiptStore
	cloner    ports.Cloner
	toolchain ports.Toolchain
	builder   ports.Builder

	installed map[string]bool
	recovered bool
	goos      string // runtime.GOOS; a field so tests can exercise Windows dispatch

	// Progress, when set, is called at each stage transition. Reporting
	// lives in the cmd layer; core code never prints.
	Progress func(lang string, stage Stage)
}

// NewInstaller loads the installed set and returns an installer ready for
// use. receipts may be nil; receipt persistence is then skipped.
func NewInstaller(paths *Paths, store ports.StateStore, receipts ports.ReceiptStore, cloner ports.Cloner, tc ports.Toolchain, builder ports.Builder) *Installer {
	langs, recovered := store.Load()
	installed := make(map[string]bool, len(langs))
	for _, l := range langs {
		installed[l] = true
	}
	return &Installer{
		paths:     paths,
		store:     store,
		receipts:  receipts,
		cloner:    cloner,
		toolchain: tc,
		builder:   builder,
		installed: installed,
		recovered: recovered,
		goos:      runtime.GOOS,
	}
}

// Installed reports whether a language is in the installed set.
func (ins *Installer) Installed(lang string) bool {
	return ins.installed[lang]
}

// StateRecovered reports whether the installed set was recovered from an
// unreadable or malformed state file (and therefore loaded empty).
func (ins *Installer) StateRecovered() bool {
	return ins.recovered
}

// InstalledLanguages returns the current installed set as a slice.
func (ins *Installer) InstalledLanguages() []string {
	langs := make([]string, 0, len(ins.installed))
	for l := range ins.installed {
		langs = append(langs, l)
	}
	return langs
}

// Install builds one language. Already-installed languages are a no-op
// returning nil without cloning or building.
func (ins *Installer) Install(lang string) error {
	spec, ok := grammar.Lookup(lang)
	if !ok {
		return fmt.Errorf("unsupported language: %s", lang)
	}
	if ins.installed[lang] {
		return nil
	}

	// Toolchain preconditions are checked before any cloning happens: a
	// machine that cannot build should fail without touching the network.
	// The locator caches its result, so the builder's own lookup is free.
	// Alt-compiler grammars never consult the primary toolchain, so a
	// Windows machine without Visual Studio can still build them.
	if !ins.usesAltCompiler(spec) {
		if _, err := ins.toolchain.Resolve(); err != nil {
			ins.report(lang, StageFailed)
			return err
		}
	}

	cloneDir, err := ins.ensureClone(spec)
	if err != nil {
		ins.report(lang, StageFailed)
		return err
	}

	ins.report(lang, StageResolving)
	sources, err := grammar.Resolve(spec, cloneDir)
	if err != nil {
		ins.report(lang, StageFailed)
		return err
	}

	ins.report(lang, StageBuilding)
	start := time.Now()
	artifact, err := ins.builder.Build(lang, cloneDir, sources, ins.paths.LangBuildDir(lang))
	if err != nil {
		ins.report(lang, StageFailed)
		return err
	}
	duration := time.Since(start)

	ins.saveReceipt(lang, sources, artifact, duration)

	ins.installed[lang] = true
	if err := ins.store.Save(ins.InstalledLanguages()); err != nil {
		return fmt.Errorf("save installed state: %w", err)
	}
	ins.report(lang, StageInstalled)
	return nil
}

// Rebuild drives the compiler for an already-cloned grammar without touching
// the installed set. Watch mode uses it to iterate on grammar sources.
func (ins *Installer) Rebuild(lang string, sources ports.SourceSet) (string, error) {
	ins.report(lang, StageBuilding)
	start := time.Now()
	artifact, err := ins.builder.Build(lang, ins.paths.CloneDir(lang), sources, ins.paths.LangBuildDir(lang))
	if err != nil {
		ins.report(lang, StageFailed)
		return "", err
	}
	ins.saveReceipt(lang, sources, artifact, time.Since(start))
	return artifact, nil
}

// ensureClone clones the grammar repo unless a clone already exists, syncing
// submodules on fresh clones when the grammar needs them.
func (ins *Installer) ensureClone(spec grammar.Spec) (string, error) {
	cloneDir := ins.paths.CloneDir(spec.Name)
	if _, err := os.Stat(cloneDir); err == nil {
		return cloneDir, nil
	}

	ins.report(spec.Name, StageCloning)
	if err := ins.cloner.Clone(spec.RepoURL, cloneDir); err != nil {
		return "", err
	}
	if spec.Submodules {
		if err := ins.cloner.SyncSubmodules(cloneDir); err != nil {
			return "", err
		}
	}
	return cloneDir, nil
}

// saveReceipt records how the artifact was produced. Receipt persistence is
// supplementary bookkeeping: its failure never fails an install.
func (ins *Installer) saveReceipt(lang string, sources ports.SourceSet, artifact string, duration time.Duration) {
	if ins.receipts == nil {
		return
	}
	sha, err := sha256File(artifact)
	if err != nil {
		return
	}
	ins.receipts.SaveReceipt(&ports.BuildReceipt{
		Language:   lang,
		Toolchain:  ins.toolchainKind(lang),
		Compiler:   ins.compilerName(lang),
		Sources:    sources.All(),
		Objects:    len(sources.C) + len(sources.CXX),
		DurationMS: duration.Milliseconds(),
		Artifact:   artifact,
		SHA256:     sha,
		BuiltAt:    time.Now().Unix(),
	})
}

// Result reports one language's outcome from a batch install.
type Result struct {
	Language string
	Skipped  bool // already installed
	Err      error
}

// InstallAll installs every given language sequentially, isolating failures:
// one language's error never aborts the rest. A nil or empty list means the
// full registry.
func (ins *Installer) InstallAll(langs []string) []Result {
	if len(langs) == 0 {
		langs = grammar.Names()
	}
	results := make([]Result, 0, len(langs))
	for _, lang := range langs {
		if ins.installed[lang] {
			results = append(results, Result{Language: lang, Skipped: true})
			continue
		}
		results = append(results, Result{Language: lang, Err: ins.Install(lang)})
	}
	return results
}

func (ins *Installer) report(lang string, stage Stage) {
	if ins.Progress != nil {
		ins.Progress(lang, stage)
	}
}

// usesAltCompiler reports whether a grammar builds with its alternate
// compiler instead of the primary toolchain on this platform.
func (ins *Installer) usesAltCompiler(spec grammar.Spec) bool {
	return ins.goos == "windows" && spec.AltCompiler != ""
}

// compilerName reports the primary compiler executable a language builds
// with. By the time a receipt is written the toolchain is resolved and
// cached, so the lookup is free.
func (ins *Installer) compilerName(lang string) string {
	if spec, ok := grammar.Lookup(lang); ok && ins.usesAltCompiler(spec) {
		return spec.AltCompiler
	}
	ctx, err := ins.toolchain.Resolve()
	if err != nil {
		return ""
	}
	return ctx.CC
}

// toolchainKind names the build strategy the driver uses for a language on
// this platform, mirroring the dispatch in the cc adapter.
func (ins *Installer) toolchainKind(lang string) string {
	if ins.goos != "windows" {
		return "unix"
	}
	if spec, ok := grammar.Lookup(lang); ok && spec.AltCompiler != "" {
		return spec.AltCompiler
	}
	return "msvc"
}

// sha256File computes the SHA-256 hex digest of a file.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
