// Package app wires adapters and domain logic into the grammar installer and
// owns the install-root directory layout.
package app

import (
	"os"
	"path/filepath"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

// Paths holds all resolved filesystem paths for the install root.
// All fields are pre-computed strings, resolved once at startup.
type Paths struct {
	Root       string // ~/.tsforge/
	ParsersDir string // ~/.tsforge/parsers/        (grammar clones)
	BuildDir   string // ~/.tsforge/build/          (per-language artifacts)
	StateFile  string // ~/.tsforge/.installed      (installed-set JSON)
	ReceiptsDB string // ~/.tsforge/forge.db        (bbolt build receipts)
	ConfigFile string // ~/.tsforge/config.toml
}

// NewPaths constructs all resolved paths from an install root directory.
func NewPaths(root string) *Paths {
	return &Paths{
		Root:       root,
		ParsersDir: filepath.Join(root, "parsers"),
		BuildDir:   filepath.Join(root, "build"),
		StateFile:  filepath.Join(root, ".installed"),
		ReceiptsDB: filepath.Join(root, "forge.db"),
		ConfigFile: filepath.Join(root, "config.toml"),
	}
}

// DefaultRoot returns the default install root: ~/.tsforge
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tsforge"
	}
	return filepath.Join(home, ".tsforge")
}

// EnsureDirs creates the install root and its subdirectories. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.ParsersDir, p.BuildDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CloneDir returns the clone directory for a language.
func (p *Paths) CloneDir(lang string) string {
	return filepath.Join(p.ParsersDir, lang)
}

// LangBuildDir returns the build directory for a language.
func (p *Paths) LangBuildDir(lang string) string {
	return filepath.Join(p.BuildDir, lang)
}

// ArtifactPath returns the deterministic shared-library path for a language.
// This is the path the parsing runtime loads; it exists only after a
// successful build.
func (p *Paths) ArtifactPath(lang string) string {
	return filepath.Join(p.BuildDir, lang, grammar.ArtifactName())
}
