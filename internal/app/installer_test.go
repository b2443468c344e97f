package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-scale/tsforge/internal/domain/grammar"
	"github.com/mvp-scale/tsforge/internal/ports"
)

// --- fakes --------------------------------------------------------------

type fakeState struct {
	langs     []string
	recovered bool
	saved     [][]string
	saveErr   error
}

func (f *fakeState) Load() ([]string, bool) { return f.langs, f.recovered }
func (f *fakeState) Save(langs []string) error {
	f.saved = append(f.saved, langs)
	return f.saveErr
}
func (f *fakeState) Path() string { return "/dev/null" }

// fakeCloner materializes a minimal grammar clone: src/parser.c under dest.
type fakeCloner struct {
	cloned  []string
	synced  []string
	err     error
	barren  bool // clone succeeds but yields no sources
	mkClone func(dest string) error
}

func (f *fakeCloner) Clone(url, dest string) error {
	if f.err != nil {
		return f.err
	}
	f.cloned = append(f.cloned, url)
	if f.mkClone != nil {
		return f.mkClone(dest)
	}
	if f.barren {
		return os.MkdirAll(dest, 0755)
	}
	srcDir := filepath.Join(dest, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(srcDir, "parser.c"), []byte("//"), 0644)
}

func (f *fakeCloner) SyncSubmodules(dir string) error {
	f.synced = append(f.synced, dir)
	return nil
}

type fakeToolchain struct {
	err   error
	calls int
}

func (f *fakeToolchain) Resolve() (*ports.ToolchainContext, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ports.ToolchainContext{Kind: "unix", CC: "cc", CXX: "c++", LD: "c++"}, nil
}

// fakeBuilder writes the artifact file so receipt hashing has something to
// digest.
type fakeBuilder struct {
	built   []string
	failFor map[string]error
}

func (f *fakeBuilder) Build(language, cloneDir string, sources ports.SourceSet, buildDir string) (string, error) {
	if err := f.failFor[language]; err != nil {
		return "", err
	}
	f.built = append(f.built, language)
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return "", err
	}
	artifact := filepath.Join(buildDir, grammar.ArtifactName())
	return artifact, os.WriteFile(artifact, []byte("\x7fELF"), 0644)
}

type fakeReceipts struct {
	receipts map[string]*ports.BuildReceipt
}

func (f *fakeReceipts) SaveReceipt(r *ports.BuildReceipt) error {
	if f.receipts == nil {
		f.receipts = make(map[string]*ports.BuildReceipt)
	}
	f.receipts[r.Language] = r
	return nil
}
func (f *fakeReceipts) LoadReceipt(language string) (*ports.BuildReceipt, error) {
	return f.receipts[language], nil
}
func (f *fakeReceipts) Close() error { return nil }

type fixture struct {
	ins      *Installer
	paths    *Paths
	state    *fakeState
	cloner   *fakeCloner
	tc       *fakeToolchain
	builder  *fakeBuilder
	receipts *fakeReceipts
}

func newFixture(t *testing.T, state *fakeState) *fixture {
	t.Helper()
	f := &fixture{
		paths:    NewPaths(t.TempDir()),
		state:    state,
		cloner:   &fakeCloner{},
		tc:       &fakeToolchain{},
		builder:  &fakeBuilder{},
		receipts: &fakeReceipts{},
	}
	require.NoError(t, f.paths.EnsureDirs())
	f.ins = NewInstaller(f.paths, f.state, f.receipts, f.cloner, f.tc, f.builder)
	return f
}

// --- tests --------------------------------------------------------------

func TestInstall_Success(t *testing.T) {
	f := newFixture(t, &fakeState{})

	require.NoError(t, f.ins.Install("python"))

	assert.True(t, f.ins.Installed("python"))
	assert.Equal(t, []string{"https://github.com/tree-sitter/tree-sitter-python"}, f.cloner.cloned)
	assert.Equal(t, []string{"python"}, f.builder.built)
	require.Len(t, f.state.saved, 1)
	assert.Equal(t, []string{"python"}, f.state.saved[0])
}

func TestInstall_WritesReceipt(t *testing.T) {
	f := newFixture(t, &fakeState{})

	require.NoError(t, f.ins.Install("python"))

	r := f.receipts.receipts["python"]
	require.NotNil(t, r)
	assert.Equal(t, "unix", r.Toolchain)
	assert.Equal(t, "cc", r.Compiler)
	assert.Equal(t, 1, r.Objects)
	assert.Len(t, r.SHA256, 64, "hex sha256 of the artifact")
	assert.Equal(t, f.paths.ArtifactPath("python"), r.Artifact)
	assert.NotZero(t, r.BuiltAt)
}

func TestInstall_AlreadyInstalledIsNoOp(t *testing.T) {
	f := newFixture(t, &fakeState{langs: []string{"python"}})

	require.NoError(t, f.ins.Install("python"))

	assert.Empty(t, f.cloner.cloned, "no clone for an installed language")
	assert.Empty(t, f.builder.built, "no build for an installed language")
	assert.Empty(t, f.state.saved, "state untouched")
}

func TestInstall_UnknownLanguage(t *testing.T) {
	f := newFixture(t, &fakeState{})

	err := f.ins.Install("cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
	assert.Empty(t, f.cloner.cloned)
}

func TestInstall_ToolchainFailureHaltsBeforeClone(t *testing.T) {
	f := newFixture(t, &fakeState{})
	f.tc.err = errors.New("missing required tools: gcc")

	err := f.ins.Install("python")
	require.Error(t, err)
	assert.Empty(t, f.cloner.cloned, "a machine that cannot build must not touch the network")
	assert.Empty(t, f.state.saved)
	assert.False(t, f.ins.Installed("python"))
}

func TestInstall_BuildFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, &fakeState{})
	f.builder.failFor = map[string]error{"python": errors.New("cc exited 1")}

	err := f.ins.Install("python")
	require.Error(t, err)
	assert.False(t, f.ins.Installed("python"))
	assert.Empty(t, f.state.saved, "the set is only written after a successful build")
	assert.Nil(t, f.receipts.receipts["python"])
}

func TestInstall_EmptyCloneFailsAtResolve(t *testing.T) {
	f := newFixture(t, &fakeState{})
	f.cloner.barren = true

	err := f.ins.Install("python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source files")
	assert.Empty(t, f.builder.built)
	assert.Empty(t, f.state.saved)
}

func TestInstall_ReusesExistingClone(t *testing.T) {
	f := newFixture(t, &fakeState{})

	cloneDir := f.paths.CloneDir("python")
	require.NoError(t, os.MkdirAll(filepath.Join(cloneDir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cloneDir, "src", "parser.c"), []byte("//"), 0644))

	require.NoError(t, f.ins.Install("python"))
	assert.Empty(t, f.cloner.cloned, "an existing clone is reused, not re-fetched")
	assert.Equal(t, []string{"python"}, f.builder.built)
}

func TestInstall_SubmodulesSyncedOnFreshClone(t *testing.T) {
	f := newFixture(t, &fakeState{})
	f.cloner.mkClone = func(dest string) error {
		// typescript layout: dialect sources plus shared scanner
		if err := os.MkdirAll(filepath.Join(dest, "typescript", "src"), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dest, "typescript", "src", "parser.c"), []byte("//"), 0644); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(dest, "src"), 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dest, "src", "scanner.c"), []byte("//"), 0644)
	}

	require.NoError(t, f.ins.Install("typescript"))
	assert.Equal(t, []string{f.paths.CloneDir("typescript")}, f.cloner.synced)
}

func TestInstall_ProgressStages(t *testing.T) {
	f := newFixture(t, &fakeState{})

	var stages []Stage
	f.ins.Progress = func(lang string, stage Stage) {
		stages = append(stages, stage)
	}

	require.NoError(t, f.ins.Install("python"))
	assert.Equal(t, []Stage{StageCloning, StageResolving, StageBuilding, StageInstalled}, stages)
}

func TestInstallAll_IsolatesFailures(t *testing.T) {
	f := newFixture(t, &fakeState{langs: []string{"go"}})
	f.builder.failFor = map[string]error{"python": errors.New("cc exited 1")}

	results := f.ins.InstallAll([]string{"go", "python", "rust"})
	require.Len(t, results, 3)

	assert.Equal(t, "go", results[0].Language)
	assert.True(t, results[0].Skipped)
	assert.NoError(t, results[0].Err)

	assert.Error(t, results[1].Err, "python build failure is captured, not fatal")

	assert.NoError(t, results[2].Err, "rust still installs after python failed")
	assert.True(t, f.ins.Installed("rust"))
	assert.False(t, f.ins.Installed("python"))
}

func TestInstallAll_EmptyListMeansFullRegistry(t *testing.T) {
	f := newFixture(t, &fakeState{})

	results := f.ins.InstallAll(nil)
	assert.Len(t, results, grammar.Count())
}

func TestRebuild_DoesNotTouchState(t *testing.T) {
	f := newFixture(t, &fakeState{langs: []string{"python"}})

	var sources ports.SourceSet
	sources.Classify(filepath.Join(f.paths.CloneDir("python"), "src", "parser.c"))

	artifact, err := f.ins.Rebuild("python", sources)
	require.NoError(t, err)
	assert.FileExists(t, artifact)
	assert.Empty(t, f.state.saved)
	assert.NotNil(t, f.receipts.receipts["python"], "rebuilds still leave a receipt")
}

func TestInstall_AltCompilerSkipsToolchainPrecondition(t *testing.T) {
	// php on Windows builds with clang alone; a machine without Visual
	// Studio must still be able to install it.
	f := newFixture(t, &fakeState{})
	f.ins.goos = "windows"
	f.tc.err = errors.New("could not find a Visual Studio installation")
	f.cloner.mkClone = func(dest string) error {
		phpSrc := filepath.Join(dest, "php", "src")
		if err := os.MkdirAll(phpSrc, 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(phpSrc, "parser.c"), []byte("//"), 0644)
	}

	require.NoError(t, f.ins.Install("php"))
	assert.True(t, f.ins.Installed("php"))

	r := f.receipts.receipts["php"]
	require.NotNil(t, r)
	assert.Equal(t, "clang", r.Toolchain)
	assert.Equal(t, "clang", r.Compiler)

	// A primary-toolchain grammar on the same machine still fails up front.
	err := f.ins.Install("python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Visual Studio")
}

func TestStateRecovered_Passthrough(t *testing.T) {
	f := newFixture(t, &fakeState{recovered: true})
	assert.True(t, f.ins.StateRecovered())

	f2 := newFixture(t, &fakeState{})
	assert.False(t, f2.ins.StateRecovered())
}
