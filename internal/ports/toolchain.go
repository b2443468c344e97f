package ports

// ToolchainContext is a resolved native toolchain, sufficient for the compiler
// driver to invoke compiles and links without a pre-configured developer shell.
// It is an explicit value passed into every compile/link call; discovery never
// mutates process-wide environment variables.
//
// Computed lazily on first build, then reused for the whole run; never
// invalidated mid-run.
type ToolchainContext struct {
	Kind string // "unix", "msvc"

	// Compiler executables. Unix: normally "cc" and "c++". Windows: absolute
	// paths to cl.exe and link.exe inside the resolved MSVC tools directory.
	CC  string
	CXX string
	LD  string

	// Windows: resolved MSVC and SDK locations.
	MSVCToolsDir string // .../VC/Tools/MSVC/<version>
	SDKRoot      string // Windows Kits 10 root
	SDKVersion   string // e.g. "10.0.22621.0"
	Arch         string // "x64" or "x86"

	// Env holds KEY=VALUE overrides (PATH, INCLUDE, LIB on Windows) applied to
	// each compiler subprocess. Empty on Unix.
	Env []string
}

// Toolchain discovers a working compiler/linker pair for the current OS.
type Toolchain interface {
	// Resolve produces a ToolchainContext or a fatal, user-actionable error
	// naming the missing component (compiler, IDE installation, SDK). The
	// locator never proceeds with a partial toolchain.
	Resolve() (*ToolchainContext, error)
}
