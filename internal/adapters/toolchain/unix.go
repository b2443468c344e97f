//go:build !windows

// Package toolchain discovers a working native compiler/linker pair for the
// current OS and packages it as an explicit ports.ToolchainContext. Discovery
// never mutates process-wide environment variables; the compiler driver
// applies the context's overrides per subprocess.
package toolchain

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mvp-scale/tsforge/internal/ports"
)

// requiredTools must all be on PATH before any grammar can be built. Their
// absence is a fatal precondition, not something the locator can self-heal.
var requiredTools = []string{"git", "gcc", "g++"}

// Locator implements ports.Toolchain for Unix-like systems, where cc/c++ are
// expected on the search path.
type Locator struct {
	cc     string
	cxx    string
	cached *ports.ToolchainContext
}

// NewLocator creates a locator. cc and cxx override the compiler names;
// empty strings select the platform defaults.
func NewLocator(cc, cxx string) *Locator {
	if cc == "" {
		cc = "cc"
	}
	if cxx == "" {
		cxx = "c++"
	}
	return &Locator{cc: cc, cxx: cxx}
}

// Resolve verifies the required tools and returns the toolchain context.
// The result is computed once and reused for the rest of the run.
func (l *Locator) Resolve() (*ports.ToolchainContext, error) {
	if l.cached != nil {
		return l.cached, nil
	}

	var missing []string
	for _, tool := range requiredTools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required tools: %s\n"+
			"  → install them:  sudo apt-get install %s\n"+
			"  → then retry your command",
			strings.Join(missing, ", "), strings.Join(missing, " "))
	}

	l.cached = &ports.ToolchainContext{
		Kind: "unix",
		CC:   l.cc,
		CXX:  l.cxx,
		LD:   l.cxx, // link with the C++ driver so C++ runtime linkage is right
	}
	return l.cached, nil
}
