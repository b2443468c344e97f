// Package git implements the ports.Cloner interface by shelling out to the
// git binary. git is a declared system precondition (the toolchain locator
// verifies it), so there is no in-process VCS implementation to fall back to.
package git

import (
	"fmt"
	"os"
	"os/exec"
)

// Cloner runs git as a blocking subprocess. Clone output streams to the
// parent's stderr so long fetches are visible.
type Cloner struct{}

// NewCloner returns a Cloner.
func NewCloner() *Cloner {
	return &Cloner{}
}

// Clone fetches url into dest. Blocks until git exits; no timeout, no retry;
// transient network failures surface to the operator, who re-invokes.
func (c *Cloner) Clone(url, dest string) error {
	cmd := exec.Command("git", "clone", url, dest)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

// SyncSubmodules runs submodule init + update inside dir.
func (c *Cloner) SyncSubmodules(dir string) error {
	for _, args := range [][]string{
		{"submodule", "init"},
		{"submodule", "update"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("git %s %s in %s: %w", args[0], args[1], dir, err)
		}
	}
	return nil
}
