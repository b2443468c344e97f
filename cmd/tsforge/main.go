// tsforge provisions native tree-sitter parsers.
// Clone a grammar, build it into a loadable shared library, parse with it.
package main

import (
	"os"

	"github.com/mvp-scale/tsforge/cmd/tsforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
