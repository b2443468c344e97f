package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-scale/tsforge/internal/adapters/statefile"
	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported and installed grammars",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	langs, _ := statefile.NewStore(e.paths.StateFile).Load()
	installed := make(map[string]bool, len(langs))
	for _, l := range langs {
		installed[l] = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%d supported grammars\n", grammar.Count())
	fmt.Fprintln(out, strings.Repeat("─", 50))

	for _, name := range grammar.Names() {
		status := "  "
		if installed[name] {
			status = "I "
			if _, err := os.Stat(e.paths.ArtifactPath(name)); err != nil {
				status = "! " // marked installed but artifact is gone
			}
		}
		exts := strings.Join(grammar.ExtensionsFor(name), " ")
		fmt.Fprintf(out, "  %s%-12s %s\n", status, name, exts)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "I = installed  ! = installed but artifact missing")
	fmt.Fprintf(out, "Install root: %s\n", e.paths.Root)
	return nil
}
