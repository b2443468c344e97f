package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-scale/tsforge/internal/app"
	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

var installCmd = &cobra.Command{
	Use:   "install [language...]",
	Short: "Clone and build grammar parsers",
	Long: `Install grammars by name, or everything with no arguments:

  tsforge install             Build all supported grammars
  tsforge install python      Build a single grammar
  tsforge install go rust     Build several

Already-installed grammars are skipped. A failed language never aborts
the rest of a batch.`,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if _, ok := grammar.Lookup(arg); !ok {
			return fmt.Errorf("unsupported language: %s\nSupported: %s",
				arg, strings.Join(grammar.Names(), ", "))
		}
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ins, done, err := e.newInstaller(func(lang string, stage app.Stage) {
		if stage != app.StageFailed {
			fmt.Fprintf(out, "  %-10s %s...\n", stage, lang)
		}
	})
	if err != nil {
		return err
	}
	defer done()

	if ins.StateRecovered() {
		fmt.Fprintln(out, "  note: installed-state file was unreadable; starting from an empty set")
	}

	// A single explicit language propagates its failure to the caller.
	if len(args) == 1 {
		if err := ins.Install(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "  ✓ %s → %s\n", args[0], e.paths.ArtifactPath(args[0]))
		return nil
	}

	results := ins.InstallAll(args)
	var ok, skipped, failed int
	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
			fmt.Fprintf(out, "  skip  %-12s already installed\n", r.Language)
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "  FAIL  %-12s %v\n", r.Language, r.Err)
		default:
			ok++
			fmt.Fprintf(out, "  ok    %-12s %s\n", r.Language, e.paths.ArtifactPath(r.Language))
		}
	}
	fmt.Fprintf(out, "\n%d built, %d skipped, %d failed\n", ok, skipped, failed)
	if failed > 0 && ok == 0 && skipped == 0 {
		return fmt.Errorf("all %d languages failed", failed)
	}
	return nil
}
