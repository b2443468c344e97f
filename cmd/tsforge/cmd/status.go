package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-scale/tsforge/internal/adapters/bbolt"
	"github.com/mvp-scale/tsforge/internal/adapters/statefile"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installation state and build receipts",
	Long:  "Shows install directories and, per installed language, source/binary presence and how the artifact was built.",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "tsforge installation")
	fmt.Fprintln(out, strings.Repeat("─", 50))
	fmt.Fprintf(out, "  Root:     %s\n", e.paths.Root)
	fmt.Fprintf(out, "  Parsers:  %s\n", e.paths.ParsersDir)
	fmt.Fprintf(out, "  Build:    %s\n", e.paths.BuildDir)
	fmt.Fprintf(out, "  State:    %s\n", e.paths.StateFile)

	langs, recovered := statefile.NewStore(e.paths.StateFile).Load()
	if recovered {
		fmt.Fprintln(out, "  State:    unreadable; treated as empty")
	}
	if len(langs) == 0 {
		fmt.Fprintln(out, "\nNo grammars installed.")
		return nil
	}
	sort.Strings(langs)

	var receipts *bbolt.Store
	if _, err := os.Stat(e.paths.ReceiptsDB); err == nil {
		if s, err := bbolt.NewStore(e.paths.ReceiptsDB); err == nil {
			receipts = s
			defer receipts.Close()
		}
	}

	fmt.Fprintf(out, "\n%d installed\n", len(langs))
	fmt.Fprintln(out, strings.Repeat("─", 50))
	for _, lang := range langs {
		var marks []string
		if _, err := os.Stat(e.paths.CloneDir(lang)); err == nil {
			marks = append(marks, "source✓")
		}
		if _, err := os.Stat(e.paths.ArtifactPath(lang)); err == nil {
			marks = append(marks, "binary✓")
		}
		status := strings.Join(marks, " ")
		if status == "" {
			status = "incomplete!"
		}

		detail := ""
		if receipts != nil {
			if r, err := receipts.LoadReceipt(lang); err == nil && r != nil {
				detail = fmt.Sprintf("   %s, %d units, %dms, sha %.12s, %s",
					r.Toolchain, r.Objects, r.DurationMS, r.SHA256,
					time.Unix(r.BuiltAt, 0).Format("2006-01-02"))
			}
		}
		fmt.Fprintf(out, "  %-12s %s%s\n", lang, status, detail)
	}
	return nil
}
