package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-scale/tsforge/internal/adapters/treesitter"
	"github.com/mvp-scale/tsforge/internal/app"
	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

var parseLangFlag string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file with an installed grammar",
	Long: `Parses a file and prints the syntax tree. The language is inferred from
the file extension unless --language is given. A grammar that is not yet
installed is installed first.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseLangFlag, "language", "l", "", "grammar to parse with (default: from extension)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	lang := parseLangFlag
	if lang == "" {
		lang = grammar.DetectLanguage(path)
	}
	if lang == "" {
		return fmt.Errorf("could not detect language for %s (use --language)", path)
	}
	if _, ok := grammar.Lookup(lang); !ok {
		return fmt.Errorf("unsupported language: %s", lang)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	// Install on demand: parsing an uninstalled grammar builds it first.
	ins, done, err := e.newInstaller(func(l string, stage app.Stage) {
		if stage != app.StageFailed {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %-10s %s...\n", stage, l)
		}
	})
	if err != nil {
		return err
	}
	defer done()
	if err := ins.Install(lang); err != nil {
		return err
	}

	loader := treesitter.NewLoader(e.paths)
	defer loader.Close()

	result, err := treesitter.Parse(loader, lang, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Language: %s\n", result.Language)
	fmt.Fprintf(out, "Root:     %s (%d bytes)\n", result.RootKind, result.Bytes)
	if result.HasError {
		fmt.Fprintln(out, "Errors:   tree contains ERROR nodes")
	}
	fmt.Fprintln(out, result.RootSexp)
	return nil
}
