package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-scale/tsforge/internal/adapters/treesitter"
	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

var infoCmd = &cobra.Command{
	Use:   "info <language>",
	Short: "Show details about a grammar",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

// layoutNames describe the source-layout rules for humans.
var layoutNames = map[grammar.Layout]string{
	grammar.LayoutDefault:    "src/*.c (recursive fallback)",
	grammar.LayoutSplit:      "nested dialect dir + shared scanner dir",
	grammar.LayoutNested:     "inner source dir, C or C++ scanner",
	grammar.LayoutAuxScanner: "src/*.c + auxiliary scanner",
}

func runInfo(cmd *cobra.Command, args []string) error {
	lang := args[0]
	spec, ok := grammar.Lookup(lang)
	if !ok {
		return fmt.Errorf("unknown grammar: %s", lang)
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Grammar:    %s\n", spec.Name)
	fmt.Fprintf(out, "Repository: %s\n", spec.RepoURL)
	fmt.Fprintf(out, "Layout:     %s\n", layoutNames[spec.Layout])
	if len(spec.ExtraIncludes) > 0 {
		fmt.Fprintf(out, "Includes:   src, %s\n", strings.Join(spec.ExtraIncludes, ", "))
	}
	if spec.Submodules {
		fmt.Fprintln(out, "Submodules: yes")
	}
	if spec.AltCompiler != "" {
		fmt.Fprintf(out, "Windows:    builds with %s (MSVC incompatible)\n", spec.AltCompiler)
	}
	if spec.WinScannerFallback {
		fmt.Fprintln(out, "Windows:    scanner-pair fallback on compile failure")
	}
	fmt.Fprintf(out, "Extensions: %s\n", strings.Join(grammar.ExtensionsFor(lang), ", "))
	fmt.Fprintf(out, "C symbol:   %s\n", treesitter.CSymbolName(lang))

	artifact := e.paths.ArtifactPath(lang)
	if _, err := os.Stat(artifact); err == nil {
		fmt.Fprintf(out, "Artifact:   %s\n", artifact)
	} else {
		fmt.Fprintf(out, "Artifact:   not built (would be %s)\n", artifact)
	}
	return nil
}
