package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	wipeForce  bool
	wipeClones bool
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Remove built artifacts and installed state",
	Long:  "Deletes the build tree, installed-state file, and receipts. Clones are kept unless --clones is given.",
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
	wipeCmd.Flags().BoolVar(&wipeClones, "clones", false, "Also remove cloned grammar sources")
}

func runWipe(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	if !wipeForce {
		fmt.Printf("This will delete built parsers under %s. Continue? [y/N] ", e.paths.Root)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	targets := []string{e.paths.BuildDir, e.paths.StateFile, e.paths.ReceiptsDB}
	if wipeClones {
		targets = append(targets, e.paths.ParsersDir)
	}
	for _, t := range targets {
		if err := os.RemoveAll(t); err != nil {
			return fmt.Errorf("remove %s: %w", t, err)
		}
	}

	out := cmd.OutOrStdout()
	if wipeClones {
		fmt.Fprintln(out, "artifacts, state, and clones wiped")
	} else {
		fmt.Fprintln(out, "artifacts and state wiped (clones kept)")
	}
	return nil
}
