package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	fsw "github.com/mvp-scale/tsforge/internal/adapters/fsnotify"
	"github.com/mvp-scale/tsforge/internal/domain/grammar"
)

var watchCmd = &cobra.Command{
	Use:   "watch <language>",
	Short: "Rebuild a grammar whenever its sources change",
	Long: `Grammar-author mode: watches the language's clone directory and reruns
the resolve/build pipeline on every source change. Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	lang := args[0]
	spec, ok := grammar.Lookup(lang)
	if !ok {
		return fmt.Errorf("unsupported language: %s", lang)
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	ins, done, err := e.newInstaller(nil)
	if err != nil {
		return err
	}
	defer done()

	// Make sure there is a clone and a first build to iterate on.
	if err := ins.Install(lang); err != nil {
		return err
	}

	cloneDir := e.paths.CloneDir(lang)
	out := cmd.OutOrStdout()

	rebuild := func(changed string) {
		sources, err := grammar.Resolve(spec, cloneDir)
		if err != nil {
			fmt.Fprintf(out, "  %s  resolve: %v\n", time.Now().Format("15:04:05"), err)
			return
		}
		if _, err := ins.Rebuild(lang, sources); err != nil {
			fmt.Fprintf(out, "  %s  FAIL %v\n", time.Now().Format("15:04:05"), err)
			return
		}
		fmt.Fprintf(out, "  %s  rebuilt %s (%s changed)\n",
			time.Now().Format("15:04:05"), lang, changed)
	}

	w, err := fsw.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.Watch(cloneDir, rebuild); err != nil {
		return err
	}

	fmt.Fprintf(out, "watching %s (Ctrl-C to stop)\n", cloneDir)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Fprintln(out, "\nstopped")
	return nil
}
