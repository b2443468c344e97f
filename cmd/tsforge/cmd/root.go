package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-scale/tsforge/internal/adapters/bbolt"
	"github.com/mvp-scale/tsforge/internal/adapters/cc"
	"github.com/mvp-scale/tsforge/internal/adapters/git"
	"github.com/mvp-scale/tsforge/internal/adapters/statefile"
	"github.com/mvp-scale/tsforge/internal/adapters/toolchain"
	"github.com/mvp-scale/tsforge/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "tsforge",
	Short: "tsforge - native tree-sitter grammar provisioner",
	Long:  "Clones grammar repos, builds loadable parser libraries, and tracks what's installed.",
}

var installRootFlag string

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&installRootFlag, "root", "", "install root (default ~/.tsforge)")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(wipeCmd)
}

// env bundles the resolved config and paths for one command run.
type env struct {
	cfg   *app.Config
	paths *app.Paths
}

// loadEnv resolves the install root (flag wins over config file over default)
// and loads the config.
func loadEnv() (*env, error) {
	root := installRootFlag
	if root == "" {
		root = app.DefaultRoot()
	}
	cfg, err := app.LoadConfig(app.NewPaths(root).ConfigFile)
	if err != nil {
		return nil, err
	}
	if installRootFlag == "" && cfg.InstallRoot != "" {
		root = cfg.InstallRoot
	}
	return &env{cfg: cfg, paths: app.NewPaths(root)}, nil
}

// newInstaller wires the full install pipeline. The returned cleanup closes
// the receipt database.
func (e *env) newInstaller(progress func(lang string, stage app.Stage)) (*app.Installer, func(), error) {
	if err := e.paths.EnsureDirs(); err != nil {
		return nil, nil, fmt.Errorf("create install dirs: %w", err)
	}
	receipts, err := bbolt.NewStore(e.paths.ReceiptsDB)
	if err != nil {
		return nil, nil, err
	}

	store := statefile.NewStore(e.paths.StateFile)
	locator := toolchain.NewLocator(e.cfg.CC, e.cfg.CXX)
	builder := cc.NewDriver(locator, e.cfg.Clang)

	ins := app.NewInstaller(e.paths, store, receipts, git.NewCloner(), locator, builder)
	ins.Progress = progress
	return ins, func() { receipts.Close() }, nil
}
