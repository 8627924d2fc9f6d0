package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/aretw0/dotkeep/internal/cli"
	"github.com/aretw0/dotkeep/internal/logging"
	"github.com/aretw0/dotkeep/internal/paths"
	"github.com/aretw0/dotkeep/internal/profile"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dotkeep",
	Short: "Dotkeep saves and restores desktop configuration profiles",
	Long: `Dotkeep backs up the configuration files listed in its manifest into named
profiles and restores them on demand. Profiles can be exported as portable
archives and imported on another machine.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Commands run under a context that is cancelled on SIGINT or SIGTERM, so an
// interrupted copy stops between entries instead of mid-profile.
func Execute() {
	sigCtx := cli.NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if err := rootCmd.ExecuteContext(sigCtx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newStore wires a profile store against the real filesystem and the running
// user's directories.
func newStore() (*profile.Store, error) {
	dirs, err := paths.Default()
	if err != nil {
		return nil, err
	}

	store := profile.NewStore(osfs.New("/"), dirs, logging.New(logging.Level(verbose)))
	if err := store.EnsureLayout(); err != nil {
		return nil, err
	}
	return store, nil
}
