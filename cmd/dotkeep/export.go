package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a saved profile as a portable archive",
	Long:  `Packs a saved profile, together with a fresh copy of the manifest's export section, into a single archive that can be imported on another machine.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("directory")
		name, _ := cmd.Flags().GetString("name")
		force, _ := cmd.Flags().GetBool("force")

		target, err := runExport(cmd.Context(), args[0], dir, name, force)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully exported to %s\n", target)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("directory", "d", "", "Output directory (defaults to the working directory)")
	exportCmd.Flags().StringP("name", "n", "", "Archive name (defaults to the profile name)")
	exportCmd.Flags().BoolP("force", "f", false, "Overwrite an existing archive")
}

func runExport(ctx context.Context, profileName, dir, archiveName string, force bool) (string, error) {
	store, err := newStore()
	if err != nil {
		return "", err
	}

	// The store takes an explicit directory; the working-directory default
	// is a CLI concern.
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
	}

	fmt.Println("Exporting profile. This may take a minute or two...")
	return store.Export(ctx, profileName, dir, archiveName, force)
}
