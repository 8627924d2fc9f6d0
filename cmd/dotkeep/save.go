package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current configuration as a profile",
	Long:  `Copies every entry of the manifest's save section into a named profile, stripping the configured groups and keys from copied files.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		if err := runSave(cmd.Context(), args[0], force); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Profile saved successfully!")
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().BoolP("force", "f", false, "Overwrite an existing profile")
}

func runSave(ctx context.Context, name string, force bool) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	return store.Save(ctx, name, force)
}
