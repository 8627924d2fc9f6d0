package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Apply a saved profile",
	Long:  `Copies the files of a saved profile back to the locations its manifest declares.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runApply(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Profile applied successfully! Log out and log back in to see all changes.")
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(ctx context.Context, name string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	return store.Apply(ctx, name)
}
