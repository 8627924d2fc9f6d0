package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRemove(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Profile removed successfully.")
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(ctx context.Context, name string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	return store.Remove(ctx, name)
}
