package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import an exported profile archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, err := runImport(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Profile %q imported successfully!\n", name)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(ctx context.Context, path string) (string, error) {
	store, err := newStore()
	if err != nil {
		return "", err
	}

	fmt.Println("Importing profile. This may take a minute or two...")
	return store.Import(ctx, path)
}
