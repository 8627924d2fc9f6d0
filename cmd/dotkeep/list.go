package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved profiles",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(cmd.Context()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context) error {
	store, err := newStore()
	if err != nil {
		return err
	}

	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No profiles saved yet.")
		return nil
	}

	// Only style output on a terminal; piped output stays plain.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(termenv.String("Dotkeep profiles:").Bold())
		fmt.Println(termenv.String("ID\tNAME").Faint())
	} else {
		fmt.Println("Dotkeep profiles:")
		fmt.Println("ID\tNAME")
	}
	for i, name := range names {
		fmt.Printf("%d\t%s\n", i+1, name)
	}
	return nil
}
