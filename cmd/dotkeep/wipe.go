package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all saved profiles",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWipe(cmd.Context()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(wipeCmd)
}

func runWipe(ctx context.Context) error {
	fmt.Print(`This will wipe all your profiles. Enter "WIPE" to continue: `)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	if strings.TrimSpace(answer) != "WIPE" {
		fmt.Println("Aborting.")
		return nil
	}

	store, err := newStore()
	if err != nil {
		return err
	}
	if err := store.Wipe(ctx); err != nil {
		return err
	}
	fmt.Println("Removed all profiles!")
	return nil
}
