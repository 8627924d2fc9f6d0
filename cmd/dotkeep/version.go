package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dotkeep "github.com/aretw0/dotkeep"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dotkeep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotkeep version %s\n", strings.TrimSpace(dotkeep.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
