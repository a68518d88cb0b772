package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/alttab"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of alttab",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "alttab version %s\n", strings.TrimSpace(alttab.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
