package main

import (
	"github.com/aretw0/alttab/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track focus changes and serve switch commands",
	Long:  `Starts the daemon: it follows i3 focus events and answers --switch / --rev-switch clients on the control socket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunWatch(sharedOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
