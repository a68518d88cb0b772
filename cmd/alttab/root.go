package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/alttab/internal/cli"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alttab",
	Short: "Alt-tab style focus cycling for i3",
	Long: `alttab remembers the order in which windows (or workspaces) were focused and cycles
through them most-recent first, like alt-tab on other desktops.

Run it without arguments to start the watcher, then bind --switch and --rev-switch to keys:

  exec --no-startup-id alttab
  bindsym Mod1+Tab exec --no-startup-id alttab --switch
  bindsym Mod1+Shift+Tab exec --no-startup-id alttab --rev-switch
  bindsym --release Alt_L nop`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		forward, _ := cmd.Flags().GetBool("switch")
		backward, _ := cmd.Flags().GetBool("rev-switch")
		opts := sharedOptions(cmd)

		switch {
		case forward && backward:
			return errors.New("--switch and --rev-switch are mutually exclusive")
		case forward:
			return cli.RunSend(opts, domain.CommandSwitch)
		case backward:
			return cli.RunSend(opts, domain.CommandReverseSwitch)
		}
		return cli.RunWatch(opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sharedOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	mode, _ := cmd.Flags().GetString("mode")
	socket, _ := cmd.Flags().GetString("socket")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return cli.Options{
		ConfigPath: configPath,
		Mode:       mode,
		Socket:     socket,
		Debug:      debug,
		Quiet:      quiet,
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/alttab/config.yaml)")
	rootCmd.PersistentFlags().StringP("mode", "m", "", "Item class to cycle: windows or workspaces")
	rootCmd.PersistentFlags().StringP("socket", "s", "", "Control socket path (default depends on mode)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress banner and status messages")

	rootCmd.Flags().Bool("switch", false, "Switch to the next item in focus history")
	rootCmd.Flags().Bool("rev-switch", false, "Switch to the previous item in focus history")
}
