// Package cmd wires the daemon's command-line surface: running the
// expansion engine, launching the configuration editor, and checking
// prerequisites.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPathFlag string
	guiFlag        bool
	verboseFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "xpanderd",
	Short: "Background text-expansion daemon for Linux",
	Long: `xpanderd watches keyboard input for configured triggers and
expands them into their replacement text via ydotool.

Run with no arguments to start the daemon. Use --gui to open the
snippet editor instead of starting the daemon.`,
	SilenceUsage: true,
	RunE:         runDaemon,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "path to config.yaml (default: ~/.config/xpander/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&guiFlag, "gui", "g", false, "open the snippet editor instead of starting the daemon")

	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
