package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xpanderd/xpander/internal/config"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the global enabled flag in the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(configPathFlag)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		enabled, err := mgr.ToggleEnabled()
		if err != nil {
			return fmt.Errorf("toggling enabled flag: %w", err)
		}

		state := "disabled"
		if enabled {
			state = "enabled"
		}
		fmt.Printf("expansion %s\n", state)
		return nil
	},
}
