package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xpanderd/xpander/internal/xlog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the system is ready to run the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		xlog.Setup(verboseFlag)
		if err := checkPrerequisites(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("prerequisites OK")
		return nil
	},
}

// warnIfNotInInputGroup logs a warning (never a hard failure) when the
// current user's group list doesn't include "input" — keyboard monitoring
// needs read access to /dev/input/event*, which that group grants.
func warnIfNotInInputGroup() {
	out, err := exec.Command("groups").Output()
	if err != nil {
		log.Warn().Err(err).Msg("could not check group membership")
		return
	}
	if !strings.Contains(string(out), "input") {
		log.Warn().Msg("user may not be in the 'input' group; if keyboard monitoring fails, run: sudo usermod -aG input $USER, then log out and back in")
	}
}
