package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xpanderd/xpander/internal/config"
	"github.com/xpanderd/xpander/internal/device"
	"github.com/xpanderd/xpander/internal/engine"
	"github.com/xpanderd/xpander/internal/gui"
	"github.com/xpanderd/xpander/internal/synth"
	"github.com/xpanderd/xpander/internal/xlog"
)

func runDaemon(cmd *cobra.Command, args []string) error {
	xlog.Setup(verboseFlag)

	if guiFlag {
		return gui.Launch(configPathFlag)
	}

	log.Info().Msg("starting xpander text expansion daemon")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := checkPrerequisites(ctx); err != nil {
		return err
	}

	mgr, err := config.NewManager(configPathFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	initial := mgr.Snapshot()
	log.Info().
		Int("snippets", len(config.FlattenSnippets(initial.Snippets))).
		Str("path", mgr.Path()).
		Msg("configuration loaded")

	eng := engine.New(initial)

	monitor, err := device.New(func() string { return mgr.Snapshot().Settings.Layout })
	if err != nil {
		return fmt.Errorf("starting keyboard monitor: %w", err)
	}
	defer monitor.Close()

	events := make(chan device.Event, 256)
	go monitor.Run(events)

	stopHotplug, err := monitor.WatchHotplug()
	if err != nil {
		return fmt.Errorf("starting hot-plug watcher: %w", err)
	}
	defer stopHotplug()

	reloads, stopWatch, err := mgr.Watch()
	if err != nil {
		return fmt.Errorf("starting configuration watcher: %w", err)
	}
	defer stopWatch()

	eng.Run(ctx, events, reloads)
	return nil
}

func checkPrerequisites(ctx context.Context) error {
	if err := synth.CheckAvailable(ctx); err != nil {
		return fmt.Errorf("%w\ninstall ydotool with: sudo apt install ydotool\nthen enable it: sudo systemctl enable --now ydotool", err)
	}
	warnIfNotInInputGroup()
	return nil
}
