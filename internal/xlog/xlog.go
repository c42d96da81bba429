// Package xlog sets up the daemon's structured logger.
package xlog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs a console-formatted zerolog logger as the global logger,
// at the given verbosity. verbose raises the level to debug; otherwise the
// daemon logs at info and above.
func Setup(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
}
