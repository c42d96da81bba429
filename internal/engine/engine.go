// Package engine ties the typing buffer, variable expansion, and output
// synthesis together into the daemon's main event loop.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/xpanderd/xpander/internal/config"
	"github.com/xpanderd/xpander/internal/device"
	"github.com/xpanderd/xpander/internal/expand"
	"github.com/xpanderd/xpander/internal/matcher"
	"github.com/xpanderd/xpander/internal/synth"
)

// Engine owns the matcher, expander, and synthesizer, and reacts to
// normalized keyboard events and configuration reloads. It is not safe for
// concurrent use from more than one goroutine at a time; Run is the only
// entry point expected to touch its state once started.
type Engine struct {
	matcher  *matcher.Matcher
	expander *expand.Expander
	synth    *synth.Synthesizer

	mu      sync.RWMutex
	enabled bool
}

// New builds an Engine from an initial configuration snapshot.
func New(cfg config.Config) *Engine {
	e := &Engine{
		matcher:  matcher.New(),
		expander: expand.New(cfg.Variables),
		enabled:  cfg.Settings.Enabled,
	}
	e.synth = synth.New(int(cfg.Settings.KeystrokeDelayMs), cfg.Settings.YdotoolSocket)
	e.matcher.Reload(config.FlattenSnippets(cfg.Snippets))
	return e
}

// Enabled reports whether expansion is currently active.
func (e *Engine) Enabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetEnabled flips the engine's active state, independent of persisted
// configuration (Reload calls this with the reloaded config's flag).
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	e.enabled = enabled
	e.mu.Unlock()
}

// Reload swaps in a freshly loaded configuration: variables, snippets, the
// synthesizer's keystroke delay and socket, and the enabled flag all update
// atomically from the engine's perspective.
func (e *Engine) Reload(cfg config.Config) {
	e.expander.SetVariables(cfg.Variables)
	e.matcher.Reload(config.FlattenSnippets(cfg.Snippets))
	e.synth = synth.New(int(cfg.Settings.KeystrokeDelayMs), cfg.Settings.YdotoolSocket)
	e.SetEnabled(cfg.Settings.Enabled)
	log.Info().Msg("engine: configuration reloaded")
}

// Run drains events and reloads until both channels are closed or ctx is
// canceled. Each event is handled synchronously, matching the engine's
// single-goroutine ownership of matcher/expander/synth state.
func (e *Engine) Run(ctx context.Context, events <-chan device.Event, reloads <-chan config.Config) {
	log.Info().Msg("engine: started")
	defer log.Info().Msg("engine: stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				if reloads == nil {
					return
				}
				continue
			}
			e.handleEvent(ctx, ev)
		case cfg, ok := <-reloads:
			if !ok {
				reloads = nil
				if events == nil {
					return
				}
				continue
			}
			e.Reload(cfg)
		}
	}
}

func (e *Engine) handleEvent(ctx context.Context, ev device.Event) {
	if !e.Enabled() {
		return
	}

	switch ev.Kind {
	case device.EventCharacter, device.EventWordBoundary:
		e.matcher.PushChar(ev.Char)
		e.checkAndExpand(ctx)
	case device.EventBackspace:
		e.matcher.Backspace()
	case device.EventEnter, device.EventTab, device.EventEscape:
		e.matcher.Clear()
	}
}

func (e *Engine) checkAndExpand(ctx context.Context) {
	result, ok := e.matcher.CheckMatch()
	if !ok {
		return
	}

	log.Debug().Str("trigger", result.TypedTrigger).Msg("engine: match found")
	e.matcher.RemoveLast(result.RunesToDelete)

	expansion, err := e.expander.Expand(result)
	if err != nil {
		log.Error().Err(err).Str("trigger", result.TypedTrigger).Msg("engine: expansion failed")
		return
	}

	if err := e.synth.Output(ctx, expansion); err != nil {
		log.Error().Err(err).Str("trigger", result.TypedTrigger).Msg("engine: output failed")
		return
	}
	log.Debug().Msg("engine: expansion complete")
}
