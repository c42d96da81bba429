// Package synth sends expansion output to the active window via ydotool,
// the uinput-backed tool that works across Wayland compositors and X11
// alike.
package synth

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/xpanderd/xpander/internal/expand"
)

// interKeyDelay is the pause ydotool leaves between the backspace burst,
// the typed text, and the cursor-repositioning arrow keys, so compositors
// that coalesce rapid synthetic input don't drop events.
const interKeyDelay = 10 * time.Millisecond

// Synthesizer drives ydotool subprocesses to realize an expand.Result.
type Synthesizer struct {
	keystrokeDelayMs int
	socketPath       string
}

// New returns a Synthesizer. A non-empty socketPath is forwarded to every
// ydotool invocation as YDOTOOL_SOCKET, for setups running ydotoold on a
// non-default socket.
func New(keystrokeDelayMs int, socketPath string) *Synthesizer {
	return &Synthesizer{keystrokeDelayMs: keystrokeDelayMs, socketPath: socketPath}
}

// CheckAvailable verifies ydotool is installed and, for versions that
// require it, that ydotoold is running.
func CheckAvailable(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "which", "ydotool").Run(); err != nil {
		return fmt.Errorf("ydotool not found; install it and enable ydotoold: %w", err)
	}

	if err := exec.CommandContext(ctx, "which", "ydotoold").Run(); err != nil {
		// 0.1.x releases have no daemon binary at all; nothing more to check.
		return nil
	}

	if err := exec.CommandContext(ctx, "pgrep", "ydotoold").Run(); err != nil {
		return fmt.Errorf("ydotoold is not running; start it with 'sudo systemctl start ydotool'")
	}
	return nil
}

// Output realizes an expansion: delete the trigger, type the replacement,
// then walk the cursor back if the snippet asked for a cursor position.
func (s *Synthesizer) Output(ctx context.Context, result expand.Result) error {
	if result.RunesToDelete > 0 {
		if err := s.backspace(ctx, result.RunesToDelete); err != nil {
			return err
		}
		time.Sleep(interKeyDelay)
	}

	if err := s.typeText(ctx, result.Text); err != nil {
		return err
	}

	if result.CursorOffset != nil && *result.CursorOffset > 0 {
		time.Sleep(interKeyDelay)
		if err := s.moveCursorLeft(ctx, *result.CursorOffset); err != nil {
			return err
		}
	}
	return nil
}

func (s *Synthesizer) backspace(ctx context.Context, count int) error {
	return s.run(ctx, "key", "--repeat", strconv.Itoa(count), "BackSpace")
}

func (s *Synthesizer) typeText(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	return s.run(ctx, "type", "--key-delay", strconv.Itoa(s.keystrokeDelayMs), "--", text)
}

func (s *Synthesizer) moveCursorLeft(ctx context.Context, count int) error {
	return s.run(ctx, "key", "--repeat", strconv.Itoa(count), "Left")
}

func (s *Synthesizer) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "ydotool", args...)
	if s.socketPath != "" {
		cmd.Env = append(cmd.Environ(), "YDOTOOL_SOCKET="+s.socketPath)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ydotool %v failed: %w: %s", args, err, stderr.String())
	}
	return nil
}
