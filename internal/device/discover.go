package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xpanderd/xpander/internal/evcode"
)

// ErrNoDevices is returned when no keyboard-capable device could be opened
// under inputDir.
var ErrNoDevices = fmt.Errorf("no keyboard devices found; is this user in the 'input' group?")

// inputDir is where Linux exposes evdev character devices.
const inputDir = "/dev/input"

// keyboardDevice pairs an open handle with the name reported by the kernel.
type keyboardDevice struct {
	file *os.File
	name string
	path string
}

// discoverKeyboards scans inputDir for event* nodes and opens every one
// that exposes full keyboard capability. A device that fails to open (most
// commonly due to permissions) is skipped and logged, not fatal.
func discoverKeyboards() ([]*keyboardDevice, error) {
	if _, err := os.Stat(inputDir); err != nil {
		return nil, fmt.Errorf("%s not found: %w", inputDir, err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputDir, err)
	}

	var keyboards []*keyboardDevice
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())

		dev, err := openIfKeyboard(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("device: could not open candidate device")
			continue
		}
		if dev != nil {
			keyboards = append(keyboards, dev)
		}
	}

	return keyboards, nil
}

// openIfKeyboard opens path and returns a *keyboardDevice if it is a
// keyboard, nil (and no error) if it opened fine but isn't one.
func openIfKeyboard(path string) (*keyboardDevice, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	if !isKeyboard(int(f.Fd())) {
		f.Close()
		return nil, nil
	}

	name := deviceName(int(f.Fd()))
	if name == "" {
		name = path
	}

	return &keyboardDevice{file: f, name: name, path: path}, nil
}

// isKeyboard requires the full A-Z range plus Enter and Space, the same
// heuristic a desktop compositor uses to separate keyboards from mice and
// joysticks that also emit a stray EV_KEY or two.
func isKeyboard(fd int) bool {
	bits := supportedKeyBits(fd)
	if bits == nil {
		return false
	}

	for _, k := range evcode.LetterKeys() {
		if !bitSet(bits, int(k)) {
			return false
		}
	}
	return bitSet(bits, int(evcode.KeyEnter)) && bitSet(bits, int(evcode.KeySpace))
}
