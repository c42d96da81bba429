// Package device discovers evdev keyboard devices, reads their raw key
// events, and normalizes them into the higher-level events the expansion
// engine consumes.
package device

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/xpanderd/xpander/internal/evcode"
	"github.com/xpanderd/xpander/internal/keymap"
)

// hotplugSettle is how long WatchHotplug waits after a device node appears
// before opening it, since udev sets its permissions slightly after the
// node itself shows up.
const hotplugSettle = 300 * time.Millisecond

// EventKind discriminates the normalized keyboard events a Monitor emits.
type EventKind int

const (
	EventCharacter EventKind = iota
	EventWordBoundary
	EventBackspace
	EventEnter
	EventTab
	EventEscape
)

// Event is a single normalized keyboard action. Char is only meaningful
// for EventCharacter and EventWordBoundary.
type Event struct {
	Kind EventKind
	Char rune
}

// Monitor owns the open keyboard devices and the goroutines reading them,
// and normalizes raw key codes into Events using the active layout.
type Monitor struct {
	mu         sync.Mutex
	devices    []*keyboardDevice
	admitted   map[string]struct{}
	rawEvents  chan keyEvent
	layoutName func() string
	wg         sync.WaitGroup
}

// New discovers the system's keyboard devices and prepares a Monitor. The
// layout function is polled on every event so a config hot-reload can
// switch layouts without restarting the monitor.
func New(layoutName func() string) (*Monitor, error) {
	devices, err := discoverKeyboards()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	log.Info().Int("count", len(devices)).Msg("device: keyboards found")
	admitted := make(map[string]struct{}, len(devices))
	for _, d := range devices {
		log.Debug().Str("name", d.name).Str("path", d.path).Msg("device: keyboard")
		admitted[d.path] = struct{}{}
	}

	return &Monitor{
		devices:    devices,
		admitted:   admitted,
		rawEvents:  make(chan keyEvent, 256),
		layoutName: layoutName,
	}, nil
}

// Close releases every open device handle.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.devices {
		d.file.Close()
	}
}

// Run starts one reader goroutine per currently admitted device and
// normalizes their output onto out. It blocks until every device reader
// has returned, including any admitted later by WatchHotplug.
func (m *Monitor) Run(out chan<- Event) {
	m.mu.Lock()
	for _, d := range m.devices {
		m.startReader(d)
	}
	m.mu.Unlock()

	go func() {
		m.wg.Wait()
		close(m.rawEvents)
	}()

	m.normalize(out)
}

// startReader launches the blocking reader goroutine for d. Callers must
// hold m.mu only long enough to append d to m.devices; startReader itself
// does not require the lock.
func (m *Monitor) startReader(d *keyboardDevice) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := readKeyEvents(d.file, m.rawEvents); err != nil {
			log.Error().Err(err).Str("device", d.name).Msg("device: reader stopped")
		}
	}()
}

// normalize turns the merged raw key stream into Events, tracking shift and
// caps-lock state and rebuilding the key map whenever the layout changes.
func (m *Monitor) normalize(out chan<- Event) {
	shiftPressed := false
	capsLock := false
	currentLayout := ""
	mapper := keymap.New("qwerty")

	for raw := range m.rawEvents {
		if layout := m.layoutName(); layout != currentLayout {
			currentLayout = layout
			mapper = keymap.New(currentLayout)
			log.Info().Str("layout", currentLayout).Msg("device: layout switched")
		}

		isPress := raw.Value == 1
		isRelease := raw.Value == 0

		switch raw.Key {
		case evcode.KeyLeftShift, evcode.KeyRightShift:
			shiftPressed = !isRelease
			continue
		case evcode.KeyCapsLock:
			if isPress {
				capsLock = !capsLock
			}
			continue
		}

		if !isPress {
			if raw.Key != evcode.KeyBackspace || isRelease {
				continue
			}
		}

		event, ok := m.mapEvent(raw.Key, shiftPressed, capsLock, mapper)
		if !ok {
			continue
		}
		out <- event
	}
}

func (m *Monitor) mapEvent(key evcode.Key, shift, capsLock bool, mapper *keymap.Map) (Event, bool) {
	switch key {
	case evcode.KeyBackspace:
		return Event{Kind: EventBackspace}, true
	case evcode.KeyEnter, evcode.KeyKPEnter:
		return Event{Kind: EventEnter}, true
	case evcode.KeyTab:
		return Event{Kind: EventTab}, true
	case evcode.KeyEsc:
		return Event{Kind: EventEscape}, true
	}

	ch, ok := mapper.MapKey(key, shift, capsLock)
	if !ok {
		return Event{}, false
	}
	if ch == ' ' || isPunct(ch) {
		return Event{Kind: EventWordBoundary, Char: ch}, true
	}
	return Event{Kind: EventCharacter, Char: ch}, true
}

func isPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') || (r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}

// WatchHotplug watches inputDir for new device nodes appearing and admits
// each one into the running Monitor: it waits hotplugSettle for udev to
// finish setting up the node's permissions, then opens it and, if it's a
// keyboard, starts reading it alongside the devices found at startup. A
// path already admitted (by a previous hot-plug event or by New) is never
// re-admitted, since udev commonly fires more than one Create event for a
// single physical plug.
func (m *Monitor) WatchHotplug() (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting hot-plug watcher: %w", err)
	}
	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", inputDir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create != 0 {
					go m.admitHotplugged(event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("device: hot-plug watcher error")
			}
		}
	}()

	return watcher.Close, nil
}

// isEventNodePath reports whether path looks like an evdev event node
// (/dev/input/event*), the same prefix check discoverKeyboards applies to
// directory entries at startup.
func isEventNodePath(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "event")
}

// markAdmitted records path as admitted and reports whether it was newly
// admitted (false if it had already been admitted before).
func (m *Monitor) markAdmitted(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admitted[path]; ok {
		return false
	}
	m.admitted[path] = struct{}{}
	return true
}

// admitHotplugged settles, opens, and (if path is a keyboard) starts
// reading a newly appeared device node. Safe to call concurrently for
// distinct paths, and a no-op for a path already admitted.
func (m *Monitor) admitHotplugged(path string) {
	if !isEventNodePath(path) {
		return
	}
	if !m.markAdmitted(path) {
		return
	}

	time.Sleep(hotplugSettle)

	dev, err := openIfKeyboard(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("device: could not open hot-plugged candidate")
		return
	}
	if dev == nil {
		return
	}

	m.mu.Lock()
	m.devices = append(m.devices, dev)
	m.mu.Unlock()

	log.Info().Str("name", dev.name).Str("path", dev.path).Msg("device: hot-plugged keyboard admitted")
	m.startReader(dev)
}
