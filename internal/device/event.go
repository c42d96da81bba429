package device

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/xpanderd/xpander/internal/evcode"
)

// evKeyMax bounds the EV_KEY bitmask read by EVIOCGBIT; comfortably above
// every key code this daemon tracks.
const evKeyMax = 768

// rawEventSize is sizeof(struct input_event) on a 64-bit Linux kernel:
// two timeval fields (16 bytes total on LP64), then type, code, value.
const rawEventSize = 24

// evTypeKey (EV_KEY) is struct input_event's .type value for key press/release/repeat.
const evTypeKey = 0x01

// rawEvent decodes one struct input_event from a 24-byte little-endian
// buffer, discarding the timestamp.
type rawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

func decodeRawEvent(buf []byte) (rawEvent, error) {
	if len(buf) < rawEventSize {
		return rawEvent{}, fmt.Errorf("short input_event read: %d bytes", len(buf))
	}
	return rawEvent{
		Type:  binary.LittleEndian.Uint16(buf[16:18]),
		Code:  binary.LittleEndian.Uint16(buf[18:20]),
		Value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}, nil
}

// keyEvent is a normalized (key, value) pair read off a device, where value
// is 0 for release, 1 for press, 2 for autorepeat.
type keyEvent struct {
	Key   evcode.Key
	Value int32
}

// readKeyEvents reads raw input_events from r until EOF or error, sending
// each EV_KEY event to out. It runs on its own goroutine per device, the
// Go analogue of a dedicated blocking-read OS thread.
func readKeyEvents(r io.Reader, out chan<- keyEvent) error {
	buf := make([]byte, rawEventSize)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		ev, err := decodeRawEvent(buf)
		if err != nil {
			return err
		}
		if ev.Type != evTypeKey {
			continue
		}
		out <- keyEvent{Key: evcode.Key(ev.Code), Value: ev.Value}
	}
}
