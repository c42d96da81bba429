// Package evcode defines the Linux kernel key codes (from
// include/uapi/linux/input-event-codes.h) that the keymap and device
// packages share, so neither depends on the other's internals.
package evcode

// Key is a Linux evdev key code, as found in struct input_event's .code
// field when .type == EV_KEY.
type Key uint16

// A subset of linux/input-event-codes.h covering the letters, digits,
// common punctuation, and the control keys a text-expansion daemon needs
// to track explicitly.
const (
	KeyEsc        Key = 1
	Key1          Key = 2
	Key2          Key = 3
	Key3          Key = 4
	Key4          Key = 5
	Key5          Key = 6
	Key6          Key = 7
	Key7          Key = 8
	Key8          Key = 9
	Key9          Key = 10
	Key0          Key = 11
	KeyMinus      Key = 12
	KeyEqual      Key = 13
	KeyBackspace  Key = 14
	KeyTab        Key = 15
	KeyQ          Key = 16
	KeyW          Key = 17
	KeyE          Key = 18
	KeyR          Key = 19
	KeyT          Key = 20
	KeyY          Key = 21
	KeyU          Key = 22
	KeyI          Key = 23
	KeyO          Key = 24
	KeyP          Key = 25
	KeyLeftBrace  Key = 26
	KeyRightBrace Key = 27
	KeyEnter      Key = 28
	KeyLeftCtrl   Key = 29
	KeyA          Key = 30
	KeyS          Key = 31
	KeyD          Key = 32
	KeyF          Key = 33
	KeyG          Key = 34
	KeyH          Key = 35
	KeyJ          Key = 36
	KeyK          Key = 37
	KeyL          Key = 38
	KeySemicolon  Key = 39
	KeyApostrophe Key = 40
	KeyGrave      Key = 41
	KeyLeftShift  Key = 42
	KeyBackslash  Key = 43
	KeyZ          Key = 44
	KeyX          Key = 45
	KeyC          Key = 46
	KeyV          Key = 47
	KeyB          Key = 48
	KeyN          Key = 49
	KeyM          Key = 50
	KeyComma      Key = 51
	KeyDot        Key = 52
	KeySlash      Key = 53
	KeyRightShift Key = 54
	KeyLeftAlt    Key = 56
	KeySpace      Key = 57
	KeyCapsLock   Key = 58
	KeyKPEnter    Key = 96
	KeyRightCtrl  Key = 97
	KeyRightAlt   Key = 100
	KeyLeft       Key = 105
)

// letterKeys is used by the device package's is-this-a-keyboard heuristic:
// a keyboard must expose the full A-Z range plus Enter and Space.
var letterKeys = []Key{
	KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
	KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
}

// LetterKeys returns the key codes for the 26 Latin letters.
func LetterKeys() []Key { return letterKeys }
