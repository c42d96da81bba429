// Package keymap maps physical key codes and modifier state to characters,
// per layout, by mutating a base QWERTY table with layout-specific
// overrides rather than keeping a full table per layout.
package keymap

import "github.com/xpanderd/xpander/internal/evcode"

// Map holds the unshifted and shifted key->character tables for one layout.
type Map struct {
	normal  map[evcode.Key]rune
	shifted map[evcode.Key]rune
}

// New builds the key map for the named layout. Unknown layout names fall
// back to QWERTY, as does colemak/dvorak (reserved, unimplemented).
func New(layout string) *Map {
	m := &Map{
		normal:  make(map[evcode.Key]rune, 64),
		shifted: make(map[evcode.Key]rune, 64),
	}
	m.loadQWERTYBase()

	switch layout {
	case "azerty":
		m.applyAZERTY()
	case "qwertz":
		m.applyQWERTZ()
	case "colemak", "dvorak":
		// Reserved: no override table exists yet, default to QWERTY.
	}

	return m
}

func (m *Map) set(key evcode.Key, lower, upper rune) {
	m.normal[key] = lower
	m.shifted[key] = upper
}

func (m *Map) loadQWERTYBase() {
	letters := []struct {
		key          evcode.Key
		lower, upper rune
	}{
		{evcode.KeyQ, 'q', 'Q'}, {evcode.KeyW, 'w', 'W'}, {evcode.KeyE, 'e', 'E'},
		{evcode.KeyR, 'r', 'R'}, {evcode.KeyT, 't', 'T'}, {evcode.KeyY, 'y', 'Y'},
		{evcode.KeyU, 'u', 'U'}, {evcode.KeyI, 'i', 'I'}, {evcode.KeyO, 'o', 'O'},
		{evcode.KeyP, 'p', 'P'}, {evcode.KeyA, 'a', 'A'}, {evcode.KeyS, 's', 'S'},
		{evcode.KeyD, 'd', 'D'}, {evcode.KeyF, 'f', 'F'}, {evcode.KeyG, 'g', 'G'},
		{evcode.KeyH, 'h', 'H'}, {evcode.KeyJ, 'j', 'J'}, {evcode.KeyK, 'k', 'K'},
		{evcode.KeyL, 'l', 'L'}, {evcode.KeyZ, 'z', 'Z'}, {evcode.KeyX, 'x', 'X'},
		{evcode.KeyC, 'c', 'C'}, {evcode.KeyV, 'v', 'V'}, {evcode.KeyB, 'b', 'B'},
		{evcode.KeyN, 'n', 'N'}, {evcode.KeyM, 'm', 'M'},
	}
	for _, l := range letters {
		m.set(l.key, l.lower, l.upper)
	}

	numbers := []struct {
		key        evcode.Key
		num, shift rune
	}{
		{evcode.Key1, '1', '!'}, {evcode.Key2, '2', '@'}, {evcode.Key3, '3', '#'},
		{evcode.Key4, '4', '$'}, {evcode.Key5, '5', '%'}, {evcode.Key6, '6', '^'},
		{evcode.Key7, '7', '&'}, {evcode.Key8, '8', '*'}, {evcode.Key9, '9', '('},
		{evcode.Key0, '0', ')'},
	}
	for _, n := range numbers {
		m.set(n.key, n.num, n.shift)
	}

	punct := []struct {
		key         evcode.Key
		norm, shift rune
	}{
		{evcode.KeyMinus, '-', '_'},
		{evcode.KeyEqual, '=', '+'},
		{evcode.KeyLeftBrace, '[', '{'},
		{evcode.KeyRightBrace, ']', '}'},
		{evcode.KeySemicolon, ';', ':'},
		{evcode.KeyApostrophe, '\'', '"'},
		{evcode.KeyGrave, '`', '~'},
		{evcode.KeyBackslash, '\\', '|'},
		{evcode.KeyComma, ',', '<'},
		{evcode.KeyDot, '.', '>'},
		{evcode.KeySlash, '/', '?'},
		{evcode.KeySpace, ' ', ' '},
	}
	for _, p := range punct {
		m.set(p.key, p.norm, p.shift)
	}
}

// MapKey returns the character a key press produces under the given
// modifier state. Effective case is shift XOR (caps lock AND is-alpha):
// Caps Lock only ever affects alphabetic results.
func (m *Map) MapKey(key evcode.Key, shift, capsLock bool) (rune, bool) {
	var ch rune
	var ok bool
	if shift {
		ch, ok = m.shifted[key]
	} else {
		ch, ok = m.normal[key]
	}
	if !ok {
		return 0, false
	}

	if isAlpha(ch) && capsLock {
		if shift {
			ch = toLower(ch)
		} else {
			ch = toUpper(ch)
		}
	}
	return ch, true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
