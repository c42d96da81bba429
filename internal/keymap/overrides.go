package keymap

import "github.com/xpanderd/xpander/internal/evcode"

// applyAZERTY mutates the base QWERTY table into AZERTY: swap A<->Q and
// Z<->W, place M at the QWERTY-semicolon position, and make the digit row
// symbol-primary with accented letters at 2/7/9/0.
func (m *Map) applyAZERTY() {
	m.swap(evcode.KeyA, evcode.KeyQ)
	m.swap(evcode.KeyZ, evcode.KeyW)

	// 'M' moves to the position QWERTY calls semicolon.
	m.set(evcode.KeySemicolon, 'm', 'M')

	// Digit row: symbol is unshifted, digit is shifted.
	m.set(evcode.Key1, '&', '1')
	m.set(evcode.Key2, 'é', '2')
	m.set(evcode.Key3, '"', '3')
	m.set(evcode.Key4, '\'', '4')
	m.set(evcode.Key5, '(', '5')
	m.set(evcode.Key6, '-', '6')
	m.set(evcode.Key7, 'è', '7')
	m.set(evcode.Key8, '_', '8')
	m.set(evcode.Key9, 'ç', '9')
	m.set(evcode.Key0, 'à', '0')

	// Punctuation shifts: the QWERTY M position becomes comma/question,
	// and comma/dot/slash shift one step.
	m.set(evcode.KeyM, ',', '?')
	m.set(evcode.KeyComma, ';', '.')
	m.set(evcode.KeyDot, ':', '/')
	m.set(evcode.KeySlash, '!', '§')
}

// applyQWERTZ swaps Y<->Z. Umlauts are not mapped: the base QWERTY
// punctuation table has no slot for them.
func (m *Map) applyQWERTZ() {
	m.swap(evcode.KeyY, evcode.KeyZ)
}

func (m *Map) swap(a, b evcode.Key) {
	na, okA := m.normal[a]
	nb, okB := m.normal[b]
	if okA && okB {
		m.normal[a], m.normal[b] = nb, na
	}

	sa, okA := m.shifted[a]
	sb, okB := m.shifted[b]
	if okA && okB {
		m.shifted[a], m.shifted[b] = sb, sa
	}
}
