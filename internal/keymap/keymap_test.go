package keymap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xpanderd/xpander/internal/evcode"
)

func TestQWERTYLettersAndCapsLock(t *testing.T) {
	m := New("qwerty")

	ch, ok := m.MapKey(evcode.KeyA, false, false)
	require.True(t, ok)
	require.Equal(t, 'a', ch)

	ch, _ = m.MapKey(evcode.KeyA, true, false)
	require.Equal(t, 'A', ch)

	ch, _ = m.MapKey(evcode.KeyA, false, true)
	require.Equal(t, 'A', ch, "caps lock uppercases an unshifted letter")

	ch, _ = m.MapKey(evcode.KeyA, true, true)
	require.Equal(t, 'a', ch, "caps lock + shift lowercases a letter")
}

func TestQWERTYNumbersUnaffectedByCapsLock(t *testing.T) {
	m := New("qwerty")

	ch, ok := m.MapKey(evcode.Key1, false, false)
	require.True(t, ok)
	require.Equal(t, '1', ch)

	ch, _ = m.MapKey(evcode.Key1, true, false)
	require.Equal(t, '!', ch)

	// Caps lock must not affect non-alphabetic results.
	ch, _ = m.MapKey(evcode.Key1, false, true)
	require.Equal(t, '1', ch)
}

func TestQWERTYPunctuation(t *testing.T) {
	m := New("qwerty")

	ch, ok := m.MapKey(evcode.KeySemicolon, false, false)
	require.True(t, ok)
	require.Equal(t, ';', ch)

	ch, _ = m.MapKey(evcode.KeySemicolon, true, false)
	require.Equal(t, ':', ch)
}

func TestUnmappedKeyReturnsFalse(t *testing.T) {
	m := New("qwerty")
	_, ok := m.MapKey(evcode.KeyLeftCtrl, false, false)
	require.False(t, ok)
}

func TestAZERTYSwapsAndMPosition(t *testing.T) {
	m := New("azerty")

	ch, ok := m.MapKey(evcode.KeyQ, false, false)
	require.True(t, ok)
	require.Equal(t, 'a', ch, "Q physical position types 'a' on AZERTY")

	ch, _ = m.MapKey(evcode.KeyA, false, false)
	require.Equal(t, 'q', ch, "A physical position types 'q' on AZERTY")

	ch, _ = m.MapKey(evcode.KeySemicolon, false, false)
	require.Equal(t, 'm', ch, "M sits where QWERTY's semicolon is")

	ch, ok = m.MapKey(evcode.Key1, false, false)
	require.True(t, ok)
	require.Equal(t, '&', ch, "AZERTY digit row is symbol-primary")

	ch, _ = m.MapKey(evcode.Key1, true, false)
	require.Equal(t, '1', ch)
}

func TestQWERTZSwapsYAndZ(t *testing.T) {
	m := New("qwertz")

	ch, _ := m.MapKey(evcode.KeyY, false, false)
	require.Equal(t, 'z', ch)

	ch, _ = m.MapKey(evcode.KeyZ, false, false)
	require.Equal(t, 'y', ch)
}

func TestColemakAndDvorakFallBackToQWERTY(t *testing.T) {
	for _, layout := range []string{"colemak", "dvorak"} {
		m := New(layout)
		ch, ok := m.MapKey(evcode.KeyA, false, false)
		require.True(t, ok)
		require.Equal(t, 'a', ch, "layout %s should default to QWERTY", layout)
	}
}
