package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xpanderd/xpander/internal/evcode"
	"github.com/xpanderd/xpander/internal/keymap"
)

func TestMapEventLetterProducesCharacter(t *testing.T) {
	m := &Monitor{}
	mapper := keymap.New("qwerty")

	ev, ok := m.mapEvent(evcode.KeyA, false, false, mapper)
	require.True(t, ok)
	require.Equal(t, EventCharacter, ev.Kind)
	require.Equal(t, 'a', ev.Char)
}

func TestMapEventSpaceIsWordBoundary(t *testing.T) {
	m := &Monitor{}
	mapper := keymap.New("qwerty")

	ev, ok := m.mapEvent(evcode.KeySpace, false, false, mapper)
	require.True(t, ok)
	require.Equal(t, EventWordBoundary, ev.Kind)
}

func TestMapEventControlKeys(t *testing.T) {
	m := &Monitor{}
	mapper := keymap.New("qwerty")

	cases := []struct {
		key  evcode.Key
		kind EventKind
	}{
		{evcode.KeyBackspace, EventBackspace},
		{evcode.KeyEnter, EventEnter},
		{evcode.KeyTab, EventTab},
		{evcode.KeyEsc, EventEscape},
	}
	for _, c := range cases {
		ev, ok := m.mapEvent(c.key, false, false, mapper)
		require.True(t, ok)
		require.Equal(t, c.kind, ev.Kind)
	}
}

func TestMapEventUnmappedKeyIgnored(t *testing.T) {
	m := &Monitor{}
	mapper := keymap.New("qwerty")

	_, ok := m.mapEvent(evcode.KeyLeftCtrl, false, false, mapper)
	require.False(t, ok)
}

func TestIsPunctCoversCommonAsciiPunctuation(t *testing.T) {
	for _, r := range []rune{'!', ',', '.', ';', '?', '_'} {
		require.True(t, isPunct(r), "%q should be punctuation", r)
	}
	require.False(t, isPunct('a'))
	require.False(t, isPunct('9'))
}

func TestIsEventNodePathAcceptsOnlyEventNodes(t *testing.T) {
	require.True(t, isEventNodePath("/dev/input/event5"))
	require.False(t, isEventNodePath("/dev/input/js0"))
	require.False(t, isEventNodePath("/dev/input/mice"))
}

func TestMarkAdmittedIsTrueOnlyOnce(t *testing.T) {
	m := &Monitor{admitted: map[string]struct{}{}}

	require.True(t, m.markAdmitted("/dev/input/event9"), "first admission should succeed")
	require.False(t, m.markAdmitted("/dev/input/event9"), "repeat admission of the same path must be rejected")
	require.True(t, m.markAdmitted("/dev/input/event10"), "a distinct path should still admit")
}

func TestAdmitHotpluggedSkipsNonEventPaths(t *testing.T) {
	m := &Monitor{admitted: map[string]struct{}{}}

	m.admitHotplugged("/dev/input/mice")

	require.Empty(t, m.admitted, "non-event nodes should never be recorded as admitted")
}

func TestAdmitHotpluggedIsNoopForAlreadyAdmittedPath(t *testing.T) {
	m := &Monitor{admitted: map[string]struct{}{"/dev/input/event3": {}}}

	m.admitHotplugged("/dev/input/event3")

	require.Len(t, m.devices, 0, "a repeat Create event for an already-admitted path must not reopen it")
}
