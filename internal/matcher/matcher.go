// Package matcher maintains a rolling typing buffer and checks it against
// literal and regex triggers on every keystroke.
package matcher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/coregx/coregex"
	"github.com/rs/zerolog/log"

	"github.com/xpanderd/xpander/internal/config"
	"github.com/xpanderd/xpander/internal/trie"
)

const (
	defaultMaxBufferSize = 256
	bufferCapacityHint   = 256
)

// Result describes a single trigger hit: which snippet fired, how many
// runes of the buffer it consumed, and (for regex triggers) the captured
// groups in order, $1 first.
type Result struct {
	Snippet       config.Snippet
	TypedTrigger  string
	RunesToDelete int
	Captures      []string
}

// Matcher owns the typing buffer, the literal trie, and the compiled regex
// triggers. It is not safe for concurrent use; the engine serializes all
// calls through its own event loop.
type Matcher struct {
	buffer         strings.Builder
	maxBufferSize  int
	trie           *trie.Trie
	regexSnippets  []config.Snippet
	regexCache     map[string]*coregex.Regex
	atWordBoundary bool
}

// New returns an empty matcher with a buffer capped at defaultMaxBufferSize
// runes. The buffer starts at a word boundary, since the start of input is
// one.
func New() *Matcher {
	return &Matcher{
		maxBufferSize:  defaultMaxBufferSize,
		trie:           trie.New(),
		regexCache:     make(map[string]*coregex.Regex),
		atWordBoundary: true,
	}
}

// PushChar appends a typed rune to the buffer and updates word-boundary
// tracking. When the buffer exceeds its cap it is trimmed back to half
// capacity, dropping the oldest runes.
func (m *Matcher) PushChar(ch rune) {
	m.buffer.WriteRune(ch)
	m.atWordBoundary = unicode.IsSpace(ch) || unicode.IsPunct(ch)

	runes := []rune(m.buffer.String())
	if len(runes) > m.maxBufferSize {
		drainTo := len(runes) - m.maxBufferSize/2
		m.setBuffer(string(runes[drainTo:]))
	}
}

// Backspace removes the last rune from the buffer, if any.
func (m *Matcher) Backspace() {
	runes := []rune(m.buffer.String())
	if len(runes) == 0 {
		return
	}
	m.setBuffer(string(runes[:len(runes)-1]))
}

// Clear empties the buffer and resets word-boundary state to true. The
// engine calls it on Enter, Tab, and Escape; a successful expansion uses
// RemoveLast instead.
func (m *Matcher) Clear() {
	m.buffer.Reset()
	m.atWordBoundary = true
}

// RemoveLast drops the last n runes from the buffer, used after an
// expansion consumes its trigger text.
func (m *Matcher) RemoveLast(n int) {
	runes := []rune(m.buffer.String())
	if n >= len(runes) {
		m.buffer.Reset()
		return
	}
	m.setBuffer(string(runes[:len(runes)-n]))
}

func (m *Matcher) setBuffer(s string) {
	m.buffer.Reset()
	m.buffer.WriteString(s)
}

// Buffer returns the current buffer contents, for diagnostics.
func (m *Matcher) Buffer() string {
	return m.buffer.String()
}

// Reload replaces the active trigger set: disabled snippets are dropped,
// regex snippets go to a linear list with a fresh compile cache, and
// literal snippets are reinserted into a new trie.
func (m *Matcher) Reload(snippets []config.Snippet) {
	m.trie = trie.New()
	m.regexSnippets = nil
	m.regexCache = make(map[string]*coregex.Regex)

	for _, s := range snippets {
		if !s.Enabled {
			continue
		}
		if s.Regex {
			m.regexSnippets = append(m.regexSnippets, s)
			continue
		}
		m.trie.Insert(s.Trigger, s)
	}
}

// CheckMatch checks the buffer against the literal trie first, then the
// regex triggers in insertion order. A literal hit always wins over a
// regex hit, matching the phase ordering of the trigger scan.
func (m *Matcher) CheckMatch() (Result, bool) {
	if res, ok := m.checkLiteralMatch(); ok {
		return res, true
	}
	return m.checkRegexMatch()
}

func (m *Matcher) checkLiteralMatch() (Result, bool) {
	hit, ok := m.trie.FindMatch(m.buffer.String())
	if !ok {
		return Result{}, false
	}
	snippet := hit.Value.(config.Snippet)

	if snippet.WordBoundary && !m.boundaryBeforeSuffix(hit.RuneLen) {
		return Result{}, false
	}

	return Result{
		Snippet:       snippet,
		TypedTrigger:  hit.Trigger,
		RunesToDelete: hit.RuneLen,
	}, true
}

// boundaryBeforeSuffix reports whether the rune immediately preceding the
// last suffixLen runes of the buffer is whitespace or punctuation, or
// whether the suffix is the entire buffer (the start counts as a boundary).
func (m *Matcher) boundaryBeforeSuffix(suffixLen int) bool {
	runes := []rune(m.buffer.String())
	if len(runes) <= suffixLen {
		return true
	}
	before := runes[len(runes)-suffixLen-1]
	return unicode.IsSpace(before) || unicode.IsPunct(before)
}

func (m *Matcher) checkRegexMatch() (Result, bool) {
	for _, snippet := range m.regexSnippets {
		if res, ok := m.matchOneRegex(snippet); ok {
			return res, true
		}
	}
	return Result{}, false
}

func (m *Matcher) matchOneRegex(snippet config.Snippet) (Result, bool) {
	re, err := m.compiledRegex(snippet.Trigger)
	if err != nil {
		log.Error().Err(err).Str("trigger", snippet.Trigger).Msg("matcher: invalid regex trigger")
		return Result{}, false
	}

	buf := m.buffer.String()
	idx := re.FindStringSubmatchIndex(buf)
	if idx == nil {
		return Result{}, false
	}

	matchStart, matchEnd := idx[0], idx[1]
	fullMatch := buf[matchStart:matchEnd]

	if snippet.WordBoundary && matchStart > 0 {
		before, _ := utf8DecodeLastRuneBefore(buf, matchStart)
		if before != 0 && !unicode.IsSpace(before) && !unicode.IsPunct(before) {
			return Result{}, false
		}
	}

	var captures []string
	for g := 1; g*2+1 < len(idx); g++ {
		s, e := idx[g*2], idx[g*2+1]
		if s < 0 || e < 0 {
			captures = append(captures, "")
			continue
		}
		captures = append(captures, buf[s:e])
	}

	return Result{
		Snippet:       snippet,
		TypedTrigger:  fullMatch,
		RunesToDelete: len([]rune(fullMatch)),
		Captures:      captures,
	}, true
}

func (m *Matcher) compiledRegex(trigger string) (*coregex.Regex, error) {
	if re, ok := m.regexCache[trigger]; ok {
		return re, nil
	}

	pattern := fmt.Sprintf("(?:%s)$", trigger)
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling regex trigger %q: %w", trigger, err)
	}
	m.regexCache[trigger] = re
	return re, nil
}

func utf8DecodeLastRuneBefore(s string, byteOffset int) (rune, int) {
	if byteOffset == 0 {
		return 0, 0
	}
	runes := []rune(s[:byteOffset])
	if len(runes) == 0 {
		return 0, 0
	}
	return runes[len(runes)-1], len(runes)
}
