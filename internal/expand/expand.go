// Package expand turns a matched trigger into final output text: capture
// substitution, variable resolution, case propagation, and cursor-marker
// extraction.
package expand

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xpanderd/xpander/internal/config"
	"github.com/xpanderd/xpander/internal/matcher"
)

// cursorMarker is the sentinel a replacement's {{cursor}} or {{|}} leaves
// behind so the final pass can find and strip it.
const cursorMarker = "$|$"

var (
	captureRef  = regexp.MustCompile(`\$(\d+)`)
	variableRef = regexp.MustCompile(`\{\{([^}]+)\}\}`)
)

// Result is the text ready to type, how many runes of the trigger it
// replaces, and where the cursor should land relative to the end of Text
// (nil when the snippet has no cursor marker or doesn't ask for one).
type Result struct {
	Text          string
	RunesToDelete int
	CursorOffset  *int
}

// Expander resolves {{variable}} references against a dynamic variable
// tree and produces final expansion text for a matcher.Result.
type Expander struct {
	variables *config.VarNode
}

// New returns an Expander backed by the given variable tree. A nil tree is
// valid: every {{custom.path}} lookup simply misses.
func New(variables *config.VarNode) *Expander {
	return &Expander{variables: variables}
}

// SetVariables swaps in a new variable tree, used after a config reload.
func (e *Expander) SetVariables(variables *config.VarNode) {
	e.variables = variables
}

// Expand runs the full pipeline over a matcher.Result: capture
// substitution, variable expansion, case propagation, then cursor
// extraction.
func (e *Expander) Expand(m matcher.Result) (Result, error) {
	text := m.Snippet.Replace

	if len(m.Captures) > 0 {
		text = replaceCaptures(text, m.Captures)
	}

	text, err := e.expandVariables(text)
	if err != nil {
		return Result{}, err
	}

	if m.Snippet.PropagateCase {
		text = propagateCase(m.TypedTrigger, text)
	}

	finalText, cursorPos := extractCursorPosition(text)

	var offset *int
	if m.Snippet.CursorPosition && cursorPos != nil {
		o := len([]rune(finalText)) - *cursorPos
		offset = &o
	}

	return Result{
		Text:          finalText,
		RunesToDelete: m.RunesToDelete,
		CursorOffset:  offset,
	}, nil
}

// ExpandSnippet resolves a snippet directly, without a preceding match,
// treating the snippet's own trigger as the typed trigger.
func (e *Expander) ExpandSnippet(s config.Snippet) (Result, error) {
	return e.Expand(matcher.Result{
		Snippet:       s,
		TypedTrigger:  s.Trigger,
		RunesToDelete: len([]rune(s.Trigger)),
	})
}

func replaceCaptures(text string, captures []string) string {
	return captureRef.ReplaceAllStringFunc(text, func(ref string) string {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n == 0 || n > len(captures) {
			return ref
		}
		return captures[n-1]
	})
}

func (e *Expander) expandVariables(text string) (string, error) {
	var outerErr error
	result := variableRef.ReplaceAllStringFunc(text, func(full string) string {
		inner := strings.TrimSpace(full[2 : len(full)-2])
		val, err := e.expandOne(inner)
		if err != nil {
			outerErr = err
			return full
		}
		return val
	})
	if outerErr != nil {
		return "", outerErr
	}
	return result, nil
}

func (e *Expander) expandOne(ref string) (string, error) {
	if val, ok := e.expandCustom(ref); ok {
		return val, nil
	}

	switch {
	case ref == "date":
		return expandDate(""), nil
	case strings.HasPrefix(ref, "date:"):
		return expandDate(strings.TrimSpace(ref[len("date:"):])), nil
	case ref == "time":
		return expandTime(""), nil
	case strings.HasPrefix(ref, "time:"):
		return expandTime(strings.TrimSpace(ref[len("time:"):])), nil
	case ref == "datetime":
		return expandDatetime(""), nil
	case strings.HasPrefix(ref, "datetime:"):
		return expandDatetime(strings.TrimSpace(ref[len("datetime:"):])), nil
	case ref == "clipboard":
		return clipboard.ReadAll()
	case strings.HasPrefix(ref, "random:"):
		return expandRandom(strings.TrimSpace(ref[len("random:"):]))
	case strings.HasPrefix(ref, "env:"):
		return expandEnv(strings.TrimSpace(ref[len("env:"):]))
	case strings.HasPrefix(ref, "shell:"):
		return expandShell(strings.TrimSpace(ref[len("shell:"):]))
	case ref == "uuid":
		return uuid.NewString(), nil
	case ref == "cursor" || ref == "|":
		return cursorMarker, nil
	default:
		log.Warn().Str("variable", ref).Msg("expand: unknown variable reference")
		return "{{" + ref + "}}", nil
	}
}

func (e *Expander) expandCustom(path string) (string, bool) {
	if e.variables == nil {
		return "", false
	}
	node, ok := e.variables.Lookup(path)
	if !ok {
		return "", false
	}
	return node.Stringify()
}

// strftimeToGo translates a small, commonly-used subset of strftime
// directives into Go's reference-time layout, since users configure date
// formats in the %Y-%m-%d style rather than Go's "2006-01-02".
func strftimeToGo(format string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006", "%y", "06",
		"%m", "01", "%d", "02",
		"%H", "15", "%I", "03",
		"%M", "04", "%S", "05",
		"%p", "PM", "%A", "Monday", "%a", "Mon",
		"%B", "January", "%b", "Jan",
		"%%", "%",
	)
	return replacer.Replace(format)
}

func expandDate(format string) string {
	if format == "" {
		format = "%Y-%m-%d"
	}
	return time.Now().Format(strftimeToGo(format))
}

func expandTime(format string) string {
	if format == "" {
		format = "%H:%M:%S"
	}
	return time.Now().Format(strftimeToGo(format))
}

func expandDatetime(format string) string {
	if format == "" {
		format = "%Y-%m-%d %H:%M:%S"
	}
	return time.Now().Format(strftimeToGo(format))
}

func expandRandom(digitsStr string) (string, error) {
	digits, err := strconv.Atoi(digitsStr)
	if err != nil {
		return "", fmt.Errorf("invalid number of digits for random: %w", err)
	}
	if digits <= 0 || digits > 20 {
		return "", fmt.Errorf("random digits must be between 1 and 20, got %d", digits)
	}

	// Built digit by digit so 20 digits (beyond uint64) still works: the
	// leading digit is 1-9 unless digits is 1, giving 10^(N-1)..10^N-1.
	var b strings.Builder
	for i := 0; i < digits; i++ {
		if i == 0 && digits > 1 {
			b.WriteByte(byte('1' + rand.IntN(9)))
		} else {
			b.WriteByte(byte('0' + rand.IntN(10)))
		}
	}
	return b.String(), nil
}

func expandEnv(name string) (string, error) {
	val, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q not found", name)
	}
	return val, nil
}

func expandShell(cmd string) (string, error) {
	out, err := exec.Command("sh", "-c", cmd).Output()
	if err != nil {
		return "", fmt.Errorf("shell command %q failed: %w", cmd, err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// extractCursorPosition strips the first cursor marker from text and
// reports its rune offset from the start, or nil if there was none.
func extractCursorPosition(text string) (string, *int) {
	idx := strings.Index(text, cursorMarker)
	if idx < 0 {
		return text, nil
	}
	before := text[:idx]
	after := text[idx+len(cursorMarker):]
	pos := len([]rune(before))
	return before + after, &pos
}

// propagateCase mirrors the trigger's letter case onto the replacement:
// an all-uppercase trigger upper-cases the whole replacement, a
// title-case trigger (leading capital, rest lowercase) capitalizes just
// the first letter, and anything else leaves the replacement untouched.
func propagateCase(trigger, replacement string) string {
	if trigger == "" || replacement == "" {
		return replacement
	}

	chars := []rune(trigger)
	hasAlpha := false
	allUpper := true
	for _, c := range chars {
		if unicode.IsLetter(c) {
			hasAlpha = true
			if !unicode.IsUpper(c) {
				allUpper = false
			}
		}
	}

	titleCase := unicode.IsUpper(chars[0])
	for _, c := range chars[1:] {
		if unicode.IsLetter(c) && !unicode.IsLower(c) {
			titleCase = false
			break
		}
	}

	switch {
	case allUpper && hasAlpha:
		return strings.ToUpper(replacement)
	case titleCase:
		r := []rune(replacement)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	default:
		return replacement
	}
}
