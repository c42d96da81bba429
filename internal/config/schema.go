// Package config defines the on-disk configuration schema for the expansion
// daemon: settings, the snippet hierarchy, and the dynamic variable mapping.
package config

// Layout names accepted by Settings.Layout. Anything else falls back to
// LayoutQWERTY at the keymap layer.
const (
	LayoutQWERTY  = "qwerty"
	LayoutAZERTY  = "azerty"
	LayoutQWERTZ  = "qwertz"
	LayoutColemak = "colemak"
	LayoutDvorak  = "dvorak"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Settings  Settings      `yaml:"settings"`
	Snippets  []SnippetNode `yaml:"snippets"`
	Variables *VarNode      `yaml:"variables"`
}

// Settings holds the global daemon behavior knobs.
type Settings struct {
	EnableSound      bool   `yaml:"enable_sound"`
	NotifyOnExpand   bool   `yaml:"notify_on_expand"`
	Enabled          bool   `yaml:"enabled"`
	DeleteTrigger    bool   `yaml:"delete_trigger"`
	KeystrokeDelayMs uint64 `yaml:"keystroke_delay_ms"`
	YdotoolSocket    string `yaml:"ydotool_socket,omitempty"`
	Layout           string `yaml:"layout"`
}

// DefaultSettings returns the settings a freshly created config file gets.
func DefaultSettings() Settings {
	return Settings{
		EnableSound:      false,
		NotifyOnExpand:   false,
		Enabled:          true,
		DeleteTrigger:    true,
		KeystrokeDelayMs: 12,
		Layout:           LayoutQWERTY,
	}
}

// Default returns an empty, valid configuration.
func Default() Config {
	return Config{
		Settings: DefaultSettings(),
	}
}

// Snippet is a single expansion rule.
type Snippet struct {
	Trigger             string   `yaml:"trigger"`
	Replace             string   `yaml:"replace"`
	Label               string   `yaml:"label,omitempty"`
	PropagateCase       bool     `yaml:"propagate_case,omitempty"`
	CursorPosition      bool     `yaml:"cursor_position,omitempty"`
	WordBoundary        bool     `yaml:"word_boundary,omitempty"`
	Regex               bool     `yaml:"regex,omitempty"`
	Applications        []string `yaml:"applications,omitempty"`
	ExcludeApplications []string `yaml:"exclude_applications,omitempty"`
	Enabled             bool     `yaml:"enabled"`
}

// Folder groups snippets (and nested folders) for human organization only;
// the matcher only ever sees the flattened, enabled leaves.
type Folder struct {
	Name    string        `yaml:"folder"`
	Items   []SnippetNode `yaml:"items"`
	Enabled bool          `yaml:"enabled"`
}

// SnippetNode is either a Snippet or a Folder. YAML has no tagged unions, so
// unmarshaling is done by hand in snippetnode.go based on which keys are
// present ("folder" vs "trigger").
type SnippetNode struct {
	Snippet *Snippet
	Folder  *Folder
}

// IsFolder reports whether this node wraps a Folder rather than a Snippet.
func (n SnippetNode) IsFolder() bool {
	return n.Folder != nil
}
