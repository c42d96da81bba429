package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager owns the on-disk configuration, its in-memory replica, and the
// machinery (in watch.go) that keeps the replica current across hot-reload.
type Manager struct {
	mu   sync.RWMutex
	cfg  Config
	path string
}

// DefaultPath returns "<user-config>/xpander/config.yaml".
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoConfigDir, err)
	}
	return filepath.Join(dir, "xpander", "config.yaml"), nil
}

// NewManager loads the configuration at path, creating a default file there
// if none exists yet. A blank path resolves via DefaultPath.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg, err := Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	return &Manager{cfg: cfg, path: path}, nil
}

// Load reads and parses a configuration file. Returns a wrapped os.IsNotExist
// error when the file is absent, so callers can fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults fills in zero-value settings after unmarshaling, since
// yaml.v3 has no per-field default mechanism.
func applyDefaults(cfg *Config) {
	if cfg.Settings.Layout == "" {
		cfg.Settings.Layout = LayoutQWERTY
	}
	if cfg.Settings.KeystrokeDelayMs == 0 {
		cfg.Settings.KeystrokeDelayMs = 12
	}
}

// Save serializes and writes a configuration file.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Snapshot returns a copy of the currently loaded configuration.
func (m *Manager) Snapshot() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Path returns the file path this manager persists to.
func (m *Manager) Path() string {
	return m.path
}

// Replace atomically swaps in a newly loaded configuration, used by the
// hot-reload watcher and by manual reloads.
func (m *Manager) Replace(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// Update persists a new configuration and makes it the active snapshot.
func (m *Manager) Update(cfg Config) error {
	if err := Save(m.path, cfg); err != nil {
		return err
	}
	m.Replace(cfg)
	return nil
}

// ToggleEnabled flips the global enabled flag, persists it, and returns the
// new value.
func (m *Manager) ToggleEnabled() (bool, error) {
	m.mu.Lock()
	m.cfg.Settings.Enabled = !m.cfg.Settings.Enabled
	cfg := m.cfg
	m.mu.Unlock()

	if err := Save(m.path, cfg); err != nil {
		return false, err
	}
	return cfg.Settings.Enabled, nil
}

// AddSnippet appends a top-level snippet and persists it. Backs the --gui
// editor's external contract (see internal/gui), even though the editor UI
// itself lives in a separate process.
func (m *Manager) AddSnippet(s Snippet) error {
	m.mu.Lock()
	m.cfg.Snippets = append(m.cfg.Snippets, SnippetNode{Snippet: &s})
	cfg := m.cfg
	m.mu.Unlock()
	return Save(m.path, cfg)
}

// RemoveSnippet removes a top-level snippet by index.
func (m *Manager) RemoveSnippet(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.cfg.Snippets) {
		return fmt.Errorf("snippet index %d out of range", index)
	}
	m.cfg.Snippets = append(m.cfg.Snippets[:index], m.cfg.Snippets[index+1:]...)
	return Save(m.path, m.cfg)
}

// UpdateSnippet replaces a top-level snippet at index.
func (m *Manager) UpdateSnippet(index int, s Snippet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.cfg.Snippets) {
		return fmt.Errorf("snippet index %d out of range", index)
	}
	m.cfg.Snippets[index] = SnippetNode{Snippet: &s}
	return Save(m.path, m.cfg)
}
