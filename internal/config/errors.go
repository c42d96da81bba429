package config

import "errors"

// Sentinel errors: a package-level var block of errors.New values, wrapped
// with %w at call sites for context.
var (
	ErrNoConfigDir = errors.New("config: could not determine user config directory")
	ErrNotLoaded   = errors.New("config: no configuration has been loaded yet")
)
