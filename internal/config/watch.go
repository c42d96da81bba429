package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch starts a filesystem watcher on the config file's parent directory
// and returns a channel that receives a freshly parsed Config every time the
// file is modified or (re)created. The fsnotify.Watcher.Events loop runs as
// its own goroutine and forwards into the returned channel.
//
// On a malformed reload, the previous good config is kept and the error is
// logged; Watch never sends a zero Config.
func (m *Manager) Watch() (<-chan Config, func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	out := make(chan Config, 1)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(m.path) {
					continue
				}
				if !(event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create) {
					continue
				}
				cfg, err := Load(m.path)
				if err != nil {
					log.Error().Err(err).Str("path", m.path).Msg("config: hot-reload failed, keeping previous config")
					continue
				}
				m.Replace(cfg)
				out <- cfg
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("config: watcher error")
			}
		}
	}()

	return out, watcher.Close, nil
}
