package config

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event bursts editors produce when saving.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads the settings file whenever it changes on disk and hands
// the result to whoever drains Updates. Consumers pick updates up at their
// own pace; only the newest one is kept.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan *Config
	stop    chan struct{}
}

// NewWatcher starts watching the settings file at path. The watch is on
// the holding directory, so the file is still seen after editors replace
// it wholesale on save.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path:    filepath.Clean(path),
		fsw:     fsw,
		updates: make(chan *Config, 1),
		stop:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers freshly loaded configurations.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	pending := false

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce.Reset(debounceDelay)
				pending = true
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warnf("Config watcher error: %v", err)
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			cfg, err := Load(w.path)
			if err != nil {
				log.Warnf("Config reload from %s failed: %v", w.path, err)
				continue
			}
			w.publish(cfg)
			log.Debugf("Config reloaded from %s", w.path)
		}
	}
}

// publish replaces any stale undelivered update with the newest config.
// Only run sends on the channel, so the second send cannot block.
func (w *Watcher) publish(cfg *Config) {
	select {
	case w.updates <- cfg:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- cfg
	}
}
