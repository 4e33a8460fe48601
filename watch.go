package canopy

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const configDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file when it changes on disk and hands
// each successfully parsed Config to its EventSystem, which applies it at
// the start of the next Update.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	out     chan Config
	logger  *log.Logger
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// WatchConfig starts watching the YAML config at path. A previous watch is
// stopped. Parse errors are logged and the last good config stays applied.
func (s *EventSystem) WatchConfig(path string) error {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.pendingCfgs == nil {
		s.pendingCfgs = make(chan Config, 1)
	}
	w, err := newConfigWatcher(path, s.pendingCfgs, s.logger)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Close stops the config watcher, if any.
func (s *EventSystem) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func newConfigWatcher(path string, out chan Config, logger *log.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("canopy: watch config: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("canopy: watch config: %w", err)
	}
	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("canopy: watch config: %w", err)
	}
	w := &ConfigWatcher{
		path:    abs,
		watcher: fw,
		out:     out,
		logger:  logger,
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *ConfigWatcher) Path() string { return w.path }

// Close stops the watcher and waits for its goroutine to exit.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer close(w.doneCh)

	timer := time.NewTimer(configDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(configDebounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("error: watch config: %v", err)
		case <-timer.C:
			w.reload()
		case <-w.closeCh:
			return
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfigFile(w.path)
	if err != nil {
		w.logger.Printf("error: reload config: %v", err)
		return
	}
	// Keep only the newest config when the frame loop falls behind.
	for {
		select {
		case w.out <- cfg:
			return
		default:
			select {
			case <-w.out:
			default:
			}
		}
	}
}
