package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is the quiet period before a change is reported
const DefaultDebounce = 200 * time.Millisecond

// ChangeCallback is called with the path of a changed file
type ChangeCallback func(path string) error

// Config holds configuration for a FileWatcher
type Config struct {
	Paths    []string
	Debounce time.Duration
	OnChange ChangeCallback
	Logger   *zerolog.Logger
}

// FileWatcher reports changes to a fixed set of files
type FileWatcher struct {
	watcher        *fsnotify.Watcher
	files          map[string]struct{}
	dirs           map[string]struct{}
	debounce       time.Duration
	onChange       ChangeCallback
	logger         zerolog.Logger
	done           chan struct{}
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex
	stopOnce       sync.Once
}

// New creates a watcher for cfg.Paths
func New(cfg Config) (*FileWatcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	files := make(map[string]struct{}, len(cfg.Paths))
	dirs := make(map[string]struct{})
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:        watcher,
		files:          files,
		dirs:           dirs,
		debounce:       cfg.Debounce,
		onChange:       cfg.OnChange,
		logger:         logger.With().Str("component", "watch").Logger(),
		done:           make(chan struct{}),
		debounceTimers: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching
func (w *FileWatcher) Start() error {
	for dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	go w.eventLoop()

	w.logger.Info().
		Int("files", len(w.files)).
		Dur("debounce", w.debounce).
		Msg("File watcher started")

	return nil
}

// Stop stops the watcher. Pending callbacks are dropped.
func (w *FileWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
	})

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	clear(w.debounceTimers)
	w.debounceMu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	w.logger.Info().Msg("File watcher stopped")
	return nil
}

func (w *FileWatcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("Watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, watched := w.files[path]; !watched {
		return
	}

	// A removed file is reported once it reappears
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		w.logger.Debug().
			Str("path", path).
			Str("op", event.Op.String()).
			Msg("Ignoring event")
		return
	}

	w.debounceEvent(path)
}

func (w *FileWatcher) debounceEvent(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(w.debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}

		if err := w.onChange(path); err != nil {
			w.logger.Error().
				Err(err).
				Str("path", path).
				Msg("Error handling file change")
		}
	})
}
