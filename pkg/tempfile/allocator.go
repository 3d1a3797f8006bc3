package tempfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/harun/plotpipe/internal/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultCapacity is the table size; one slot always stays free
	DefaultCapacity = 32

	// DefaultPrefix is prepended to every generated file name
	DefaultPrefix = "gnuplot_tmpdatafile_"

	// maxNameAttempts bounds retries when a generated name is already taken
	maxNameAttempts = 8
)

// Options configures an Allocator
type Options struct {
	// Dir is where files are created (default os.TempDir())
	Dir string

	// Prefix is the fixed part of every file name
	Prefix string

	// Capacity is the table size N; at most N-1 files are live at once
	Capacity int

	// Generator produces candidate names (default RandomNames)
	Generator NameGenerator

	// Logger receives allocation events tagged subcomponent=tempfile
	// (default global logger, tagged component=tempfile)
	Logger *zerolog.Logger
}

// Allocator creates temporary files and keeps an ordered, bounded table of
// the paths it has handed out. It is owned by a single session and is not
// safe for concurrent use.
type Allocator struct {
	dir      string
	prefix   string
	capacity int
	gen      NameGenerator
	logger   zerolog.Logger

	paths  []string
	issued map[string]struct{}
}

// New creates an empty allocator
func New(opts Options) (*Allocator, error) {
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Capacity < 2 {
		return nil, ErrInvalidCapacity
	}
	if opts.Dir == "" {
		opts.Dir = os.TempDir()
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Generator == nil {
		opts.Generator = RandomNames{}
	}

	logger := log.With().Str("component", "tempfile").Logger()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("subcomponent", "tempfile").Logger()
	}

	return &Allocator{
		dir:      opts.Dir,
		prefix:   opts.Prefix,
		capacity: opts.Capacity,
		gen:      opts.Generator,
		logger:   logger,
		paths:    make([]string, 0, opts.Capacity-1),
		issued:   make(map[string]struct{}),
	}, nil
}

// Allocate creates a new empty file and registers it in the table
func (a *Allocator) Allocate() (string, error) {
	if len(a.paths) >= a.capacity-1 {
		observability.RecordAllocationFailure("exhausted")
		a.logger.Warn().
			Int("in_use", len(a.paths)).
			Int("capacity", a.capacity).
			Msg("Temporary file capacity reached")
		return "", fmt.Errorf("%w: %d of %d files in use", ErrResourceExhausted, len(a.paths), a.capacity-1)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name, err := a.gen.Generate(a.prefix)
		if err != nil {
			observability.RecordAllocationFailure("io")
			return "", fmt.Errorf("%w: %v", ErrFileIO, err)
		}

		path := filepath.Join(a.dir, name)
		if _, taken := a.issued[path]; taken {
			continue
		}

		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			observability.RecordAllocationFailure("io")
			return "", fmt.Errorf("%w: failed to create %s: %v", ErrFileIO, path, err)
		}
		if err := file.Close(); err != nil {
			_ = os.Remove(path)
			observability.RecordAllocationFailure("io")
			return "", fmt.Errorf("%w: failed to close %s: %v", ErrFileIO, path, err)
		}

		a.issued[path] = struct{}{}
		a.paths = append(a.paths, path)
		observability.RecordTempFileAllocated()

		a.logger.Debug().
			Str("path", path).
			Int("in_use", len(a.paths)).
			Msg("Temporary file allocated")

		return path, nil
	}

	observability.RecordAllocationFailure("collision")
	return "", fmt.Errorf("%w: no unused name after %d attempts", ErrFileIO, maxNameAttempts)
}

// Release removes one file from disk and drops it from the table.
// The name is never handed out again by this allocator.
func (a *Allocator) Release(path string) error {
	idx := slices.Index(a.paths, path)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}

	a.paths = slices.Delete(a.paths, idx, idx+1)
	observability.RecordTempFilesReleased(1)

	if err := removeFile(path); err != nil {
		return err
	}

	a.logger.Debug().Str("path", path).Msg("Temporary file released")
	return nil
}

// Cleanup removes every file in the table and empties it. Files that are
// already gone are not an error. Calling Cleanup on an empty table is a no-op.
func (a *Allocator) Cleanup() error {
	if len(a.paths) == 0 {
		return nil
	}

	var errs []error
	for _, path := range a.paths {
		if err := removeFile(path); err != nil {
			a.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove temporary file")
			errs = append(errs, err)
		}
	}

	removed := len(a.paths)
	a.paths = a.paths[:0]
	observability.RecordTempFilesReleased(removed)

	a.logger.Debug().Int("removed", removed).Msg("Temporary files cleaned up")
	return errors.Join(errs...)
}

// Len returns the number of live entries
func (a *Allocator) Len() int {
	return len(a.paths)
}

// Cap returns the table capacity N
func (a *Allocator) Cap() int {
	return a.capacity
}

// Paths returns a copy of the live entries in allocation order
func (a *Allocator) Paths() []string {
	return slices.Clone(a.paths)
}

// Dir returns the directory files are created in
func (a *Allocator) Dir() string {
	return a.dir
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to remove %s: %v", ErrFileIO, path, err)
	}
	return nil
}
