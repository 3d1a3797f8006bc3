package watch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/harun/plotpipe/internal/observability"
	"github.com/rs/zerolog"
)

// Target is the session a Replotter draws on. *gnuplot.Session implements it.
type Target interface {
	ID() string
	Reset() error
	TempFiles() []string
	Release(path string) error
}

// Replotter redraws a figure on one session
type Replotter struct {
	target Target
	draw   func() error
	logger zerolog.Logger

	mu      sync.Mutex
	redraws int
	stopped bool
}

// NewReplotter creates a replotter; draw renders the whole figure onto target
func NewReplotter(target Target, draw func() error, logger zerolog.Logger) *Replotter {
	return &Replotter{
		target: target,
		draw:   draw,
		logger: logger.With().Str("component", "replot").Str("session_id", target.ID()).Logger(),
	}
}

// Draw renders the figure for the first time
func (r *Replotter) Draw() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draw()
}

// Replot resets the session, releases the temporary files of the previous
// drawing and renders the figure again. The engine has already read the old
// files, so a redraw never needs room for two drawings in the table. changed
// is the file that triggered the redraw and is only used for reporting.
func (r *Replotter) Replot(changed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return nil
	}

	previous := r.target.TempFiles()

	var releaseErrs []error
	err := r.target.Reset()
	if err == nil {
		for _, path := range previous {
			if relErr := r.target.Release(path); relErr != nil {
				releaseErrs = append(releaseErrs, relErr)
			}
		}
		err = r.draw()
	}

	r.redraws++
	observability.RecordReplot(r.target.ID(), changed, err)

	if err != nil {
		r.logger.Error().Err(err).Str("path", changed).Msg("Replot failed")
		return errors.Join(fmt.Errorf("replot after change to %s: %w", changed, err), errors.Join(releaseErrs...))
	}

	r.logger.Info().
		Str("path", changed).
		Int("released", len(previous)-len(releaseErrs)).
		Int("live_files", len(r.target.TempFiles())).
		Msg("Figure replotted")

	return errors.Join(releaseErrs...)
}

// Stop waits for a running redraw to finish and turns later Replot calls
// into no-ops
func (r *Replotter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

// Redraws returns the number of replots performed
func (r *Replotter) Redraws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redraws
}
