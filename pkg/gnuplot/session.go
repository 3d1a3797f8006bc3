package gnuplot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"github.com/harun/plotpipe/internal/observability"
	"github.com/harun/plotpipe/pkg/numeric"
	"github.com/harun/plotpipe/pkg/tempfile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config defines how a session starts the engine and stores data files
type Config struct {
	// Command is the engine argv, e.g. {"gnuplot", "--persist"}
	Command []string

	// MinVersion is an optional semver constraint checked before spawning
	MinVersion string

	// DefaultStyle replaces an empty series style
	DefaultStyle string

	// TempDir, TempPrefix and TempCapacity configure the temporary file table
	TempDir      string
	TempPrefix   string
	TempCapacity int

	// NameGenerator overrides temporary file naming
	NameGenerator tempfile.NameGenerator

	// Stdout and Stderr receive the engine's output; nil discards it
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns the configuration for a persistent gnuplot window
func DefaultConfig() Config {
	return Config{
		Command:      []string{"gnuplot", "--persist"},
		DefaultStyle: DefaultStyle,
		TempPrefix:   tempfile.DefaultPrefix,
		TempCapacity: tempfile.DefaultCapacity,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// Series is one XY data set with its legend title and gnuplot style
type Series struct {
	X     []float64
	Y     []float64
	Title string
	Style string
}

// Function is a function sampled over a Range
type Function struct {
	F     func(float64) float64
	Title string
	Style string
}

// Range is a half-open sampling interval [Low, High) with a step
type Range struct {
	Low  float64
	High float64
	Step float64
}

// Histogram is a clustered bar chart: one label per row, one value column
// per cluster
type Histogram struct {
	// HistogramStyle is the "set style histogram" argument (default "cluster gap 1")
	HistogramStyle string
	// BarStyle is the "set style" argument for bars (default "fill solid border -1")
	BarStyle string
	Labels   []float64
	Clusters []Cluster
}

// Session owns one engine process and its temporary files
type Session struct {
	id           string
	cmd          *exec.Cmd
	stdin        io.WriteCloser
	dispatcher   *Dispatcher
	files        *tempfile.Allocator
	exporter     *Exporter
	state        PlotState
	defaultStyle string
	logger       zerolog.Logger
	closed       bool
}

// Open starts the engine with a pipe on its standard input. Nothing is left
// running or allocated when Open fails.
func Open(cfg Config) (*Session, error) {
	if len(cfg.Command) == 0 || cfg.Command[0] == "" {
		return nil, fmt.Errorf("%w: no engine command configured", ErrSpawnFailure)
	}

	if cfg.MinVersion != "" {
		if _, err := ProbeEngineVersion(cfg.Command[0], cfg.MinVersion); err != nil {
			return nil, err
		}
	}

	id := uuid.New().String()
	logger := log.With().
		Str("component", "gnuplot").
		Str("session_id", id).
		Logger()

	files, err := tempfile.New(tempfile.Options{
		Dir:       cfg.TempDir,
		Prefix:    cfg.TempPrefix,
		Capacity:  cfg.TempCapacity,
		Generator: cfg.NameGenerator,
		Logger:    &logger,
	})
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(cfg.Command[0], cfg.Command[1:]...)
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailure, err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawnFailure, cfg.Command[0], err)
	}

	style := cfg.DefaultStyle
	if style == "" {
		style = DefaultStyle
	}

	s := &Session{
		id:           id,
		cmd:          cmd,
		stdin:        stdin,
		dispatcher:   NewDispatcher(stdin, logger),
		files:        files,
		exporter:     NewExporter(files, logger),
		defaultStyle: style,
		logger:       logger,
	}

	observability.RecordSessionOpened()
	logger.Info().
		Strs("command", cfg.Command).
		Int("pid", cmd.Process.Pid).
		Str("temp_dir", files.Dir()).
		Msg("Engine session opened")

	return s, nil
}

// With opens a session, runs fn and always closes the session. Errors from
// fn and Close are joined.
func With(cfg Config, fn func(s *Session) error) error {
	s, err := Open(cfg)
	if err != nil {
		return err
	}
	fnErr := fn(s)
	return errors.Join(fnErr, s.Close())
}

// ID returns the session identifier used in logs
func (s *Session) ID() string {
	return s.id
}

// Plots returns the number of plot commands dispatched so far
func (s *Session) Plots() int {
	return s.state.Count()
}

// TempFiles returns the live temporary files in allocation order
func (s *Session) TempFiles() []string {
	return s.files.Paths()
}

// PlotXY exports one series, sets both axis ranges to the data extent plus a
// 5% margin and plots it, using "replot" when a plot already exists.
func (s *Session) PlotXY(series Series) error {
	if err := s.usable(); err != nil {
		return err
	}

	path, bounds, err := s.exporter.ExportXY(series.X, series.Y)
	if err != nil {
		return err
	}

	padded := bounds.Padded(AxisMargin)
	if err := s.dispatcher.Send(RangeCommand("x", padded.XMin, padded.XMax)); err != nil {
		return err
	}
	if err := s.dispatcher.Send(RangeCommand("y", padded.YMin, padded.YMax)); err != nil {
		return err
	}

	return s.plotFile(path, series.Title, series.Style)
}

// PlotMany plots every series as one overlay stack. All entries are
// validated before the first file is written.
func (s *Session) PlotMany(series []Series) error {
	if err := s.usable(); err != nil {
		return err
	}
	if len(series) == 0 {
		return ErrEmptyInput
	}
	for i, entry := range series {
		if err := validateXY(entry.X, entry.Y); err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
	}

	for i, entry := range series {
		if err := s.PlotXY(entry); err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
	}
	return nil
}

// PlotFunctions samples every function over r and plots the results as one
// overlay stack.
func (s *Session) PlotFunctions(r Range, fns []Function) error {
	if err := s.usable(); err != nil {
		return err
	}
	if len(fns) == 0 {
		return ErrEmptyInput
	}

	xs, err := numeric.Linspace(r.Low, r.High, r.Step)
	if err != nil {
		return err
	}

	series := make([]Series, len(fns))
	for i, fn := range fns {
		if fn.F == nil {
			return fmt.Errorf("function %d: %w", i, ErrNilFunction)
		}
		series[i] = Series{
			X:     xs,
			Y:     numeric.Sample(fn.F, xs),
			Title: fn.Title,
			Style: fn.Style,
		}
	}

	return s.PlotMany(series)
}

// PlotHistogram exports every cluster into one multi-column file, configures
// histogram styling and plots all clusters with a single command.
func (s *Session) PlotHistogram(h Histogram) error {
	if err := s.usable(); err != nil {
		return err
	}

	path, err := s.exporter.ExportHistogram(h.Labels, h.Clusters)
	if err != nil {
		return err
	}

	for _, line := range HistogramStyleCommands(h.HistogramStyle, h.BarStyle) {
		if err := s.dispatcher.Send(line); err != nil {
			return err
		}
	}

	if err := s.dispatcher.Send(HistogramCommand(path, len(h.Clusters))); err != nil {
		return err
	}
	s.state.Advance()
	return nil
}

// Cmd sends a raw command without any validation. With args it is formatted
// like fmt.Sprintf.
func (s *Session) Cmd(format string, args ...any) error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.dispatcher.Sendf(format, args...)
}

// SetTitle sets the figure title
func (s *Session) SetTitle(title string) error {
	return s.Cmd(QuotedSetting("title", title))
}

// SetXLabel sets the x axis label
func (s *Session) SetXLabel(label string) error {
	return s.Cmd(QuotedSetting("xlabel", label))
}

// SetYLabel sets the y axis label
func (s *Session) SetYLabel(label string) error {
	return s.Cmd(QuotedSetting("ylabel", label))
}

// SetTerminal selects the output terminal, e.g. "pngcairo size 800,600"
func (s *Session) SetTerminal(terminal string) error {
	return s.Cmd("set terminal " + terminal)
}

// SetOutput directs rendering to a file
func (s *Session) SetOutput(path string) error {
	return s.Cmd(QuotedSetting("output", path))
}

// Reset sends "reset" and makes the next plot command a fresh "plot".
// Temporary files stay allocated until released or Close.
func (s *Session) Reset() error {
	if err := s.Cmd("reset"); err != nil {
		return err
	}
	s.state.Reset()
	return nil
}

// Release removes one temporary file that is no longer displayed
func (s *Session) Release(path string) error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.files.Release(path)
}

// Close ends the engine's input, waits for it to exit and removes every
// temporary file. Files are removed even when the engine fails to stop; the
// teardown error is then reported as ErrCloseFailure.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return ErrSessionClosed
	}
	s.closed = true

	var teardownErr error
	if err := s.stdin.Close(); err != nil {
		teardownErr = err
	}
	if err := s.cmd.Wait(); err != nil && teardownErr == nil {
		teardownErr = err
	}

	cleanupErr := s.files.Cleanup()

	observability.RecordSessionClosed(teardownErr == nil && cleanupErr == nil)

	if teardownErr != nil {
		s.logger.Error().Err(teardownErr).Msg("Engine teardown failed")
		return errors.Join(fmt.Errorf("%w: %v", ErrCloseFailure, teardownErr), cleanupErr)
	}

	s.logger.Info().
		Int("plots", s.state.Count()).
		Int("commands", s.dispatcher.Sent()).
		Msg("Engine session closed")

	return cleanupErr
}

func (s *Session) plotFile(path, title, style string) error {
	if style == "" {
		style = s.defaultStyle
	}

	verb := s.state.Verb()
	if err := s.dispatcher.Send(PlotCommand(verb, SeriesClause(path, title, style))); err != nil {
		return err
	}
	s.state.Advance()
	return nil
}

func (s *Session) usable() error {
	if s == nil || s.closed {
		return ErrSessionClosed
	}
	return nil
}
