package gnuplot

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harun/plotpipe/internal/observability"
	"github.com/harun/plotpipe/pkg/tempfile"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// AxisMargin is the share of an axis range added on both sides of the data
const AxisMargin = 0.05

// Bounds holds the extent of an XY series
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Padded expands both axes symmetrically by frac of their range
func (b Bounds) Padded(frac float64) Bounds {
	dx := frac * (b.XMax - b.XMin)
	dy := frac * (b.YMax - b.YMin)
	return Bounds{
		XMin: b.XMin - dx,
		XMax: b.XMax + dx,
		YMin: b.YMin - dy,
		YMax: b.YMax + dy,
	}
}

// Cluster is one value column of a histogram
type Cluster struct {
	Title  string
	Values []float64
}

// Exporter writes series into temporary files taken from an allocator
type Exporter struct {
	files  *tempfile.Allocator
	logger zerolog.Logger
}

// NewExporter creates an exporter backed by files
func NewExporter(files *tempfile.Allocator, logger zerolog.Logger) *Exporter {
	return &Exporter{
		files:  files,
		logger: logger,
	}
}

// ExportXY writes one "x y" line per point and returns the file path and the
// unpadded bounds of the data.
func (e *Exporter) ExportXY(xs, ys []float64) (string, Bounds, error) {
	if err := validateXY(xs, ys); err != nil {
		return "", Bounds{}, err
	}

	path, err := e.write("xy", len(xs), func(w *bufio.Writer) error {
		for i := range xs {
			if _, err := fmt.Fprintf(w, "%.18e %.18e\n", xs[i], ys[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", Bounds{}, err
	}

	bounds := Bounds{
		XMin: floats.Min(xs),
		XMax: floats.Max(xs),
		YMin: floats.Min(ys),
		YMax: floats.Max(ys),
	}
	return path, bounds, nil
}

// ExportHistogram writes a header line `n "<title1>" "<title2>" ...` followed by
// one line per label: the label and then one value per cluster.
func (e *Exporter) ExportHistogram(labels []float64, clusters []Cluster) (string, error) {
	if err := validateHistogram(labels, clusters); err != nil {
		return "", err
	}

	header := make([]string, 0, len(clusters)+1)
	header = append(header, "n")
	for _, c := range clusters {
		header = append(header, headerTitle(c.Title))
	}

	return e.write("histogram", len(labels), func(w *bufio.Writer) error {
		if _, err := w.WriteString(strings.Join(header, " ") + "\n"); err != nil {
			return err
		}
		for i, label := range labels {
			if _, err := fmt.Fprintf(w, "%.18e", label); err != nil {
				return err
			}
			for _, c := range clusters {
				if _, err := fmt.Fprintf(w, " %.18e", c.Values[i]); err != nil {
					return err
				}
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

// write allocates a file and fills it. On any failure the file is released
// so the table never references a partial export.
func (e *Exporter) write(kind string, rows int, fill func(w *bufio.Writer) error) (string, error) {
	start := time.Now()

	path, err := e.files.Allocate()
	if err != nil {
		return "", err
	}

	if err := writeFile(path, fill); err != nil {
		if relErr := e.files.Release(path); relErr != nil {
			e.logger.Warn().Err(relErr).Str("path", path).Msg("Failed to release partial export")
		}
		return "", fmt.Errorf("%w: failed to write %s: %v", ErrFileIO, path, err)
	}

	duration := time.Since(start)
	observability.RecordExport(kind, rows, duration)

	e.logger.Debug().
		Str("kind", kind).
		Str("path", path).
		Int("rows", rows).
		Dur("duration", duration).
		Msg("Series exported")

	return path, nil
}

func writeFile(path string, fill func(w *bufio.Writer) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func validateXY(xs, ys []float64) error {
	if len(xs) == 0 || len(ys) == 0 {
		return ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrMismatchedSeries, len(xs), len(ys))
	}
	return nil
}

func validateHistogram(labels []float64, clusters []Cluster) error {
	if len(labels) == 0 || len(clusters) == 0 {
		return ErrEmptyInput
	}

	var errs []error
	for i, c := range clusters {
		if len(c.Values) != len(labels) {
			errs = append(errs, fmt.Errorf("cluster %d: %d values for %d labels", i, len(c.Values), len(labels)))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMismatchedSeries, errors.Join(errs...))
	}
	return nil
}

// headerTitle renders a cluster title as one double-quoted column head.
// Whitespace runs collapse to a single space and embedded double quotes
// become single quotes.
func headerTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		title = DefaultTitle
	}
	return `"` + strings.ReplaceAll(title, `"`, "'") + `"`
}
