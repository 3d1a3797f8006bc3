package plotspec

import (
	"fmt"

	"github.com/harun/plotpipe/pkg/gnuplot"
	"github.com/harun/plotpipe/pkg/numeric"
)

// Plotter is the part of an engine session a figure is drawn with.
// *gnuplot.Session implements it.
type Plotter interface {
	SetTitle(title string) error
	SetXLabel(label string) error
	SetYLabel(label string) error
	SetTerminal(terminal string) error
	SetOutput(path string) error
	Cmd(format string, args ...any) error
	PlotMany(series []gnuplot.Series) error
	PlotFunctions(r gnuplot.Range, fns []gnuplot.Function) error
	PlotHistogram(h gnuplot.Histogram) error
}

// Render sends the figure's settings and then draws its layers in order:
// series, functions, histogram. Data files and function names are resolved
// before anything is sent.
func Render(p Plotter, fig *Figure) error {
	series, err := fig.EngineSeries()
	if err != nil {
		return err
	}
	functions, err := fig.engineFunctions()
	if err != nil {
		return err
	}

	settings := []struct {
		value string
		apply func(string) error
	}{
		{fig.Terminal, p.SetTerminal},
		{fig.Output, p.SetOutput},
		{fig.Title, p.SetTitle},
		{fig.XLabel, p.SetXLabel},
		{fig.YLabel, p.SetYLabel},
	}
	for _, s := range settings {
		if s.value == "" {
			continue
		}
		if err := s.apply(s.value); err != nil {
			return err
		}
	}
	for _, cmd := range fig.Commands {
		if err := p.Cmd(cmd); err != nil {
			return err
		}
	}

	if len(series) > 0 {
		if err := p.PlotMany(series); err != nil {
			return err
		}
	}
	if len(functions) > 0 {
		if err := p.PlotFunctions(fig.Functions.Range.engineRange(), functions); err != nil {
			return err
		}
	}
	if fig.Histogram != nil {
		if err := p.PlotHistogram(fig.Histogram.engineHistogram()); err != nil {
			return err
		}
	}

	return nil
}

// EngineSeries returns the figure's series with file-backed data loaded
func (f *Figure) EngineSeries() ([]gnuplot.Series, error) {
	out := make([]gnuplot.Series, 0, len(f.Series))
	for i, s := range f.Series {
		xs, ys := s.X, s.Y
		if s.File != "" {
			xcol, ycol := s.columns()
			var err error
			xs, ys, err = ReadXYFile(f.resolve(s.File), xcol, ycol)
			if err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
		}
		out = append(out, gnuplot.Series{
			X:     xs,
			Y:     ys,
			Title: s.Title,
			Style: s.Style,
		})
	}
	return out, nil
}

func (f *Figure) engineFunctions() ([]gnuplot.Function, error) {
	if f.Functions == nil {
		return nil, nil
	}

	out := make([]gnuplot.Function, 0, len(f.Functions.Plots))
	for _, ref := range f.Functions.Plots {
		fn, ok := numeric.Builtin(ref.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFunction, ref.Name, numeric.BuiltinNames())
		}
		title := ref.Title
		if title == "" {
			title = ref.Name
		}
		out = append(out, gnuplot.Function{F: fn, Title: title, Style: ref.Style})
	}
	return out, nil
}

func (h *Histogram) engineHistogram() gnuplot.Histogram {
	clusters := make([]gnuplot.Cluster, len(h.Clusters))
	for i, c := range h.Clusters {
		clusters[i] = gnuplot.Cluster{Title: c.Title, Values: c.Values}
	}
	return gnuplot.Histogram{
		HistogramStyle: h.HistogramStyle,
		BarStyle:       h.BarStyle,
		Labels:         h.Labels,
		Clusters:       clusters,
	}
}
