package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harun/plotpipe/internal/observability"
	"github.com/harun/plotpipe/pkg/gnuplot"
	"github.com/harun/plotpipe/pkg/plotspec"
	"github.com/spf13/cobra"
)

// figureFlags are the settings shared by every plotting command
type figureFlags struct {
	title    string
	xlabel   string
	ylabel   string
	terminal string
	output   string
	style    string
}

func (f *figureFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "figure title")
	cmd.Flags().StringVar(&f.xlabel, "xlabel", "", "x axis label")
	cmd.Flags().StringVar(&f.ylabel, "ylabel", "", "y axis label")
	cmd.Flags().StringVar(&f.terminal, "terminal", "", `gnuplot terminal, e.g. "pngcairo size 800,600"`)
	cmd.Flags().StringVar(&f.output, "output", "", "write the figure to this file")
	cmd.Flags().StringVar(&f.style, "style", "", "plot style (default from engine.default_style)")
}

func (f *figureFlags) apply(fig *plotspec.Figure) {
	fig.Title = f.title
	fig.XLabel = f.xlabel
	fig.YLabel = f.ylabel
	fig.Terminal = f.terminal
	fig.Output = f.output
}

// parseColumns parses a gnuplot-style "x:y" column pair
func parseColumns(spec string) ([]int, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid columns %q: want x:y, e.g. 1:2", spec)
	}

	cols := make([]int, 2)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid columns %q: columns are positive integers", spec)
		}
		cols[i] = n
	}
	return cols, nil
}

// dataFigure builds a figure with one file-backed series per path
func dataFigure(paths []string, columns []int, style string) *plotspec.Figure {
	fig := &plotspec.Figure{}
	for _, path := range paths {
		fig.Series = append(fig.Series, plotspec.Series{
			Title:   filepath.Base(path),
			Style:   style,
			File:    path,
			Columns: columns,
		})
	}
	return fig
}

// sessionConfig returns the engine options with output wired to cmd
func sessionConfig(cmd *cobra.Command) (gnuplot.Config, error) {
	sc, err := appConfig.SessionConfig()
	if err != nil {
		return gnuplot.Config{}, err
	}
	sc.Stdout = cmd.OutOrStdout()
	sc.Stderr = cmd.ErrOrStderr()
	return sc, nil
}

// renderFigure draws fig on a fresh session and closes it
func renderFigure(cmd *cobra.Command, name string, fig *plotspec.Figure) error {
	sc, err := sessionConfig(cmd)
	if err != nil {
		return err
	}

	var sessionID string
	err = gnuplot.With(sc, func(s *gnuplot.Session) error {
		sessionID = s.ID()
		return plotspec.Render(s, fig)
	})

	observability.RecordRender(sessionID, name, err, map[string]any{
		"series":    len(fig.Series),
		"functions": fig.Functions != nil,
		"histogram": fig.Histogram != nil,
	})

	return err
}
