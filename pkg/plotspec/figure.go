package plotspec

import (
	"path/filepath"

	"github.com/harun/plotpipe/pkg/gnuplot"
)

// Figure is one rendered plot: its settings and every layer drawn on it
type Figure struct {
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	XLabel   string   `json:"xlabel,omitempty" yaml:"xlabel,omitempty"`
	YLabel   string   `json:"ylabel,omitempty" yaml:"ylabel,omitempty"`
	Terminal string   `json:"terminal,omitempty" yaml:"terminal,omitempty"`
	Output   string   `json:"output,omitempty" yaml:"output,omitempty"`
	Commands []string `json:"commands,omitempty" yaml:"commands,omitempty"`

	Series    []Series     `json:"series,omitempty" yaml:"series,omitempty"`
	Functions *FunctionSet `json:"functions,omitempty" yaml:"functions,omitempty"`
	Histogram *Histogram   `json:"histogram,omitempty" yaml:"histogram,omitempty"`

	// dir resolves relative data file paths
	dir string
}

// Series is an XY layer given inline or read from a whitespace-separated
// data file
type Series struct {
	Title string    `json:"title,omitempty" yaml:"title,omitempty"`
	Style string    `json:"style,omitempty" yaml:"style,omitempty"`
	X     []float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y     []float64 `json:"y,omitempty" yaml:"y,omitempty"`

	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Columns []int  `json:"columns,omitempty" yaml:"columns,omitempty"` // 1-based x and y columns, default [1, 2]
}

// FunctionSet samples builtin functions over one range
type FunctionSet struct {
	Range Range         `json:"range" yaml:"range"`
	Plots []FunctionRef `json:"plots" yaml:"plots"`
}

// Range mirrors gnuplot.Range
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
	Step float64 `json:"step" yaml:"step"`
}

// FunctionRef names a builtin function
type FunctionRef struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// Histogram is a clustered bar chart layer
type Histogram struct {
	HistogramStyle string    `json:"histogram_style,omitempty" yaml:"histogram_style,omitempty"`
	BarStyle       string    `json:"bar_style,omitempty" yaml:"bar_style,omitempty"`
	Labels         []float64 `json:"labels" yaml:"labels"`
	Clusters       []Cluster `json:"clusters" yaml:"clusters"`
}

// Cluster is one value column of a histogram
type Cluster struct {
	Title  string    `json:"title,omitempty" yaml:"title,omitempty"`
	Values []float64 `json:"values" yaml:"values"`
}

// DataFiles returns the resolved paths of every file-backed series
func (f *Figure) DataFiles() []string {
	var paths []string
	for _, s := range f.Series {
		if s.File != "" {
			paths = append(paths, f.resolve(s.File))
		}
	}
	return paths
}

func (f *Figure) resolve(path string) string {
	if filepath.IsAbs(path) || f.dir == "" {
		return path
	}
	return filepath.Join(f.dir, path)
}

func (s Series) columns() (int, int) {
	switch len(s.Columns) {
	case 0:
		return 1, 2
	case 1:
		return 1, s.Columns[0]
	default:
		return s.Columns[0], s.Columns[1]
	}
}

func (r Range) engineRange() gnuplot.Range {
	return gnuplot.Range{Low: r.Low, High: r.High, Step: r.Step}
}
