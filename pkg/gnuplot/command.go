package gnuplot

import (
	"fmt"
	"strconv"
)

const (
	// DefaultTitle replaces an empty series title
	DefaultTitle = "(none)"

	// DefaultStyle is used when neither the series nor the config names one
	DefaultStyle = "lines"

	// DefaultHistogramStyle is the "set style histogram" argument when none is given
	DefaultHistogramStyle = "cluster gap 1"

	// DefaultBarStyle is the "set style" argument for bars when none is given
	DefaultBarStyle = "fill solid border -1"
)

// Verb is the leading keyword of a plot command
type Verb string

const (
	VerbPlot   Verb = "plot"
	VerbReplot Verb = "replot"
)

// PlotState tracks whether a plot has been issued. It starts Empty and
// becomes Active after the first successful plot command.
type PlotState struct {
	plots int
}

// Active reports whether at least one plot command went out
func (p *PlotState) Active() bool {
	return p.plots > 0
}

// Verb returns the verb the next plot command must use
func (p *PlotState) Verb() Verb {
	if p.Active() {
		return VerbReplot
	}
	return VerbPlot
}

// Advance records a successfully dispatched plot command
func (p *PlotState) Advance() {
	p.plots++
}

// Count returns the number of plot commands dispatched
func (p *PlotState) Count() int {
	return p.plots
}

// Reset returns the state to Empty
func (p *PlotState) Reset() {
	p.plots = 0
}

// SeriesClause renders `"<path>" title "<title>" with <style>`. The style is
// embedded verbatim; gnuplot is the only judge of whether it is valid.
func SeriesClause(path, title, style string) string {
	if title == "" {
		title = DefaultTitle
	}
	if style == "" {
		style = DefaultStyle
	}
	return fmt.Sprintf(`"%s" title "%s" with %s`, path, title, style)
}

// PlotCommand joins a verb and a series clause
func PlotCommand(verb Verb, clause string) string {
	return string(verb) + " " + clause
}

// RangeCommand renders `set <axis>range [<lo>:<hi>]`
func RangeCommand(axis string, lo, hi float64) string {
	return fmt.Sprintf("set %srange [%s:%s]", axis, formatNumber(lo), formatNumber(hi))
}

// HistogramCommand renders the grouped-bar plot over every cluster column of
// a histogram export. Column 1 holds the labels, clusters follow from column 2.
func HistogramCommand(path string, clusters int) string {
	return fmt.Sprintf(`plot for [COL=2:%d] "%s" using COL:xticlabels(1)`, clusters+1, path)
}

// HistogramStyleCommands returns the configuration lines sent before a
// histogram plot, falling back to the defaults for empty arguments.
func HistogramStyleCommands(histogramStyle, barStyle string) []string {
	if histogramStyle == "" {
		histogramStyle = DefaultHistogramStyle
	}
	if barStyle == "" {
		barStyle = DefaultBarStyle
	}
	return []string{
		"set style data histogram",
		"set style histogram " + histogramStyle,
		"set style " + barStyle,
		"set key autotitle columnhead",
	}
}

// QuotedSetting renders `set <name> "<value>"`
func QuotedSetting(name, value string) string {
	return fmt.Sprintf(`set %s "%s"`, name, value)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
