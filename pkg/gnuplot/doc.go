// Package gnuplot drives a gnuplot process over its standard input.
//
// Data is handed over through temporary files; commands are written one per
// line and flushed. Nothing is read back from the engine, so errors inside
// gnuplot (a bad style name, malformed syntax) are never reported here.
//
// Invariants:
// - A Session owns exactly one engine process and one temporary file table.
// - The first plot command of a session uses "plot", every later one "replot".
// - At most capacity-1 temporary files are live; all are removed by Close,
//   even when stopping the engine fails.
// - A Session is not safe for concurrent use.
//
// Usage:
//
//	err := gnuplot.With(gnuplot.DefaultConfig(), func(s *gnuplot.Session) error {
//		return s.PlotXY(gnuplot.Series{X: xs, Y: ys, Title: "data", Style: "lines"})
//	})
package gnuplot
