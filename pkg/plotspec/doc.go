// Package plotspec describes a figure declaratively and renders it onto an
// engine session.
//
// A descriptor is a JSON or YAML document:
//
//	title: Damped oscillation
//	xlabel: t [s]
//	terminal: pngcairo size 800,600
//	output: damped.png
//	series:
//	  - title: measured
//	    file: samples.dat
//	    columns: [1, 3]
//	    style: points
//	functions:
//	  range: {low: 0, high: 10, step: 0.05}
//	  plots:
//	    - name: sin
//	      title: model
//
// Documents are checked against an embedded JSON schema before decoding.
// Data file paths are resolved relative to the descriptor's directory.
package plotspec
