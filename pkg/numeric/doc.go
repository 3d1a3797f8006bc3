// Package numeric produces the plain numeric sequences the plotting session
// consumes: evenly spaced inputs, sampled function outputs and binned counts.
//
// Usage:
//
//	xs, _ := numeric.Linspace(0, 2*math.Pi, 0.1)
//	ys := numeric.Sample(math.Sin, xs)
//	bins, _ := numeric.Bin(ys, 10)
package numeric
