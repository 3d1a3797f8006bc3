package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxPoints bounds the number of samples Linspace produces
const MaxPoints = 1 << 20

var (
	// ErrInvalidRange is returned when a range yields no points
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidBins is returned when the bin count is not positive
	ErrInvalidBins = errors.New("invalid bin count (must be > 0)")

	// ErrNoValues is returned when there is nothing to bin
	ErrNoValues = errors.New("no values")
)

// Linspace returns floor((high-low)/step) points starting at low and spaced
// by step. high itself is excluded.
func Linspace(low, high, step float64) ([]float64, error) {
	if math.IsNaN(low) || math.IsNaN(high) || math.IsNaN(step) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	}
	if step <= 0 || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step must be positive, got %g", ErrInvalidRange, step)
	}

	count := math.Floor((high - low) / step)
	if count > MaxPoints {
		return nil, fmt.Errorf("%w: [%g, %g) with step %g needs more than %d points", ErrInvalidRange, low, high, step, MaxPoints)
	}
	n := int(count)
	if n < 1 {
		return nil, fmt.Errorf("%w: [%g, %g) with step %g has no points", ErrInvalidRange, low, high, step)
	}

	xs := make([]float64, n)
	if n == 1 {
		xs[0] = low
		return xs, nil
	}
	floats.Span(xs, low, low+float64(n-1)*step)
	return xs, nil
}

// Sample evaluates f at every x
func Sample(f func(float64) float64, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}

// Sign returns -1 for negative x and 1 otherwise
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
