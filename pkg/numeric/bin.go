package numeric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bins is the result of counting values into equal-width bins
type Bins struct {
	Min    float64
	Step   float64
	Counts []int
}

// Bin assigns each value to bin clamp(floor((x-min)/step), 0, bins-1),
// where step = (max-min)/bins, and counts the values per bin. When all values
// are equal every value lands in the first bin.
func Bin(values []float64, bins int) (Bins, error) {
	if bins <= 0 {
		return Bins{}, ErrInvalidBins
	}
	if len(values) == 0 {
		return Bins{}, ErrNoValues
	}
	if floats.HasNaN(values) {
		return Bins{}, fmt.Errorf("%w: values contain NaN", ErrInvalidRange)
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	step := (hi - lo) / float64(bins)

	counts := make([]int, bins)
	for _, x := range values {
		idx := 0
		if step > 0 {
			idx = int(math.Floor((x - lo) / step))
		}
		idx = min(max(idx, 0), bins-1)
		counts[idx]++
	}

	return Bins{Min: lo, Step: step, Counts: counts}, nil
}

// Centers returns the midpoint of every bin
func (b Bins) Centers() []float64 {
	centers := make([]float64, len(b.Counts))
	for i := range centers {
		centers[i] = b.Min + (float64(i)+0.5)*b.Step
	}
	return centers
}

// Values returns the counts as floats for plotting
func (b Bins) Values() []float64 {
	vals := make([]float64, len(b.Counts))
	for i, c := range b.Counts {
		vals[i] = float64(c)
	}
	return vals
}
