package cost

import (
	"github.com/chewxy/math32"

	"github.com/jmylchreest/huetune/internal/colour"
)

// PairwiseDistances appends Distance(colors[i], colors[j]) for every i < j to
// dst[:0], in row-major upper-triangle order, and returns the result.
func PairwiseDistances(dst []float32, colors []colour.Color) []float32 {
	dst = dst[:0]
	for i := range colors {
		for j := i + 1; j < len(colors); j++ {
			dst = append(dst, colour.Distance(colors[i], colors[j]))
		}
	}
	return dst
}

// CrossDistances appends Distance(a[i], b[j]) for every pair to dst[:0] in
// row-major order and returns the result.
func CrossDistances(dst []float32, a, b []colour.Color) []float32 {
	dst = dst[:0]
	for _, x := range a {
		for _, y := range b {
			dst = append(dst, colour.Distance(x, y))
		}
	}
	return dst
}

// RMSDistance returns the root-mean-square of (target - v) over values, or 0
// for no values.
func RMSDistance(target float32, values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	var sum float32
	for _, v := range values {
		d := target - v
		sum += d * d
	}
	return math32.Sqrt(sum / float32(len(values)))
}

// RMS returns the root-mean-square of values, or 0 for no values.
func RMS(values []float32) float32 {
	return RMSDistance(0, values)
}

// Range returns max(values) - min(values). It panics on empty input.
func Range(values []float32) float32 {
	if len(values) == 0 {
		panic("cost: Range called with no values")
	}
	lo, hi := math32.Inf(1), math32.Inf(-1)
	for _, v := range values {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return hi - lo
}
