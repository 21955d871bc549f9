// Package cost scores candidate palettes. Every term is built from bounded
// ScaledCost values and aggregated into a TotalCost that the optimiser
// minimises through Weights.Total.
package cost

import (
	"fmt"

	"github.com/chewxy/math32"
)

// MaxCost is the upper bound of a ScaledCost.
const MaxCost float32 = 100

// ScaledCost is a cost value in [0, 100].
type ScaledCost float32

// NewScaledCost returns v as a ScaledCost. It panics if v is outside [0, 100]
// or NaN: an unbounded intermediate cost means a scoring function is wrong.
func NewScaledCost(v float32) ScaledCost {
	if !(v >= 0 && v <= MaxCost) {
		panic(fmt.Sprintf("cost: scaled cost %v outside [0, %v]", v, MaxCost))
	}
	return ScaledCost(v)
}

// Value returns the cost as a float32.
func (c ScaledCost) Value() float32 {
	return float32(c)
}

// ContrastNeed selects the minimum acceptable contrast ratio for a pair.
type ContrastNeed int

const (
	// Background is for two adjacent background surfaces.
	Background ContrastNeed = iota
	// Text is for text drawn on a background.
	Text
)

// MinRatio returns the smallest acceptable ratio for the need.
func (n ContrastNeed) MinRatio() float32 {
	switch n {
	case Text:
		return 4.5
	default:
		return 3
	}
}

func (n ContrastNeed) String() string {
	switch n {
	case Text:
		return "text"
	default:
		return "background"
	}
}

const (
	minContrastRatio float32 = 1
	maxContrastRatio float32 = 21
	// Slack for float32 rounding at the black/white extreme.
	contrastRatioSlack float32 = 1e-3
	contrastSteepness  float32 = 4
)

// ContrastCost scores a normalised contrast ratio against a need. Ratios below
// the need's minimum cost the maximum; at and above it the cost follows a
// logistic curve that is 50 at the minimum and falls towards 0 as the ratio
// grows. It panics if ratio lies outside [1, 21].
func ContrastCost(ratio float32, need ContrastNeed) ScaledCost {
	if !(ratio >= minContrastRatio-contrastRatioSlack && ratio <= maxContrastRatio+contrastRatioSlack) {
		panic(fmt.Sprintf("cost: contrast ratio %v outside [%v, %v]", ratio, minContrastRatio, maxContrastRatio))
	}
	floor := need.MinRatio()
	if ratio < floor {
		return NewScaledCost(MaxCost)
	}
	return NewScaledCost(MaxCost / (1 + math32.Exp(contrastSteepness*(ratio-floor))))
}
