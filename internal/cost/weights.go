package cost

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidWeights is wrapped by every error Weights.Initialize returns.
var ErrInvalidWeights = errors.New("invalid weights")

// partitionTolerance is how far a partition may sum from 1.
const partitionTolerance float32 = 0.01

// Weights controls how much each TotalCost term contributes to the objective.
// Three groups are partitions that blend sub-components of a single term and
// must each sum to 1: the distance pair weights, the target weights and the
// contrast pair weights.
type Weights struct {
	Contrast     float32 `mapstructure:"contrast" json:"contrast"`
	Distance     float32 `mapstructure:"distance" json:"distance"`
	Range        float32 `mapstructure:"range" json:"range"`
	Target       float32 `mapstructure:"target" json:"target"`
	Protanopia   float32 `mapstructure:"protanopia" json:"protanopia"`
	Deuteranopia float32 `mapstructure:"deuteranopia" json:"deuteranopia"`
	Tritanopia   float32 `mapstructure:"tritanopia" json:"tritanopia"`

	DistanceBgBg float32 `mapstructure:"distance_bg_bg" json:"distance_bg_bg"`
	DistanceBgFg float32 `mapstructure:"distance_bg_fg" json:"distance_bg_fg"`
	DistanceFgFg float32 `mapstructure:"distance_fg_fg" json:"distance_fg_fg"`

	TargetBg float32 `mapstructure:"target_bg" json:"target_bg"`
	TargetFg float32 `mapstructure:"target_fg" json:"target_fg"`

	ContrastBgBg float32 `mapstructure:"contrast_bg_bg" json:"contrast_bg_bg"`
	ContrastBgFg float32 `mapstructure:"contrast_bg_fg" json:"contrast_bg_fg"`
}

// DefaultWeights returns the tuned default configuration, initialised.
func DefaultWeights() Weights {
	w := Weights{
		Contrast:     0.5,
		Distance:     1,
		Range:        0.5,
		Target:       1,
		Protanopia:   0.33,
		Deuteranopia: 0.33,
		Tritanopia:   0.33,

		DistanceBgBg: 0,
		DistanceBgFg: 0.2,
		DistanceFgFg: 0.8,

		TargetBg: 0.1,
		TargetFg: 0.9,

		ContrastBgBg: 0.1,
		ContrastBgFg: 0.9,
	}
	w.MustInitialize()
	return w
}

// Initialize validates the weights and re-derives the last member of each
// partition as 1 minus the others, so every partition sums to exactly 1.
// On error the weights are left unchanged.
func (w *Weights) Initialize() error {
	for _, f := range w.fields() {
		if !(*f.value >= 0) {
			return fmt.Errorf("%w: %s is %v, must be non-negative", ErrInvalidWeights, f.name, *f.value)
		}
	}

	next := *w
	var err error
	if next.DistanceFgFg, err = derive("distance", next.DistanceBgBg, next.DistanceBgFg, next.DistanceFgFg); err != nil {
		return err
	}
	if next.TargetFg, err = derive("target", next.TargetBg, next.TargetFg); err != nil {
		return err
	}
	if next.ContrastBgFg, err = derive("contrast", next.ContrastBgBg, next.ContrastBgFg); err != nil {
		return err
	}
	*w = next
	return nil
}

// MustInitialize is like Initialize but panics on invalid weights.
func (w *Weights) MustInitialize() {
	if err := w.Initialize(); err != nil {
		panic(err)
	}
}

// Total returns the weighted sum of the cost terms.
func (w Weights) Total(c TotalCost) float32 {
	return w.Contrast*c.Contrast +
		w.Distance*c.Distance +
		w.Range*c.Range +
		w.Target*c.Target +
		w.Protanopia*c.Protanopia +
		w.Deuteranopia*c.Deuteranopia +
		w.Tritanopia*c.Tritanopia
}

// derive checks that parts sums to 1 within tolerance and returns the value
// the last part must take for an exact sum.
func derive(group string, parts ...float32) (float32, error) {
	var sum, others float32
	for i, p := range parts {
		sum += p
		if i < len(parts)-1 {
			others += p
		}
	}
	if math32.Abs(sum-1) > partitionTolerance {
		return 0, fmt.Errorf("%w: %s partition sums to %.3f, must be 1", ErrInvalidWeights, group, sum)
	}
	last := 1 - others
	if last < 0 {
		return 0, fmt.Errorf("%w: %s partition leaves a negative remainder %.3f", ErrInvalidWeights, group, last)
	}
	return last, nil
}

type namedWeight struct {
	name  string
	value *float32
}

func (w *Weights) fields() []namedWeight {
	return []namedWeight{
		{"contrast", &w.Contrast},
		{"distance", &w.Distance},
		{"range", &w.Range},
		{"target", &w.Target},
		{"protanopia", &w.Protanopia},
		{"deuteranopia", &w.Deuteranopia},
		{"tritanopia", &w.Tritanopia},
		{"distance_bg_bg", &w.DistanceBgBg},
		{"distance_bg_fg", &w.DistanceBgFg},
		{"distance_fg_fg", &w.DistanceFgFg},
		{"target_bg", &w.TargetBg},
		{"target_fg", &w.TargetFg},
		{"contrast_bg_bg", &w.ContrastBgBg},
		{"contrast_bg_fg", &w.ContrastBgFg},
	}
}
