package cost

import (
	"fmt"

	"github.com/jmylchreest/huetune/internal/colour"
)

// distanceTarget is the pairwise distance the distance terms aim for.
const distanceTarget float32 = 100

const blendSlack float32 = 1e-3

// TotalCost holds the independent cost terms of one palette. The fields are
// not bounded individually once weighted; Weights.Total folds them into the
// optimiser's objective.
type TotalCost struct {
	Contrast     float32 `json:"contrast"`
	Distance     float32 `json:"distance"`
	Range        float32 `json:"range"`
	Target       float32 `json:"target"`
	Protanopia   float32 `json:"protanopia"`
	Deuteranopia float32 `json:"deuteranopia"`
	Tritanopia   float32 `json:"tritanopia"`
}

func (c TotalCost) String() string {
	return fmt.Sprintf("contrast=%.2f  distance=%.2f  target=%.2f  range=%.2f  a11y=%.2f,%.2f,%.2f",
		c.Contrast, c.Distance, c.Target, c.Range, c.Protanopia, c.Deuteranopia, c.Tritanopia)
}

// Subject is a palette that can be scored.
type Subject interface {
	// Backgrounds returns the active backgrounds as currently held in their
	// semantic slots.
	Backgrounds() []colour.Color
	// SlotBackgrounds returns every semantic background slot, active or not,
	// in a stable order. Background contrast is scored across all of them.
	SlotBackgrounds() []colour.Color
	Foregrounds() []colour.Color
	// ModifiableBackgrounds returns the flat array the optimiser mutates.
	ModifiableBackgrounds() []colour.Color
	TargetBackgrounds() []colour.Color
	TargetForegrounds() []colour.Color
}

// Evaluator computes TotalCost from scratch on every call, reusing its buffers
// between calls. An Evaluator must not be shared between goroutines.
type Evaluator struct {
	weights Weights

	bgs  []colour.Color
	fgs  []colour.Color
	bgBg []float32
	bgFg []float32
	fgFg []float32

	contrast []float32
	deltas   []float32
}

// NewEvaluator returns an evaluator for initialised weights.
func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{weights: w}
}

// Weights returns the weights the evaluator scores with.
func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Total scores s. Range reads the foreground distances left behind by the
// normal-vision distance pass, so that pass runs first.
func (e *Evaluator) Total(s Subject) TotalCost {
	var c TotalCost
	c.Contrast = e.contrastCost(s).Value()
	c.Distance = e.distanceCost(s, colour.Normal).Value()
	if len(e.fgFg) > 0 {
		c.Range = Range(e.fgFg)
	}
	c.Target = e.targetCost(s).Value()
	c.Protanopia = e.distanceCost(s, colour.Protanopia).Value()
	c.Deuteranopia = e.distanceCost(s, colour.Deuteranopia).Value()
	c.Tritanopia = e.distanceCost(s, colour.Tritanopia).Value()
	return c
}

// Objective scores s and folds the result into a single value.
func (e *Evaluator) Objective(s Subject) (TotalCost, float32) {
	c := e.Total(s)
	return c, e.weights.Total(c)
}

func (e *Evaluator) distanceCost(s Subject, v colour.Vision) ScaledCost {
	w := e.weights

	e.bgs = simulateAll(e.bgs, s.Backgrounds(), v)
	e.fgs = simulateAll(e.fgs, s.Foregrounds(), v)
	e.bgBg = e.bgBg[:0]
	e.bgFg = e.bgFg[:0]
	e.fgFg = e.fgFg[:0]

	var total float32
	if w.DistanceBgBg > 0 {
		e.bgBg = PairwiseDistances(e.bgBg, e.bgs)
		total += w.DistanceBgBg * RMSDistance(distanceTarget, e.bgBg)
	}
	if w.DistanceBgFg > 0 {
		e.bgFg = CrossDistances(e.bgFg, e.bgs, e.fgs)
		total += w.DistanceBgFg * RMSDistance(distanceTarget, e.bgFg)
	}
	if w.DistanceFgFg > 0 || (v == colour.Normal && w.Range > 0) {
		e.fgFg = PairwiseDistances(e.fgFg, e.fgs)
		total += w.DistanceFgFg * RMSDistance(distanceTarget, e.fgFg)
	}
	return blended(total)
}

func (e *Evaluator) targetCost(s Subject) ScaledCost {
	w := e.weights
	var total float32
	if w.TargetBg > 0 {
		e.deltas = closestDeltas(e.deltas, s.ModifiableBackgrounds(), s.TargetBackgrounds())
		total += w.TargetBg * RMS(e.deltas)
	}
	if w.TargetFg > 0 {
		e.deltas = closestDeltas(e.deltas, s.Foregrounds(), s.TargetForegrounds())
		total += w.TargetFg * RMS(e.deltas)
	}
	return blended(total)
}

func (e *Evaluator) contrastCost(s Subject) ScaledCost {
	w := e.weights
	var total float32
	if w.ContrastBgBg > 0 {
		slots := s.SlotBackgrounds()
		e.contrast = e.contrast[:0]
		for i := range slots {
			for j := i + 1; j < len(slots); j++ {
				e.contrast = append(e.contrast, pairContrast(slots[i], slots[j], Background))
			}
		}
		total += w.ContrastBgBg * RMS(e.contrast)
	}
	if w.ContrastBgFg > 0 {
		e.contrast = e.contrast[:0]
		for _, bg := range s.Backgrounds() {
			for _, fg := range s.Foregrounds() {
				e.contrast = append(e.contrast, pairContrast(bg, fg, Text))
			}
		}
		total += w.ContrastBgFg * RMS(e.contrast)
	}
	return blended(total)
}

// blended bounds a partition-weighted sum of scaled costs. Float32 rounding can
// push an all-maximum blend a hair above MaxCost.
func blended(total float32) ScaledCost {
	if total > MaxCost && total-MaxCost < blendSlack {
		total = MaxCost
	}
	return NewScaledCost(total)
}

func pairContrast(a, b colour.Color, need ContrastNeed) float32 {
	return ContrastCost(colour.NormalizeRatio(colour.ContrastRatio(a, b)), need).Value()
}

func simulateAll(dst, colors []colour.Color, v colour.Vision) []colour.Color {
	dst = dst[:0]
	for _, c := range colors {
		dst = append(dst, colour.Simulate(c, v))
	}
	return dst
}

func closestDeltas(dst []float32, colors, targets []colour.Color) []float32 {
	dst = dst[:0]
	for _, c := range colors {
		dst = append(dst, colour.Distance(c, colour.Closest(c, targets)))
	}
	return dst
}
