// Package anneal minimises a palette's cost by simulated annealing: one slot
// at a time is nudged, the whole palette is re-scored, and the change is kept
// with the Metropolis probability at the current temperature.
package anneal

import (
	"errors"
	"fmt"
)

// Schedule is a geometric cooling law. The temperature starts at Initial, is
// multiplied by CoolingRate after every sweep, and the run stops once it is no
// longer above Cutoff.
type Schedule struct {
	Initial     float32
	CoolingRate float32
	Cutoff      float32
}

// DefaultSchedule is the schedule every production run uses.
var DefaultSchedule = Schedule{
	Initial:     1000,
	CoolingRate: 0.99,
	Cutoff:      0.0001,
}

// ErrInvalidSchedule is returned for schedules that never terminate or never
// start.
var ErrInvalidSchedule = errors.New("invalid cooling schedule")

// Validate checks that the schedule cools towards a positive cutoff.
func (s Schedule) Validate() error {
	switch {
	case !(s.Initial > 0):
		return fmt.Errorf("%w: initial temperature %v must be positive", ErrInvalidSchedule, s.Initial)
	case !(s.Cutoff > 0):
		return fmt.Errorf("%w: cutoff %v must be positive", ErrInvalidSchedule, s.Cutoff)
	case !(s.CoolingRate > 0 && s.CoolingRate < 1):
		return fmt.Errorf("%w: cooling rate %v must be in (0, 1)", ErrInvalidSchedule, s.CoolingRate)
	}
	return nil
}

// Sweeps returns how many sweeps the schedule runs. It replays the float32
// cooling loop, so it matches Optimize exactly rather than the closed form
// ceil(ln(cutoff/initial) / ln(rate)), which it can differ from by one.
func (s Schedule) Sweeps() int {
	if s.Validate() != nil {
		return 0
	}
	n := 0
	for t := s.Initial; t > s.Cutoff; t *= s.CoolingRate {
		n++
	}
	return n
}
