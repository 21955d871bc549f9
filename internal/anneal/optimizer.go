package anneal

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/palette"
)

// progressInterval is how many sweeps pass between debug progress lines.
const progressInterval = 100

// Step describes one perturbation after its accept/reject decision.
type Step struct {
	Sweep       int
	Index       int
	Temperature float32
	Accepted    bool
	// Current is the cost of the palette as it stands after the decision.
	Current      cost.TotalCost
	CurrentTotal float32
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l hclog.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers a callback invoked after every step.
func WithObserver(fn func(Step)) Option {
	return func(o *Optimizer) {
		o.observer = fn
	}
}

// WithSchedule replaces DefaultSchedule.
func WithSchedule(s Schedule) Option {
	return func(o *Optimizer) {
		o.schedule = s
	}
}

// Optimizer runs simulated annealing over a palette. It owns its random
// stream; one Optimizer serves one run at a time.
type Optimizer struct {
	rng      *rand.Rand
	schedule Schedule
	logger   hclog.Logger
	observer func(Step)
}

// New returns an optimiser drawing from rng.
func New(rng *rand.Rand, opts ...Option) *Optimizer {
	o := &Optimizer{
		rng:      rng,
		schedule: DefaultSchedule,
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Schedule returns the cooling schedule in use.
func (o *Optimizer) Schedule() Schedule {
	return o.schedule
}

// Optimize anneals p in place and reports its state before and after. The run
// length depends only on the schedule. It panics on an invalid schedule.
func (o *Optimizer) Optimize(p *palette.Palette) Report {
	if err := o.schedule.Validate(); err != nil {
		panic(err)
	}

	eval := cost.NewEvaluator(p.Weights())
	startCost, current := eval.Objective(p)
	report := Report{
		StartCost: startCost,
		Start:     p.Snapshot(),
		Weights:   p.Weights(),
	}

	o.logger.Info("starting optimisation",
		"slots", p.SlotCount(),
		"sweeps", o.schedule.Sweeps(),
		"cost", current)

	began := time.Now()
	currentCost := startCost
	accepted, tried := 0, 0
	sweeps := 0

	for temperature := o.schedule.Initial; temperature > o.schedule.Cutoff; temperature *= o.schedule.CoolingRate {
		for i := 0; i < p.SlotCount(); i++ {
			slot := p.ColorAt(i)
			old := *slot
			*slot = colour.PerturbNearby(old, o.rng)
			p.SyncBackground(i)

			newCost, newTotal := eval.Objective(p)
			delta := newTotal - current
			probability := math32.Exp(-delta / temperature)
			ok := o.rng.Float32() < probability
			if ok {
				currentCost, current = newCost, newTotal
				accepted++
			} else {
				*p.ColorAt(i) = old
				p.SyncBackground(i)
			}
			tried++

			if o.observer != nil {
				o.observer(Step{
					Sweep:        sweeps,
					Index:        i,
					Temperature:  temperature,
					Accepted:     ok,
					Current:      currentCost,
					CurrentTotal: current,
				})
			}
		}
		sweeps++

		if sweeps%progressInterval == 0 {
			o.logger.Debug("annealing",
				"sweep", sweeps,
				"temperature", temperature,
				"cost", current,
				"acceptance", float32(accepted)/float32(max(tried, 1)))
			accepted, tried = 0, 0
		}
	}

	report.Duration = time.Since(began)
	report.Sweeps = sweeps
	report.FinalCost = eval.Total(p)
	report.Final = p.Snapshot()

	o.logger.Info("optimisation finished",
		"sweeps", sweeps,
		"duration", report.Duration,
		"start", report.StartTotal(),
		"final", report.FinalTotal())

	return report
}
