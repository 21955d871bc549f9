package anneal

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/palette"
)

// Report is the outcome of one run. Every field is independent of the
// optimiser that produced it.
type Report struct {
	StartCost cost.TotalCost
	FinalCost cost.TotalCost
	Start     palette.Snapshot
	Final     palette.Snapshot
	Duration  time.Duration
	Sweeps    int
	Weights   cost.Weights
}

// StartTotal is the weighted objective before the run.
func (r Report) StartTotal() float32 {
	return r.Weights.Total(r.StartCost)
}

// FinalTotal is the weighted objective after the run.
func (r Report) FinalTotal() float32 {
	return r.Weights.Total(r.FinalCost)
}

// SweepsPerSecond is the sweep throughput, or 0 for a zero duration.
func (r Report) SweepsPerSecond() float64 {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Sweeps) / secs
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cost: %.2f (start) → %.2f (final)\n", r.StartTotal(), r.FinalTotal())
	b.WriteString("Cost breakdown:\n")
	fmt.Fprintf(&b, "  %s\n", r.StartCost)
	b.WriteString("        ↓\n")
	fmt.Fprintf(&b, "  %s\n", r.FinalCost)
	fmt.Fprintf(&b, "Time: %.2fs for %d sweeps (%.0f sweeps/sec)\n",
		r.Duration.Seconds(), r.Sweeps, r.SweepsPerSecond())
	writeChange(&b, "Background colours", r.Start.ActiveBackgrounds(), r.Final.ActiveBackgrounds())
	b.WriteString("\n")
	writeChange(&b, "Foreground colours", r.Start.Foregrounds, r.Final.Foregrounds)
	return b.String()
}

func writeChange(b *strings.Builder, title string, before, after []colour.Color) {
	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "  %s\n", strings.Join(colour.HexList(before), " "))
	b.WriteString("        ↓\n")
	fmt.Fprintf(b, "  %s\n", strings.Join(colour.HexList(after), " "))
}
