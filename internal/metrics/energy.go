package metrics

import (
	"math"

	"github.com/san-kum/isocontour/internal/sim"
)

// EnergyDrift reports the largest relative change in particle kinetic energy
// since the first observed frame. Boundary reflection only flips velocity
// signs, so any drift points at a broken boundary rule.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	if e.samples == 0 {
		e.initial = f.Energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(f.Energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Default returns the metric set attached to CLI runs.
func Default() []sim.Metric {
	return []sim.Metric{
		NewSegments(),
		NewPeakLength(),
		NewFieldMean(),
		NewFieldSpread(),
		NewFieldPeak(),
		NewEnergyDrift(),
	}
}
