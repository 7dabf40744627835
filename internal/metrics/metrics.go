package metrics

import (
	"github.com/san-kum/kinetype/internal/session"
)

// Metric accumulates a single number over a run.
type Metric interface {
	Name() string
	Observe(f session.Frame)
	Value() float64
	Reset()
}

// Set fans every frame out to its metrics. It satisfies [session.Observer].
type Set []Metric

// Default returns one of each metric.
func Default() Set {
	return Set{
		NewPeakSpeed(),
		NewMeanKineticEnergy(),
		NewImpacts(),
		NewSettleTicks(),
	}
}

func (s Set) OnTick(f session.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

// Values returns each metric's current value keyed by name.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}
