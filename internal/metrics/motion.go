package metrics

import (
	"math"

	"github.com/san-kum/kinetype/internal/session"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f session.Frame) {
	for i := range f.Letters {
		p.peak = math.Max(p.peak, f.Letters[i].Speed())
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// MeanKineticEnergy averages the per-frame sum of ½v² over all letters,
// treating every letter as unit mass.
type MeanKineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewMeanKineticEnergy() *MeanKineticEnergy {
	return &MeanKineticEnergy{name: "mean_kinetic_energy"}
}

func (e *MeanKineticEnergy) Name() string { return e.name }

func (e *MeanKineticEnergy) Observe(f session.Frame) {
	ke := 0.0
	for i := range f.Letters {
		l := &f.Letters[i]
		ke += 0.5 * (l.VX*l.VX + l.VY*l.VY)
	}
	e.total += ke
	e.samples++
}

func (e *MeanKineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanKineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}
