package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/kinetype/internal/physics"
)

const (
	baseSpeedX = 0.3
	baseSpeedY = 0.2
	baseRise   = 0.1

	driftFrequency = 0.5
	driftAmplitude = 0.15
)

// Dust is one particle of the ambient field. ColorIndex is -1 for uncolored
// dust, otherwise a bucket in the active palette.
type Dust struct {
	X, Y    float64
	Size    float64
	Opacity float64

	SpeedX, SpeedY float64
	Drift          float64

	ColorIndex int
}

func (d Dust) Colored() bool { return d.ColorIndex >= 0 }

// NewDust seeds p.DustCount particles uniformly over the viewport.
func NewDust(width, height float64, p Params, rng *rand.Rand) []Dust {
	dust := make([]Dust, p.DustCount)
	for i := range dust {
		dust[i] = Dust{
			X:          rng.Float64() * width,
			Y:          rng.Float64() * height,
			Size:       rng.Float64()*2 + 1,
			Opacity:    rng.Float64()*0.15 + 0.05,
			SpeedX:     baselineX(rng),
			SpeedY:     baselineY(rng),
			Drift:      rng.Float64() * 2 * math.Pi,
			ColorIndex: -1,
		}
		if p.ColorCount > 0 && rng.Float64() < p.ColoredRatio {
			dust[i].ColorIndex = rng.Intn(p.ColorCount)
		}
	}
	return dust
}

func baselineX(rng *rand.Rand) float64 { return (rng.Float64() - 0.5) * baseSpeedX }
func baselineY(rng *rand.Rand) float64 { return (rng.Float64()-0.5)*baseSpeedY - baseRise }

// UpdateDust advances the field by one tick. time is in seconds. Fast
// letters push nearby dust outward; the field then drifts, damps, relaxes
// toward a random baseline and wraps around the viewport edges.
func UpdateDust(dust []Dust, letters []physics.Letter, time, width, height float64, p Params, rng *rand.Rand) {
	for i := range dust {
		d := &dust[i]
		applyWake(d, letters, p)

		d.X += d.SpeedX + math.Sin(time*driftFrequency+d.Drift)*driftAmplitude
		d.Y += d.SpeedY

		d.SpeedX *= p.Damping
		d.SpeedY *= p.Damping

		d.SpeedX += (baselineX(rng) - d.SpeedX) * p.Relaxation
		d.SpeedY += (baselineY(rng) - d.SpeedY) * p.Relaxation

		wrap(d, width, height, p.WrapMargin)
	}
}

func applyWake(d *Dust, letters []physics.Letter, p Params) {
	for i := range letters {
		l := &letters[i]
		if !l.Active && !l.Grabbed {
			continue
		}

		speed := l.Speed()
		radius := l.Width * p.WakeRadius
		if speed <= p.WakeMinSpeed || radius <= 0 {
			continue
		}

		dx := d.X - l.X
		dy := d.Y - l.Y
		dist := math.Hypot(dx, dy)
		if dist >= radius {
			continue
		}

		push := (1 - dist/radius) * speed * p.WakeStrength
		norm := dist
		if norm == 0 {
			norm = 1
		}
		d.SpeedX += dx / norm * push
		d.SpeedY += dy / norm * push
	}
}

func wrap(d *Dust, width, height, margin float64) {
	if d.X < -margin {
		d.X = width + margin
	}
	if d.X > width+margin {
		d.X = -margin
	}
	if d.Y < -margin {
		d.Y = height + margin
	}
	if d.Y > height+margin {
		d.Y = -margin
	}
}
