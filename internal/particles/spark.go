package particles

import (
	"math"
	"math/rand"
)

// Spark is a short-lived particle thrown off by an impact.
type Spark struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Life    float64
}

// NewSparks bursts floor(3 + 4*intensity) sparks from (x, y) in random
// directions, faster for harder impacts.
func NewSparks(x, y, intensity float64, rng *rand.Rand) []Spark {
	n := int(math.Floor(3 + intensity*4))
	if n <= 0 {
		return nil
	}

	sparks := make([]Spark, n)
	for i := range sparks {
		angle := rng.Float64() * 2 * math.Pi
		speed := (1 + rng.Float64()*2) * intensity
		sparks[i] = Spark{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle)*speed - 1,
			Size:    1 + rng.Float64()*2,
			Opacity: 0.3 + rng.Float64()*0.3,
			Life:    1,
		}
	}
	return sparks
}

// UpdateSparks advances every spark and drops the dead ones. The returned
// slice reuses the backing array of sparks.
func UpdateSparks(sparks []Spark, p Params) []Spark {
	alive := sparks[:0]
	for _, s := range sparks {
		s.X += s.VX
		s.Y += s.VY
		s.VY += p.SparkGravity
		s.Life -= p.SparkDecay
		s.Opacity = s.Life * 0.4
		if s.Life > 0 {
			alive = append(alive, s)
		}
	}
	return alive
}
