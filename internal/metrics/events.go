package metrics

import (
	"github.com/san-kum/kinetype/internal/session"
)

// Impacts counts ground and letter-letter impacts strong enough to spark.
type Impacts struct {
	name  string
	count int
}

func NewImpacts() *Impacts {
	return &Impacts{name: "impacts"}
}

func (m *Impacts) Name() string { return m.name }

func (m *Impacts) Observe(f session.Frame) { m.count += len(f.Impacts) }

func (m *Impacts) Value() float64 { return float64(m.count) }

func (m *Impacts) Reset() { m.count = 0 }

// SettleTicks measures how long the letters took to come to rest after the
// most recent disturbance. While they are still moving it reports the ticks
// elapsed so far.
type SettleTicks struct {
	name    string
	moving  bool
	current int
	last    int
}

func NewSettleTicks() *SettleTicks {
	return &SettleTicks{name: "settle_ticks"}
}

func (s *SettleTicks) Name() string { return s.name }

func (s *SettleTicks) Observe(f session.Frame) {
	if !f.AtRest {
		if !s.moving {
			s.moving = true
			s.current = 0
		}
		s.current++
		return
	}
	if s.moving {
		s.moving = false
		s.last = s.current
	}
}

func (s *SettleTicks) Value() float64 {
	if s.moving {
		return float64(s.current)
	}
	return float64(s.last)
}

func (s *SettleTicks) Reset() {
	s.moving = false
	s.current = 0
	s.last = 0
}
