package physics

import (
	"math"

	"github.com/san-kum/kinetype/internal/layout"
)

// State is the logical settle state of a letter.
type State int

const (
	StateDormant State = iota
	StateActive
	StateSettling
	StateGrabbed
)

func (s State) String() string {
	switch s {
	case StateDormant:
		return "dormant"
	case StateActive:
		return "active"
	case StateSettling:
		return "settling"
	case StateGrabbed:
		return "grabbed"
	default:
		return "unknown"
	}
}

// Letter is one simulated glyph. Positions are glyph centers in viewport
// units; velocities are in units per tick.
type Letter struct {
	Char   rune
	Weight layout.Weight

	X, Y         float64
	HomeX, HomeY float64
	VX, VY       float64

	Rotation      float64
	RotationSpeed float64

	Width, Height float64

	Active  bool
	Grabbed bool
	Hovered bool

	Restlessness float64

	Scale      float64
	Opacity    float64
	Entered    bool
	EntryDelay float64
}

func (l *Letter) State() State {
	switch {
	case l.Grabbed:
		return StateGrabbed
	case !l.Active:
		return StateDormant
	case l.Restlessness > 0:
		return StateSettling
	default:
		return StateActive
	}
}

func (l *Letter) Speed() float64 {
	return math.Hypot(l.VX, l.VY)
}

// DistanceHome returns the distance between the letter and its home position.
func (l *Letter) DistanceHome() float64 {
	return math.Hypot(l.HomeX-l.X, l.HomeY-l.Y)
}

// AtHome reports whether the letter sits exactly at home with no motion.
func (l *Letter) AtHome() bool {
	return l.X == l.HomeX && l.Y == l.HomeY &&
		l.VX == 0 && l.VY == 0 &&
		l.Rotation == 0 && l.RotationSpeed == 0
}

// Spawn creates one letter per layout entry. Entering letters start below
// home, transparent and staggered; otherwise they start at rest at home.
func (e *Engine) Spawn(nl layout.NameLayout, entering bool) []Letter {
	letters := make([]Letter, len(nl.Letters))
	for i, ll := range nl.Letters {
		l := Letter{
			Char:    ll.Char,
			Weight:  ll.Weight,
			X:       ll.X,
			Y:       ll.CenterY,
			HomeX:   ll.X,
			HomeY:   ll.CenterY,
			Width:   ll.Width,
			Height:  nl.FontSize,
			Scale:   1,
			Opacity: 1,
			Entered: true,
		}
		if entering {
			l.Y += e.params.EntryYOffset
			l.Opacity = 0
			l.Entered = false
			l.EntryDelay = float64(i) * e.params.EntryStagger
		}
		letters[i] = l
	}
	return letters
}

// Rehome moves home targets to a new layout. Dormant, entered letters are
// snapped to their new home; moving letters keep their kinetic state. A
// layout with a different letter count replaces the set at rest.
func (e *Engine) Rehome(letters []Letter, nl layout.NameLayout) []Letter {
	if len(letters) != len(nl.Letters) {
		return e.Spawn(nl, false)
	}
	for i := range letters {
		l := &letters[i]
		ll := nl.Letters[i]

		l.HomeX = ll.X
		l.HomeY = ll.CenterY
		l.Width = ll.Width
		l.Height = nl.FontSize
		l.Weight = ll.Weight

		if l.Active || l.Grabbed {
			continue
		}
		l.X = l.HomeX
		if l.Entered {
			l.Y = l.HomeY
		}
	}
	return letters
}
