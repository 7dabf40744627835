package interaction

import (
	"math/rand"

	"github.com/san-kum/kinetype/internal/physics"
)

const (
	popSpeedX   = 6.0
	popSpeedY   = -12.0
	popRotation = 0.2
	grabLift    = 20.0

	dragGain    = 0.5
	throwGain   = 2.0
	throwSpin   = 0.02
	scatterX    = 25.0
	scatterY    = 20.0
	scatterBase = 10.0
	scatterSpin = 0.3
)

// Controller turns pointer and trigger input into letter mutations. It holds
// the grab handle by index into the letter slice it is given, so callers must
// Forget it whenever the letter set is replaced.
type Controller struct {
	rng *rand.Rand

	grabbed  int
	offsetX  float64
	offsetY  float64
	lastX    float64
	lastY    float64
	havePrev bool

	hovered int
}

func New(rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Controller{rng: rng, grabbed: -1, hovered: -1}
}

// Grabbed returns the index of the grabbed letter, or -1.
func (c *Controller) Grabbed() int { return c.grabbed }

// Hovered returns the index of the hovered letter, or -1.
func (c *Controller) Hovered() int { return c.hovered }

// Grab picks up the topmost letter under (x, y) and gives it a small pop.
// It is a no-op while another letter is held.
func (c *Controller) Grab(letters []physics.Letter, x, y float64) bool {
	if c.grabbed >= 0 {
		return false
	}
	i := topmost(letters, x, y)
	if i < 0 {
		return false
	}

	l := &letters[i]
	l.Grabbed = true
	l.Active = true
	l.Restlessness = 0
	l.VX = (c.rng.Float64() - 0.5) * popSpeedX
	l.VY = popSpeedY
	l.Rotation += (c.rng.Float64() - 0.5) * popRotation

	c.grabbed = i
	c.offsetX = l.X - x
	c.offsetY = l.Y - y - grabLift
	c.lastX, c.lastY = x, y
	c.havePrev = true
	return true
}

// Drag moves the held letter with the pointer. Its velocity is derived from
// the pointer delta so a following Release can throw it.
func (c *Controller) Drag(letters []physics.Letter, x, y float64) {
	l := c.held(letters)
	if l == nil {
		return
	}
	if c.havePrev {
		l.VX = (x - c.lastX) * dragGain
		l.VY = (y - c.lastY) * dragGain
	}
	l.X = x + c.offsetX
	l.Y = y + c.offsetY
	c.lastX, c.lastY = x, y
	c.havePrev = true
}

// Release lets go of the held letter, amplifying its velocity into a throw.
func (c *Controller) Release(letters []physics.Letter) {
	if l := c.held(letters); l != nil {
		l.Grabbed = false
		l.VX *= throwGain
		l.VY *= throwGain
		l.RotationSpeed = l.VX * throwSpin
	}
	c.grabbed = -1
	c.havePrev = false
}

// Scatter flings every letter upward with random speed and spin.
func (c *Controller) Scatter(letters []physics.Letter) {
	for i := range letters {
		l := &letters[i]
		l.Active = true
		l.Restlessness = 0
		l.VX = (c.rng.Float64() - 0.5) * scatterX
		l.VY = -c.rng.Float64()*scatterY - scatterBase
		l.RotationSpeed = (c.rng.Float64() - 0.5) * scatterSpin
	}
}

// Hover marks the topmost letter under (x, y) as hovered and clears the flag
// on all others. It returns the hovered index or -1.
func (c *Controller) Hover(letters []physics.Letter, x, y float64) int {
	i := topmost(letters, x, y)
	for j := range letters {
		letters[j].Hovered = j == i
	}
	c.hovered = i
	return i
}

// ClearHover removes the hover flag from every letter.
func (c *Controller) ClearHover(letters []physics.Letter) {
	for i := range letters {
		letters[i].Hovered = false
	}
	c.hovered = -1
}

// Forget drops the grab and hover handles without touching any letter.
func (c *Controller) Forget() {
	c.grabbed = -1
	c.hovered = -1
	c.havePrev = false
}

func (c *Controller) held(letters []physics.Letter) *physics.Letter {
	if c.grabbed < 0 || c.grabbed >= len(letters) {
		return nil
	}
	return &letters[c.grabbed]
}

// topmost scans from the end so the last drawn letter wins.
func topmost(letters []physics.Letter, x, y float64) int {
	for i := len(letters) - 1; i >= 0; i-- {
		if physics.HitTest(x, y, &letters[i]) {
			return i
		}
	}
	return -1
}
