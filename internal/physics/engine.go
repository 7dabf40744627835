package physics

import (
	"math"
	"math/rand"
)

const (
	settleSpeed    = 1.0
	settleSpin     = 0.02
	gravityDamping = 0.95
	spinDecay      = 0.98
	homeSpin       = 0.02

	snapDistance     = 3.0
	snapRestlessness = 0.5
	snapRotation     = 0.05

	visualHeight     = 0.7
	groundDrag       = 0.9
	groundSpin       = 0.01
	restingBounce    = 0.5
	groundImpactMin  = 5.0
	groundImpactNorm = 12.0
	maxIntensity     = 1.5
	hoverFloor       = 0.95
)

// Impact is a discrete collision event used to spawn sparks.
type Impact struct {
	X, Y      float64
	Intensity float64
}

// StepResult summarizes one UpdateAll pass.
type StepResult struct {
	AnyActive     bool
	GroundImpacts []Impact
}

// Engine integrates letters. It is not safe for concurrent use.
type Engine struct {
	params Params
	rng    *rand.Rand
}

func NewEngine(p Params, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{params: p, rng: rng}
}

func (e *Engine) Params() Params { return e.params }

// UpdateRestlessness grows restlessness while the letter is nearly still.
func (e *Engine) UpdateRestlessness(l *Letter) {
	if l.Speed() < settleSpeed && math.Abs(l.RotationSpeed) < settleSpin {
		l.Restlessness = math.Min(e.params.MaxRestlessness, l.Restlessness+e.params.RestlessnessGrowth)
	}
}

// ApplyHomeForce pulls the letter home with a strength quadratic in
// restlessness. It returns true when the letter snapped to rest.
func (e *Engine) ApplyHomeForce(l *Letter) bool {
	dx := l.HomeX - l.X
	dy := l.HomeY - l.Y
	dist := math.Hypot(dx, dy)

	if l.Restlessness > 0 && dist > 1 {
		force := e.params.HomeForce * l.Restlessness * l.Restlessness
		l.VX += dx * force
		l.VY += dy * force
		l.RotationSpeed += -l.Rotation * homeSpin * l.Restlessness
	}

	if dist < snapDistance && l.Restlessness > snapRestlessness && math.Abs(l.Rotation) < snapRotation {
		l.X, l.Y = l.HomeX, l.HomeY
		l.VX, l.VY = 0, 0
		l.Rotation, l.RotationSpeed = 0, 0
		l.Active = false
		l.Restlessness = 0
		return true
	}
	return false
}

// ApplyGravityAndFriction adds gravity, faded out by restlessness, then
// decays linear and angular velocity.
func (e *Engine) ApplyGravityAndFriction(l *Letter) {
	l.VY += e.params.Gravity * (1 - l.Restlessness*gravityDamping)
	l.VX *= e.params.Friction
	l.VY *= e.params.Friction
	l.RotationSpeed *= spinDecay
}

func (e *Engine) ApplyVelocity(l *Letter) {
	l.X += l.VX
	l.Y += l.VY
	l.Rotation += l.RotationSpeed
}

// HandleGroundCollision bounces the letter off groundY when its lower visual
// extent reaches it. The impact speed is returned only when it is large
// enough to be worth reporting.
func (e *Engine) HandleGroundCollision(l *Letter, groundY float64) (float64, bool) {
	half := l.Height * visualHeight / 2
	if l.Y+half < groundY {
		return 0, false
	}

	impact := math.Abs(l.VY)
	l.Y = groundY - half
	l.VY *= -e.params.Bounce
	l.VX *= groundDrag
	l.RotationSpeed = l.VX * groundSpin
	if math.Abs(l.VY) < restingBounce {
		l.VY = 0
	}

	if impact > groundImpactMin {
		return impact, true
	}
	return 0, false
}

func (e *Engine) HandleWallCollision(l *Letter, width float64) {
	half := l.Width / 2
	if l.X < half {
		l.X = half
		l.VX *= -e.params.Bounce
	} else if l.X > width-half {
		l.X = width - half
		l.VX *= -e.params.Bounce
	}
}

func (e *Engine) HandleCeilingCollision(l *Letter) {
	half := l.Height / 2
	if l.Y < half {
		l.Y = half
		l.VY *= -e.params.Bounce
	}
}

// Step advances one letter by one tick. Grabbed and dormant letters are left
// to the interaction controller; a snap ends the tick for that letter.
func (e *Engine) Step(l *Letter, groundY, width float64) (Impact, bool) {
	if l.Grabbed {
		l.Restlessness = 0
		return Impact{}, false
	}
	if !l.Active {
		return Impact{}, false
	}

	e.UpdateRestlessness(l)
	if e.ApplyHomeForce(l) {
		return Impact{}, false
	}

	e.ApplyGravityAndFriction(l)
	e.ApplyVelocity(l)

	speed, hit := e.HandleGroundCollision(l, groundY)
	e.HandleWallCollision(l, width)
	e.HandleCeilingCollision(l)

	if !hit {
		return Impact{}, false
	}
	return Impact{
		X:         l.X,
		Y:         groundY,
		Intensity: math.Min(speed/groundImpactNorm, maxIntensity),
	}, true
}

// UpdateAll steps every letter and advances hover scale.
func (e *Engine) UpdateAll(letters []Letter, groundY, width float64) StepResult {
	var res StepResult
	for i := range letters {
		l := &letters[i]
		if l.Active {
			res.AnyActive = true
		}
		if imp, ok := e.Step(l, groundY, width); ok {
			res.GroundImpacts = append(res.GroundImpacts, imp)
		}
		e.UpdateScale(l)
	}
	return res
}

// UpdateScale eases the render scale toward the hover lift or back to 1.
func (e *Engine) UpdateScale(l *Letter) {
	if !l.Entered || l.Scale <= hoverFloor {
		return
	}
	target := 1.0
	if l.Hovered && !l.Grabbed {
		target = e.params.HoverScale
	}
	l.Scale += (target - l.Scale) * e.params.ScaleLerp
}
