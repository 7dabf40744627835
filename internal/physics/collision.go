package physics

import "math"

const (
	collisionRadius   = 0.35
	restlessCutoff    = 0.3
	collisionSpinKick = 0.1
	letterImpactMin   = 3.0
	letterImpactNorm  = 10.0

	hitWidth  = 0.6
	hitHeight = 0.4
)

// ResolveCollision separates two overlapping letters and exchanges momentum
// along the contact normal. Letters are treated as circles of radius
// 0.35 * (wa + wb). A grabbed letter is never moved by a collision.
func (e *Engine) ResolveCollision(a, b *Letter) (Impact, bool) {
	if !a.Active && !b.Active {
		return Impact{}, false
	}
	if a.Restlessness > restlessCutoff || b.Restlessness > restlessCutoff {
		return Impact{}, false
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := (a.Width + b.Width) * collisionRadius

	// coincident centers have no normal
	if dist >= minDist || dist == 0 {
		return Impact{}, false
	}

	nx, ny := dx/dist, dy/dist
	overlap := minDist - dist

	switch {
	case !a.Grabbed && !b.Grabbed:
		a.X -= nx * overlap / 2
		a.Y -= ny * overlap / 2
		b.X += nx * overlap / 2
		b.Y += ny * overlap / 2
	case a.Grabbed:
		b.X += nx * overlap
		b.Y += ny * overlap
	default:
		a.X -= nx * overlap
		a.Y -= ny * overlap
	}

	dvDotN := (a.VX-b.VX)*nx + (a.VY-b.VY)*ny
	if dvDotN <= 0 {
		return Impact{}, false
	}

	j := dvDotN * e.params.Restitution
	if !a.Grabbed {
		a.VX -= j * nx
		a.VY -= j * ny
		a.RotationSpeed += (e.rng.Float64() - 0.5) * collisionSpinKick
	}
	if !b.Grabbed {
		b.VX += j * nx
		b.VY += j * ny
		b.RotationSpeed += (e.rng.Float64() - 0.5) * collisionSpinKick
	}
	a.Active = true
	b.Active = true

	if dvDotN <= letterImpactMin {
		return Impact{}, false
	}
	return Impact{
		X:         (a.X + b.X) / 2,
		Y:         (a.Y + b.Y) / 2,
		Intensity: math.Min(dvDotN/letterImpactNorm, maxIntensity),
	}, true
}

// FindCollisions resolves every pair i < j in index order.
func (e *Engine) FindCollisions(letters []Letter) []Impact {
	var impacts []Impact
	for i := 0; i < len(letters); i++ {
		for j := i + 1; j < len(letters); j++ {
			if imp, ok := e.ResolveCollision(&letters[i], &letters[j]); ok {
				impacts = append(impacts, imp)
			}
		}
	}
	return impacts
}

// HitTest reports whether (x, y) falls inside the letter's rotated hit box,
// which is tighter vertically than the glyph box.
func HitTest(x, y float64, l *Letter) bool {
	dx := x - l.X
	dy := y - l.Y

	cos := math.Cos(-l.Rotation)
	sin := math.Sin(-l.Rotation)
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos

	return math.Abs(lx) < l.Width*hitWidth && math.Abs(ly) < l.Height*hitHeight
}
