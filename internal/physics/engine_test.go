package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/kinetype/internal/layout"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultParams(), rand.New(rand.NewSource(42)))
}

func restingLetter(x, y float64) Letter {
	return Letter{
		Char: 'a', X: x, Y: y, HomeX: x, HomeY: y,
		Width: 40, Height: 80, Scale: 1, Opacity: 1, Entered: true,
	}
}

func TestGroundCollision(t *testing.T) {
	g := NewWithT(t)
	e := newTestEngine()
	const groundY = 552.0

	l := restingLetter(400, groundY-80*0.35)
	l.VY = 20

	speed, ok := e.HandleGroundCollision(&l, groundY)
	g.Expect(ok).To(BeTrue())
	g.Expect(speed).To(Equal(20.0))
	g.Expect(l.VY).To(Equal(-10.0))
	g.Expect(l.Y).To(Equal(groundY - 80*0.35))
}

func TestGroundCollisionSmallBounces(t *testing.T) {
	tests := []struct {
		name    string
		vy      float64
		wantVY  float64
		wantHit bool
	}{
		{"below report threshold", 4, -2, false},
		{"settles to zero", 0.8, 0, false},
		{"above ground", 0, 0, false},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := restingLetter(400, 500)
			l.VY = tt.vy
			_, hit := e.HandleGroundCollision(&l, 500+80*0.35)
			if hit != tt.wantHit {
				t.Errorf("expected hit=%v, got %v", tt.wantHit, hit)
			}
			if math.Abs(l.VY-tt.wantVY) > 1e-12 {
				t.Errorf("expected vy %f, got %f", tt.wantVY, l.VY)
			}
		})
	}

	l := restingLetter(400, 100)
	l.VY = 10
	if _, hit := e.HandleGroundCollision(&l, 500); hit || l.VY != 10 {
		t.Error("letter above the ground should be untouched")
	}
}

func TestGroundCollisionDampsHorizontal(t *testing.T) {
	e := newTestEngine()
	l := restingLetter(400, 600)
	l.VX = 10
	l.VY = 8
	e.HandleGroundCollision(&l, 552)

	if math.Abs(l.VX-9) > 1e-12 {
		t.Errorf("expected vx 9, got %f", l.VX)
	}
	if math.Abs(l.RotationSpeed-0.09) > 1e-12 {
		t.Errorf("expected spin 0.09, got %f", l.RotationSpeed)
	}
}

func TestWallCollision(t *testing.T) {
	e := newTestEngine()

	left := restingLetter(10, 300)
	left.VX = -5
	e.HandleWallCollision(&left, 800)
	if left.VX <= 0 {
		t.Errorf("left wall: expected vx > 0, got %f", left.VX)
	}
	if left.X != 20 {
		t.Errorf("left wall: expected x clamped to 20, got %f", left.X)
	}

	right := restingLetter(790, 300)
	right.VX = 5
	e.HandleWallCollision(&right, 800)
	if right.VX >= 0 {
		t.Errorf("right wall: expected vx < 0, got %f", right.VX)
	}
	if right.X != 780 {
		t.Errorf("right wall: expected x clamped to 780, got %f", right.X)
	}
}

func TestCeilingCollision(t *testing.T) {
	e := newTestEngine()
	l := restingLetter(400, 10)
	l.VY = -6
	e.HandleCeilingCollision(&l)
	if l.Y != 40 {
		t.Errorf("expected y clamped to 40, got %f", l.Y)
	}
	if l.VY != 3 {
		t.Errorf("expected vy 3, got %f", l.VY)
	}
}

func TestSnapThresholds(t *testing.T) {
	tests := []struct {
		name         string
		offset       float64
		restlessness float64
		rotation     float64
		wantSnap     bool
	}{
		{"close tired upright", 2, 0.6, 0, true},
		{"too far", 3.5, 0.6, 0, false},
		{"not tired enough", 2, 0.5, 0, false},
		{"tilted", 2, 0.6, 0.06, false},
		{"tilted other way", 2, 0.9, -0.05, false},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := restingLetter(400, 300)
			l.X += tt.offset
			l.Active = true
			l.Restlessness = tt.restlessness
			l.Rotation = tt.rotation

			snapped := e.ApplyHomeForce(&l)
			if snapped != tt.wantSnap {
				t.Fatalf("expected snap=%v, got %v", tt.wantSnap, snapped)
			}
			if snapped {
				if !l.AtHome() || l.Active || l.Restlessness != 0 {
					t.Errorf("snap should leave letter dormant at home: %+v", l)
				}
			} else if !l.Active {
				t.Error("letter should remain active")
			}
		})
	}
}

func TestHomeForcePullsHome(t *testing.T) {
	e := newTestEngine()
	l := restingLetter(400, 300)
	l.X = 300
	l.Active = true
	l.Restlessness = 0.5

	e.ApplyHomeForce(&l)
	want := 100 * 0.008 * 0.25
	if math.Abs(l.VX-want) > 1e-12 {
		t.Errorf("expected vx %f, got %f", want, l.VX)
	}

	l = restingLetter(400, 300)
	l.X = 300
	l.Active = true
	e.ApplyHomeForce(&l)
	if l.VX != 0 {
		t.Error("no pull expected without restlessness")
	}
}

func TestRestlessnessMonotonic(t *testing.T) {
	e := newTestEngine()
	l := restingLetter(400, 300)
	l.Active = true
	l.VX = 0.5

	prev := l.Restlessness
	for i := 0; i < 400; i++ {
		e.UpdateRestlessness(&l)
		if l.Restlessness < prev {
			t.Fatalf("restlessness decreased at tick %d: %f -> %f", i, prev, l.Restlessness)
		}
		prev = l.Restlessness
	}
	if l.Restlessness != 1 {
		t.Errorf("expected restlessness capped at 1, got %f", l.Restlessness)
	}

	fast := restingLetter(400, 300)
	fast.VX = 3
	e.UpdateRestlessness(&fast)
	if fast.Restlessness != 0 {
		t.Error("moving letter should not grow restless")
	}

	spinning := restingLetter(400, 300)
	spinning.RotationSpeed = 0.05
	e.UpdateRestlessness(&spinning)
	if spinning.Restlessness != 0 {
		t.Error("spinning letter should not grow restless")
	}
}

func TestStepGrabbedResetsRestlessness(t *testing.T) {
	e := newTestEngine()
	l := restingLetter(400, 300)
	l.Active = true
	l.Grabbed = true
	l.Restlessness = 0.8
	l.VY = 5

	e.Step(&l, 552, 800)
	if l.Restlessness != 0 {
		t.Errorf("expected restlessness 0, got %f", l.Restlessness)
	}
	if l.Y != 300 {
		t.Error("grabbed letter should not be integrated")
	}
}

func TestStepDormantUntouched(t *testing.T) {
	e := newTestEngine()
	l := restingLetter(400, 300)
	before := l
	e.Step(&l, 552, 800)
	if l != before {
		t.Errorf("dormant letter changed: %+v", l)
	}
}

func TestStepGroundImpact(t *testing.T) {
	g := NewWithT(t)
	e := newTestEngine()
	const groundY = 552.0

	l := restingLetter(400, groundY-40)
	l.HomeY = 300
	l.Active = true
	l.VY = 20

	imp, ok := e.Step(&l, groundY, 800)
	g.Expect(ok).To(BeTrue())
	g.Expect(imp.Y).To(Equal(groundY))
	g.Expect(imp.X).To(Equal(l.X))
	g.Expect(imp.Intensity).To(Equal(1.5))
	g.Expect(l.VY).To(BeNumerically("<", 0))
}

func TestStepGravityFadesWithRestlessness(t *testing.T) {
	e := newTestEngine()

	fresh := restingLetter(400, 200)
	fresh.HomeY = 200
	fresh.Active = true
	fresh.VX = 2
	e.ApplyGravityAndFriction(&fresh)

	tired := restingLetter(400, 200)
	tired.Active = true
	tired.VX = 2
	tired.Restlessness = 1
	e.ApplyGravityAndFriction(&tired)

	if math.Abs(fresh.VY-0.3*0.98) > 1e-12 {
		t.Errorf("expected vy %f, got %f", 0.3*0.98, fresh.VY)
	}
	if math.Abs(tired.VY-0.3*0.05*0.98) > 1e-12 {
		t.Errorf("expected vy %f, got %f", 0.3*0.05*0.98, tired.VY)
	}
}

func TestUpdateAllSettlesHome(t *testing.T) {
	e := newTestEngine()
	rng := rand.New(rand.NewSource(7))

	nl := layout.Compute(800, 600, layout.DefaultName(), fixedMeasurer(40))
	letters := e.Spawn(nl, false)
	for i := range letters {
		letters[i].Active = true
		letters[i].VX = (rng.Float64() - 0.5) * 25
		letters[i].VY = -rng.Float64()*20 - 10
		letters[i].RotationSpeed = (rng.Float64() - 0.5) * 0.3
	}

	settled := false
	for tick := 0; tick < 20000; tick++ {
		e.FindCollisions(letters)
		res := e.UpdateAll(letters, 552, 800)
		if !res.AnyActive {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatal("letters never settled")
	}

	for i := range letters {
		l := &letters[i]
		if l.Active {
			continue
		}
		if !l.AtHome() {
			t.Errorf("dormant letter %d (%c) not at home: (%f,%f) vs (%f,%f)", i, l.Char, l.X, l.Y, l.HomeX, l.HomeY)
		}
	}
}

func TestUpdateScale(t *testing.T) {
	e := newTestEngine()

	l := restingLetter(400, 300)
	l.Hovered = true
	for i := 0; i < 100; i++ {
		e.UpdateScale(&l)
	}
	if math.Abs(l.Scale-1.08) > 1e-6 {
		t.Errorf("expected hover scale 1.08, got %f", l.Scale)
	}

	l.Grabbed = true
	for i := 0; i < 100; i++ {
		e.UpdateScale(&l)
	}
	if math.Abs(l.Scale-1) > 1e-6 {
		t.Errorf("grabbed letter should return to scale 1, got %f", l.Scale)
	}

	low := restingLetter(400, 300)
	low.Scale = 0.9
	low.Hovered = true
	e.UpdateScale(&low)
	if low.Scale != 0.9 {
		t.Error("scale below floor should be left alone")
	}
}

func TestLetterState(t *testing.T) {
	tests := []struct {
		name string
		l    Letter
		want State
	}{
		{"dormant", Letter{}, StateDormant},
		{"active", Letter{Active: true}, StateActive},
		{"settling", Letter{Active: true, Restlessness: 0.1}, StateSettling},
		{"grabbed", Letter{Active: true, Grabbed: true}, StateGrabbed},
	}
	for _, tt := range tests {
		if got := tt.l.State(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"friction above one", func(p *Params) { p.Friction = 1.5 }},
		{"negative bounce", func(p *Params) { p.Bounce = -0.1 }},
		{"zero growth", func(p *Params) { p.RestlessnessGrowth = 0 }},
		{"NaN gravity", func(p *Params) { p.Gravity = math.NaN() }},
		{"zero entry duration", func(p *Params) { p.EntryDuration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}
