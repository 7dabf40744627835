package session

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/san-kum/kinetype/internal/interaction"
	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/particles"
	"github.com/san-kum/kinetype/internal/physics"
)

const (
	// TickMillis is the entry-animation time covered by one tick.
	TickMillis = 16.0
	// TickSeconds is the dust drift time covered by one tick.
	TickSeconds = 0.016

	GroundOffset   = 48.0
	FadeSpeed      = 0.04
	BackdropMillis = 500.0
)

type intentKind int

const (
	intentShow intentKind = iota
	intentHide
	intentReset
	intentResize
	intentGrab
	intentDrag
	intentRelease
	intentScatter
	intentHover
)

type intent struct {
	kind intentKind
	x, y float64
}

// Session owns the letters and particle pools of one animation. Input is
// queued and applied at the start of the next Tick. A Session is not safe
// for concurrent use.
type Session struct {
	cfg      Config
	measurer layout.Measurer
	logger   *log.Logger

	rng    *rand.Rand
	engine *physics.Engine
	ctrl   *interaction.Controller

	width, height float64
	layout        layout.NameLayout

	letters []physics.Letter
	dust    []particles.Dust
	sparks  []particles.Spark

	fade        FadeState
	group       float64
	backdrop    float64
	pendingShow bool
	entryMillis float64
	time        float64
	frame       int
	atRest      bool

	intents   []intent
	observers []Observer
	closed    bool
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a hidden session. A nil Measurer is allowed and yields no
// letters.
func New(cfg Config, m layout.Measurer, opts ...Option) (*Session, error) {
	if err := cfg.Physics.Validate(); err != nil {
		return nil, fmt.Errorf("physics params: %w", err)
	}
	if err := cfg.Particles.Validate(); err != nil {
		return nil, fmt.Errorf("particle params: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s := &Session{
		cfg:      cfg,
		measurer: m,
		logger:   log.New(io.Discard),
		rng:      rng,
		engine:   physics.NewEngine(cfg.Physics, rng),
		ctrl:     interaction.New(rng),
		atRest:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Session) Show()    { s.enqueue(intent{kind: intentShow}) }
func (s *Session) Hide()    { s.enqueue(intent{kind: intentHide}) }
func (s *Session) Reset()   { s.enqueue(intent{kind: intentReset}) }
func (s *Session) Release() { s.enqueue(intent{kind: intentRelease}) }
func (s *Session) Scatter() { s.enqueue(intent{kind: intentScatter}) }

func (s *Session) Grab(x, y float64)  { s.enqueue(intent{kind: intentGrab, x: x, y: y}) }
func (s *Session) Drag(x, y float64)  { s.enqueue(intent{kind: intentDrag, x: x, y: y}) }
func (s *Session) Hover(x, y float64) { s.enqueue(intent{kind: intentHover, x: x, y: y}) }

// Resize queues a viewport change. Resizing to the current size is a no-op.
func (s *Session) Resize(width, height float64) error {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrNoViewport, width, height)
	}
	s.enqueue(intent{kind: intentResize, x: width, y: height})
	return nil
}

func (s *Session) enqueue(in intent) {
	if s.closed {
		return
	}
	s.intents = append(s.intents, in)
}

// Close stops the session and releases its pools.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.intents = nil
	s.letters = nil
	s.dust = nil
	s.sparks = nil
	s.fade = FadeHidden
	s.group = 0
	s.backdrop = 0
	s.ctrl.Forget()
	s.logger.Debug("session closed", "frames", s.frame)
	return nil
}

func (s *Session) Fade() FadeState          { return s.fade }
func (s *Session) Layout() layout.NameLayout { return s.layout }
func (s *Session) Frame() int               { return s.frame }
func (s *Session) GroundY() float64         { return s.height - GroundOffset }

// Tick applies queued input and advances the animation by one frame.
func (s *Session) Tick() (TickResult, error) {
	if s.closed {
		return TickResult{}, ErrClosed
	}

	s.applyIntents()
	s.time += TickSeconds
	s.frame++

	if len(s.dust) > 0 {
		var stir []physics.Letter
		if s.fade != FadeHidden {
			stir = s.letters
		}
		particles.UpdateDust(s.dust, stir, s.time, s.width, s.height, s.cfg.Particles, s.rng)
	}

	s.advanceFade()

	var impacts []physics.Impact
	if s.integrating() {
		s.entryMillis += TickMillis
		s.advanceBackdrop()
		s.engine.UpdateEntries(s.letters, s.entryMillis)

		impacts = s.engine.FindCollisions(s.letters)

		wasActive := s.activeMask()
		res := s.engine.UpdateAll(s.letters, s.GroundY(), s.width)
		impacts = append(impacts, res.GroundImpacts...)
		s.logSnaps(wasActive)

		if res.AnyActive == s.atRest {
			s.atRest = !res.AnyActive
			s.logger.Debug("rest state changed", "at_rest", s.atRest, "frame", s.frame)
		}

		for _, imp := range impacts {
			s.sparks = append(s.sparks, particles.NewSparks(imp.X, imp.Y, imp.Intensity, s.rng)...)
		}
	}

	s.sparks = particles.UpdateSparks(s.sparks, s.cfg.Particles)

	s.notify(impacts)
	return TickResult{Frame: s.frame, AtRest: s.atRest, Impacts: impacts}, nil
}

func (s *Session) integrating() bool {
	return len(s.letters) > 0 && (s.fade == FadeEntering || s.fade == FadeVisible)
}

func (s *Session) advanceFade() {
	switch s.fade {
	case FadeEntering:
		s.group = math.Min(1, s.group+FadeSpeed)
		if s.group >= 1 {
			s.fade = FadeVisible
			s.logger.Debug("letters visible", "frame", s.frame)
		}
	case FadeExiting:
		s.group = math.Max(0, s.group-FadeSpeed)
		s.backdrop = math.Max(0, s.backdrop-FadeSpeed)
		if s.group <= 0 {
			s.fade = FadeHidden
			s.letters = nil
			s.layout = layout.NameLayout{}
			s.ctrl.Forget()
			s.atRest = true
			s.logger.Debug("letters hidden", "frame", s.frame)
		}
	}
}

func (s *Session) advanceBackdrop() {
	s.backdrop = math.Min(1, s.entryMillis/BackdropMillis)
}

func (s *Session) activeMask() []bool {
	mask := make([]bool, len(s.letters))
	for i := range s.letters {
		mask[i] = s.letters[i].Active
	}
	return mask
}

func (s *Session) logSnaps(wasActive []bool) {
	for i := range s.letters {
		if wasActive[i] && !s.letters[i].Active {
			s.logger.Debug("letter settled", "index", i, "char", string(s.letters[i].Char), "frame", s.frame)
		}
	}
}

func (s *Session) notify(impacts []physics.Impact) {
	if len(s.observers) == 0 {
		return
	}
	f := Frame{
		Index:   s.frame,
		Time:    s.time,
		Fade:    s.fade,
		GroundY: s.GroundY(),
		Width:   s.width,
		Height:  s.height,
		AtRest:  s.atRest,
		Letters: append([]physics.Letter(nil), s.letters...),
		Impacts: impacts,
	}
	for _, o := range s.observers {
		o.OnTick(f)
	}
}

// Snapshot returns a deep copy of the current render state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Frame:           s.frame,
		Width:           s.width,
		Height:          s.height,
		GroundY:         s.GroundY(),
		FontSize:        s.layout.FontSize,
		Stacked:         s.layout.Stacked,
		Fade:            s.fade,
		GroupOpacity:    s.group,
		BackdropOpacity: s.backdrop,
		AtRest:          s.atRest,
		Letters:         append([]physics.Letter(nil), s.letters...),
		Dust:            append([]particles.Dust(nil), s.dust...),
		Sparks:          append([]particles.Spark(nil), s.sparks...),
	}
}
