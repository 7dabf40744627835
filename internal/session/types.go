package session

import (
	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/particles"
	"github.com/san-kum/kinetype/internal/physics"
)

// FadeState is the visibility state of the letter group.
type FadeState int

const (
	FadeHidden FadeState = iota
	FadeEntering
	FadeVisible
	FadeExiting
)

func (f FadeState) String() string {
	switch f {
	case FadeHidden:
		return "hidden"
	case FadeEntering:
		return "entering"
	case FadeVisible:
		return "visible"
	case FadeExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

type Config struct {
	Name      layout.Name
	Physics   physics.Params
	Particles particles.Params
	Seed      int64
}

func DefaultConfig() Config {
	return Config{
		Name:      layout.DefaultName(),
		Physics:   physics.DefaultParams(),
		Particles: particles.DefaultParams(),
		Seed:      1,
	}
}

// Frame is what observers see after every tick. Letters is a copy.
type Frame struct {
	Index   int
	Time    float64
	Fade    FadeState
	GroundY float64
	Width   float64
	Height  float64
	AtRest  bool
	Letters []physics.Letter
	Impacts []physics.Impact
}

type Observer interface {
	OnTick(f Frame)
}

type TickResult struct {
	Frame   int
	AtRest  bool
	Impacts []physics.Impact
}

// Snapshot is a deep copy of everything a renderer needs.
type Snapshot struct {
	Frame    int
	Width    float64
	Height   float64
	GroundY  float64
	FontSize float64
	Stacked  bool

	Fade            FadeState
	GroupOpacity    float64
	BackdropOpacity float64
	AtRest          bool

	Letters []physics.Letter
	Dust    []particles.Dust
	Sparks  []particles.Spark
}
