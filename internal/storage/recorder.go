package storage

import (
	"github.com/san-kum/kinetype/internal/session"
)

// TrackRow is one letter's state at one recorded tick.
type TrackRow struct {
	Tick         int     `json:"tick"`
	Time         float64 `json:"time"`
	Letter       int     `json:"letter"`
	Char         string  `json:"char"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Rotation     float64 `json:"rotation"`
	VX           float64 `json:"vx"`
	VY           float64 `json:"vy"`
	Restlessness float64 `json:"restlessness"`
	Active       bool    `json:"active"`
	Grabbed      bool    `json:"grabbed"`
}

type ImpactRow struct {
	Tick      int     `json:"tick"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
}

// Recorder captures letter rows every stride ticks and every impact. It
// satisfies [session.Observer].
type Recorder struct {
	stride  int
	ticks   int
	letters int
	width   float64
	height  float64
	rows    []TrackRow
	impacts []ImpactRow
}

func NewRecorder(stride int) (*Recorder, error) {
	if stride <= 0 {
		return nil, ErrInvalidStride
	}
	return &Recorder{stride: stride}, nil
}

func (r *Recorder) OnTick(f session.Frame) {
	r.ticks++
	r.width, r.height = f.Width, f.Height
	if len(f.Letters) > r.letters {
		r.letters = len(f.Letters)
	}

	for _, im := range f.Impacts {
		r.impacts = append(r.impacts, ImpactRow{
			Tick:      f.Index,
			X:         im.X,
			Y:         im.Y,
			Intensity: im.Intensity,
		})
	}

	if f.Index%r.stride != 0 {
		return
	}
	for i, l := range f.Letters {
		r.rows = append(r.rows, TrackRow{
			Tick:         f.Index,
			Time:         f.Time,
			Letter:       i,
			Char:         string(l.Char),
			X:            l.X,
			Y:            l.Y,
			Rotation:     l.Rotation,
			VX:           l.VX,
			VY:           l.VY,
			Restlessness: l.Restlessness,
			Active:       l.Active,
			Grabbed:      l.Grabbed,
		})
	}
}

func (r *Recorder) Stride() int { return r.stride }

// Ticks returns the number of frames observed.
func (r *Recorder) Ticks() int { return r.ticks }

func (r *Recorder) Rows() []TrackRow { return r.rows }

func (r *Recorder) Impacts() []ImpactRow { return r.impacts }
