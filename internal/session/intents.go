package session

import (
	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/particles"
)

func (s *Session) applyIntents() {
	queued := s.intents
	s.intents = nil
	for _, in := range queued {
		switch in.kind {
		case intentShow:
			s.show()
		case intentHide:
			s.hide()
		case intentReset:
			s.reset()
		case intentResize:
			s.resize(in.x, in.y)
		case intentGrab:
			if s.fade == FadeVisible && s.ctrl.Grab(s.letters, in.x, in.y) {
				s.atRest = false
			}
		case intentDrag:
			s.ctrl.Drag(s.letters, in.x, in.y)
		case intentRelease:
			s.ctrl.Release(s.letters)
		case intentScatter:
			if s.fade == FadeVisible && len(s.letters) > 0 {
				s.ctrl.Scatter(s.letters)
				s.atRest = false
			}
		case intentHover:
			if s.fade == FadeVisible {
				s.ctrl.Hover(s.letters, in.x, in.y)
			} else {
				s.ctrl.ClearHover(s.letters)
			}
		}
	}
}

func (s *Session) hasViewport() bool { return s.width > 0 && s.height > 0 }

func (s *Session) show() {
	if s.fade == FadeEntering || s.fade == FadeVisible {
		return
	}
	if !s.hasViewport() {
		s.pendingShow = true
		return
	}
	s.pendingShow = false

	s.layout = layout.Compute(s.width, s.height, s.cfg.Name, s.measurer)
	s.letters = s.engine.Spawn(s.layout, true)
	s.ctrl.Forget()

	s.entryMillis = 0
	s.group = 0
	s.backdrop = 0
	s.sparks = s.sparks[:0]
	if len(s.dust) == 0 {
		s.dust = particles.NewDust(s.width, s.height, s.cfg.Particles, s.rng)
	}
	s.fade = FadeEntering
	s.atRest = true

	s.logger.Debug("show",
		"letters", len(s.letters),
		"font_size", s.layout.FontSize,
		"stacked", s.layout.Stacked,
	)
}

// hide freezes the letters where they are while the group fades out.
func (s *Session) hide() {
	s.pendingShow = false
	if s.fade == FadeHidden || s.fade == FadeExiting {
		return
	}
	for i := range s.letters {
		s.letters[i].Grabbed = false
	}
	s.ctrl.ClearHover(s.letters)
	s.ctrl.Forget()
	s.dust = nil
	s.sparks = nil
	s.fade = FadeExiting
	s.logger.Debug("hide", "frame", s.frame)
}

// reset puts every letter back home at rest and reseeds the dust.
func (s *Session) reset() {
	s.ctrl.Forget()
	for i := range s.letters {
		l := &s.letters[i]
		l.X, l.Y = l.HomeX, l.HomeY
		l.VX, l.VY = 0, 0
		l.Rotation, l.RotationSpeed = 0, 0
		l.Active = false
		l.Grabbed = false
		l.Hovered = false
		l.Restlessness = 0
	}
	s.sparks = nil
	s.atRest = true
	if s.hasViewport() && s.fade != FadeHidden && s.fade != FadeExiting {
		s.dust = particles.NewDust(s.width, s.height, s.cfg.Particles, s.rng)
	}
	s.logger.Debug("reset", "frame", s.frame)
}

func (s *Session) resize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height

	if len(s.letters) > 0 {
		s.layout = layout.Compute(width, height, s.cfg.Name, s.measurer)
		before := len(s.letters)
		s.letters = s.engine.Rehome(s.letters, s.layout)
		if len(s.letters) != before {
			s.ctrl.Forget()
		}
	}
	if s.fade == FadeEntering || s.fade == FadeVisible {
		s.dust = particles.NewDust(width, height, s.cfg.Particles, s.rng)
	}

	s.logger.Debug("resize",
		"width", width,
		"height", height,
		"stacked", s.layout.Stacked,
	)

	if s.pendingShow {
		s.show()
	}
}
