package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/physics"
	"github.com/san-kum/kinetype/internal/session"
)

type monoMeasurer float64

func (m monoMeasurer) Measure(text string, w layout.Weight, fontSize float64) float64 {
	return float64(m) * float64(len([]rune(text)))
}

type frameRecorder struct {
	frames []session.Frame
}

func (r *frameRecorder) OnTick(f session.Frame) { r.frames = append(r.frames, f) }

func tickN(s *session.Session, n int) {
	for i := 0; i < n; i++ {
		_, err := s.Tick()
		Expect(err).NotTo(HaveOccurred())
	}
}

// tickUntil ticks until cond holds and returns the number of ticks taken.
func tickUntil(s *session.Session, limit int, cond func(session.Snapshot) bool) int {
	for i := 1; i <= limit; i++ {
		_, err := s.Tick()
		Expect(err).NotTo(HaveOccurred())
		if cond(s.Snapshot()) {
			return i
		}
	}
	Fail("condition not reached")
	return limit
}

func visible(snap session.Snapshot) bool { return snap.Fade == session.FadeVisible }

func entered(snap session.Snapshot) bool {
	if len(snap.Letters) == 0 {
		return false
	}
	for _, l := range snap.Letters {
		if !l.Entered {
			return false
		}
	}
	return snap.Fade == session.FadeVisible
}

func newSession() *session.Session {
	s, err := session.New(session.DefaultConfig(), monoMeasurer(40))
	Expect(err).NotTo(HaveOccurred())
	Expect(s.Resize(800, 600)).To(Succeed())
	return s
}

func shownSession() *session.Session {
	s := newSession()
	s.Show()
	tickUntil(s, 200, entered)
	return s
}

var _ = Describe("Session", func() {
	Describe("construction", func() {
		It("rejects invalid physics parameters", func() {
			cfg := session.DefaultConfig()
			cfg.Physics.Friction = 2
			_, err := session.New(cfg, monoMeasurer(40))
			Expect(err).To(MatchError(physics.ErrParameterBounds))
		})

		It("rejects an empty viewport", func() {
			s, err := session.New(session.DefaultConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Resize(0, 600)).To(MatchError(session.ErrNoViewport))
			Expect(s.Resize(800, -1)).To(MatchError(session.ErrNoViewport))
		})

		It("starts hidden and at rest", func() {
			s := newSession()
			snap := s.Snapshot()
			Expect(snap.Fade).To(Equal(session.FadeHidden))
			Expect(snap.AtRest).To(BeTrue())
			Expect(snap.Letters).To(BeEmpty())
		})
	})

	Describe("visibility", func() {
		It("fades in and runs the staggered entry", func() {
			s := newSession()
			s.Show()
			tickN(s, 1)

			snap := s.Snapshot()
			Expect(snap.Fade).To(Equal(session.FadeEntering))
			Expect(snap.Letters).To(HaveLen(10))
			Expect(snap.Dust).To(HaveLen(300))
			Expect(snap.GroundY).To(Equal(552.0))
			for _, l := range snap.Letters {
				Expect(l.Opacity).To(Equal(0.0))
			}

			ticks := tickUntil(s, 40, visible)
			Expect(ticks).To(BeNumerically("<=", 26))

			tickUntil(s, 200, entered)
			snap = s.Snapshot()
			Expect(snap.GroupOpacity).To(Equal(1.0))
			Expect(snap.BackdropOpacity).To(Equal(1.0))
			for _, l := range snap.Letters {
				Expect(l.AtHome()).To(BeTrue())
				Expect(l.Opacity).To(Equal(1.0))
			}
		})

		It("defers show until a viewport exists", func() {
			s, err := session.New(session.DefaultConfig(), monoMeasurer(40))
			Expect(err).NotTo(HaveOccurred())
			s.Show()
			tickN(s, 3)
			Expect(s.Snapshot().Letters).To(BeEmpty())

			Expect(s.Resize(800, 600)).To(Succeed())
			tickN(s, 1)
			Expect(s.Snapshot().Letters).To(HaveLen(10))
			Expect(s.Fade()).To(Equal(session.FadeEntering))
		})

		It("freezes letters and clears particles on hide", func() {
			s := shownSession()
			s.Scatter()
			tickN(s, 5)

			s.Hide()
			tickN(s, 1)
			frozen := s.Snapshot()
			Expect(frozen.Fade).To(Equal(session.FadeExiting))
			Expect(frozen.Dust).To(BeEmpty())
			Expect(frozen.Sparks).To(BeEmpty())

			tickN(s, 3)
			Expect(s.Snapshot().Letters).To(Equal(frozen.Letters))

			tickUntil(s, 40, func(snap session.Snapshot) bool { return snap.Fade == session.FadeHidden })
			snap := s.Snapshot()
			Expect(snap.Letters).To(BeEmpty())
			Expect(snap.GroupOpacity).To(Equal(0.0))
		})

		It("re-enters when shown while exiting", func() {
			s := shownSession()
			s.Hide()
			tickN(s, 5)
			s.Show()
			tickN(s, 1)
			snap := s.Snapshot()
			Expect(snap.Fade).To(Equal(session.FadeEntering))
			Expect(snap.Letters).To(HaveLen(10))
			Expect(snap.Dust).To(HaveLen(300))
		})
	})

	Describe("interaction", func() {
		It("ignores input until the letters are visible", func() {
			s := newSession()
			s.Show()
			tickN(s, 1)
			home := s.Snapshot().Letters[0]

			s.Grab(home.HomeX, home.HomeY)
			s.Scatter()
			tickN(s, 1)
			for _, l := range s.Snapshot().Letters {
				Expect(l.Active).To(BeFalse())
				Expect(l.Grabbed).To(BeFalse())
			}
		})

		It("grabs, drags and throws a letter", func() {
			s := shownSession()
			first := s.Snapshot().Letters[0]

			s.Grab(first.X, first.Y)
			tickN(s, 1)
			snap := s.Snapshot()
			Expect(snap.Letters[0].Grabbed).To(BeTrue())
			Expect(snap.Letters[0].Restlessness).To(Equal(0.0))
			Expect(snap.AtRest).To(BeFalse())

			s.Drag(first.X+30, first.Y-40)
			tickN(s, 1)
			l := s.Snapshot().Letters[0]
			Expect(l.X).To(BeNumerically("~", first.X+30, 1e-9))
			Expect(l.Y).To(BeNumerically("~", first.Y-60, 1e-9))
			Expect(l.VX).To(BeNumerically("~", 15, 1e-9))

			s.Release()
			tickN(s, 1)
			l = s.Snapshot().Letters[0]
			Expect(l.Grabbed).To(BeFalse())
			Expect(l.Active).To(BeTrue())
		})

		It("tracks an exclusive hover", func() {
			s := shownSession()
			letters := s.Snapshot().Letters

			s.Hover(letters[3].X, letters[3].Y)
			tickN(s, 1)
			hovered := 0
			for i, l := range s.Snapshot().Letters {
				if l.Hovered {
					hovered++
					Expect(i).To(Equal(3))
				}
			}
			Expect(hovered).To(Equal(1))
		})

		It("scatters, sparks and settles back home", func() {
			s := shownSession()
			rec := &frameRecorder{}
			s.AddObserver(rec)

			s.Scatter()
			res, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.AtRest).To(BeFalse())

			impacts := 0
			sawSparks := false
			for i := 0; i < 20000; i++ {
				res, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
				impacts += len(res.Impacts)
				if len(s.Snapshot().Sparks) > 0 {
					sawSparks = true
				}
				if res.AtRest {
					break
				}
			}

			Expect(impacts).To(BeNumerically(">", 0))
			Expect(sawSparks).To(BeTrue())

			snap := s.Snapshot()
			Expect(snap.AtRest).To(BeTrue())
			for _, l := range snap.Letters {
				Expect(l.Active).To(BeFalse())
				Expect(l.AtHome()).To(BeTrue())
			}

			Expect(rec.frames).NotTo(BeEmpty())
			for i := 1; i < len(rec.frames); i++ {
				Expect(rec.frames[i].Index).To(Equal(rec.frames[i-1].Index + 1))
			}
		})

		It("resets letters home", func() {
			s := shownSession()
			s.Scatter()
			tickN(s, 10)

			s.Reset()
			tickN(s, 1)
			snap := s.Snapshot()
			Expect(snap.AtRest).To(BeTrue())
			Expect(snap.Sparks).To(BeEmpty())
			Expect(snap.Dust).To(HaveLen(300))
			for _, l := range snap.Letters {
				Expect(l.Active).To(BeFalse())
				Expect(l.AtHome()).To(BeTrue())
			}
		})
	})

	Describe("resize", func() {
		It("is idempotent", func() {
			s := shownSession()
			before := s.Snapshot()

			Expect(s.Resize(800, 600)).To(Succeed())
			Expect(s.Resize(800, 600)).To(Succeed())
			tickN(s, 1)
			after := s.Snapshot()
			Expect(after.Letters).To(Equal(before.Letters))
		})

		It("switches to a stacked layout on a narrow viewport", func() {
			s := shownSession()
			Expect(s.Resize(300, 600)).To(Succeed())
			tickN(s, 1)

			snap := s.Snapshot()
			Expect(snap.Stacked).To(BeTrue())
			Expect(snap.Letters[0].HomeY).To(BeNumerically("<", snap.Letters[9].HomeY))
			Expect(snap.Dust).To(HaveLen(300))
			for _, l := range snap.Letters {
				Expect(l.AtHome()).To(BeTrue())
			}
		})

		It("keeps a moving letter in flight", func() {
			s := shownSession()
			s.Scatter()
			tickN(s, 3)
			moving := s.Snapshot().Letters[0]

			Expect(s.Resize(1000, 600)).To(Succeed())
			s.Tick()
			l := s.Snapshot().Letters[0]
			Expect(l.HomeX).NotTo(Equal(moving.HomeX))
			Expect(l.Active).To(BeTrue())
		})
	})

	Describe("lifecycle", func() {
		It("degrades to no letters without a measurer", func() {
			s, err := session.New(session.DefaultConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Resize(700, 400)).To(Succeed())
			s.Show()
			tickN(s, 30)
			snap := s.Snapshot()
			Expect(snap.Letters).To(BeEmpty())
			Expect(snap.FontSize).To(Equal(80.0))
		})

		It("returns deep copies from Snapshot", func() {
			s := shownSession()
			snap := s.Snapshot()
			snap.Letters[0].X = -500
			snap.Dust[0].X = -500
			Expect(s.Snapshot().Letters[0].X).NotTo(Equal(-500.0))
			Expect(s.Snapshot().Dust[0].X).NotTo(Equal(-500.0))
		})

		It("stops ticking after Close", func() {
			s := shownSession()
			Expect(s.Close()).To(Succeed())
			Expect(s.Close()).To(Succeed())

			_, err := s.Tick()
			Expect(err).To(MatchError(session.ErrClosed))
			snap := s.Snapshot()
			Expect(snap.Letters).To(BeEmpty())
			Expect(snap.Dust).To(BeEmpty())
			Expect(snap.Sparks).To(BeEmpty())
		})

		It("is deterministic for a fixed seed", func() {
			run := func() session.Snapshot {
				s := shownSession()
				s.Scatter()
				tickN(s, 120)
				return s.Snapshot()
			}
			Expect(run()).To(Equal(run()))
		})
	})
})
