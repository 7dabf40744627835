package physics

import "math"

// UpdateEntries runs the staggered entry animation. elapsed is milliseconds
// since the letters became visible. A letter set in motion before it has
// finished entering skips the rest of its entry.
func (e *Engine) UpdateEntries(letters []Letter, elapsed float64) {
	for i := range letters {
		l := &letters[i]
		if l.Entered {
			continue
		}
		if l.Active || l.Grabbed {
			l.Entered = true
			l.Opacity = 1
			continue
		}

		t := (elapsed - l.EntryDelay - e.params.EntryDelay) / e.params.EntryDuration
		if t <= 0 {
			continue
		}
		t = math.Min(1, t)

		ease := 1 - math.Pow(1-t, 3)
		l.Opacity = math.Min(1, t*1.5)
		l.Y = l.HomeY + e.params.EntryYOffset*(1-ease)

		if t >= 1 {
			l.Entered = true
			l.Y = l.HomeY
			l.Opacity = 1
		}
	}
}

// EntryDone reports whether every letter has finished entering.
func EntryDone(letters []Letter) bool {
	for i := range letters {
		if !letters[i].Entered {
			return false
		}
	}
	return true
}
