package script

// Target receives the intents a script issues. *session.Session satisfies it.
type Target interface {
	Show()
	Hide()
	Reset()
	Scatter()
	Release()
	Grab(x, y float64)
	Drag(x, y float64)
	Hover(x, y float64)
	Resize(width, height float64) error
}

// Player feeds a script into a target one tick at a time.
type Player struct {
	script  *Script
	pc      int
	waiting int
}

func NewPlayer(s *Script) *Player {
	return &Player{script: s}
}

// Advance issues every command due before the next tick. Call it once per
// tick, before ticking the target.
func (p *Player) Advance(t Target) error {
	if p.waiting > 0 {
		p.waiting--
		return nil
	}

	for p.pc < len(p.script.Commands) {
		c := p.script.Commands[p.pc]
		p.pc++

		if c.Wait != nil {
			if *c.Wait > 0 {
				p.waiting = *c.Wait - 1
				return nil
			}
			continue
		}
		if err := issue(t, c); err != nil {
			return err
		}
	}
	return nil
}

// Done reports whether every command has been issued and every wait served.
func (p *Player) Done() bool {
	return p.pc >= len(p.script.Commands) && p.waiting == 0
}

func issue(t Target, c *Command) error {
	switch {
	case c.Show:
		t.Show()
	case c.Hide:
		t.Hide()
	case c.Reset:
		t.Reset()
	case c.Scatter:
		t.Scatter()
	case c.Release:
		t.Release()
	case c.Grab != nil:
		t.Grab(c.Grab.X, c.Grab.Y)
	case c.Drag != nil:
		t.Drag(c.Drag.X, c.Drag.Y)
	case c.Hover != nil:
		t.Hover(c.Hover.X, c.Hover.Y)
	case c.Resize != nil:
		return t.Resize(c.Resize.X, c.Resize.Y)
	}
	return nil
}
