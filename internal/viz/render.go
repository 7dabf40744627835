package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/physics"
	"github.com/san-kum/kinetype/internal/session"
)

const (
	// CellWidth and CellHeight are the viewport size of one terminal cell.
	CellWidth  = 10.0
	CellHeight = 20.0

	minDustOpacity   = 0.15
	minLetterOpacity = 0.15
	fadedOpacity     = 0.6
)

type letterLook int

const (
	lookNone letterLook = iota
	lookRegular
	lookEmphasized
	lookHovered
	lookGrabbed
	lookFaded
)

// Renderer draws snapshots onto a fixed grid of terminal cells.
type Renderer struct {
	Cols, Rows int
	canvas     *Canvas
	letters    [][]rune
	looks      [][]letterLook
}

func NewRenderer(cols, rows int) *Renderer {
	cols, rows = max(cols, 1), max(rows, 1)
	r := &Renderer{
		Cols:    cols,
		Rows:    rows,
		canvas:  NewCanvas(cols, rows),
		letters: make([][]rune, rows),
		looks:   make([][]letterLook, rows),
	}
	for i := range r.letters {
		r.letters[i] = make([]rune, cols)
		r.looks[i] = make([]letterLook, cols)
	}
	return r
}

// Viewport returns the viewport size the grid covers.
func (r *Renderer) Viewport() (float64, float64) {
	return float64(r.Cols) * CellWidth, float64(r.Rows) * CellHeight
}

// CellCenter maps a terminal cell to the viewport point at its center.
func (r *Renderer) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

// Cell maps a viewport point to the terminal cell containing it.
func (r *Renderer) Cell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (r *Renderer) dot(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth * 2)), int(math.Floor(y / CellHeight * 4))
}

func (r *Renderer) clear() {
	r.canvas.Clear()
	for i := range r.letters {
		for j := range r.letters[i] {
			r.letters[i][j] = 0
			r.looks[i][j] = lookNone
		}
	}
}

func (r *Renderer) draw(snap session.Snapshot) {
	r.clear()

	for _, d := range snap.Dust {
		if d.Opacity < minDustOpacity {
			continue
		}
		x, y := r.dot(d.X, d.Y)
		tint := TintDust
		if d.Colored() {
			tint = d.ColorIndex
		}
		r.canvas.SetTint(x, y, tint)
	}

	if snap.GroupOpacity > 0 && snap.Height > 0 {
		x0, gy := r.dot(0, snap.GroundY)
		x1, _ := r.dot(snap.Width, snap.GroundY)
		r.canvas.DrawLine(x0, gy, x1-1, gy, TintGround)
	}

	for _, s := range snap.Sparks {
		x, y := r.dot(s.X, s.Y)
		r.canvas.SetTint(x, y, TintSpark)
	}

	for i := range snap.Letters {
		l := &snap.Letters[i]
		if l.Opacity*snap.GroupOpacity < minLetterOpacity {
			continue
		}
		col, row := r.Cell(l.X, l.Y)
		if col < 0 || row < 0 || col >= r.Cols || row >= r.Rows {
			continue
		}
		r.letters[row][col] = l.Char
		r.looks[row][col] = look(l, snap.GroupOpacity)
	}
}

func look(l *physics.Letter, group float64) letterLook {
	switch {
	case l.Grabbed:
		return lookGrabbed
	case l.Hovered:
		return lookHovered
	case l.Opacity*group < fadedOpacity:
		return lookFaded
	case l.Weight == layout.WeightEmphasized:
		return lookEmphasized
	default:
		return lookRegular
	}
}

// Render draws snap and returns the styled grid, one line per row.
func (r *Renderer) Render(snap session.Snapshot, th Theme) string {
	r.draw(snap)

	var b strings.Builder
	var run strings.Builder
	for row := 0; row < r.Rows; row++ {
		key := -1
		run.Reset()
		for col := 0; col < r.Cols; col++ {
			ch, k := r.cell(col, row)
			if k != key && run.Len() > 0 {
				b.WriteString(styleFor(key, th).Render(run.String()))
				run.Reset()
			}
			key = k
			run.WriteRune(ch)
		}
		if run.Len() > 0 {
			b.WriteString(styleFor(key, th).Render(run.String()))
		}
		if row < r.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cell returns the rune for (col, row) and a style key. Letters win over
// dots; empty cells render as spaces.
func (r *Renderer) cell(col, row int) (rune, int) {
	if lk := r.looks[row][col]; lk != lookNone {
		return r.letters[row][col], letterKey(lk)
	}
	if r.canvas.Blank(col, row) {
		return ' ', dotKey(TintNone)
	}
	return r.canvas.Grid[row][col], dotKey(r.canvas.Tint[row][col])
}

// Style keys: letter looks sit above 1000, dot tints are offset so every
// key is non-negative.
func letterKey(lk letterLook) int { return 1000 + int(lk) }
func dotKey(tint int) int         { return tint + 200 }

func styleFor(key int, th Theme) lipgloss.Style {
	s := lipgloss.NewStyle()
	if key >= 1000 {
		switch letterLook(key - 1000) {
		case lookEmphasized:
			return s.Bold(true).Foreground(th.Emphasis)
		case lookHovered:
			return s.Bold(true).Foreground(th.Hover)
		case lookGrabbed:
			return s.Bold(true).Underline(true).Foreground(th.Hover)
		case lookFaded:
			return s.Foreground(th.Muted)
		default:
			return s.Foreground(th.Ink)
		}
	}

	switch tint := key - 200; tint {
	case TintNone:
		return s
	case TintGround:
		return s.Foreground(th.Ground)
	case TintSpark:
		return s.Foreground(th.Spark)
	default:
		return s.Foreground(th.DustColor(tint))
	}
}
