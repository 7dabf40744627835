package viz

import (
	"strings"
)

// pixelMap gives the bit of each dot in a 2x4 braille cell, indexed
// [row][column], added to U+2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Tints for dot layers that are not dust buckets.
const (
	TintNone   = -100
	TintDust   = -1
	TintGround = -2
	TintSpark  = -3
)

// Canvas is a braille dot grid. Each cell also carries the tint of the
// highest-priority layer drawn into it; sparks beat the ground, the ground
// beats dust.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tint          [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tint:   make([][]int, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tint[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at sub-pixel (x, y). The canvas spans (Width*2) x
// (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	c.SetTint(x, y, TintDust)
}

// SetTint sets a dot and records tint for its cell.
func (c *Canvas) SetTint(x, y, tint int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if tintRank(tint) > tintRank(c.Tint[row][col]) {
		c.Tint[row][col] = tint
	}
}

func tintRank(t int) int {
	switch {
	case t == TintNone:
		return 0
	case t == TintDust:
		return 1
	case t >= 0:
		return 2
	case t == TintGround:
		return 3
	default:
		return 4
	}
}

// Blank reports whether cell (col, row) has no dots.
func (c *Canvas) Blank(col, row int) bool {
	return c.Grid[row][col] == brailleBlank
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Tint[i][j] = TintNone
		}
	}
}

// DrawLine steps from (x0, y0) to (x1, y1) in sub-pixels (Bresenham).
func (c *Canvas) DrawLine(x0, y0, x1, y1, tint int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetTint(x0, y0, tint)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
