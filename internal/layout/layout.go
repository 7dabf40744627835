package layout

import "math"

// Weight is the font weight a letter is set in.
type Weight int

const (
	WeightRegular    Weight = 400
	WeightEmphasized Weight = 800
)

func (w Weight) String() string {
	if w >= WeightEmphasized {
		return "emphasized"
	}
	return "regular"
}

const (
	MaxFontSize        = 80.0
	FontDivisor        = 7.0
	StackThreshold     = 0.85
	StackedFontScale   = 1.3
	StackedFontDivisor = 4.5
	StackedLineGap     = -0.15
	StackedTracking    = 0.85

	// minAdvance keeps glyphs that measure as zero collidable and grabbable.
	minAdvance = 0.25
)

// Measurer returns the horizontal advance of text set at fontSize.
type Measurer interface {
	Measure(text string, w Weight, fontSize float64) float64
}

// Name is the fixed two-word text: First is set emphasized, Last regular.
type Name struct {
	First string `yaml:"first"`
	Last  string `yaml:"last"`
}

func DefaultName() Name {
	return Name{First: "Jake", Last: "Kaplan"}
}

// Len returns the number of letters the name lays out to.
func (n Name) Len() int {
	return len([]rune(n.First)) + len([]rune(n.Last))
}

// LetterLayout is the rest position of one glyph. X is the glyph center.
type LetterLayout struct {
	Char    rune
	X       float64
	Width   float64
	Weight  Weight
	CenterY float64
}

// NameLayout is the result of Compute.
type NameLayout struct {
	Letters  []LetterLayout
	FontSize float64
	CenterY  float64
	Stacked  bool
}

// HomeY returns the vertical rest center of letter i.
func (nl NameLayout) HomeY(i int) float64 {
	if i < 0 || i >= len(nl.Letters) {
		return nl.CenterY
	}
	return nl.Letters[i].CenterY
}

// Rows returns the number of distinct text rows.
func (nl NameLayout) Rows() int {
	if len(nl.Letters) == 0 {
		return 0
	}
	if nl.Stacked {
		return 2
	}
	return 1
}

// Compute lays out name for a width x height viewport. A nil Measurer yields
// an empty layout with a usable font size and center.
func Compute(width, height float64, name Name, m Measurer) NameLayout {
	fontSize := math.Min(MaxFontSize, width/FontDivisor)
	centerY := height / 2
	out := NameLayout{FontSize: fontSize, CenterY: centerY}
	if m == nil {
		return out
	}

	firstWidth := m.Measure(name.First, WeightEmphasized, fontSize)
	lastWidth := m.Measure(name.Last, WeightRegular, fontSize)
	spaceWidth := m.Measure(" ", WeightRegular, fontSize)
	total := firstWidth + spaceWidth + lastWidth

	if total <= StackThreshold*width {
		out.Letters = horizontal(width, centerY, name, m, fontSize, total, spaceWidth)
		return out
	}

	fontSize = math.Min(fontSize*StackedFontScale, width/StackedFontDivisor)
	lineHeight := fontSize * (1 + StackedLineGap)
	out.FontSize = fontSize
	out.Stacked = true

	out.Letters = make([]LetterLayout, 0, name.Len())
	out.Letters = appendRow(out.Letters, width, centerY-lineHeight/2, name.First, WeightEmphasized, m, fontSize)
	out.Letters = appendRow(out.Letters, width, centerY+lineHeight/2, name.Last, WeightRegular, m, fontSize)
	return out
}

func horizontal(width, centerY float64, name Name, m Measurer, fontSize, total, space float64) []LetterLayout {
	letters := make([]LetterLayout, 0, name.Len())
	x := (width - total) / 2

	for _, ch := range name.First {
		w := advance(m, ch, WeightEmphasized, fontSize)
		letters = append(letters, LetterLayout{Char: ch, X: x + w/2, Width: w, Weight: WeightEmphasized, CenterY: centerY})
		x += w
	}

	x += space

	for _, ch := range name.Last {
		w := advance(m, ch, WeightRegular, fontSize)
		letters = append(letters, LetterLayout{Char: ch, X: x + w/2, Width: w, Weight: WeightRegular, CenterY: centerY})
		x += w
	}
	return letters
}

// appendRow lays out one centered row with tightened tracking.
func appendRow(dst []LetterLayout, width, rowY float64, word string, weight Weight, m Measurer, fontSize float64) []LetterLayout {
	runes := []rune(word)
	if len(runes) == 0 {
		return dst
	}

	widths := make([]float64, len(runes))
	rowWidth := 0.0
	for i, ch := range runes {
		widths[i] = advance(m, ch, weight, fontSize)
		if i < len(runes)-1 {
			rowWidth += widths[i] * StackedTracking
		} else {
			rowWidth += widths[i]
		}
	}

	x := (width - rowWidth) / 2
	for i, ch := range runes {
		w := widths[i]
		dst = append(dst, LetterLayout{Char: ch, X: x + w/2, Width: w, Weight: weight, CenterY: rowY})
		x += w * StackedTracking
	}
	return dst
}

func advance(m Measurer, ch rune, weight Weight, fontSize float64) float64 {
	w := m.Measure(string(ch), weight, fontSize)
	if w <= 0 || math.IsNaN(w) {
		return fontSize * minAdvance
	}
	return w
}
