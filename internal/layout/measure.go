package layout

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// canvas sizes faces in points and measures text in millimeters.
const ptPerMm = 72.0 / 25.4

// FontMeasurer measures glyph advances with real font outlines. It is safe
// for concurrent use.
type FontMeasurer struct {
	mu     sync.Mutex
	family *canvas.FontFamily
	// last face built per weight; resizes replace it
	faces  map[Weight]sizedFace
}

var _ Measurer = (*FontMeasurer)(nil)

type sizedFace struct {
	size float64
	face *canvas.FontFace
}

// NewFontMeasurer loads the regular and emphasized faces from the given font
// files. An empty path selects the embedded Go Mono face for that weight,
// whose wide fixed advances stack the name on narrow viewports.
func NewFontMeasurer(regularPath, emphasizedPath string) (*FontMeasurer, error) {
	regular, err := fontBytes(regularPath, gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	emphasized, err := fontBytes(emphasizedPath, gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("emphasized font: %w", err)
	}

	family := canvas.NewFontFamily("kinetype")
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := family.LoadFont(emphasized, 0, canvas.FontExtraBold); err != nil {
		return nil, fmt.Errorf("load emphasized font: %w", err)
	}

	return &FontMeasurer{
		family: family,
		faces:  make(map[Weight]sizedFace, 2),
	}, nil
}

func fontBytes(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(path)
}

func (m *FontMeasurer) Measure(text string, w Weight, fontSize float64) float64 {
	if text == "" || fontSize <= 0 || math.IsNaN(fontSize) {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(w, fontSize).TextWidth(text) * ptPerMm
}

// face must be called with mu held.
func (m *FontMeasurer) face(w Weight, fontSize float64) *canvas.FontFace {
	style := canvas.FontRegular
	if w >= WeightEmphasized {
		w, style = WeightEmphasized, canvas.FontExtraBold
	} else {
		w = WeightRegular
	}
	if f, ok := m.faces[w]; ok && f.size == fontSize {
		return f.face
	}

	face := m.family.Face(fontSize, color.Black, style, canvas.FontNormal)
	m.faces[w] = sizedFace{size: fontSize, face: face}
	return face
}
