package export

import (
	"strings"
	"testing"

	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/particles"
	"github.com/san-kum/kinetype/internal/physics"
	"github.com/san-kum/kinetype/internal/session"
	"github.com/san-kum/kinetype/internal/storage"
	"github.com/san-kum/kinetype/internal/viz"
)

func testSnapshot() session.Snapshot {
	return session.Snapshot{
		Width:           400,
		Height:          300,
		GroundY:         252,
		FontSize:        40,
		GroupOpacity:    1,
		BackdropOpacity: 1,
		Fade:            session.FadeVisible,
		Letters: []physics.Letter{
			{Char: 'A', Weight: layout.WeightEmphasized, X: 100, Y: 120, HomeY: 120, Height: 40, Scale: 1, Opacity: 1},
			{Char: '<', Weight: layout.WeightRegular, X: 140, Y: 120, HomeY: 120, Height: 40, Scale: 1, Opacity: 1, Rotation: 0.5},
		},
		Dust: []particles.Dust{
			{X: 10, Y: 10, Size: 2, Opacity: 0.1, ColorIndex: -1},
			{X: 20, Y: 20, Size: 1, Opacity: 0.2, ColorIndex: 0},
		},
		Sparks: []particles.Spark{{X: 50, Y: 250, Size: 2, Opacity: 0.8}},
	}
}

func TestSnapshotToSVG(t *testing.T) {
	th := viz.GetTheme("ink")
	svg := SnapshotToSVG(testSnapshot(), th)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not a complete svg document")
	}
	if got := strings.Count(svg, "<text"); got != 2 {
		t.Errorf("text elements = %d, want 2", got)
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3 (2 dust + 1 spark)", got)
	}
	if !strings.Contains(svg, "&lt;</text>") {
		t.Error("letter text should be escaped")
	}
	if !strings.Contains(svg, `font-weight="bold"`) {
		t.Error("emphasized letter should be bold")
	}
	if !strings.Contains(svg, string(th.DustColor(0))) {
		t.Error("colored dust should use the theme bucket")
	}
	if !strings.Contains(svg, `y1="252.0"`) {
		t.Error("ground line missing")
	}
}

func TestSnapshotToSVGHidden(t *testing.T) {
	snap := testSnapshot()
	snap.GroupOpacity = 0
	snap.BackdropOpacity = 0
	svg := SnapshotToSVG(snap, viz.ThemePaper)
	if strings.Contains(svg, "<line") {
		t.Error("ground should be hidden with the group")
	}
	if !strings.Contains(svg, `opacity="0.000"`) {
		t.Error("letters should carry the group opacity")
	}
}

func TestSnapshotToSVGEmpty(t *testing.T) {
	if svg := SnapshotToSVG(session.Snapshot{}, viz.ThemePaper); svg != "" {
		t.Errorf("expected empty output without a viewport, got %d bytes", len(svg))
	}
}

func TestTrackToSVG(t *testing.T) {
	track := []storage.TrackRow{
		{Tick: 0, X: 10, Y: 20},
		{Tick: 1, X: 15, Y: 40},
		{Tick: 2, X: 20, Y: 80},
	}
	svg := TrackToSVG(track, 200, 150, "#ff0000")
	if !strings.Contains(svg, "M10.0,20.0 L15.0,40.0 L20.0,80.0") {
		t.Errorf("path data missing: %s", svg)
	}
	if !strings.Contains(svg, `stroke="#ff0000"`) {
		t.Error("stroke color missing")
	}
	if !strings.Contains(svg, `y1="102.0"`) {
		t.Error("ground line should sit GroundOffset above the bottom")
	}

	if TrackToSVG(track[:1], 200, 150, "#fff") != "" {
		t.Error("single point should produce no svg")
	}
}
