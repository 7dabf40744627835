package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/session"
	"github.com/san-kum/kinetype/internal/storage"
	"github.com/san-kum/kinetype/internal/viz"
)

// SnapshotToSVG draws a session snapshot at viewport scale: dust, ground,
// backdrop band, letters and sparks, in that order.
func SnapshotToSVG(snap session.Snapshot, th viz.Theme) string {
	if snap.Width <= 0 || snap.Height <= 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, snap.Width, snap.Height, snap.Width, snap.Height, th.Background))

	sb.WriteString("<g>\n")
	for _, d := range snap.Dust {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" opacity="%.3f"/>
`, d.X, d.Y, d.Size, th.DustColor(d.ColorIndex), d.Opacity))
	}
	sb.WriteString("</g>\n")

	if snap.GroupOpacity > 0 {
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" opacity="%.3f"/>
`, snap.GroundY, snap.Width, snap.GroundY, th.Ground, snap.GroupOpacity))
	}

	if snap.BackdropOpacity > 0 && len(snap.Letters) > 0 {
		top, bottom := math.Inf(1), math.Inf(-1)
		for _, l := range snap.Letters {
			top = math.Min(top, l.HomeY-l.Height/2)
			bottom = math.Max(bottom, l.HomeY+l.Height/2)
		}
		sb.WriteString(fmt.Sprintf(`<rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="%s" opacity="%.3f"/>
`, top, snap.Width, bottom-top, th.Accent, 0.12*snap.BackdropOpacity*snap.GroupOpacity))
	}

	sb.WriteString(fmt.Sprintf(`<g font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central">
`, snap.FontSize))
	for _, l := range snap.Letters {
		fill, weight := th.Ink, "normal"
		if l.Weight >= layout.WeightEmphasized {
			fill, weight = th.Emphasis, "bold"
		}
		if l.Hovered || l.Grabbed {
			fill = th.Hover
		}
		deg := l.Rotation * 180 / math.Pi
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-weight="%s" opacity="%.3f" transform="rotate(%.2f %.1f %.1f) scale(%.3f)" transform-origin="%.1f %.1f">%s</text>
`, l.X, l.Y, fill, weight, l.Opacity*snap.GroupOpacity, deg, l.X, l.Y, l.Scale, l.X, l.Y, html.EscapeString(string(l.Char))))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", th.Spark))
	for _, s := range snap.Sparks {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" opacity="%.3f"/>
`, s.X, s.Y, s.Size, s.Opacity))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrackToSVG draws a recorded letter path in viewport coordinates, so the
// picture matches the screen it was recorded on.
func TrackToSVG(track []storage.TrackRow, width, height float64, strokeColor string) string {
	if len(track) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444444"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height,
		height-session.GroundOffset, width, height-session.GroundOffset,
		strokeColor))

	for i, p := range track {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
