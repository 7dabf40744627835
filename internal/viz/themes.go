package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view. DustColors are the accent
// buckets a colored dust particle's ColorIndex selects from.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Ink        lipgloss.Color
	Emphasis   lipgloss.Color
	Hover      lipgloss.Color
	Muted      lipgloss.Color
	Dust       lipgloss.Color
	DustColors []lipgloss.Color
	Spark      lipgloss.Color
	Ground     lipgloss.Color
	Accent     lipgloss.Color
}

var (
	ThemePaper = Theme{
		Name:       "paper",
		Background: lipgloss.Color("#f4efe6"),
		Ink:        lipgloss.Color("#2b2b2b"),
		Emphasis:   lipgloss.Color("#111111"),
		Hover:      lipgloss.Color("#c0392b"),
		Muted:      lipgloss.Color("#a39e93"),
		Dust:       lipgloss.Color("#8c8577"),
		DustColors: []lipgloss.Color{"#e07a5f", "#3d405b", "#81b29a"},
		Spark:      lipgloss.Color("#f2a541"),
		Ground:     lipgloss.Color("#6b665c"),
		Accent:     lipgloss.Color("#c0392b"),
	}

	ThemeInk = Theme{
		Name:       "ink",
		Background: lipgloss.Color("#0d0d0d"),
		Ink:        lipgloss.Color("#e8e8e8"),
		Emphasis:   lipgloss.Color("#ffffff"),
		Hover:      lipgloss.Color("#ffcc00"),
		Muted:      lipgloss.Color("#555555"),
		Dust:       lipgloss.Color("#777777"),
		DustColors: []lipgloss.Color{"#ff6b6b", "#4ecdc4", "#ffe66d"},
		Spark:      lipgloss.Color("#ffcc00"),
		Ground:     lipgloss.Color("#444444"),
		Accent:     lipgloss.Color("#4ecdc4"),
	}

	ThemeNeon = Theme{
		Name:       "neon",
		Background: lipgloss.Color("#0a0a0a"),
		Ink:        lipgloss.Color("#00ffff"),
		Emphasis:   lipgloss.Color("#ff00ff"),
		Hover:      lipgloss.Color("#ffff00"),
		Muted:      lipgloss.Color("#444466"),
		Dust:       lipgloss.Color("#666688"),
		DustColors: []lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00"},
		Spark:      lipgloss.Color("#ff8800"),
		Ground:     lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#ff00ff"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Ink:        lipgloss.Color("#e0f0ff"),
		Emphasis:   lipgloss.Color("#ffffff"),
		Hover:      lipgloss.Color("#ffd700"),
		Muted:      lipgloss.Color("#4488aa"),
		Dust:       lipgloss.Color("#4488aa"),
		DustColors: []lipgloss.Color{"#00a8cc", "#ffd700", "#00ff88"},
		Spark:      lipgloss.Color("#ffd700"),
		Ground:     lipgloss.Color("#0077be"),
		Accent:     lipgloss.Color("#00a8cc"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: lipgloss.Color("#2d1b2e"),
		Ink:        lipgloss.Color("#fff5f5"),
		Emphasis:   lipgloss.Color("#feca57"),
		Hover:      lipgloss.Color("#ff9ff3"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Dust:       lipgloss.Color("#8b6b8c"),
		DustColors: []lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3"},
		Spark:      lipgloss.Color("#ffc048"),
		Ground:     lipgloss.Color("#ff6b6b"),
		Accent:     lipgloss.Color("#ff6b6b"),
	}

	Themes = []Theme{
		ThemePaper,
		ThemeInk,
		ThemeNeon,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to paper.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePaper
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// DustColor returns the color for a dust particle's bucket index. Negative
// indices are plain dust.
func (t Theme) DustColor(idx int) lipgloss.Color {
	if idx < 0 || len(t.DustColors) == 0 {
		return t.Dust
	}
	return t.DustColors[idx%len(t.DustColors)]
}
