package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the live view.
type Theme struct {
	Name      string
	Positive  lipgloss.Color
	Negative  lipgloss.Color
	Contour   lipgloss.Color
	Fieldline lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Positive:  lipgloss.Color("#ff4444"),
		Negative:  lipgloss.Color("#4488ff"),
		Contour:   lipgloss.Color("#00ffcc"),
		Fieldline: lipgloss.Color("#ffcc00"),
		Accent:    lipgloss.Color("#ff00ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Positive:  lipgloss.Color("#88ff88"),
		Negative:  lipgloss.Color("#00aa00"),
		Contour:   lipgloss.Color("#00ff00"),
		Fieldline: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Positive:  lipgloss.Color("#ffd700"),
		Negative:  lipgloss.Color("#00a8cc"),
		Contour:   lipgloss.Color("#0077be"),
		Fieldline: lipgloss.Color("#e0f0ff"),
		Accent:    lipgloss.Color("#00ff88"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the classic one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
