package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name     string
	Contour  lipgloss.Color
	Particle lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Contour:  lipgloss.Color("#00ffff"),
		Particle: lipgloss.Color("#ff00ff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Running:  lipgloss.Color("#00ff00"),
		Paused:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Contour:  lipgloss.Color("#00ff00"),
		Particle: lipgloss.Color("#88ff88"),
		Accent:   lipgloss.Color("#ccffcc"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Running:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Contour:  lipgloss.Color("#00a8cc"),
		Particle: lipgloss.Color("#ffd700"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffcc00"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
