package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the chrome colour scheme of the terminal view. The field itself
// is always drawn with viridis.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Marker lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Title:  lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Border: lipgloss.Color("#444466"),
		Marker: lipgloss.Color("#ff3355"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#00cc00"),
		Marker: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Border: lipgloss.Color("#cccccc"),
		Marker: lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
		Marker: lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  lipgloss.Color("#ff6b6b"),
		Accent: lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Border: lipgloss.Color("#ff9ff3"),
		Marker: lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetro, ThemeMinimal, ThemeOcean, ThemeSunset}
)

// GetTheme returns the named theme, falling back to cyberpunk.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
