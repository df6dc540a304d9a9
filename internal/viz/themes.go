package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of reports and the browser.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	High      lipgloss.Color
	Low       lipgloss.Color
	Border    lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:      "default",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Accent:    lipgloss.Color("#ffcc00"),
		Text:      lipgloss.Color("#e0e0e0"),
		Muted:     lipgloss.Color("#666688"),
		High:      lipgloss.Color("#00ff88"),
		Low:       lipgloss.Color("#ff4444"),
		Border:    lipgloss.Color("#444466"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		High:      lipgloss.Color("#88ff88"),
		Low:       lipgloss.Color("#ffff00"),
		Border:    lipgloss.Color("#007700"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		High:      lipgloss.Color("#ffffff"),
		Low:       lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#555555"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		High:      lipgloss.Color("#00ff88"),
		Low:       lipgloss.Color("#ff4444"),
		Border:    lipgloss.Color("#2a5f7f"),
	}

	Themes = []Theme{ThemeDefault, ThemeRetro, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to the default theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles through Themes.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
