package config

import (
	"slices"

	"github.com/san-kum/bocop/internal/plot"
)

// Presets are named plot styles selectable with --preset.
var Presets = map[string]plot.Style{
	"default": plot.DefaultStyle(),
	"compact": {
		Width: 60, Height: 8, ImageWidth: 4, ImageHeight: 3,
		LineWidth: 1, Color: "#1f77b4", Grid: true,
	},
	"wide": {
		Width: 120, Height: 15, ImageWidth: 10, ImageHeight: 4,
		LineWidth: 1.5, Color: "#1f77b4", Grid: true,
	},
	"print": {
		Width: 80, Height: 10, ImageWidth: 8, ImageHeight: 6,
		LineWidth: 2, Color: "#000000", Grid: false,
	},
	"slides": {
		Width: 100, Height: 20, ImageWidth: 10, ImageHeight: 5.625,
		LineWidth: 3, Color: "#d62728", Grid: true,
	},
}

func GetPreset(name string) (plot.Style, bool) {
	s, ok := Presets[name]
	return s, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ApplyPreset replaces the plot style, keeping the configured grid layout
// and title.
func (c *Config) ApplyPreset(name string) bool {
	s, ok := GetPreset(name)
	if !ok {
		return false
	}
	s.Rows, s.Cols, s.Title = c.Plot.Rows, c.Plot.Cols, c.Plot.Title
	c.Plot = s
	return true
}
