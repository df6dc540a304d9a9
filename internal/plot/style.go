// Package plot renders solution trajectories as terminal charts and as
// PNG/SVG figures.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrEmpty    = errors.New("plot: no samples")
	ErrMismatch = errors.New("plot: series are not sampled on the same times")
	ErrColor    = errors.New("plot: bad color")
)

// Style collects the knobs that used to be passed around as keyword
// arguments. Width and Height are terminal cells; ImageWidth and ImageHeight
// are inches.
type Style struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	ImageWidth  float64 `yaml:"image_width"`
	ImageHeight float64 `yaml:"image_height"`
	LineWidth   float64 `yaml:"line_width"`
	Color       string  `yaml:"color"`
	Grid        bool    `yaml:"grid"`
	Title       string  `yaml:"title,omitempty"`
	Rows        int     `yaml:"rows,omitempty"`
	Cols        int     `yaml:"cols,omitempty"`
}

func DefaultStyle() Style {
	return Style{
		Width:       80,
		Height:      10,
		ImageWidth:  6,
		ImageHeight: 4,
		LineWidth:   1.5,
		Color:       "#1f77b4",
		Grid:        true,
	}
}

// withDefaults fills zero fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.ImageWidth <= 0 {
		s.ImageWidth = d.ImageWidth
	}
	if s.ImageHeight <= 0 {
		s.ImageHeight = d.ImageHeight
	}
	if s.LineWidth <= 0 {
		s.LineWidth = d.LineWidth
	}
	if s.Color == "" {
		s.Color = d.Color
	}
	return s
}

// ParseColor accepts #rgb and #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func lerpColor(a, b color.RGBA, f float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
