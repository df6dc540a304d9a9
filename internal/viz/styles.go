package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme    Theme
	Title    lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Help     lipgloss.Style
	High     lipgloss.Style
	Mid      lipgloss.Style
	Low      lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted).
			Width(14),
		Value: lipgloss.NewStyle().
			Foreground(t.Text),
		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		High: lipgloss.NewStyle().Foreground(t.High),
		Mid:  lipgloss.NewStyle().Foreground(t.Accent),
		Low:  lipgloss.NewStyle().Foreground(t.Low),
	}
}

// Sparkline renders values as one row of block characters, down-sampled to
// width.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(s.High.Render(c))
		case norm > 0.3:
			b.WriteString(s.Mid.Render(c))
		default:
			b.WriteString(s.Low.Render(c))
		}
	}
	return b.String()
}

func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// Row renders a label/value pair.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value)
}
