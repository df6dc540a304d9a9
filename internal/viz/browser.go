package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bocop/internal/bocop"
	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/plot"
)

// Browser is a bubbletea model listing the variables of a solution with a
// chart of the selected one.
type Browser struct {
	sol      *bocop.Solution
	bunches  []*bocop.Bunch
	bunch    int
	selected int
	opts     interp.Options
	cache    *bocop.Cache
	styles   Styles
	style    plot.Style
	showHelp bool
}

func NewBrowser(sol *bocop.Solution, opts interp.Options, theme string, style plot.Style) Browser {
	var bunches []*bocop.Bunch
	for _, b := range []*bocop.Bunch{sol.States, sol.Adjoints, sol.Controls} {
		if b.Len() > 0 {
			bunches = append(bunches, b)
		}
	}
	if style.Width <= 0 {
		style.Width = 50
	}
	if style.Height <= 0 {
		style.Height = 12
	}
	return Browser{
		sol:     sol,
		bunches: bunches,
		opts:    opts,
		cache:   bocop.NewCache(0),
		styles:  NewStyles(GetTheme(theme)),
		style:   style,
	}
}

func (m Browser) Init() tea.Cmd {
	return nil
}

// Current returns the highlighted variable, or nil for an empty solution.
func (m Browser) Current() *bocop.Variable {
	if len(m.bunches) == 0 {
		return nil
	}
	return m.bunches[m.bunch].Variables()[m.selected]
}

func (m Browser) Mode() interp.Mode { return m.opts.Mode }

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if len(m.bunches) > 0 && m.selected < m.bunches[m.bunch].Len()-1 {
				m.selected++
			}
		case "tab":
			if len(m.bunches) > 0 {
				m.bunch = (m.bunch + 1) % len(m.bunches)
				m.selected = 0
			}
		case "s":
			if m.opts.Mode == interp.ModeSmooth {
				m.opts.Mode = interp.ModeStep
			} else {
				m.opts.Mode = interp.ModeSmooth
			}
		case "t":
			m.styles = NewStyles(NextTheme(m.styles.Theme.Name))
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.style.Width = max(msg.Width-50, 20)
		m.style.Height = max(msg.Height/2, 5)
	}
	return m, nil
}

func (m Browser) listView() string {
	var b strings.Builder
	for i, bunch := range m.bunches {
		name := fmt.Sprintf("%ss", bunch.Kind())
		if i == m.bunch {
			b.WriteString(m.styles.Title.Render(name) + "\n")
			for j, v := range bunch.Variables() {
				if j == m.selected {
					b.WriteString(m.styles.Selected.Render("> "+v.Name) + "\n")
				} else {
					b.WriteString("  " + m.styles.Value.Render(v.Name) + "\n")
				}
			}
		} else {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s (%d)", name, bunch.Len())) + "\n")
		}
	}
	return m.styles.Panel.Width(30).Render(b.String())
}

func (m Browser) detailView() string {
	v := m.Current()
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(v.String()) + "\n\n")

	f, err := m.cache.Interpolant(v, m.opts)
	if err != nil {
		b.WriteString(m.styles.Low.Render(err.Error()) + "\n")
		return m.styles.Panel.Render(b.String())
	}

	resampled, err := plot.Resample(f, v.Name, m.style.Width)
	if err == nil {
		b.WriteString(plot.ASCII(resampled, m.style) + "\n\n")
	}

	lo, hi := f.Domain()
	b.WriteString(m.styles.Row("Mode", m.opts.Mode.String()) + "\n")
	b.WriteString(m.styles.Row("Samples", fmt.Sprintf("%d", v.Len())) + "\n")
	b.WriteString(m.styles.Row("Domain", fmt.Sprintf("[%g, %g]", lo, hi)) + "\n")
	if area, err := f.Integrate(lo, hi); err == nil {
		b.WriteString(m.styles.Row("Integral", fmt.Sprintf("%.6g", area)) + "\n")
	}
	if step, ok := f.(*interp.Step); ok {
		b.WriteString(m.styles.Row("Switches", fmt.Sprintf("%d", len(step.Switches()))) + "\n")
	}
	if v.Adjoint != nil {
		b.WriteString(m.styles.Row("Adjoint", v.Adjoint.Name) + "\n")
	}
	return m.styles.Panel.Render(b.String())
}

func (m Browser) View() string {
	if len(m.bunches) == 0 {
		return m.styles.Muted.Render(m.sol.String()+" has no variables") + "\n"
	}

	header := m.styles.Header.Render(m.sol.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), m.detailView())
	help := m.styles.Help.Render("↑↓/jk:Select  Tab:Bunch  S:Smooth/Step  T:Theme  ?:Help  Q:Quit")

	if m.showHelp {
		keys := strings.Join([]string{
			"Up/K     previous variable",
			"Down/J   next variable",
			"Tab      next bunch",
			"S        toggle smooth/step interpolation",
			"T        cycle themes",
			"Q        quit",
		}, "\n")
		return header + "\n" + m.styles.Panel.Render(keys) + "\n" + body + "\n" + help
	}
	return header + "\n" + body + "\n" + help
}
