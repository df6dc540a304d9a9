package viz

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bocop/internal/bocop"
	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/plot"
)

func sample(t *testing.T) *bocop.Solution {
	t.Helper()
	sol, err := bocop.Read(filepath.Join("..", "bocop", "testdata", "sample"))
	if err != nil {
		t.Fatal(err)
	}
	return sol
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Browser, keys ...string) Browser {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Browser)
	}
	return m
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("retro").Name; got != "retro" {
		t.Errorf("expected retro, got %s", got)
	}
	if got := GetTheme("nonexistent").Name; got != "default" {
		t.Errorf("expected fallback to default, got %s", got)
	}
	if got := NextTheme(Themes[len(Themes)-1].Name).Name; got != Themes[0].Name {
		t.Errorf("expected cycle back to %s, got %s", Themes[0].Name, got)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestSparkline(t *testing.T) {
	s := NewStyles(ThemeMinimal)
	if got := s.Sparkline(nil, 5); got != "─────" {
		t.Errorf("expected flat line, got %q", got)
	}
	out := s.Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	for _, c := range []string{"▁", "█"} {
		if !strings.Contains(out, c) {
			t.Errorf("expected %s in sparkline %q", c, out)
		}
	}
}

func TestSummary(t *testing.T) {
	out := Summary(sample(t), NewStyles(ThemeDefault))
	for _, want := range []string{"BOCOPSolution(", "States (2)", "AdjointStates (2)", "Controls (1)", "x_adjoint_state", "(none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestSwitchReport(t *testing.T) {
	ts := interp.NewTimeSeries("u", []float64{0, 1, 2, 3}, []float64{0, 1, 0, 1})
	step, err := interp.NewStep(ts, interp.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	bb, err := interp.DetectBangBang(step, 1e-6)
	if err != nil {
		t.Fatal(err)
	}

	out := SwitchReport(bb, NewStyles(ThemeDefault))
	for _, want := range []string{"u is bang-bang", `\begin{cases}`, "Switches"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestBrowser_Navigation(t *testing.T) {
	m := NewBrowser(sample(t), interp.DefaultOptions(), "default", plot.DefaultStyle())

	if got := m.Current().Name; got != "v" {
		t.Fatalf("expected first state v, got %s", got)
	}

	m = press(m, "j")
	if got := m.Current().Name; got != "x" {
		t.Errorf("expected x after j, got %s", got)
	}
	m = press(m, "down")
	if got := m.Current().Name; got != "x" {
		t.Errorf("selection should stop at the last variable, got %s", got)
	}
	m = press(m, "k", "k")
	if got := m.Current().Name; got != "v" {
		t.Errorf("selection should stop at the first variable, got %s", got)
	}

	m = press(m, "tab", "tab")
	if got := m.Current().Kind; got != bocop.Control {
		t.Errorf("expected controls after two tabs, got %v", got)
	}
	m = press(m, "tab")
	if got := m.Current().Kind; got != bocop.State {
		t.Errorf("expected tab to wrap to states, got %v", got)
	}

	m = press(m, "s")
	if m.Mode() != interp.ModeStep {
		t.Error("expected s to switch to step mode")
	}
	m = press(m, "t")
	if m.styles.Theme.Name != Themes[1].Name {
		t.Errorf("expected theme %s, got %s", Themes[1].Name, m.styles.Theme.Name)
	}
}

func TestBrowser_Quit(t *testing.T) {
	m := NewBrowser(sample(t), interp.DefaultOptions(), "default", plot.DefaultStyle())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestBrowser_View(t *testing.T) {
	m := NewBrowser(sample(t), interp.DefaultOptions(), "default", plot.DefaultStyle())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Browser)

	view := m.View()
	for _, want := range []string{"State(v)", "Integral", "Adjoint", "v_adjoint_state"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	m = press(m, "tab", "tab", "s", "?")
	view = m.View()
	for _, want := range []string{"Control(u)", "Switches", "toggle smooth/step"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestBrowser_Empty(t *testing.T) {
	m := Browser{sol: &bocop.Solution{Dir: "empty"}, styles: NewStyles(ThemeDefault)}
	if m.Current() != nil {
		t.Error("expected no current variable")
	}
	if !strings.Contains(m.View(), "no variables") {
		t.Error("expected empty notice")
	}
}
