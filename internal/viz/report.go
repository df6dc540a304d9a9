package viz

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/bocop/internal/bocop"
	"github.com/san-kum/bocop/internal/interp"
)

const sparkWidth = 24

func formatParams(ps []float64) string {
	if len(ps) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%.6g", p)
	}
	return strings.Join(parts, " ")
}

func (s Styles) variableLine(v *bocop.Variable) string {
	if v.Len() == 0 {
		return fmt.Sprintf("  %-24s %s", v.Name, s.Muted.Render("(empty)"))
	}
	return fmt.Sprintf("  %-24s %5d  [%10.4g, %10.4g]  %s",
		v.Name, v.Len(), floats.Min(v.Values), floats.Max(v.Values), s.Sparkline(v.Values, sparkWidth))
}

// Summary describes the content of a solution.
func Summary(sol *bocop.Solution, s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(sol.String()) + "\n\n")
	b.WriteString(s.Row("Steps", fmt.Sprintf("%d", len(sol.DiscretizationTimes))) + "\n")
	if n := len(sol.DiscretizationTimes); n > 0 {
		b.WriteString(s.Row("Horizon", fmt.Sprintf("[%g, %g]", sol.DiscretizationTimes[0], sol.DiscretizationTimes[n-1])) + "\n")
	}
	b.WriteString(s.Row("Stages", fmt.Sprintf("%d", len(sol.StageTimes))) + "\n")
	b.WriteString(s.Row("Parameters", formatParams(sol.Parameters)) + "\n")

	for _, bunch := range []*bocop.Bunch{sol.States, sol.Adjoints, sol.Controls} {
		b.WriteString("\n" + s.Header.Render(fmt.Sprintf("%ss (%d)", bunch.Kind(), bunch.Len())) + "\n")
		if bunch.Len() == 0 {
			b.WriteString(s.Muted.Render("  (none)") + "\n")
			continue
		}
		for v := range bunch.All() {
			b.WriteString(s.variableLine(v) + "\n")
		}
	}
	return b.String()
}

// SwitchReport lists the switches of a bang-bang control and its case
// expression.
func SwitchReport(bb *interp.BangBang, s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("%s is bang-bang", bb.Name())) + "\n\n")
	b.WriteString(s.Row("Low", fmt.Sprintf("%.6g", bb.Low())) + "\n")
	b.WriteString(s.Row("High", fmt.Sprintf("%.6g", bb.High())) + "\n")
	b.WriteString(s.Row("Switches", fmt.Sprintf("%d", bb.Len())) + "\n\n")

	b.WriteString(s.Header.Render(fmt.Sprintf("%-4s %14s   %s", "#", "time", "jump")) + "\n")
	i := 0
	for ev := range bb.All() {
		i++
		arrow := s.High.Render("↑")
		if ev.To < ev.From {
			arrow = s.Low.Render("↓")
		}
		fmt.Fprintf(&b, "%-4d %14.8g   %s %.6g → %.6g\n", i, ev.Time, arrow, ev.From, ev.To)
	}

	b.WriteString("\n" + s.Separator(48) + "\n")
	b.WriteString(bb.LaTeX(bb.Name()) + "\n")
	return b.String()
}
