package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// renderCases writes segments as a LaTeX cases environment. Intervals are
// open on the left, matching the step's left continuity, except the first
// one when closedStart is set. A point segment renders as an equality.
func renderCases(name string, segs []Segment, closedStart bool) string {
	if name == "" {
		name = "f"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(t) \\approx \\begin{cases}\n", name)
	for i, seg := range segs {
		if seg.Start == seg.End {
			fmt.Fprintf(&sb, "%s &\\text{ if } t = %s \\\\\n", formatNumber(seg.Level), formatNumber(seg.Start))
			continue
		}
		open := "("
		if i == 0 && closedStart {
			open = "["
		}
		fmt.Fprintf(&sb, "%s &\\text{ if } t\\in %s%s, %s] \\\\\n",
			formatNumber(seg.Level), open, formatNumber(seg.Start), formatNumber(seg.End))
	}
	sb.WriteString(`\end{cases}`)
	return sb.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
