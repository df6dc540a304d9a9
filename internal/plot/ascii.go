package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bocop/internal/interp"
)

// ASCII draws a single series in the terminal.
func ASCII(s interp.TimeSeries, style Style) string {
	return ASCIIMany([]interp.TimeSeries{s}, style)
}

// ASCIIMany overlays series on one chart. asciigraph spaces samples evenly,
// so series with irregular times should go through Resample first.
func ASCIIMany(series []interp.TimeSeries, style Style) string {
	style = style.withDefaults()

	var data [][]float64
	var names []string
	var lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, s.Values)
		names = append(names, s.Name)
		if len(s.Times) > 0 {
			l, h := s.Domain()
			lo, hi = math.Min(lo, l), math.Max(hi, h)
		}
	}
	if len(data) == 0 {
		return ""
	}

	caption := style.Title
	if caption == "" {
		caption = fmt.Sprintf("%s over t ∈ [%.3g, %.3g]", strings.Join(names, ", "), lo, hi)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(style.Height),
		asciigraph.Width(style.Width),
		asciigraph.Caption(caption),
	}
	if len(data) > 1 {
		colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan}
		n := min(len(data), len(colors))
		opts = append(opts, asciigraph.SeriesColors(colors[:n]...), asciigraph.SeriesLegends(names[:n]...))
	}
	return asciigraph.PlotMany(data, opts...)
}

// Resample evaluates f on n evenly spaced times across its domain.
func Resample(f interp.Interpolant, name string, n int) (interp.TimeSeries, error) {
	if n < 2 {
		n = 2
	}
	lo, hi := f.Domain()
	times := make([]float64, n)
	for i := range times {
		times[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	times[n-1] = hi

	values, err := interp.EvalAll(f, times)
	if err != nil {
		return interp.TimeSeries{}, err
	}
	return interp.NewTimeSeries(name, times, values), nil
}
