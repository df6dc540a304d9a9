package interp

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Step is a left-continuous piecewise-constant interpolant. Sample i holds
// its value on the half-open interval (t[i-1], t[i]] preceding it and the
// first sample defines the value at t[0], so every sample time evaluates to
// its own sample value exactly.
//
// A switch lies at t[i] when the values held at t[i] and just after it differ
// by more than the tolerance, so every jump is a right jump at its switch
// time. The first sample is held at t[0] alone, and a first sample that
// differs from the second gives a switch at t[0]. Its segment is the single
// point [t[0], t[0]]. Extrapolation holds the boundary sample value.
type Step struct {
	name        string
	times       []float64
	values      []float64
	switches    []int
	tolerance   float64
	extrapolate bool
}

// Segment is a run of intervals between two switches. Level is the median of
// the sample values in the run.
type Segment struct {
	Start, End float64
	Level      float64
}

// NewStep builds the step interpolant and locates its switches. Switch
// detection runs on median-filtered and optionally normalized values;
// evaluation always uses the raw samples. The median window must be odd.
func NewStep(series TimeSeries, opts Options) (*Step, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("step %s: %w", series.Name, err)
	}
	if opts.MedianWindow > 1 && opts.MedianWindow%2 == 0 {
		return nil, fmt.Errorf("step %s: %w", series.Name,
			&InputError{Index: -1, Reason: fmt.Sprintf("median window %d is even", opts.MedianWindow)})
	}
	ts := series.Clone()
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	processed := ts.Values
	if opts.MedianWindow > 1 {
		processed = medianFilter(processed, opts.MedianWindow)
	}
	if opts.Normalize {
		processed = normalize(processed)
	}

	var switches []int
	for i := 0; i < len(processed)-1; i++ {
		if math.Abs(processed[i+1]-processed[i]) > tol {
			switches = append(switches, i)
		}
	}

	return &Step{
		name:        ts.Name,
		times:       ts.Times,
		values:      ts.Values,
		switches:    switches,
		tolerance:   tol,
		extrapolate: opts.Extrapolate,
	}, nil
}

func (s *Step) Name() string { return s.name }

func (s *Step) Domain() (float64, float64) {
	return s.times[0], s.times[len(s.times)-1]
}

func (s *Step) Extrapolates() bool { return s.extrapolate }

func (s *Step) Tolerance() float64 { return s.tolerance }

func (s *Step) at(t float64) float64 {
	n := len(s.times)
	if t <= s.times[0] {
		return s.values[0]
	}
	if t >= s.times[n-1] {
		return s.values[n-1]
	}
	return s.values[sort.SearchFloat64s(s.times, t)]
}

func (s *Step) Eval(t float64) (float64, error) {
	lo, hi := s.Domain()
	if err := checkDomain(t, lo, hi, s.extrapolate); err != nil {
		return 0, err
	}
	return s.at(t), nil
}

// Integrate returns the exact integral over [a, b]. Swapped bounds negate
// the result.
func (s *Step) Integrate(a, b float64) (float64, error) {
	lo, hi := s.Domain()
	if err := checkDomain(a, lo, hi, s.extrapolate); err != nil {
		return 0, err
	}
	if err := checkDomain(b, lo, hi, s.extrapolate); err != nil {
		return 0, err
	}
	if a > b {
		v, err := s.Integrate(b, a)
		return -v, err
	}

	n := len(s.times)
	total := 0.0
	if a < lo {
		total += s.values[0] * (math.Min(b, lo) - a)
	}
	if b > hi {
		total += s.values[n-1] * (b - math.Max(a, hi))
	}
	for i := 1; i < n; i++ {
		l := math.Max(a, s.times[i-1])
		u := math.Min(b, s.times[i])
		if u > l {
			total += s.values[i] * (u - l)
		}
	}
	return total, nil
}

// Switches returns the ordered switch times.
func (s *Step) Switches() []float64 {
	out := make([]float64, len(s.switches))
	for k, i := range s.switches {
		out[k] = s.times[i]
	}
	return out
}

// Events returns the raw jump at every switch.
func (s *Step) Events() []SwitchEvent {
	out := make([]SwitchEvent, len(s.switches))
	for k, i := range s.switches {
		out[k] = SwitchEvent{Time: s.times[i], From: s.values[i], To: s.values[i+1]}
	}
	return out
}

// Segments returns the runs of intervals between consecutive switches. A
// switch at t[0] opens with the point segment holding the first sample.
func (s *Step) Segments() []Segment {
	n := len(s.times)
	ends := append(append([]int{}, s.switches...), n-1)
	segs := make([]Segment, 0, len(ends))
	first := 1
	if ends[0] == 0 {
		segs = append(segs, Segment{Start: s.times[0], End: s.times[0], Level: s.values[0]})
		ends = ends[1:]
	}
	for _, last := range ends {
		segs = append(segs, Segment{
			Start: s.times[first-1],
			End:   s.times[last],
			Level: median(s.values[first : last+1]),
		})
		first = last + 1
	}
	return segs
}

// Derivative returns the step's distributional derivative.
func (s *Step) Derivative() *Impulses {
	lo, hi := s.Domain()
	return &Impulses{
		name:        s.name + "'",
		lo:          lo,
		hi:          hi,
		events:      s.Events(),
		extrapolate: s.extrapolate,
	}
}

// LaTeX renders the step as a case expression over its segments.
func (s *Step) LaTeX(name string) string {
	if name == "" {
		name = s.name
	}
	return renderCases(name, s.Segments(), true)
}

// normalize rescales values to [0, 1]; a constant series maps to zeros.
func normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	lo, hi := floats.Min(out), floats.Max(out)
	floats.AddConst(-lo, out)
	if hi > lo {
		floats.Scale(1/(hi-lo), out)
	}
	return out
}

// medianFilter replaces each value by the median of the window centred on it.
// The window shrinks at the edges. Callers pass an odd window.
func medianFilter(values []float64, window int) []float64 {
	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := max(0, i-half)
		hi := min(len(values), i+half+1)
		out[i] = median(values[lo:hi])
	}
	return out
}

// median averages the two middle values of an even-length slice.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
