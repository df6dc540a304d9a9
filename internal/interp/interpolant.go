package interp

import (
	"fmt"
	"strings"
)

// DefaultTolerance is the smallest jump between consecutive step levels that
// counts as a switch.
const DefaultTolerance = 1e-8

type Mode int

const (
	ModeSmooth Mode = iota
	ModeStep
)

func (m Mode) String() string {
	switch m {
	case ModeSmooth:
		return "smooth"
	case ModeStep:
		return "step"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "smooth"/"spline"/"cubic" and "step"/"constant".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smooth", "spline", "cubic":
		return ModeSmooth, nil
	case "step", "constant":
		return ModeStep, nil
	}
	return 0, fmt.Errorf("unknown interpolation mode: %s", s)
}

// Options controls how an interpolant is built.
type Options struct {
	Mode        Mode
	Extrapolate bool

	// Step only: switch threshold, applied to values rescaled to [0, 1]
	// when Normalize is set, and an optional median window used to denoise
	// values before switch detection. The window is odd; 0 and 1 disable it.
	Tolerance    float64
	Normalize    bool
	MedianWindow int
}

func DefaultOptions() Options {
	return Options{
		Mode:      ModeSmooth,
		Tolerance: DefaultTolerance,
	}
}

// Interpolant is a continuous approximation of a TimeSeries.
type Interpolant interface {
	Name() string
	Domain() (lo, hi float64)
	Extrapolates() bool
	Eval(t float64) (float64, error)
	Integrate(a, b float64) (float64, error)
}

var (
	_ Interpolant = &Spline{}
	_ Interpolant = &Step{}
	_ Interpolant = &Impulses{}
)

// Build validates the series and constructs the interpolant selected by opts.Mode.
func Build(series TimeSeries, opts Options) (Interpolant, error) {
	switch opts.Mode {
	case ModeSmooth:
		return NewSpline(series, opts)
	case ModeStep:
		return NewStep(series, opts)
	default:
		return nil, fmt.Errorf("build %s: unknown mode %v", series.Name, opts.Mode)
	}
}

// Differentiate returns the derivative of f. A Spline yields the analytic
// derivative spline; a Step yields its Impulses, since the derivative of a
// step function is a distribution and not a function.
func Differentiate(f Interpolant) (Interpolant, error) {
	switch v := f.(type) {
	case *Spline:
		return v.Derivative(), nil
	case *Step:
		return v.Derivative(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotDifferentiable, f)
	}
}

// EvalAll evaluates f at every time and stops at the first error.
func EvalAll(f Interpolant, ts []float64) ([]float64, error) {
	out := make([]float64, len(ts))
	for i, t := range ts {
		v, err := f.Eval(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
