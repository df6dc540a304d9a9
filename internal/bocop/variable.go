package bocop

import (
	"fmt"
	"slices"

	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/table"
)

type Kind int

const (
	State Kind = iota
	Adjoint
	Control
)

func (k Kind) String() string {
	switch k {
	case State:
		return "State"
	case Adjoint:
		return "AdjointState"
	case Control:
		return "Control"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Variable is one trajectory of the solution. Adjoint is set on states only.
type Variable struct {
	Kind    Kind
	Name    string
	Times   []float64
	Values  []float64
	Adjoint *Variable
}

func (v *Variable) String() string {
	return fmt.Sprintf("%s(%s)", v.Kind, v.Name)
}

func (v *Variable) Len() int { return len(v.Values) }

// Array returns a copy of the values.
func (v *Variable) Array() []float64 {
	return slices.Clone(v.Values)
}

func (v *Variable) Series() interp.TimeSeries {
	return interp.NewTimeSeries(v.Name, v.Times, v.Values)
}

func (v *Variable) Table() (*table.Frame, error) {
	return table.FromSeries(v.Series())
}

func (v *Variable) Interpolate(opts interp.Options) (interp.Interpolant, error) {
	f, err := interp.Build(v.Series(), opts)
	if err != nil {
		return nil, fmt.Errorf("interpolating %s: %w", v, err)
	}
	return f, nil
}

// Spline is the smooth interpolant, kept separate because only splines
// can be inverted.
func (v *Variable) Spline(opts interp.Options) (*interp.Spline, error) {
	s, err := interp.NewSpline(v.Series(), opts)
	if err != nil {
		return nil, fmt.Errorf("interpolating %s: %w", v, err)
	}
	return s, nil
}

func (v *Variable) Step(opts interp.Options) (*interp.Step, error) {
	s, err := interp.NewStep(v.Series(), opts)
	if err != nil {
		return nil, fmt.Errorf("interpolating %s: %w", v, err)
	}
	return s, nil
}
