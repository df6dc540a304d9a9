package interp

import (
	"errors"
	"fmt"
)

// Domain errors for interpolation operations.
var (
	// ErrInvalidInput indicates a series that cannot be interpolated.
	ErrInvalidInput = errors.New("interp: invalid input series")

	// ErrOutOfDomain indicates a time outside the sampled range with
	// extrapolation disabled.
	ErrOutOfDomain = errors.New("interp: time outside series domain")

	// ErrNotDifferentiable indicates an interpolant with no known derivative.
	ErrNotDifferentiable = errors.New("interp: interpolant not differentiable")

	// ErrNotBangBang indicates a step function without exactly two alternating levels.
	ErrNotBangBang = errors.New("interp: control is not bang-bang")

	// ErrNoRoot indicates that no time maps to the requested value.
	ErrNoRoot = errors.New("interp: no time maps to value")
)

// InputError locates the sample that made a series invalid. Index is -1 when
// the problem concerns the series as a whole.
type InputError struct {
	Index  int
	Reason string
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%v: sample %d: %s", ErrInvalidInput, e.Index, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// DomainError reports the requested time and the valid range.
type DomainError struct {
	T      float64
	Lo, Hi float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%v: t=%g not in [%g, %g]", ErrOutOfDomain, e.T, e.Lo, e.Hi)
}

func (e *DomainError) Unwrap() error {
	return ErrOutOfDomain
}

func checkDomain(t, lo, hi float64, extrapolate bool) error {
	if extrapolate || (t >= lo && t <= hi) {
		return nil
	}
	return &DomainError{T: t, Lo: lo, Hi: hi}
}
