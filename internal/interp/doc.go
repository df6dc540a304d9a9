// Package interp builds continuous approximations of sampled trajectories.
//
// A [TimeSeries] holds the solved values of one scalar variable. From it the
// package builds two kinds of [Interpolant]:
//
//   - [Spline]: not-a-knot cubic spline, for smooth states and adjoints
//   - [Step]: left-continuous piecewise-constant function, for controls
//
// Both support evaluation, closed-form integration and differentiation. The
// derivative of a Step is an [Impulses] value: zero almost everywhere plus the
// jumps at its switch points. [DetectBangBang] classifies a Step that
// alternates between two levels and renders it as a LaTeX case expression.
//
// # Example
//
//	ts := interp.NewTimeSeries("u", times, values)
//	step, _ := interp.NewStep(ts, interp.DefaultOptions())
//	bb, err := interp.DetectBangBang(step, 1e-6)
//	if err == nil {
//	    fmt.Println(bb.LaTeX("u"))
//	}
//
// # Thread Safety
//
// Interpolants are immutable after construction and may be shared between
// goroutines.
package interp
