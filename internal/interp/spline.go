package interp

import (
	"fmt"
	"math"
	"sort"
)

// Spline is a piecewise polynomial over the sample times. Segment i covers
// [knots[i], knots[i+1]] and stores ascending coefficients in the local
// coordinate s = t - knots[i]. A built spline is cubic; Derivative and
// Antiderivative lower or raise the degree by one.
//
// Outside the domain an extrapolating spline follows an extension polynomial
// in t - lo below and t - hi above. A built spline extends with its boundary
// tangent; Derivative and Antiderivative transform the extensions with the
// segments, so they stay the derivative and integral of the extended parent.
type Spline struct {
	name         string
	knots        []float64
	coeffs       [][]float64
	below, above []float64
	extrapolate  bool
}

// NewSpline fits the cubic spline through every sample with the not-a-knot
// boundary condition: the first two and the last two segments share a single
// cubic. This fixes the endpoint derivatives from the data instead of forcing
// zero curvature there, and reproduces any cubic polynomial exactly.
func NewSpline(series TimeSeries, opts Options) (*Spline, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("spline %s: %w", series.Name, err)
	}
	ts := series.Clone()
	x, y := ts.Times, ts.Values
	m := secondDerivatives(x, y)

	coeffs := make([][]float64, len(x)-1)
	for i := range coeffs {
		h := x[i+1] - x[i]
		d := (y[i+1] - y[i]) / h
		coeffs[i] = []float64{
			y[i],
			d - h*(2*m[i]+m[i+1])/6,
			m[i] / 2,
			(m[i+1] - m[i]) / (6 * h),
		}
	}

	sp := &Spline{
		name:        ts.Name,
		knots:       x,
		coeffs:      coeffs,
		extrapolate: opts.Extrapolate,
	}
	v, dv := sp.boundary(false)
	sp.below = []float64{v, dv}
	v, dv = sp.boundary(true)
	sp.above = []float64{v, dv}
	return sp, nil
}

// secondDerivatives returns the spline's second derivative at every knot.
// Not-a-knot continuity of the third derivative at x[1] and x[n-2] eliminates
// m[0] and m[n-1] from the first and last interior equations, which keeps the
// system tridiagonal. Three samples give the parabola through them and two
// give the line.
func secondDerivatives(x, y []float64) []float64 {
	n := len(x)
	m := make([]float64, n)

	switch n {
	case 2:
		return m
	case 3:
		d0 := (y[1] - y[0]) / (x[1] - x[0])
		d1 := (y[2] - y[1]) / (x[2] - x[1])
		c := 2 * (d1 - d0) / (x[2] - x[0])
		m[0], m[1], m[2] = c, c, c
		return m
	}

	h := make([]float64, n-1)
	d := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
		d[i] = (y[i+1] - y[i]) / h[i]
	}

	k := n - 2
	lower := make([]float64, k)
	diag := make([]float64, k)
	upper := make([]float64, k)
	rhs := make([]float64, k)
	for j := 0; j < k; j++ {
		i := j + 1
		lower[j] = h[i-1]
		diag[j] = 2 * (h[i-1] + h[i])
		upper[j] = h[i]
		rhs[j] = 6 * (d[i] - d[i-1])
	}

	h0, h1 := h[0], h[1]
	diag[0] = (h0 + h1) * (h0 + 2*h1) / h1
	upper[0] = (h1 - h0) * (h1 + h0) / h1

	a, b := h[n-3], h[n-2]
	diag[k-1] = (a + b) * (2*a + b) / a
	lower[k-1] = (a - b) * (a + b) / a

	inner := solveTridiagonal(lower, diag, upper, rhs)
	copy(m[1:n-1], inner)
	m[0] = ((h0+h1)*m[1] - h0*m[2]) / h1
	m[n-1] = ((a+b)*m[n-2] - b*m[n-3]) / a
	return m
}

// solveTridiagonal runs the Thomas algorithm. lower[0] and upper[n-1] are
// ignored. The not-a-knot system is strictly diagonally dominant, so no
// pivoting is needed.
func solveTridiagonal(lower, diag, upper, rhs []float64) []float64 {
	n := len(diag)
	c := make([]float64, n)
	d := make([]float64, n)
	c[0] = upper[0] / diag[0]
	d[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		den := diag[i] - lower[i]*c[i-1]
		c[i] = upper[i] / den
		d[i] = (rhs[i] - lower[i]*d[i-1]) / den
	}

	x := make([]float64, n)
	x[n-1] = d[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = d[i] - c[i]*x[i+1]
	}
	return x
}

func (s *Spline) Name() string { return s.name }

func (s *Spline) Domain() (float64, float64) {
	return s.knots[0], s.knots[len(s.knots)-1]
}

func (s *Spline) Extrapolates() bool { return s.extrapolate }

// Degree is the polynomial degree of every segment.
func (s *Spline) Degree() int { return len(s.coeffs[0]) - 1 }

func (s *Spline) Knots() []float64 {
	k := make([]float64, len(s.knots))
	copy(k, s.knots)
	return k
}

// segment returns the index of the segment containing t, clamped to the
// first and last segments.
func (s *Spline) segment(t float64) int {
	i := sort.Search(len(s.knots), func(j int) bool { return s.knots[j] > t }) - 1
	if i < 0 {
		return 0
	}
	if i > len(s.coeffs)-1 {
		return len(s.coeffs) - 1
	}
	return i
}

// boundary returns the value and slope at the lower or upper domain edge.
func (s *Spline) boundary(upper bool) (float64, float64) {
	if !upper {
		c := s.coeffs[0]
		return polyEval(c, 0), polyDerivEval(c, 0)
	}
	last := len(s.coeffs) - 1
	h := s.knots[last+1] - s.knots[last]
	c := s.coeffs[last]
	return polyEval(c, h), polyDerivEval(c, h)
}

func (s *Spline) at(t float64) float64 {
	lo, hi := s.Domain()
	switch {
	case t < lo:
		return polyEval(s.below, t-lo)
	case t > hi:
		return polyEval(s.above, t-hi)
	}
	i := s.segment(t)
	return polyEval(s.coeffs[i], t-s.knots[i])
}

func (s *Spline) slopeAt(t float64) float64 {
	lo, hi := s.Domain()
	switch {
	case t < lo:
		return polyDerivEval(s.below, t-lo)
	case t > hi:
		return polyDerivEval(s.above, t-hi)
	}
	i := s.segment(t)
	return polyDerivEval(s.coeffs[i], t-s.knots[i])
}

func (s *Spline) Eval(t float64) (float64, error) {
	lo, hi := s.Domain()
	if err := checkDomain(t, lo, hi, s.extrapolate); err != nil {
		return 0, err
	}
	return s.at(t), nil
}

// Integrate returns the definite integral over [a, b] in closed form. Swapped
// bounds negate the result.
func (s *Spline) Integrate(a, b float64) (float64, error) {
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

	total := 0.0
	if a < lo {
		total += polyIntegral(s.below, math.Min(b, lo)-lo) - polyIntegral(s.below, a-lo)
	}
	if b > hi {
		total += polyIntegral(s.above, b-hi) - polyIntegral(s.above, math.Max(a, hi)-hi)
	}

	l, u := math.Max(a, lo), math.Min(b, hi)
	if l >= u {
		return total, nil
	}
	i, j := s.segment(l), s.segment(u)
	if i == j {
		return total + polyIntegral(s.coeffs[i], u-s.knots[i]) - polyIntegral(s.coeffs[i], l-s.knots[i]), nil
	}
	total += polyIntegral(s.coeffs[i], s.knots[i+1]-s.knots[i]) - polyIntegral(s.coeffs[i], l-s.knots[i])
	for k := i + 1; k < j; k++ {
		total += polyIntegral(s.coeffs[k], s.knots[k+1]-s.knots[k])
	}
	total += polyIntegral(s.coeffs[j], u-s.knots[j])
	return total, nil
}

// Derivative returns the analytic derivative, one degree lower. Outside the
// domain it is the slope of the parent's extension.
func (s *Spline) Derivative() *Spline {
	coeffs := make([][]float64, len(s.coeffs))
	for i, c := range s.coeffs {
		coeffs[i] = polyDerivative(c)
	}
	return &Spline{
		name:        s.name + "'",
		knots:       s.knots,
		coeffs:      coeffs,
		below:       polyDerivative(s.below),
		above:       polyDerivative(s.above),
		extrapolate: s.extrapolate,
	}
}

// Antiderivative returns F with F(lo) = 0 and F' = s, one degree higher.
func (s *Spline) Antiderivative() *Spline {
	coeffs := make([][]float64, len(s.coeffs))
	acc := 0.0
	for i, c := range s.coeffs {
		coeffs[i] = polyAntiderivative(c, acc)
		acc += polyIntegral(c, s.knots[i+1]-s.knots[i])
	}
	return &Spline{
		name:        "int " + s.name,
		knots:       s.knots,
		coeffs:      coeffs,
		below:       polyAntiderivative(s.below, 0),
		above:       polyAntiderivative(s.above, acc),
		extrapolate: s.extrapolate,
	}
}
