package interp

import (
	"fmt"
	"math"
)

const (
	maxNewtonIter   = 50
	maxBisectIter   = 200
	rootTolerance   = 1e-12
	bisectTolerance = 1e-14
)

// Inverse returns a time t with s(t) = y. The search starts at the sample
// whose value is closest to y, so a non-injective spline yields the root
// nearest that sample.
func (s *Spline) Inverse(y float64) (float64, error) {
	return s.InverseNear(y, s.closestKnot(y))
}

// InverseNear is Inverse with an explicit starting time. Giving different
// guesses recovers the different times at which a non-injective variable
// takes the same value.
func (s *Spline) InverseNear(y, guess float64) (float64, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: y=%g", ErrNoRoot, y)
	}
	lo, hi := s.Domain()
	if err := checkDomain(guess, lo, hi, s.extrapolate); err != nil {
		return 0, err
	}

	tol := rootTolerance * (1 + math.Abs(y))
	t := guess
	for iter := 0; iter < maxNewtonIter; iter++ {
		r := s.at(t) - y
		if math.Abs(r) <= tol {
			return t, nil
		}
		slope := s.slopeAt(t)
		if slope == 0 || math.IsNaN(slope) {
			break
		}
		next := t - r/slope
		if !s.extrapolate && (next < lo || next > hi) {
			break
		}
		t = next
	}

	return s.bisectNear(y, guess, tol)
}

// bisectNear falls back to bisection on the bracketing segment closest to guess.
func (s *Spline) bisectNear(y, guess, tol float64) (float64, error) {
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i < len(s.knots)-1; i++ {
		fa := s.at(s.knots[i]) - y
		fb := s.at(s.knots[i+1]) - y
		if fa == 0 {
			if d := math.Abs(s.knots[i] - guess); d < bestDist {
				best, bestDist = i, d
			}
			continue
		}
		if fa*fb > 0 {
			continue
		}
		mid := (s.knots[i] + s.knots[i+1]) / 2
		if d := math.Abs(mid - guess); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: y=%g", ErrNoRoot, y)
	}

	a, b := s.knots[best], s.knots[best+1]
	fa := s.at(a) - y
	if fa == 0 {
		return a, nil
	}
	for iter := 0; iter < maxBisectIter; iter++ {
		mid := (a + b) / 2
		fm := s.at(mid) - y
		if math.Abs(fm) <= tol || b-a <= bisectTolerance*(1+math.Abs(mid)) {
			return mid, nil
		}
		if (fa < 0) == (fm < 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return (a + b) / 2, nil
}

func (s *Spline) closestKnot(y float64) float64 {
	best := s.knots[0]
	bestDist := math.Inf(1)
	for _, k := range s.knots {
		if d := math.Abs(s.at(k) - y); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
