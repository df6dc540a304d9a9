package interp

import "math"

// TimeSeries is the solved trajectory of one scalar variable.
type TimeSeries struct {
	Name   string
	Times  []float64
	Values []float64
}

func NewTimeSeries(name string, times, values []float64) TimeSeries {
	return TimeSeries{Name: name, Times: times, Values: values}
}

func (s TimeSeries) Len() int {
	return len(s.Times)
}

// Domain returns the first and last sample times. It assumes a validated series.
func (s TimeSeries) Domain() (float64, float64) {
	if len(s.Times) == 0 {
		return math.NaN(), math.NaN()
	}
	return s.Times[0], s.Times[len(s.Times)-1]
}

// Clone returns a deep copy so interpolants never alias caller memory.
func (s TimeSeries) Clone() TimeSeries {
	c := TimeSeries{
		Name:   s.Name,
		Times:  make([]float64, len(s.Times)),
		Values: make([]float64, len(s.Values)),
	}
	copy(c.Times, s.Times)
	copy(c.Values, s.Values)
	return c
}

// Validate checks the preconditions shared by every interpolant: at least two
// samples, matching lengths, finite values and strictly increasing times.
func (s TimeSeries) Validate() error {
	if len(s.Times) != len(s.Values) {
		return &InputError{Index: -1, Reason: "times and values differ in length"}
	}
	if len(s.Times) < 2 {
		return &InputError{Index: -1, Reason: "need at least 2 samples"}
	}
	for i := range s.Times {
		if math.IsNaN(s.Times[i]) || math.IsInf(s.Times[i], 0) {
			return &InputError{Index: i, Reason: "non-finite time"}
		}
		if math.IsNaN(s.Values[i]) || math.IsInf(s.Values[i], 0) {
			return &InputError{Index: i, Reason: "non-finite value"}
		}
		if i > 0 && s.Times[i] <= s.Times[i-1] {
			return &InputError{Index: i, Reason: "times not strictly increasing"}
		}
	}
	return nil
}
