// Package table turns time series into time-indexed frames and encodes them.
package table

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/bocop/internal/interp"
)

var (
	ErrDuplicateColumn = errors.New("table: duplicate column")
	ErrLength          = errors.New("table: times and values differ in length")
	ErrTime            = errors.New("table: non-finite time")
)

// Frame is a set of named columns sharing one sorted time index. Cells with
// no sample at a given time hold NaN.
type Frame struct {
	Index   []float64
	Columns []string
	Data    [][]float64
}

// FromSeries outer-joins the series on their times.
func FromSeries(series ...interp.TimeSeries) (*Frame, error) {
	seen := make(map[string]bool, len(series))
	for _, s := range series {
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, s.Name)
		}
		seen[s.Name] = true
		if len(s.Times) != len(s.Values) {
			return nil, fmt.Errorf("%w: %q has %d times and %d values", ErrLength, s.Name, len(s.Times), len(s.Values))
		}
		for i, t := range s.Times {
			if !finite(t) {
				return nil, fmt.Errorf("%w: %q sample %d", ErrTime, s.Name, i)
			}
		}
	}

	var index []float64
	for _, s := range series {
		index = append(index, s.Times...)
	}
	slices.Sort(index)
	index = slices.Compact(index)

	pos := make(map[float64]int, len(index))
	for i, t := range index {
		pos[t] = i
	}

	f := &Frame{Index: index}
	for _, s := range series {
		col := nanColumn(len(index))
		for i, t := range s.Times {
			col[pos[t]] = s.Values[i]
		}
		f.Columns = append(f.Columns, s.Name)
		f.Data = append(f.Data, col)
	}
	return f, nil
}

// Join outer-joins frames column-wise.
func Join(frames ...*Frame) (*Frame, error) {
	var series []interp.TimeSeries
	for _, f := range frames {
		if f == nil {
			continue
		}
		for j, name := range f.Columns {
			var times, values []float64
			for i, v := range f.Data[j] {
				if math.IsNaN(v) {
					continue
				}
				times = append(times, f.Index[i])
				values = append(values, v)
			}
			series = append(series, interp.TimeSeries{Name: name, Times: times, Values: values})
		}
	}
	joined, err := FromSeries(series...)
	if err != nil {
		return nil, err
	}
	// Keep rows that were present in an input even if every cell is missing.
	for _, f := range frames {
		if f != nil {
			joined.addRows(f.Index)
		}
	}
	return joined, nil
}

func (f *Frame) addRows(times []float64) {
	missing := false
	for _, t := range times {
		if _, ok := slices.BinarySearch(f.Index, t); !ok {
			missing = true
			break
		}
	}
	if !missing {
		return
	}

	index := slices.Concat(f.Index, times)
	slices.Sort(index)
	index = slices.Compact(index)

	data := make([][]float64, len(f.Data))
	for j, old := range f.Data {
		col := nanColumn(len(index))
		for i, t := range f.Index {
			k, _ := slices.BinarySearch(index, t)
			col[k] = old[i]
		}
		data[j] = col
	}
	f.Index, f.Data = index, data
}

func finite(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 0)
}

func nanColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = math.NaN()
	}
	return col
}

func (f *Frame) Rows() int { return len(f.Index) }

func (f *Frame) Cols() int { return len(f.Columns) }

// Size is the number of cells, missing ones included.
func (f *Frame) Size() int { return f.Rows() * f.Cols() }

func (f *Frame) Column(name string) ([]float64, bool) {
	for j, c := range f.Columns {
		if c == name {
			return slices.Clone(f.Data[j]), true
		}
	}
	return nil, false
}

// Series returns the column with its missing cells dropped.
func (f *Frame) Series(name string) (interp.TimeSeries, bool) {
	col, ok := f.Column(name)
	if !ok {
		return interp.TimeSeries{}, false
	}
	s := interp.TimeSeries{Name: name}
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		s.Times = append(s.Times, f.Index[i])
		s.Values = append(s.Values, v)
	}
	return s, true
}

func (f *Frame) Row(i int) []float64 {
	row := make([]float64, len(f.Data))
	for j := range f.Data {
		row[j] = f.Data[j][i]
	}
	return row
}
