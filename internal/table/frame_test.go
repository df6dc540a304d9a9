package table

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bocop/internal/interp"
)

func TestFromSeries_OuterJoin(t *testing.T) {
	x := interp.NewTimeSeries("x", []float64{0, 1, 2}, []float64{10, 11, 12})
	u := interp.NewTimeSeries("u", []float64{0.5, 1.5}, []float64{-1, 1})

	f, err := FromSeries(x, u)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, f.Index)
	assert.Equal(t, []string{"x", "u"}, f.Columns)
	assert.Equal(t, 10, f.Size())

	col, ok := f.Column("u")
	require.True(t, ok)
	assert.True(t, math.IsNaN(col[0]))
	assert.Equal(t, -1.0, col[1])
	assert.Equal(t, 1.0, col[3])

	s, ok := f.Series("u")
	require.True(t, ok)
	assert.Equal(t, u.Times, s.Times)
	assert.Equal(t, u.Values, s.Values)

	_, ok = f.Column("missing")
	assert.False(t, ok)
}

func TestFromSeries_Errors(t *testing.T) {
	x := interp.NewTimeSeries("x", []float64{0, 1}, []float64{1, 2})
	_, err := FromSeries(x, x)
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	bad := interp.NewTimeSeries("y", []float64{0, 1}, []float64{1})
	_, err = FromSeries(bad)
	assert.ErrorIs(t, err, ErrLength)

	for _, tm := range []float64{math.NaN(), math.Inf(1)} {
		nan := interp.NewTimeSeries("z", []float64{0, tm}, []float64{1, 2})
		_, err = FromSeries(x, nan)
		assert.ErrorIs(t, err, ErrTime)
	}
}

func TestJoin(t *testing.T) {
	a, err := FromSeries(interp.NewTimeSeries("x", []float64{0, 1}, []float64{1, 2}))
	require.NoError(t, err)
	b, err := FromSeries(interp.NewTimeSeries("u", []float64{1, 2}, []float64{5, 6}))
	require.NoError(t, err)

	j, err := Join(a, nil, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, j.Index)
	assert.Equal(t, []string{"x", "u"}, j.Columns)

	row := j.Row(1)
	assert.Equal(t, []float64{2, 5}, row)
	assert.True(t, math.IsNaN(j.Row(2)[0]))

	_, err = Join(a, a)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestJoin_KeepsEmptyRows(t *testing.T) {
	f := &Frame{
		Index:   []float64{0, 1, 2},
		Columns: []string{"x"},
		Data:    [][]float64{{1, math.NaN(), 3}},
	}
	j, err := Join(f)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, j.Index)
	assert.True(t, math.IsNaN(j.Data[0][1]))
	assert.Equal(t, 3.0, j.Data[0][2])
}

func TestCSVRoundTrip(t *testing.T) {
	f, err := FromSeries(
		interp.NewTimeSeries("x", []float64{0, 0.1, 0.2}, []float64{1.5, -2.25, 1e-9}),
		interp.NewTimeSeries("u", []float64{0.1}, []float64{3}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))
	assert.Equal(t, "time,x,u\n0,1.5,\n0.1,-2.25,3\n0.2,1e-09,\n", buf.String())

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Index, back.Index)
	assert.Equal(t, f.Columns, back.Columns)
	assert.Equal(t, f.Data[0], back.Data[0])
	assert.True(t, math.IsNaN(back.Data[1][0]))
	assert.Equal(t, 3.0, back.Data[1][1])
}

func TestReadCSV_BadHeader(t *testing.T) {
	_, err := ReadCSV(bytes.NewBufferString("t,x\n0,1\n"))
	assert.ErrorIs(t, err, ErrHeader)

	_, err = ReadCSV(bytes.NewBufferString(""))
	assert.ErrorIs(t, err, ErrHeader)

	_, err = ReadCSV(bytes.NewBufferString("time,x\n0,1\nNaN,2\n"))
	assert.ErrorIs(t, err, ErrTime)

	_, err = ReadCSV(bytes.NewBufferString("time,x\n0,abc\n"))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	f, err := FromSeries(
		interp.NewTimeSeries("x", []float64{0, 1}, []float64{1, 2}),
		interp.NewTimeSeries("u", []float64{1}, []float64{7}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteJSON(&buf))

	var records []map[string]*float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Nil(t, records[0]["u"])
	assert.Equal(t, 1.0, *records[0]["x"])
	assert.Equal(t, 7.0, *records[1]["u"])
	assert.Equal(t, 1.0, *records[1]["time"])
}
