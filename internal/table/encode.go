package table

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

const TimeColumn = "time"

var ErrHeader = errors.New("table: bad header")

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes a header row followed by one row per index entry. Missing
// cells are empty.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{TimeColumn}, f.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range f.Index {
		row := make([]string, 0, len(header))
		row = append(row, formatCell(t))
		for j := range f.Data {
			row = append(row, formatCell(f.Data[j][i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what WriteCSV produces.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != TimeColumn {
		return nil, ErrHeader
	}

	f := &Frame{Columns: append([]string(nil), records[0][1:]...)}
	f.Data = make([][]float64, len(f.Columns))
	for line, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("table: line %d: %w", line+2, err)
		}
		if !finite(t) {
			return nil, fmt.Errorf("%w: line %d", ErrTime, line+2)
		}
		f.Index = append(f.Index, t)
		for j := range f.Columns {
			v := math.NaN()
			if cell := rec[j+1]; cell != "" {
				if v, err = strconv.ParseFloat(cell, 64); err != nil {
					return nil, fmt.Errorf("table: line %d, column %q: %w", line+2, f.Columns[j], err)
				}
			}
			f.Data[j] = append(f.Data[j], v)
		}
	}
	return f, nil
}

// WriteJSON writes an array of records keyed by column name, with null for
// missing cells.
func (f *Frame) WriteJSON(w io.Writer) error {
	records := make([]map[string]any, len(f.Index))
	for i, t := range f.Index {
		rec := make(map[string]any, len(f.Columns)+1)
		rec[TimeColumn] = t
		for j, name := range f.Columns {
			if v := f.Data[j][i]; !math.IsNaN(v) {
				rec[name] = v
			} else {
				rec[name] = nil
			}
		}
		records[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
