package bocop

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

const (
	ExportExt     = ".export"
	AdjointSuffix = "_adjoint_state"
	StagePrefix   = "stage_"

	DiscretizationTimesFile = "discretization_times"
	StageTimesFile          = "stage_times"
	ParametersFile          = "parameters"
)

func isConstant(name string) bool {
	switch name {
	case DiscretizationTimesFile, StageTimesFile, ParametersFile:
		return true
	}
	return false
}

// Read loads every export file of dir.
func Read(dir string) (*Solution, error) {
	return ReadFS(os.DirFS(dir), dir)
}

// ReadFS reads a solution from fsys; dir is only used to label it.
func ReadFS(fsys fs.FS, dir string) (*Solution, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading solution directory: %w", err)
	}

	r := &reader{fsys: fsys}
	sol := &Solution{Dir: dir}
	if sol.DiscretizationTimes, err = r.file(DiscretizationTimesFile); err != nil {
		return nil, err
	}
	if sol.StageTimes, err = r.file(StageTimesFile); err != nil {
		return nil, err
	}
	if sol.Parameters, err = r.file(ParametersFile); err != nil {
		return nil, err
	}

	present := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ExportExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ExportExt)
		if isConstant(name) {
			continue
		}
		present[name] = true
		names = append(names, name)
	}

	sol.States = newBunch(State)
	sol.Adjoints = newBunch(Adjoint)
	sol.Controls = newBunch(Control)

	for _, name := range names {
		switch {
		case present[name+AdjointSuffix]:
			state, err := r.variable(sol, State, name)
			if err != nil {
				return nil, err
			}
			adj, err := r.variable(sol, Adjoint, name+AdjointSuffix)
			if err != nil {
				return nil, err
			}
			state.Adjoint = adj
			sol.States.add(state)
			sol.Adjoints.add(adj)
		case present[StagePrefix+name]:
			ctrl, err := r.variable(sol, Control, name)
			if err != nil {
				return nil, err
			}
			sol.Controls.add(ctrl)
		}
	}

	slog.Debug("read solution",
		"dir", dir,
		"states", sol.States.Len(),
		"controls", sol.Controls.Len(),
		"steps", len(sol.DiscretizationTimes),
	)
	return sol, nil
}

type reader struct {
	fsys fs.FS
}

// file returns the numbers of <name>.export. An empty file gives an empty slice.
func (r *reader) file(name string) ([]float64, error) {
	filename := name + ExportExt
	data, err := fs.ReadFile(r.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, filename)
		}
		return nil, err
	}

	fields := strings.Fields(string(data))
	values := make([]float64, 0, len(fields))
	for i, tok := range fields {
		v, err := cast.ToFloat64E(tok)
		if err != nil {
			return nil, &ParseError{File: filename, Token: i, Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

// variable reads name and attaches the matching time grid: stage times when
// the lengths agree, discretization times otherwise.
func (r *reader) variable(sol *Solution, kind Kind, name string) (*Variable, error) {
	values, err := r.file(name)
	if err != nil {
		return nil, err
	}

	times := sol.DiscretizationTimes
	if len(values) == len(sol.StageTimes) {
		times = sol.StageTimes
	}
	if len(values) != 0 && len(values) != len(times) {
		return nil, fmt.Errorf("%w: %s has %d values, time grid has %d",
			ErrShape, name, len(values), len(times))
	}
	if len(values) == 0 {
		times = nil
	}

	return &Variable{Kind: kind, Name: name, Times: times, Values: values}, nil
}
