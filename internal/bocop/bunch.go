package bocop

import (
	"fmt"
	"iter"

	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/plot"
	"github.com/san-kum/bocop/internal/table"
)

// Bunch holds the variables of one kind in directory order.
type Bunch struct {
	kind  Kind
	vars  []*Variable
	index map[string]int
}

func newBunch(kind Kind) *Bunch {
	return &Bunch{kind: kind, index: make(map[string]int)}
}

func (b *Bunch) add(v *Variable) {
	b.index[v.Name] = len(b.vars)
	b.vars = append(b.vars, v)
}

func (b *Bunch) Kind() Kind { return b.kind }

func (b *Bunch) Len() int { return len(b.vars) }

func (b *Bunch) Get(name string) (*Variable, error) {
	i, ok := b.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownVariable, b.kind, name)
	}
	return b.vars[i], nil
}

func (b *Bunch) Names() []string {
	names := make([]string, len(b.vars))
	for i, v := range b.vars {
		names[i] = v.Name
	}
	return names
}

func (b *Bunch) Variables() []*Variable {
	return append([]*Variable(nil), b.vars...)
}

func (b *Bunch) All() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		for _, v := range b.vars {
			if !yield(v) {
				return
			}
		}
	}
}

func (b *Bunch) series() []interp.TimeSeries {
	out := make([]interp.TimeSeries, len(b.vars))
	for i, v := range b.vars {
		out[i] = v.Series()
	}
	return out
}

func (b *Bunch) Table() (*table.Frame, error) {
	return table.FromSeries(b.series()...)
}

// Size is the number of cells in the bunch table.
func (b *Bunch) Size() int {
	f, err := b.Table()
	if err != nil {
		return 0
	}
	return f.Size()
}

func (b *Bunch) String() string {
	return fmt.Sprintf("%ss%v", b.kind, b.Names())
}

// Shape resolves a rows x cols layout for the bunch. A zero in either
// dimension means one row per variable in a single column.
func (b *Bunch) Shape(rows, cols int) (int, int, error) {
	if rows == 0 || cols == 0 {
		return len(b.vars), 1, nil
	}
	if rows < 0 || cols < 0 || rows*cols != len(b.vars) {
		return 0, 0, fmt.Errorf("%w: the given shape (%d, %d) is of size=%d, should be %d",
			ErrShape, rows, cols, rows*cols, len(b.vars))
	}
	return rows, cols, nil
}

// Plot lays every variable out in a grid using style.Rows and style.Cols.
func (b *Bunch) Plot(style plot.Style) (*plot.Grid, error) {
	rows, cols, err := b.Shape(style.Rows, style.Cols)
	if err != nil {
		return nil, err
	}
	if style.Title == "" {
		style.Title = b.kind.String() + "s"
	}
	return plot.NewGrid(b.series(), rows, cols, style)
}

// Phase pairs two variables of the bunch for a phase portrait.
func (b *Bunch) Phase(x, y string) (*plot.Phase, error) {
	if b.kind == Control {
		return nil, ErrNoPhaseSpace
	}
	vx, err := b.Get(x)
	if err != nil {
		return nil, err
	}
	vy, err := b.Get(y)
	if err != nil {
		return nil, err
	}
	return plot.NewPhase(vx.Series(), vy.Series())
}
