package bocop

import (
	"fmt"

	"github.com/san-kum/bocop/internal/table"
)

// Solution is the parsed content of a BOCOP export directory.
type Solution struct {
	Dir                 string
	DiscretizationTimes []float64
	StageTimes          []float64
	Parameters          []float64

	States   *Bunch
	Adjoints *Bunch
	Controls *Bunch
}

func (s *Solution) String() string {
	return fmt.Sprintf("BOCOPSolution(%s)", s.Dir)
}

// Bunch selects a bunch by name: states, adjoints or controls.
func (s *Solution) Bunch(name string) (*Bunch, error) {
	switch name {
	case "states", "state":
		return s.States, nil
	case "adjoints", "adjoint", "adjoint_states":
		return s.Adjoints, nil
	case "controls", "control":
		return s.Controls, nil
	}
	return nil, fmt.Errorf("%w: no bunch named %q", ErrUnknownVariable, name)
}

// Variable looks name up across states, adjoints and controls.
func (s *Solution) Variable(name string) (*Variable, error) {
	for _, b := range []*Bunch{s.States, s.Adjoints, s.Controls} {
		if v, err := b.Get(name); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
}

// Table joins states and controls on time.
func (s *Solution) Table() (*table.Frame, error) {
	states, err := s.States.Table()
	if err != nil {
		return nil, err
	}
	controls, err := s.Controls.Table()
	if err != nil {
		return nil, err
	}
	return table.Join(states, controls)
}

// Size is the total number of samples over all variables.
func (s *Solution) Size() int {
	n := 0
	for _, b := range []*Bunch{s.States, s.Adjoints, s.Controls} {
		for v := range b.All() {
			n += v.Len()
		}
	}
	return n
}
