// Package bocop reads the export directory written by the BOCOP optimal
// control solver.
//
// A directory holds one <name>.export file per quantity, each a list of
// whitespace-separated numbers. Three of them are constants of the run:
//
//	discretization_times  the time grid of states and adjoints
//	stage_times           the grid of stage (control) values
//	parameters            optimized parameters, possibly empty
//
// A name x is a state when x_adjoint_state.export is present, and a name u is
// a control when stage_u.export is present. Every other file is ignored.
//
// # Example
//
//	sol, err := bocop.Read("data/goddard")
//	if err != nil {
//		return err
//	}
//	u, err := sol.Controls.Get("u")
//	if err != nil {
//		return err
//	}
//	step, err := interp.NewStep(u.Series(), interp.DefaultOptions())
//
// Solutions are read once and not modified afterwards, so they can be shared
// between goroutines.
package bocop
