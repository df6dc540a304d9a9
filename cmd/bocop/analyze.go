package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/viz"
)

// interpolant reads dir and builds the interpolant of one variable.
func interpolant(cmd *cobra.Command, dir, name string) (interp.Interpolant, *settings, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	sol, err := readSolution(dir)
	if err != nil {
		return nil, nil, err
	}
	v, err := sol.Variable(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := v.Interpolate(s.opts)
	if err != nil {
		return nil, nil, err
	}
	return f, s, nil
}

func evalVariable(cmd *cobra.Command, args []string) error {
	ts, err := parseFloats(args[2:])
	if err != nil {
		return err
	}
	f, _, err := interpolant(cmd, args[0], args[1])
	if err != nil {
		return err
	}
	values, err := interp.EvalAll(f, ts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "T\t%s\n", f.Name())
	for i, t := range ts {
		fmt.Fprintf(w, "%s\t%s\n", formatFloat(t), formatFloat(values[i]))
	}
	return w.Flush()
}

func integrateVariable(cmd *cobra.Command, args []string) error {
	bounds, err := parseFloats(args[2:])
	if err != nil {
		return err
	}
	f, _, err := interpolant(cmd, args[0], args[1])
	if err != nil {
		return err
	}
	area, err := f.Integrate(bounds[0], bounds[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatFloat(area))
	return nil
}

func deriveVariable(cmd *cobra.Command, args []string) error {
	ts, err := parseFloats(args[2:])
	if err != nil {
		return err
	}
	f, _, err := interpolant(cmd, args[0], args[1])
	if err != nil {
		return err
	}
	d, err := interp.Differentiate(f)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if imp, ok := d.(*interp.Impulses); ok && len(ts) == 0 {
		fmt.Fprintln(w, "SWITCH\tJUMP")
		for _, ev := range imp.Events() {
			fmt.Fprintf(w, "%s\t%s\n", formatFloat(ev.Time), formatFloat(ev.To-ev.From))
		}
		return w.Flush()
	}
	if len(ts) == 0 {
		return errors.New("derive: no evaluation time given")
	}

	values, err := interp.EvalAll(d, ts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "T\td%s/dt\n", f.Name())
	for i, t := range ts {
		fmt.Fprintf(w, "%s\t%s\n", formatFloat(t), formatFloat(values[i]))
	}
	return w.Flush()
}

func invertVariable(cmd *cobra.Command, args []string) error {
	ys, err := parseFloats(args[2:])
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}
	v, err := sol.Variable(args[1])
	if err != nil {
		return err
	}
	spline, err := v.Spline(s.opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tT\n", v.Name)
	for _, y := range ys {
		var t float64
		if cmd.Flags().Changed("guess") {
			t, err = spline.InverseNear(y, guess)
		} else {
			t, err = spline.Inverse(y)
		}
		if err != nil {
			return fmt.Errorf("inverting %s at %s: %w", v, formatFloat(y), err)
		}
		fmt.Fprintf(w, "%s\t%s\n", formatFloat(y), formatFloat(t))
	}
	return w.Flush()
}

func bangBang(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}
	u, err := sol.Controls.Get(args[1])
	if err != nil {
		return err
	}

	opts := s.opts
	opts.Mode = interp.ModeStep
	step, err := u.Step(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bb, err := interp.DetectBangBang(step, s.cfg.Interpolation.LevelTolerance)
	if errors.Is(err, interp.ErrNotBangBang) {
		fmt.Fprintln(out, step.LaTeX(u.Name))
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprint(out, viz.SwitchReport(bb, viz.NewStyles(viz.GetTheme(s.cfg.Theme))))
	return nil
}
