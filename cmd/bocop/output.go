package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	gplot "gonum.org/v1/plot"

	"github.com/san-kum/bocop/internal/bocop"
	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/plot"
	"github.com/san-kum/bocop/internal/table"
	"github.com/san-kum/bocop/internal/viz"
)

func inspectSolution(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), viz.Summary(sol, viz.NewStyles(viz.GetTheme(s.cfg.Theme))))
	return nil
}

func printTable(cmd *cobra.Command, args []string) error {
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}

	which, _ := cmd.Flags().GetString("bunch")
	var frame *table.Frame
	if which == "solution" || which == "all" {
		frame, err = sol.Table()
	} else {
		var b *bocop.Bunch
		if b, err = sol.Bunch(which); err == nil {
			frame, err = b.Table()
		}
	}
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("format")
	switch out {
	case "csv":
		return frame.WriteCSV(cmd.OutOrStdout())
	case "json":
		return frame.WriteJSON(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", out)
	}
}

// plotVariables resolves the variables named on the command line, or the
// whole --bunch when none is named.
func plotVariables(cmd *cobra.Command, sol *bocop.Solution, names []string) (*bocop.Bunch, []*bocop.Variable, error) {
	if len(names) == 0 {
		which, _ := cmd.Flags().GetString("bunch")
		b, err := sol.Bunch(which)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Variables(), nil
	}
	vars := make([]*bocop.Variable, 0, len(names))
	for _, name := range names {
		v, err := sol.Variable(name)
		if err != nil {
			return nil, nil, err
		}
		vars = append(vars, v)
	}
	return nil, vars, nil
}

func plotSolution(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}
	b, vars, err := plotVariables(cmd, sol, args[1:])
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		return fmt.Errorf("nothing to plot in %s", sol)
	}

	if outFile != "" {
		return savePlot(b, vars, s)
	}

	out := cmd.OutOrStdout()
	cache := bocop.NewCache(0)
	var fs map[string]interp.Interpolant
	if b != nil {
		if fs, err = cache.InterpolateAll(cmd.Context(), b, s.opts); err != nil {
			return err
		}
	}
	for _, v := range vars {
		f, ok := fs[v.Name]
		if !ok {
			if f, err = cache.Interpolant(v, s.opts); err != nil {
				return err
			}
		}
		series, err := plot.Resample(f, v.Name, s.style.Width)
		if err != nil {
			return err
		}
		style := s.style
		style.Title = fmt.Sprintf("%s (%s)", v, s.opts.Mode)
		fmt.Fprintln(out, plot.ASCII(series, style))
		fmt.Fprintln(out)
	}
	return nil
}

func savePlot(b *bocop.Bunch, vars []*bocop.Variable, s *settings) error {
	if len(vars) == 1 {
		v := vars[0]
		var fig *gplot.Plot
		if s.opts.Mode == interp.ModeStep {
			step, err := v.Step(s.opts)
			if err != nil {
				return err
			}
			if fig, err = plot.StepFigure(v.Series(), step, s.style); err != nil {
				return err
			}
		} else {
			var err error
			if fig, err = plot.Figure(v.Series(), s.style); err != nil {
				return err
			}
		}
		return saveFigure(fig, s.style)
	}

	if b != nil {
		grid, err := b.Plot(s.style)
		if err != nil {
			return err
		}
		return grid.Save(outFile, s.style)
	}

	series := make([]interp.TimeSeries, len(vars))
	for i, v := range vars {
		series[i] = v.Series()
	}
	r, c := s.style.Rows, s.style.Cols
	if r == 0 || c == 0 {
		r, c = len(series), 1
	}
	grid, err := plot.NewGrid(series, r, c, s.style)
	if err != nil {
		return err
	}
	return grid.Save(outFile, s.style)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}

	b, x, y := sol.States, args[1], args[2]
	if adjoint {
		b = sol.Adjoints
		if !strings.HasSuffix(x, bocop.AdjointSuffix) {
			x += bocop.AdjointSuffix
		}
		if !strings.HasSuffix(y, bocop.AdjointSuffix) {
			y += bocop.AdjointSuffix
		}
	}
	p, err := b.Phase(x, y)
	if err != nil {
		return err
	}

	if outFile != "" {
		fig, err := plot.PhaseFigure(p, s.style)
		if err != nil {
			return err
		}
		return saveFigure(fig, s.style)
	}
	fmt.Fprint(cmd.OutOrStdout(), plot.PhaseASCII(p, s.style.Width, 2*s.style.Height))
	return nil
}

func browseSolution(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}

	m := viz.NewBrowser(sol, s.opts, s.cfg.Theme, s.style)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stdout))
	_, err = p.Run()
	return err
}

func saveFigure(fig *gplot.Plot, style plot.Style) error {
	if err := plot.SaveFigure(outFile, fig, style); err != nil {
		return err
	}
	slog.Info("figure written", "path", outFile)
	return nil
}
