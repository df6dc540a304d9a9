package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/bocop/internal/bocop"
	"github.com/san-kum/bocop/internal/config"
	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/plot"
)

var (
	configFile string
	dataDir    string
	verbose    bool

	// Interpolation
	mode           string
	extrapolate    bool
	tolerance      float64
	normalize      bool
	medianWindow   int
	levelTolerance float64

	// Output
	format  string
	bunch   string
	outFile string
	rows    int
	cols    int
	preset  string
	theme   string
	adjoint bool
	guess   float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command and its flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bocop",
		Short:        "inspect and analyze BOCOP optimal control solutions",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "snapshot directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	inspectCmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "summarize a solution directory",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectSolution,
	}
	inspectCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	tableCmd := &cobra.Command{
		Use:   "table [dir]",
		Short: "print the solution as a time-indexed table",
		Args:  cobra.ExactArgs(1),
		RunE:  printTable,
	}
	tableCmd.Flags().StringVar(&format, "format", "csv", "output format (csv|json)")
	tableCmd.Flags().StringVar(&bunch, "bunch", "solution", "solution, states, adjoints or controls")

	plotCmd := &cobra.Command{
		Use:   "plot [dir] [variable...]",
		Short: "plot variables in the terminal or to an image",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotSolution,
	}
	plotCmd.Flags().StringVar(&bunch, "bunch", "states", "bunch to plot when no variable is named")
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "write a .png or .svg instead of printing")
	plotCmd.Flags().IntVar(&rows, "rows", 0, "grid rows (0: one per variable)")
	plotCmd.Flags().IntVar(&cols, "cols", 0, "grid columns (0: single column)")
	plotCmd.Flags().StringVar(&preset, "preset", "", "plot style preset")
	addInterpolationFlags(plotCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [dir] [x] [y]",
		Short: "phase portrait of two states",
		Args:  cobra.ExactArgs(3),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().BoolVar(&adjoint, "adjoint", false, "use adjoint states")
	phaseCmd.Flags().StringVarP(&outFile, "out", "o", "", "write a .png or .svg instead of printing")
	phaseCmd.Flags().StringVar(&preset, "preset", "", "plot style preset")

	evalCmd := &cobra.Command{
		Use:   "eval [dir] [variable] [t...]",
		Short: "evaluate the interpolant of a variable",
		Args:  cobra.MinimumNArgs(3),
		RunE:  evalVariable,
	}
	addInterpolationFlags(evalCmd)

	integrateCmd := &cobra.Command{
		Use:   "integrate [dir] [variable] [t0] [t1]",
		Short: "integrate the interpolant of a variable over [t0, t1]",
		Args:  cobra.ExactArgs(4),
		RunE:  integrateVariable,
	}
	addInterpolationFlags(integrateCmd)

	deriveCmd := &cobra.Command{
		Use:   "derive [dir] [variable] [t...]",
		Short: "evaluate the derivative, or list the jumps of a step interpolant",
		Args:  cobra.MinimumNArgs(2),
		RunE:  deriveVariable,
	}
	addInterpolationFlags(deriveCmd)

	inverseCmd := &cobra.Command{
		Use:   "inverse [dir] [variable] [y...]",
		Short: "find times at which a variable takes the given values",
		Args:  cobra.MinimumNArgs(3),
		RunE:  invertVariable,
	}
	inverseCmd.Flags().Float64Var(&guess, "guess", 0, "starting time for the root search")
	inverseCmd.Flags().BoolVar(&extrapolate, "extrapolate", false, "allow times outside the horizon")

	bangbangCmd := &cobra.Command{
		Use:   "bangbang [dir] [control]",
		Short: "detect a bang-bang structure and print its switching times",
		Args:  cobra.ExactArgs(2),
		RunE:  bangBang,
	}
	bangbangCmd.Flags().Float64Var(&tolerance, "tol", interp.DefaultTolerance, "switch detection threshold")
	bangbangCmd.Flags().BoolVar(&normalize, "normalize", false, "compare values rescaled to [0, 1]")
	bangbangCmd.Flags().IntVar(&medianWindow, "median", 0, "odd median filter window before detection")
	bangbangCmd.Flags().Float64Var(&levelTolerance, "level-tol", config.DefaultLevelTolerance, "distance under which levels merge")
	bangbangCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	importCmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "store a snapshot of a solution",
		Args:  cobra.ExactArgs(1),
		RunE:  importSolution,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "plot a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	showCmd.Flags().StringVar(&format, "format", "plot", "output format (plot|csv|json)")

	browseCmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "browse the variables of a solution interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  browseSolution,
	}
	browseCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	addInterpolationFlags(browseCmd)

	rootCmd.AddCommand(inspectCmd, tableCmd, plotCmd, phaseCmd, evalCmd, integrateCmd, deriveCmd,
		inverseCmd, bangbangCmd, importCmd, listCmd, showCmd, browseCmd, newConfigCmd())
	return rootCmd
}

func addInterpolationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "interpolation mode (smooth|step)")
	cmd.Flags().BoolVar(&extrapolate, "extrapolate", false, "allow evaluation outside the horizon")
	cmd.Flags().Float64Var(&tolerance, "tol", interp.DefaultTolerance, "step switch threshold")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "detect switches on values rescaled to [0, 1]")
	cmd.Flags().IntVar(&medianWindow, "median", 0, "odd median filter window before switch detection")
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// settings merges the config file with flags. Flags win when set explicitly.
type settings struct {
	cfg   *config.Config
	opts  interp.Options
	style plot.Style
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("loaded config", "path", configFile)
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("data") {
		cfg.DataDir = dataDir
	}
	if changed("mode") {
		cfg.Interpolation.Mode = mode
	}
	if changed("extrapolate") {
		cfg.Interpolation.Extrapolate = extrapolate
	}
	if changed("tol") {
		cfg.Interpolation.Tolerance = tolerance
	}
	if changed("normalize") {
		cfg.Interpolation.Normalize = normalize
	}
	if changed("median") {
		cfg.Interpolation.MedianWindow = medianWindow
	}
	if changed("level-tol") {
		cfg.Interpolation.LevelTolerance = levelTolerance
	}
	if changed("theme") {
		cfg.Theme = theme
	}
	if preset != "" && changed("preset") {
		if !cfg.ApplyPreset(preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if changed("rows") {
		cfg.Plot.Rows = rows
	}
	if changed("cols") {
		cfg.Plot.Cols = cols
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, opts: opts, style: cfg.Plot}, nil
}

func readSolution(dir string) (*bocop.Solution, error) {
	sol, err := bocop.Read(dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("solution loaded", "solution", sol.String())
	return sol, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
