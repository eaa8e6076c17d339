package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/automation"
	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/diag"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/experiment"
	"github.com/san-kum/maxwell/internal/export"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/gauss"
	"github.com/san-kum/maxwell/internal/gui"
	"github.com/san-kum/maxwell/internal/optim"
	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/storage"
	"github.com/san-kum/maxwell/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	nx         int
	ny         int
	levels     []float64
	verbose    bool
	// contours
	format    string
	outPath   string
	heat      string
	clip      float64
	showLines bool
	solver    string
	quiver    float64
	// field
	points    []string
	fieldStep float64
	// flux
	center string
	radius float64
	sides  int
	// export-json
	jsonOut string
	// live view
	theme string
	// gui
	stepsPerFrame int
	// trajectory
	chargeIdx int
	// sweep
	sweepParams []string
	metricName  string
	// montecarlo
	trials  int
	perturb float64
	seed    int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maxwell",
		Short: "2-d electromagnetic field lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the windowed view when no command given
			return runGUI(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".maxwell", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every solver diagnostic")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run simulation and save the results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	contoursCmd := &cobra.Command{
		Use:   "contours [preset]",
		Short: "trace equipotentials at a point in time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawContours,
	}
	addSimFlags(contoursCmd)
	contoursCmd.Flags().StringVar(&format, "format", "ascii", "output format (ascii, svg, png)")
	contoursCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (svg defaults to stdout)")
	contoursCmd.Flags().StringVar(&heat, "heat", "potential", "png heat map (potential, mag_z, density)")
	contoursCmd.Flags().Float64Var(&clip, "clip", 800, "png colour scale limit, 0 for auto")
	contoursCmd.Flags().BoolVar(&showLines, "lines", false, "trace field lines too")
	contoursCmd.Flags().StringVar(&solver, "solver", "direct", "quiver solver (direct, fourier, magnetostatic)")
	contoursCmd.Flags().Float64Var(&quiver, "quiver", 0, "quiver spacing for svg and png, 0 for none")

	fieldCmd := &cobra.Command{
		Use:   "field [preset]",
		Short: "sample the static field with a chosen solver",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sampleField,
	}
	addSimFlags(fieldCmd)
	fieldCmd.Flags().StringVar(&solver, "solver", "direct", "solver (direct, fourier, magnetostatic)")
	fieldCmd.Flags().StringArrayVar(&points, "point", nil, "x,y to sample (repeatable); default is a lattice")
	fieldCmd.Flags().Float64Var(&fieldStep, "step", 100, "lattice spacing when no points are given")

	fluxCmd := &cobra.Command{
		Use:   "flux [preset]",
		Short: "count field lines through a circle against the enclosed charge",
		Args:  cobra.MaximumNArgs(1),
		RunE:  countFlux,
	}
	addSimFlags(fluxCmd)
	fluxCmd.Flags().StringVar(&center, "center", "", "circle centre x,y (default: middle of the domain)")
	fluxCmd.Flags().Float64Var(&radius, "radius", 100, "circle radius")
	fluxCmd.Flags().IntVar(&sides, "sides", 64, "polygon sides approximating the circle")

	probeCmd := &cobra.Command{
		Use:   "probe [run_id]",
		Short: "plot a saved run's series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotProbe,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the probe",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run simulation in a window; click to place charges",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)
	guiCmd.Flags().IntVar(&stepsPerFrame, "steps", 2, "solver steps per frame")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset] ...",
		Short: "run several presets side by side",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	trajectoryCmd := &cobra.Command{
		Use:   "trajectory [preset]",
		Short: "plot the path of one charge",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotTrajectory,
	}
	addSimFlags(trajectoryCmd)
	trajectoryCmd.Flags().IntVar(&chargeIdx, "charge", 0, "charge index")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCHARGES\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0f\n", name, len(p.Charges), p.Duration)
			}
			return w.Flush()
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "-", "output file, - for stdout")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "grid search settings for the smallest metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable; names: "+strings.Join(config.ParamNames(), ", ")+")")
	sweepCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimise")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted batch of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "check stability under random charge placement",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 50, "largest charge displacement")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	rootCmd.AddCommand(runCmd, listCmd, contoursCmd, fieldCmd, fluxCmd, probeCmd, analyzeCmd, liveCmd, guiCmd, compareCmd, trajectoryCmd, presetsCmd, exportJSONCmd, sweepCmd, scenarioCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "grid cells along x")
	cmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "grid cells along y")
	cmd.Flags().Float64SliceVar(&levels, "levels", nil, "contour levels")
}

// resolveConfig picks the config file, the named preset or the default
// dipole, in that order, then applies any flags the user set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("nx") {
		cfg.Domain.NX = nx
	}
	if flags.Changed("ny") {
		cfg.Domain.NY = ny
	}
	if flags.Changed("levels") {
		cfg.Levels = levels
	}
	return cfg, nil
}

func diagnostics() dynamo.Diagnostics {
	level := slog.LevelWarn
	if !verbose {
		level = slog.LevelError
	}
	return diag.NewLogger(os.Stderr, level)
}

func setup(cfg *config.Config, sink dynamo.Diagnostics) (*experiment.Experiment, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(sink); err != nil {
		return nil, err
	}
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	counter := &diag.Counter{Next: diagnostics()}
	exp, err := setup(cfg, counter)
	if err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Name)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	contours := exp.Session().Field().ContoursAtLevels(cfg.Levels)
	runID, err := st.Save(cfg, result, contours)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("contours: %d\n", len(contours))
	fmt.Printf("diagnostics: %d\n", counter.Count())
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tGRID\tCHARGES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.3f\t%dx%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.NX, run.NY,
			len(run.Charges),
		)
	}

	return w.Flush()
}

// staticField builds the configuration and puts the charges where they are
// at --time, or at rest without it.
func staticField(cmd *cobra.Command, args []string) (*config.Config, *field.Configuration, float64, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, 0, err
	}
	at := 0.0
	if cmd.Flags().Changed("time") {
		at = cfg.Duration
	}

	exp, err := setup(cfg, diagnostics())
	if err != nil {
		return nil, nil, 0, err
	}

	s := exp.Session()
	f := s.Field()
	if at > 0 {
		if _, err := exp.Run(context.Background()); err != nil {
			return nil, nil, 0, err
		}
	} else {
		f.SetCharges(s.ChargesAt(0))
		if err := f.EnsureInitialized(); err != nil {
			return nil, nil, 0, err
		}
	}
	return cfg, f, at, nil
}

func drawContours(cmd *cobra.Command, args []string) error {
	sv, err := field.ParseSolver(solver)
	if err != nil {
		return err
	}
	cfg, f, at, err := staticField(cmd, args)
	if err != nil {
		return err
	}

	scene := export.NewScene(f, cfg.Levels, showLines)
	if quiver > 0 {
		scene.AddQuiver(f, sv, quiver)
	}

	switch format {
	case "ascii":
		canvas := viz.NewCanvas(100, 40)
		vp := viz.NewViewport(canvas, scene.XMax, scene.YMax)
		for _, c := range scene.Contours {
			vp.DrawPolyline(c)
		}
		for _, l := range scene.FieldLines {
			vp.DrawPolyline(l.Points)
		}
		for _, q := range scene.Charges {
			vp.DrawMarker(q.Pos(), 3)
		}
		fmt.Printf("%s at t=%.1f: %d contours, %d arrows\n", cfg.Name, at, len(scene.Contours), len(scene.Arrows))
		fmt.Println(canvas.String())
		return nil

	case "svg":
		svg := export.SceneSVG(scene, 800, 600)
		if outPath == "" {
			fmt.Println(svg)
			return nil
		}
		return os.WriteFile(outPath, []byte(svg), 0644)

	case "png":
		if outPath == "" {
			return fmt.Errorf("png output needs --out")
		}
		h, err := export.ParseHeat(heat)
		if err != nil {
			return err
		}
		opts := export.DefaultPNGOptions()
		opts.Heat = h
		opts.Clip = clip
		if err := export.FieldPNG(outPath, f, scene, opts); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}

	return fmt.Errorf("unknown format: %s", format)
}

func sampleField(cmd *cobra.Command, args []string) error {
	sv, err := field.ParseSolver(solver)
	if err != nil {
		return err
	}
	_, f, at, err := staticField(cmd, args)
	if err != nil {
		return err
	}

	var samples []field.Vector
	if len(points) == 0 {
		samples = f.Quiver(sv, fieldStep)
	}
	for _, p := range points {
		x, y, err := parsePoint(p)
		if err != nil {
			return err
		}
		u, v := f.SolverField(sv, x, y)
		samples = append(samples, field.Vector{X: x, Y: y, U: u, V: v})
	}

	fmt.Printf("%s field at t=%.1f\n\n", sv, at)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "X\tY\tU\tV\t|F|")
	for _, v := range samples {
		fmt.Fprintf(w, "%.1f\t%.1f\t%.4g\t%.4g\t%.4g\n", v.X, v.Y, v.U, v.V, math.Hypot(v.U, v.V))
	}
	return w.Flush()
}

func countFlux(cmd *cobra.Command, args []string) error {
	_, f, at, err := staticField(cmd, args)
	if err != nil {
		return err
	}

	g := f.Geometry()
	cx, cy := g.XMax/2, g.YMax/2
	if center != "" {
		if cx, cy, err = parsePoint(center); err != nil {
			return err
		}
	}
	if !(radius > 0) || sides < 3 {
		return fmt.Errorf("need a positive radius and at least 3 sides")
	}

	flux := f.Flux(gauss.Circle(cx, cy, radius, sides))
	out := 0
	for _, c := range flux.Crossings {
		if c.Outward {
			out++
		}
	}

	fmt.Printf("circle (%.1f, %.1f) r=%.1f at t=%.1f\n\n", cx, cy, radius, at)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "enclosed charge\t%.3g\n", flux.Enclosed)
	fmt.Fprintf(w, "crossings\t%d (%d out, %d in)\n", len(flux.Crossings), out, len(flux.Crossings)-out)
	fmt.Fprintf(w, "net lines\t%d\n", flux.Net)
	fmt.Fprintf(w, "expected\t%.3g\n", flux.Expected)
	return w.Flush()
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("bad point %q, want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("bad point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("bad point %q: %w", s, err)
	}
	return x, y, nil
}

func plotProbe(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if len(series[name]) == 0 {
			continue
		}
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	var name string
	for k := range series {
		if strings.HasPrefix(k, "probe_") {
			name = k
		}
	}
	data := series[name]
	if len(data) < 4 {
		return fmt.Errorf("no probe data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("series: %s\n\n", name)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[1 : len(ps)/2+1]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+name+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.5f\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.2f\n", 1.0/freq)
	}

	crossings := analysis.UpCrossings(times, data, 0)
	if period := analysis.MeanPeriod(crossings); period > 0 {
		fmt.Printf("zero crossings: %d (mean period %.2f)\n", len(crossings), period)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	counter := &diag.Counter{}
	if verbose {
		counter.Next = diagnostics()
	}
	exp, err := setup(cfg, counter)
	if err != nil {
		return err
	}

	return viz.Run(exp.Session(), viz.LiveConfig{
		Name:        cfg.Name,
		Dt:          cfg.Dt,
		Levels:      cfg.Levels,
		Probe:       dynamo.Vec2{X: cfg.Probe.X, Y: cfg.Probe.Y},
		Theme:       theme,
		Diagnostics: counter,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	counter := &diag.Counter{}
	if verbose {
		counter.Next = diagnostics()
	}
	exp, err := setup(cfg, counter)
	if err != nil {
		return err
	}

	steps := stepsPerFrame
	if steps <= 0 {
		steps = 2
	}
	return gui.Run(exp.Session(), gui.Config{
		Title:         "maxwell: " + cfg.Name,
		Width:         int(cfg.Domain.XMax),
		Height:        int(cfg.Domain.YMax),
		Dt:            cfg.Dt,
		StepsPerFrame: steps,
		Levels:        cfg.Levels,
		Diagnostics:   counter,
	})
}

func comparePresets(cmd *cobra.Command, args []string) error {
	sessions := make([]*sim.Session, len(args))
	for i, name := range args {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		exp, err := setup(cfg, diagnostics())
		if err != nil {
			return err
		}
		sessions[i] = exp.Session()
	}

	fmt.Printf("comparing %d presets: dt=%.3f, duration=%.1f\n\n", len(args), dt, duration)

	start := time.Now()
	results, err := sim.NewEnsemble(sessions...).Run(context.Background(), sim.Config{
		Dt:            dt,
		Duration:      duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tENERGY\tDRIFT\tGAUSS\tTRAVEL")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.2e\t%.2e\t%.3f\n",
			args[i],
			r.StepsTaken,
			r.Metrics["field_energy"],
			r.Metrics["energy_drift"],
			r.Metrics["gauss_residual"],
			r.Metrics["charge_travel"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal time: %v\n", elapsed)
	return nil
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if chargeIdx < 0 || chargeIdx >= len(cfg.Charges) {
		return fmt.Errorf("charge index %d out of range (0-%d)", chargeIdx, len(cfg.Charges)-1)
	}

	exp, err := setup(cfg, diagnostics())
	if err != nil {
		return err
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	points := analysis.ChargeTrajectory(result.Charges, chargeIdx)

	fmt.Printf("trajectory of charge %d in %s (%d frames)\n\n", chargeIdx, cfg.Name, len(points))
	fmt.Println(analysis.PointsToASCII(points, 60, 24))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	contours, err := st.LoadContours(runID)
	if err != nil {
		return err
	}

	cfg := &config.Config{Name: meta.Name, Dt: meta.Dt, Duration: meta.Duration}
	result := &sim.Result{
		Times:      times,
		Charges:    [][]dynamo.Charge{meta.Charges},
		Metrics:    meta.Metrics,
		Series:     series,
		StepsTaken: meta.Frames - 1,
	}

	return export.ExportJSON(jsonOut, export.NewExportData(cfg, result, contours))
}

func parseSweepParams(args []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, nil, fmt.Errorf("bad --param %q, want name=v1,v2", arg)
		}
		var vals []float64
		for _, tok := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in --param %s: %w", name, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	names, ranges, err := parseSweepParams(sweepParams)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to sweep, pass at least one --param")
	}

	fmt.Printf("sweeping %s over %v, minimising %s\n\n", cfg.Name, names, metricName)

	g := optim.NewGridSearch(names, ranges)
	best, val, points, err := g.Search(context.Background(), optim.ConfigBuilder(cfg, diagnostics()), metricName)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName))
	for _, p := range points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", p.Params[n])
		}
		if p.Err != nil {
			fmt.Fprintf(w, "error: %v\n", p.Err)
		} else {
			fmt.Fprintf(w, "%.6g\n", p.Value)
		}
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest: %v (%s=%.6g)\n", best, metricName, val)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	r := &automation.Runner{Diagnostics: diagnostics(), Store: st, Out: os.Stdout}
	results, err := r.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d runs complete\n", len(results))
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	r := &automation.Runner{Diagnostics: diagnostics(), Out: os.Stdout}
	results, err := r.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := 0.0
	for _, res := range results {
		worst = max(worst, res.Drift)
	}

	fmt.Printf("\n%s: %d stable, %d unstable\n", cfg.Name, stable, unstable)
	fmt.Printf("worst energy drift: %.4g\n", worst)
	return nil
}
