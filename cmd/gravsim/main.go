package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/logging"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/optim"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir     string
	verbosity   int
	configFile  string
	preset      string
	route       string
	numBodies   int
	modelName   string
	gravity     float64
	dt          float64
	softening   float64
	steps       int
	sampleEvery int
	seed        uint64
	noSave      bool
	runs        int
	frameRate   int
	plotBody    int
	renorm      int
	delta       float64
	sweepParams []string
	sweepMetric string
	svgWidth    int
	svgHeight   int
)

// main registers the commands and flags and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "2D gravitational n-body simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run seeded copies of a simulation concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 4, "number of ensemble members")

	watchCmd := &cobra.Command{
		Use:   "watch [scenario]",
		Short: "run simulation with a live diagnostics monitor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchSimulation,
	}
	addSimFlags(watchCmd)
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "ticks per second")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		RunE:  listScenarios,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [scenario]",
		Short: "show scenario metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  describeScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotBody, "body", 0, "body index to plot")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [scenario]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  estimateLyapunov,
	}
	addSimFlags(lyapunovCmd)
	lyapunovCmd.Flags().IntVar(&renorm, "renorm", 10, "ticks between renormalizations")
	lyapunovCmd.Flags().Float64Var(&delta, "delta", 1e-6, "initial perturbation")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimize")

	rootCmd.AddCommand(runCmd, ensembleCmd, watchCmd, lyapunovCmd, sweepCmd, scenariosCmd, describeCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&route, "route", "", `scenario route, e.g. "/solar" or "/N?n=5"`)
	cmd.Flags().IntVar(&numBodies, "bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().StringVar(&modelName, "model", "", "physics model ("+strings.Join(physics.Names(), ", ")+")")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "softening length")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every n-th tick")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
}

func newLogger() logr.Logger {
	return logging.New(os.Stderr, verbosity)
}

// resolveConfig layers defaults, route, preset, config file and flags,
// later sources overriding earlier ones.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if route != "" {
		path, query, _ := strings.Cut(route, "?")
		r := config.ParseRoute(path, query)
		if r.NError != "" {
			return nil, fmt.Errorf("route %q: %s", route, r.NError)
		}
		r.Apply(cfg)
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scenario))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.Scenario = args[0]
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Bodies = numBodies
	}
	if flags.Changed("model") {
		cfg.Model = modelName
	}
	if flags.Changed("g") {
		cfg.G = gravity
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("softening") {
		cfg.Softening = softening
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(cfg, newLogger())
	if err := exp.Setup(); err != nil {
		return err
	}

	fmt.Printf("running %s simulation (%s)...\n", cfg.Scenario, exp.Model().Name())
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.NewRunMetadata(cfg, exp.Model().Name(), exp.Params(), result), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("frames: %d\n", len(result.Frames))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := experiment.RunEnsemble(ctx, cfg, runs, newLogger())
	if err != nil {
		return err
	}
	fmt.Printf("%d members completed in %v\n\n", len(results), time.Since(start))

	names := make([]string, 0)
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\tSTEPS\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d", cfg.Seed+uint64(i), r.StepsTaken)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func estimateLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, newLogger())
	if err := exp.Setup(); err != nil {
		return err
	}

	lc := analysis.DefaultLyapunovConfig()
	lc.Dt = cfg.Dt
	lc.Steps = cfg.Steps
	lc.Seed = cfg.Seed
	lc.RenormEvery = renorm
	lc.Perturbation = delta

	s := exp.Simulation()
	lambda, err := analysis.LyapunovExponent(s.Bodies(), s.Model(), s.Options(), lc)
	if err != nil {
		return err
	}

	verdict := "regular"
	if lambda > 0 {
		verdict = "chaotic"
	}
	fmt.Printf("scenario: %s (%s)\n", cfg.Scenario, exp.Model().Name())
	fmt.Printf("lambda:   %.6g (%s)\n", lambda, verdict)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required (one of %s)", strings.Join(optim.Parameters, ", "))
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, arg := range sweepParams {
		name, list, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q: want name=v1,v2", arg)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("invalid value in --param %q: %w", arg, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gs := optim.NewGridSearch(names, ranges)
	best, value, err := gs.Search(ctx, optim.Builder(cfg, logr.Discard()), sweepMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6g\n", sweepMetric, value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	frames, _, err := store.LoadFrames(args[0])
	if err != nil {
		return err
	}
	trails := physics.Get(string(meta.Model)).ShowsTrails()
	return export.FramesToSVG(os.Stdout, frames, svgWidth, svgHeight, trails)
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	// The monitor owns the clock; log lines would tear the TUI.
	exp := experiment.New(cfg, logr.Discard())
	if err := exp.Setup(); err != nil {
		return err
	}

	fps := frameRate
	if fps <= 0 {
		fps = 30
	}

	def, err := scenario.Default.Lookup(cfg.Scenario)
	if err != nil {
		return err
	}

	m := viz.NewMonitor(exp.Simulation(), def.Description, cfg.Dt, time.Second/time.Duration(fps))
	return viz.Run(m)
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tMODEL\tN\tDESCRIPTION")

	for _, key := range scenario.Default.Keys() {
		meta, err := scenario.GetScenarioMetadata(key)
		if err != nil {
			return err
		}
		model := string(meta.PhysicsModel)
		if model == "" {
			model = "-"
		}
		n := "fixed"
		if meta.RequiresN {
			n = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", meta.Key, model, n, meta.Description)
	}

	return w.Flush()
}

func describeScenario(cmd *cobra.Command, args []string) error {
	meta, err := scenario.GetScenarioMetadata(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", meta.Key)
	fmt.Printf("description: %s\n", meta.Description)
	fmt.Printf("requires n: %v\n", meta.RequiresN)
	if meta.PhysicsModel != "" {
		fmt.Printf("physics model: %s\n", meta.PhysicsModel)
		p := meta.ModelParams
		if p.RelativisticFactor != 0 {
			fmt.Printf("  relativistic factor: %g\n", p.RelativisticFactor)
		}
		if p.QuantumUncertainty != 0 {
			fmt.Printf("  quantum uncertainty: %g\n", p.QuantumUncertainty)
		}
		if p.TunnelingProbability != 0 {
			fmt.Printf("  tunneling probability: %g\n", p.TunnelingProbability)
		}
	}
	fmt.Println("parameters:")
	for _, p := range meta.Parameters {
		fmt.Printf("  %s: default %d, range [%d, %d]\n", p.Name, p.Default, p.Min, p.Max)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tMODEL\tTIME\tBODIES\tSTEPS\tDT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.4f\t%d\n",
			run.ID,
			run.Scenario,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.StepsTaken,
			run.Dt,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}
	if plotBody < 0 || plotBody >= len(frames[0]) {
		return fmt.Errorf("body index %d out of range [0, %d)", plotBody, len(frames[0]))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Model)
	fmt.Printf("samples: %d\n\n", len(frames))

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	energy := make([]float64, len(frames))
	for i, f := range frames {
		xs[i] = f[plotBody].X
		ys[i] = f[plotBody].Y
		energy[i] = metrics.TotalEnergy(f.Bodies(), meta.G, meta.Softening)
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{fmt.Sprintf("body %d x", plotBody), xs},
		{fmt.Sprintf("body %d y", plotBody), ys},
		{"total energy", energy},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}
