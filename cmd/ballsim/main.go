package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/automation"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/experiment"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/observability"
	"github.com/san-kum/ballsim/internal/optim"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/render"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	frameRate  int
	ticks      int
	every      int
	save       bool
	outFile    string
	trail      bool
	trailEvery int
	theme      string
	// sweep
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
	// tune
	dampings     []float64
	restitutions []float64
	stiffnesses  []float64
	metricName   string
	// ensemble
	numRuns   int
	seedStart int64
	// presets
	dumpPreset string
)

// main registers commands and flags and opens the window when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ballsim",
		Short:         "bouncing balls with a color menu",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindEnv(cmd.Root())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".ballsim", "data directory for stored runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	pf.IntVar(&frameRate, "fps", 0, "frame rate, overrides config")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the terminal interface",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate")
	runCmd.Flags().IntVar(&every, "every", 10, "record a frame every n ticks")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and write the final frame as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "frame.svg", "output file")
	snapshotCmd.Flags().BoolVar(&trail, "trail", false, "draw each ball's path")
	snapshotCmd.Flags().IntVar(&trailEvery, "every", 5, "trail sample interval in ticks")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "replay a YAML input script headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physics parameter and compare metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&paramName, "param", "damping", "parameter: restitution, stiffness or damping")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks per run")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters for the lowest metric",
		RunE:  runTune,
	}
	tuneCmd.Flags().Float64SliceVar(&dampings, "damping", []float64{0.8, 0.9, 1.0}, "damping values")
	tuneCmd.Flags().Float64SliceVar(&restitutions, "restitution", []float64{0.8, 0.9, 1.0}, "restitution values")
	tuneCmd.Flags().Float64SliceVar(&stiffnesses, "stiffness", nil, "stiffness values")
	tuneCmd.Flags().StringVar(&metricName, "metric", "overlaps", "metric to minimize")
	tuneCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks per run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run a generated scene over several seeds in parallel",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of seeds")
	ensembleCmd.Flags().Int64Var(&seedStart, "seed", 1, "first seed")
	ensembleCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks per run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets, or dump one as YAML",
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&dumpPreset, "dump", "", "print this preset as a config file")

	rootCmd.AddCommand(tuiCmd, runCmd, snapshotCmd, scriptCmd, sweepCmd, tuneCmd, ensembleCmd, presetsCmd)
	rootCmd.AddCommand(storedRunCommands()...)
	rootCmd.AddCommand(watchCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// bindEnv lets BALLSIM_* variables stand in for persistent flags that were
// not given on the command line, e.g. BALLSIM_LOG_LEVEL=debug.
func bindEnv(root *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("ballsim")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(root.PersistentFlags()); err != nil {
		return err
	}
	dataDir = v.GetString("data")
	configFile = v.GetString("config")
	preset = v.GetString("preset")
	logLevel = v.GetString("log-level")
	logFile = v.GetString("log-file")
	frameRate = v.GetInt("fps")
	return nil
}

// loadConfig resolves --preset then --config, the file winning, and applies
// flag overrides. The returned name labels runs and windows.
func loadConfig() (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "billiards"
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, "", fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg, name = p, preset
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg, name = c, strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	if frameRate > 0 {
		cfg.FPS = frameRate
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func setup() (*config.Config, string, *zap.Logger, error) {
	cfg, name, err := loadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, name, observability.NewConsoleLogger(cfg.Log), nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, name, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := sim.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	return gui.Run(s, gui.Options{FPS: cfg.FPS, Title: "ballsim :: " + name, Logger: log})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}
	// Console output would draw over the screen.
	log := observability.NewLogger(cfg.Log, observability.Options{})
	defer log.Sync()

	opts := viz.Options{FPS: cfg.FPS, Theme: theme, Logger: log}
	if preset == "" && configFile == "" {
		return viz.Run(viz.NewApp(opts))
	}
	s, err := sim.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(s, name, opts))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	exp := experiment.New(experiment.Config{Name: name, Ticks: ticks, Every: every, Sim: cfg}, log)
	if err := exp.Setup(); err != nil {
		return err
	}
	run, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d balls, %d ticks\n\n", name, len(run.Frames[0].Balls), run.Ticks)
	if err := printMetrics(run.Metrics); err != nil {
		return err
	}
	if len(run.Frames) > 1 {
		energy := make([]float64, len(run.Frames))
		for i, fr := range run.Frames {
			energy[i] = physics.KineticEnergy(fr.Balls)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("kinetic energy")))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(run)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", id)
	}
	return nil
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", k, m[k])
	}
	return w.Flush()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, _, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := sim.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	paths := export.NewPathRecorder(trailEvery)
	if trail {
		s.AddObserver(paths)
	}
	if err := s.Advance(ticks); err != nil {
		return err
	}

	if trail {
		doc := export.TrajectoryToSVG(paths.Paths, s.Balls(), s.Bounds())
		if err := os.WriteFile(outFile, []byte(doc), 0644); err != nil {
			return err
		}
	} else {
		svg := export.NewSVG(s.Bounds())
		render.Frame(svg, s.Balls())
		if err := svg.WriteFile(outFile); err != nil {
			return err
		}
	}
	log.Info("snapshot written", zap.String("path", outFile), zap.Int("tick", s.Tick()))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}
	if preset == "" && configFile == "" && script.Preset != "" {
		preset = script.Preset
	}
	cfg, _, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := sim.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	res, err := automation.RunScript(cmd.Context(), script, s, log)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d ticks\n\n", script.Name, res.Ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALL\tX\tY\tVX\tVY\tRADIUS\tCOLOR")
	for i, b := range res.Balls {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.3f\t%.3f\t%.1f\t%s\n", i, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Radius, b.Color)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	return printMetrics(res.Metrics)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
		Ticks:     ticks,
	}, cfg)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := make([]string, 0, len(results[0].Metrics))
	for k := range results[0].Metrics {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(paramName), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		row := make([]string, 0, len(names)+1)
		row = append(row, fmt.Sprintf("%.4f", r.ParamValue))
		for _, k := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[k]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, name, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	var params []string
	var ranges [][]float64
	for _, p := range []struct {
		name   string
		values []float64
	}{{"damping", dampings}, {"restitution", restitutions}, {"stiffness", stiffnesses}} {
		if len(p.values) > 0 {
			params = append(params, p.name)
			ranges = append(ranges, p.values)
		}
	}

	best, val, err := optim.NewGridSearch(params, ranges).Search(
		cmd.Context(), optim.TuningExperiments(cfg, name, ticks, log), metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.4f\n", metricName, val)
	for _, p := range params {
		fmt.Printf("  %-12s %.4f\n", p, best[p])
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, name, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	if cfg.Scene.Count == 0 {
		log.Warn("config has no generated scene, every seed gives the same run")
	}

	runs, err := experiment.NewEnsemble(experiment.Config{Name: name, Ticks: ticks, Sim: cfg}, numRuns, seedStart, log).Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tBALLS\tENERGY\tOVERLAPS\tCONTAINMENT\tMAX SPEED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.Name, len(r.Frames[0].Balls),
			r.Metrics["energy"], r.Metrics["overlaps"], r.Metrics["containment"], r.Metrics["max_speed"])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	if dumpPreset != "" {
		cfg, err := config.GetPreset(dumpPreset)
		if err != nil {
			return err
		}
		return config.Encode(os.Stdout, cfg)
	}
	fmt.Println("presets:")
	for _, p := range config.ListPresets() {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
