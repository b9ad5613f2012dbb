package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entropylost/fracture2d/internal/analysis"
	"github.com/entropylost/fracture2d/internal/config"
	"github.com/entropylost/fracture2d/internal/experiment"
	"github.com/entropylost/fracture2d/internal/export"
	"github.com/entropylost/fracture2d/internal/gui"
	"github.com/entropylost/fracture2d/internal/optim"
	"github.com/entropylost/fracture2d/internal/sim"
	"github.com/entropylost/fracture2d/internal/storage"
	"github.com/entropylost/fracture2d/internal/viz"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	sceneName  string
	frames     int
	fps        float64
	substeps   int
	stiffness  float64
	strength   float64
	sound      bool
	// SVG output paths
	svgPath string // run --svg, empty means skip
	svgOut  string // svg command output file
	// Sweep ranges, comma separated
	strengths   string
	stiffnesses string
	// Bench frame count, kept short so all batch sizes finish quickly
	benchFrames int
)

// main registers the command tree; without a subcommand the GUI opens on the
// default scene.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fracture2d",
		Short: "bonded particle fracture sandbox",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.DefaultConfig()
			exp, err := experiment.New(cfg)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				os.Exit(1)
			}
			gui.Run(exp, cfg.Sound)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fracture2d", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and record the results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "also write the final frame to this svg file")

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run a scene in the windowed renderer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)
	guiCmd.Flags().BoolVar(&sound, "sound", false, "crack sonification")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene in the terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the time series of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "acoustic emission analysis of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [scene]",
		Short: "run a scene headless and render the final frame to svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	addConfigFlags(svgCmd)
	svgCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	svgCmd.Flags().StringVar(&svgOut, "out", "fracture.svg", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark sub-step throughput across batch sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 60, "frames per timed run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search material parameters for least damage",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per configuration")
	sweepCmd.Flags().StringVar(&strengths, "strengths", "0.01,0.07,0.2", "strength factors to try")
	sweepCmd.Flags().StringVar(&stiffnesses, "stiffnesses", "", "stiffnesses to try (optional)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			fmt.Println("built-in scenes:")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %d blocks, walls=%v\n", name, len(p.Blocks), p.Walls)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, guiCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, svgCmd, benchCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addConfigFlags registers the flags shared by every command that builds a
// scene. Frame counts differ per command and are registered separately.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&sceneName, "scene", "classic", "built-in scene name")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "display frame rate")
	cmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "sub-steps per frame")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "contact and bond stiffness")
	cmd.Flags().Float64Var(&strength, "strength", config.DefaultStrength, "bond strength factor")
}

// loadConfig resolves the effective config for a command: defaults, then the
// --config file, then the positional scene, then explicit flags, highest
// last. Naming a scene drops any inline blocks from the file so the preset
// geometry wins.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Scene = args[0]
		cfg.Blocks = nil
	}
	if cmd.Flags().Changed("scene") {
		cfg.Scene = sceneName
		cfg.Blocks = nil
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Substeps = substeps
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Material.Stiffness = stiffness
	}
	if cmd.Flags().Changed("strength") {
		cfg.Material.StrengthFactor = strength
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound = sound
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	w := exp.Stepper().World()
	fmt.Printf("running scene: %s (%d particles, %d bond records)\n", cfg.Scene, len(w.Particles), w.BondCount())
	fmt.Printf("frames: %d at %g fps, %d sub-steps each (dt=%.3e s)\n",
		cfg.Frames, cfg.FPS, exp.Stepper().Batch(), exp.Stepper().Dt())

	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, exp.Stepper().Dt(), result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("broken bond records: %d of %d\n", w.BrokenBondCount(), w.BondCount())

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if result.Diverged() {
		fmt.Printf("warning: %v\n", result.Errors[0])
	}

	if svgPath != "" {
		if err := export.WriteSVG(svgPath, exp.Stepper().Snapshot(), exp.Scene().Groups, cfg.RenderScale); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	gui.Run(exp, cfg.Sound)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(exp))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tDT\tDAMAGE\tDIVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2e\t%.1f%%\t%v\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Metrics["damage"]*100,
			run.Diverged,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	fmt.Println(asciigraph.Plot(series.Damage,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("damage fraction"),
	))
	fmt.Println()

	broken := make([]float64, len(series.Broken))
	for i, b := range series.Broken {
		broken[i] = float64(b)
	}
	fmt.Println(asciigraph.Plot(broken,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("broken bond records"),
	))
	fmt.Println()

	fmt.Println(asciigraph.Plot(series.Kinetic,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	rate := analysis.BreakRate(series.Broken)
	if len(rate) == 0 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("acoustic emission analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	total := 0.0
	for _, r := range rate {
		total += r
	}
	events := analysis.Events(rate)
	fmt.Printf("breaks: %.0f across %d events\n", total, len(events))
	if len(events) > 0 {
		largest := events[0]
		for _, e := range events[1:] {
			if e.Breaks > largest.Breaks {
				largest = e
			}
		}
		fmt.Printf("largest event: %d breaks over %d frames starting at frame %d\n",
			largest.Breaks, largest.Frames, largest.Start)
	}

	spec := analysis.PowerSpectrum(rate, meta.FPS)
	if len(spec.Power) > 1 {
		fmt.Println()
		// Skip the DC bin so the plot shows the oscillatory content.
		fmt.Println(asciigraph.Plot(spec.Power[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("break rate power spectrum"),
		))
		fmt.Println()

		if f, p := spec.Dominant(); f > 0 {
			fmt.Printf("dominant frequency: %.3f hz (power %.3g)\n", f, p)
			fmt.Printf("period: %.3f s\n", 1.0/f)
		}
	}

	return nil
}

// seriesResult rebuilds a result from a stored run so the exporters serve
// saved data the same way they serve fresh runs.
func seriesResult(meta *storage.RunMetadata, series *storage.Series) *sim.Result {
	return &sim.Result{
		Times:   series.Times,
		Damage:  series.Damage,
		Broken:  series.Broken,
		Kinetic: series.Kinetic,
		Frames:  meta.Frames,
		Metrics: meta.Metrics,
	}
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSVStdout(seriesResult(meta, series))
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Scene = meta.Scene
	cfg.FPS = meta.FPS
	cfg.Substeps = meta.Substeps
	cfg.Frames = meta.Frames
	cfg.Material.Radius = meta.Radius
	cfg.Material.Stiffness = meta.Stiffness
	cfg.Material.StrengthFactor = meta.Strength

	return storage.ExportJSONStdout(cfg, meta.Dt, seriesResult(meta, series))
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running scene: %s for %d frames...\n", cfg.Scene, cfg.Frames)
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	if result.Diverged() {
		fmt.Printf("warning: %v\n", result.Errors[0])
	}

	if err := export.WriteSVG(svgOut, exp.Stepper().Snapshot(), exp.Scene().Groups, cfg.RenderScale); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	fmt.Printf("wrote %s (damage %.1f%%)\n", svgOut, result.FinalDamage()*100)
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.Frames = benchFrames

	fmt.Printf("benchmarking scene: %s, %d frames per batch size\n", cfg.Scene, cfg.Frames)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH\tFRAMES\tSUB-STEPS\tTIME\tSTEPS/SEC")

	for _, batch := range []int{100, 500, 1000} {
		bcfg := *cfg
		bcfg.Substeps = batch

		exp, err := experiment.New(&bcfg)
		if err != nil {
			return err
		}

		start := time.Now()
		if _, err := exp.Run(context.Background()); err != nil {
			return err
		}
		elapsed := time.Since(start)

		steps := exp.Stepper().Step()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
			batch,
			bcfg.Frames,
			steps,
			elapsed.Round(time.Millisecond),
			float64(steps)/elapsed.Seconds(),
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	strengthVals, err := parseFloats(strengths)
	if err != nil {
		return fmt.Errorf("bad --strengths: %w", err)
	}
	names := []string{"strength"}
	ranges := [][]float64{strengthVals}
	if stiffnesses != "" {
		stiffnessVals, err := parseFloats(stiffnesses)
		if err != nil {
			return fmt.Errorf("bad --stiffnesses: %w", err)
		}
		names = append(names, "stiffness")
		ranges = append(ranges, stiffnessVals)
	}

	total := 1
	for _, r := range ranges {
		total *= len(r)
	}
	fmt.Printf("sweeping %d configurations of %s on scene %s...\n",
		total, strings.Join(names, ", "), base.Scene)

	gs := optim.NewGridSearch(names, ranges)
	start := time.Now()
	points, bestParams, best := gs.Search(context.Background(),
		func(params map[string]float64) (*experiment.Experiment, error) {
			cfg := *base // goroutines only read the shared base
			if v, ok := params["strength"]; ok {
				cfg.Material.StrengthFactor = v
			}
			if v, ok := params["stiffness"]; ok {
				cfg.Material.Stiffness = v
			}
			return experiment.New(&cfg)
		}, "damage")
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAMS\tDAMAGE")
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", formatParams(p.Params, names), p.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\n", formatParams(p.Params, names), p.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if bestParams == nil {
		return fmt.Errorf("no configuration evaluated")
	}
	fmt.Printf("\nleast damage %.4f with %s (%v)\n",
		best, formatParams(bestParams, names), elapsed.Round(time.Millisecond))
	return nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func formatParams(params map[string]float64, names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", name, params[name]))
	}
	return strings.Join(parts, " ")
}
