package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/export"
	"github.com/san-kum/isocontour/internal/grid"
	"github.com/san-kum/isocontour/internal/metrics"
	"github.com/san-kum/isocontour/internal/sim"
	"github.com/san-kum/isocontour/internal/storage"
	"github.com/san-kum/isocontour/internal/viz"
)

var (
	dataDir   string
	logFormat string
	logLevel  string
	logFile   string

	configFile  string
	source      string
	width       float64
	height      float64
	resolution  int
	isolevel    float64
	interpolate bool
	dt          float64
	steps       int
	seed        int64
	minDistance float64
	workers     int
	noiseMode   string
	noiseRes    int
	featureSize float64

	streamFile  string
	theme       string
	outFile     string
	showLattice bool
	svgScale    float64
	framesOnly  bool
	benchSteps  int
	benchRuns   int

	logger  *slog.Logger
	logSink *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isocontour",
		Short: "scalar field isocontour lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logSink != nil {
				logSink.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := tea.NewProgram(viz.NewPicker(logger)).Run()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isocontour", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd.Flags())
	runCmd.Flags().StringVar(&streamFile, "stream", "", "stream per-frame stats to this CSV file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd.Flags())
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot segment count and contour length over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&outFile, "output", "o", "", "also write the length series as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the final contour as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&showLattice, "lattice", false, "draw lattice nodes (replays the run)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 1, "domain units per SVG unit")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the final contour (or frame stats) to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&framesOnly, "frames", false, "export per-frame stats instead of the contour")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [source]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark sampling and marching across resolutions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 100, "steps per measurement")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 0, "also run this many seeds concurrently")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&source, "source", config.SourceParticles, "field source (particles, analytic, noise, simplex)")
	fs.Float64Var(&width, "width", config.DefaultWidth, "domain width")
	fs.Float64Var(&height, "height", config.DefaultHeight, "domain height")
	fs.IntVar(&resolution, "resolution", config.DefaultResolution, "grid resolution")
	fs.Float64Var(&isolevel, "isolevel", config.DefaultIsolevel, "contour threshold")
	fs.BoolVar(&interpolate, "interp", true, "interpolate edge crossings")
	fs.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	fs.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	fs.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	fs.Float64Var(&minDistance, "min-distance", config.DefaultMinDistance, "particle distance floor")
	fs.IntVar(&workers, "workers", 0, "sampling workers (0 = all CPUs)")
	fs.StringVar(&noiseMode, "noise-mode", "sphere", "gradient mode (sphere, palette)")
	fs.IntVar(&noiseRes, "noise-res", config.DefaultNoiseRes, "gradient lattice resolution")
	fs.Float64Var(&featureSize, "feature-size", config.DefaultFeatureSize, "simplex feature size")
}

// resolveConfig starts from the default config, the named preset or the
// config file, then applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		p := config.FindPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (see 'isocontour presets')", args[0])
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("source") {
		cfg.Source = source
	}
	if fs.Changed("width") {
		cfg.Width = width
	}
	if fs.Changed("height") {
		cfg.Height = height
	}
	if fs.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if fs.Changed("isolevel") {
		cfg.Isolevel = isolevel
	}
	if fs.Changed("interp") {
		cfg.Interpolate = interpolate
	}
	if fs.Changed("dt") {
		cfg.Dt = dt
	}
	if fs.Changed("steps") {
		cfg.Steps = steps
	}
	if fs.Changed("seed") {
		cfg.Seed = seed
	}
	if fs.Changed("min-distance") {
		cfg.MinDistance = minDistance
	}
	if fs.Changed("workers") {
		cfg.Workers = workers
	}
	if fs.Changed("noise-mode") {
		cfg.Noise.Mode = noiseMode
	}
	if fs.Changed("noise-res") {
		cfg.Noise.Resolution = noiseRes
	}
	if fs.Changed("feature-size") {
		cfg.Simplex.FeatureSize = featureSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
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

	opts := []sim.Option{sim.WithLogger(logger)}
	for _, m := range metrics.Default() {
		opts = append(opts, sim.WithMetric(m))
	}

	var frameLog *storage.FrameLog
	if streamFile != "" {
		f, err := os.Create(streamFile)
		if err != nil {
			return err
		}
		defer f.Close()
		frameLog = storage.NewFrameLog(f)
		opts = append(opts, sim.WithObserver(frameLog))
	}

	s, err := sim.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation...\n", cfg.Source)
	start := time.Now()

	result, runErr := s.Run(ctx, cfg.Steps)
	if runErr != nil && !errors.Is(runErr, sim.ErrStopped) {
		return runErr
	}
	elapsed := time.Since(start)

	if frameLog != nil && frameLog.Err() != nil {
		logger.Warn("frame stream incomplete", "file", streamFile, "err", frameLog.Err())
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("segments: %d\n", len(result.Contour)/2)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	m, err := viz.NewModel(cfg, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tRES\tISO\tSTEPS\tSEGMENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%d\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Resolution,
			run.Isolevel,
			run.Steps,
			run.Segments,
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

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("frames: %d\n\n", len(frames))

	times := make([]float64, len(frames))
	segments := make([]float64, len(frames))
	lengths := make([]float64, len(frames))
	for i, f := range frames {
		times[i] = f.Time
		segments[i] = float64(f.Segments)
		lengths[i] = f.Length
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"segments vs time", segments},
		{"contour length vs time", lengths},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if outFile != "" {
		svg := export.SeriesToSVG(times, lengths, 800, 300, "#00ffff")
		return os.WriteFile(outFile, []byte(svg), 0644)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return writeIndentedJSON(os.Stdout, meta)
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadContour(runID)
	if err != nil {
		return err
	}

	var g *grid.Grid
	if showLattice {
		// every source is deterministic for a given config, so replaying
		// reproduces the stored final samples
		s, err := sim.New(cfg, sim.WithLogger(logger))
		if err != nil {
			return err
		}
		for i := 0; i < meta.Steps; i++ {
			s.Step()
		}
		g = s.Grid()
	} else {
		g, err = grid.New(cfg.Width, cfg.Height, cfg.Resolution, nil)
		if err != nil {
			return err
		}
	}

	opt := export.DefaultSVGOptions()
	opt.Scale = svgScale
	opt.ShowLattice = showLattice
	opt.Isolevel = cfg.Isolevel
	svg := export.ContourToSVG(g, storage.Points(records), opt)

	if outFile == "" {
		_, err := fmt.Fprintln(os.Stdout, svg)
		return err
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if framesOnly {
		frames, err := st.LoadFrames(runID)
		if err != nil {
			return err
		}
		return export.WriteFramesCSV(os.Stdout, statsFromRecords(frames))
	}

	records, err := st.LoadContour(runID)
	if err != nil {
		return err
	}
	return export.WriteContourCSV(os.Stdout, storage.Points(records))
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadContour(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Frames:     statsFromRecords(frames),
		Contour:    storage.Points(records),
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	return export.WriteJSON(os.Stdout, cfg, result)
}

func statsFromRecords(records []storage.FrameRecord) []sim.Stats {
	out := make([]sim.Stats, len(records))
	for i, r := range records {
		out[i] = sim.Stats{Step: r.Step, Time: r.Time, Segments: r.Segments, Length: r.Length, Energy: r.Energy}
	}
	return out
}

func listPresets(cmd *cobra.Command, args []string) error {
	sources := config.Sources()
	if len(args) > 0 {
		sources = []string{args[0]}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSOURCE\tRES\tISO\tSTEPS")
	found := false
	for _, src := range sources {
		for _, name := range config.ListPresets(src) {
			cfg := config.GetPreset(src, name)
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\n", name, src, cfg.Resolution, cfg.Isolevel, cfg.Steps)
			found = true
		}
	}
	if !found {
		fmt.Printf("no presets for source: %s\n", strings.Join(sources, ", "))
		return nil
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	names := []string{"metaballs", "waves", "perlin", "simplex"}
	if len(args) > 0 {
		names = args[:1]
	}
	resolutions := []int{50, 100, 200, 400}

	ctx := context.Background()

	fmt.Printf("benchmarking %d steps\n\n", benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tRES\tSTEPS\tTIME\tSTEPS/SEC\tSEGMENTS")

	for _, name := range names {
		base := config.FindPreset(name)
		if base == nil {
			return fmt.Errorf("unknown preset: %s", name)
		}
		for _, res := range resolutions {
			cfg := base.Clone()
			cfg.Resolution = res

			s, err := sim.New(cfg, sim.WithLogger(logger))
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(ctx, benchSteps)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%d\n",
				name, res, result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds(), len(result.Contour)/2)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if benchRuns <= 0 {
		return nil
	}

	base := config.FindPreset(names[0])
	fmt.Printf("\nensemble: %d seeds of %s\n\n", benchRuns, names[0])

	start := time.Now()
	results, err := sim.NewEnsemble(base, benchRuns, base.Seed, sim.WithLogger(logger)).Run(ctx, benchSteps)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSEGMENTS\tLENGTH")
	for i, r := range results {
		last := r.Frames[len(r.Frames)-1]
		fmt.Fprintf(w, "%d\t%d\t%.1f\n", base.Seed+int64(i), last.Segments, last.Length)
	}
	fmt.Fprintf(w, "total\t%v\t\n", elapsed)
	return w.Flush()
}
