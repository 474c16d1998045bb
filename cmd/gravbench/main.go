package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravbench/internal/config"
	"github.com/san-kum/gravbench/internal/engine"
	"github.com/san-kum/gravbench/internal/export"
	"github.com/san-kum/gravbench/internal/storage"
	"github.com/san-kum/gravbench/internal/stream"
	"github.com/san-kum/gravbench/internal/view"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	population int
	seed       int64
	noSave     bool
	listenAddr string
	svgOut     string
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}),
	))

	rootCmd := &cobra.Command{
		Use:   "gravbench",
		Short: "self-adjusting n-body CPU stress benchmark",
		RunE:  runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravbench", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the benchmark with the live TUI",
		RunE:  runTUI,
	}
	addRunFlags(runCmd)

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run the benchmark without a display",
		RunE:  runHeadless,
	}
	addRunFlags(headlessCmd)
	headlessCmd.Flags().StringVar(&listenAddr, "listen", "", "serve live telemetry over websocket on this address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write a run's performance graph as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, headlessCmd, listCmd, plotCmd, exportSVGCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
	cmd.Flags().Float64Var(&duration, "time", 0, "run duration in seconds")
	cmd.Flags().IntVar(&population, "bodies", 0, "initial population")
	cmd.Flags().Int64Var(&seed, "seed", 0, "spawn random seed (0 = time-based)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist results")
}

// resolveParams layers preset, config file, and flags, in that order.
func resolveParams(cmd *cobra.Command) (engine.Params, error) {
	params := engine.DefaultParams()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return params, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		params = p
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return params, fmt.Errorf("failed to load config: %w", err)
		}
		params = cfg.Params
		if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
			dataDir = cfg.DataDir
		}
	}

	if cmd.Flags().Changed("time") {
		params.DurationSec = duration
	}
	if cmd.Flags().Changed("bodies") {
		params.InitialPopulation = population
	}
	if cmd.Flags().Changed("seed") {
		params.Seed = seed
	}

	return params, params.Validate()
}

func runTUI(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	m := view.NewModel(params, true)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	results := m.Bench().Results()
	if results == nil {
		return nil
	}
	printResults(results)
	if !noSave {
		return saveResults(params, results)
	}
	return nil
}

// headlessSurface satisfies the engine's readiness guard without a display.
type headlessSurface struct{}

func (headlessSurface) Ready() bool       { return true }
func (headlessSurface) Size() (int, int)  { return 160, 96 }
func (headlessSurface) Draw(engine.Frame) {}

// sampleLogger logs each telemetry sample as it lands.
type sampleLogger struct{}

func (sampleLogger) OnSample(s engine.Sample) {
	slog.Info("sample",
		"elapsed", fmt.Sprintf("%.1fs", s.Elapsed),
		"fps", fmt.Sprintf("%.1f", s.FPS),
		"bodies", s.Population,
	)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bench := engine.New(params, headlessSurface{})
	bench.AddObserver(sampleLogger{})

	var srv *http.Server
	if listenAddr != "" {
		hub := stream.NewHub(slog.Default())
		defer hub.Close()
		bench.AddObserver(hub)

		mux := http.NewServeMux()
		mux.Handle("/telemetry", hub)
		srv = &http.Server{Addr: listenAddr, Handler: mux}
		go func() {
			slog.Info("telemetry stream listening", "addr", listenAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("telemetry server failed", "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	if err := bench.Start(); err != nil {
		return err
	}
	slog.Info("benchmark started",
		"duration", fmt.Sprintf("%.0fs", params.DurationSec),
		"bodies", params.InitialPopulation,
	)

	start := time.Now()
	for bench.State() == engine.StateRunning {
		select {
		case <-ctx.Done():
			slog.Warn("interrupted, finishing early")
			bench.Cancel()
		default:
			bench.Tick()
		}
	}
	slog.Info("benchmark finished", "wall", time.Since(start).Round(time.Millisecond))

	results := bench.Results()
	printResults(results)
	if !noSave {
		return saveResults(params, results)
	}
	return nil
}

func printResults(r *engine.Results) {
	fmt.Printf("\nscore: %d\n", r.Score)
	fmt.Printf("peak population: %d\n", r.PeakPopulation)
	fmt.Printf("average fps: %.1f\n", r.AverageFPS)
	fmt.Printf("interactions: %d\n", r.Interactions)
	fmt.Printf("samples: %d\n", len(r.History))
}

func saveResults(params engine.Params, results *engine.Results) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(params, results)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
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
	fmt.Fprintln(w, "ID\tTIME\tSCORE\tPEAK\tAVG FPS\tINTERACTIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Score,
			run.PeakPopulation,
			run.AverageFPS,
			run.Interactions,
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
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	fmt.Printf("run: %s  score: %d\n\n", meta.ID, meta.Score)

	fps := make([]float64, len(samples))
	pop := make([]float64, len(samples))
	for i, s := range samples {
		fps[i] = s.FPS
		pop[i] = float64(s.Population)
	}

	fmt.Println(asciigraph.Plot(fps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("fps"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(pop,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	svg := export.HistoryToSVG(samples, 640, 320)
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to chart", args[0])
	}

	out := svgOut
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return st.ExportJSON(args[0], enc)
}
