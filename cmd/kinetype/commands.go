package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinetype/internal/audio"
	"github.com/san-kum/kinetype/internal/config"
	"github.com/san-kum/kinetype/internal/ensemble"
	"github.com/san-kum/kinetype/internal/export"
	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/metrics"
	"github.com/san-kum/kinetype/internal/script"
	"github.com/san-kum/kinetype/internal/session"
	"github.com/san-kum/kinetype/internal/storage"
	"github.com/san-kum/kinetype/internal/viz"
)

// defaultScript lets the name enter, throws it once and waits for it to land.
const defaultScript = `
show
wait 120
scatter
`

// loadConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("font-regular") {
		cfg.Fonts.Regular = fontRegular
	}
	if flags.Changed("font-bold") {
		cfg.Fonts.Emphasized = fontBold
	}
	if flags.Lookup("ticks") != nil && flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("audio") != nil && flags.Changed("audio") {
		cfg.Audio.Enabled = audioOn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config, logger *log.Logger) (*session.Session, error) {
	measurer, err := layout.NewFontMeasurer(cfg.Fonts.Regular, cfg.Fonts.Emphasized)
	if err != nil {
		return nil, err
	}
	return session.New(cfg.Session(), measurer, session.WithLogger(logger))
}

func loadScript() (*script.Script, error) {
	if scriptFile == "" {
		return script.ParseString(defaultScript)
	}
	return script.ParseFile(scriptFile)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript()
	if err != nil {
		return err
	}

	logger := log.Default()
	sess, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Resize(cfg.Viewport.Width, cfg.Viewport.Height); err != nil {
		return err
	}

	set := metrics.Default()
	sess.AddObserver(set)

	var rec *storage.Recorder
	if save {
		rec, err = storage.NewRecorder(cfg.Stride)
		if err != nil {
			return err
		}
		sess.AddObserver(rec)
	}

	n := max(cfg.Ticks, sc.Ticks()+1)
	player := script.NewPlayer(sc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d ticks at %gx%g...\n", n, cfg.Viewport.Width, cfg.Viewport.Height)
	start := time.Now()

	done := 0
	for ; done < n; done++ {
		if ctx.Err() != nil {
			logger.Warn("interrupted", "tick", done)
			break
		}
		if err := player.Advance(sess); err != nil {
			return err
		}
		if _, err := sess.Tick(); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("ticks: %d\n", done)

	values := set.Values()
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(values) {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}

	if rec != nil {
		st := storage.New(dataDir, storage.WithLogger(logger))
		runID, err := st.Save(storage.RunMetadata{
			Text:    cfg.Name.First + " " + cfg.Name.Last,
			Preset:  preset,
			Script:  sc.String(),
			Seed:    cfg.Seed,
			Metrics: values,
		}, rec)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

// liveLogger keeps log output off the terminal the live view draws on.
func liveLogger() (*log.Logger, func(), error) {
	if log.GetLevel() > log.DebugLevel {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(filepath.Join(dataDir, "live.log"))
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{Level: log.DebugLevel, ReportTimestamp: true})
	return logger, func() { f.Close() }, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := liveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []viz.Option{viz.WithTheme(cfg.Theme)}
	if scriptFile != "" {
		sc, err := script.ParseFile(scriptFile)
		if err != nil {
			return err
		}
		opts = append(opts, viz.WithPlayer(script.NewPlayer(sc)))
	}

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(cfg.Audio.Volume)
		if err := sound.Initialize(); err != nil {
			log.Warn("audio unavailable", "err", err)
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	build := func(c *config.Config) (*session.Session, error) {
		sess, err := newSession(c, logger)
		if err != nil {
			return nil, err
		}
		if sound != nil {
			sess.AddObserver(sound)
		}
		return sess, nil
	}

	if pick {
		names := config.ListPresets()
		presets := make([]viz.Preset, len(names))
		for i, name := range names {
			presets[i] = viz.Preset{Name: name, Description: config.Describe(name)}
		}
		return viz.RunInteractive(presets, func(name string) (*session.Session, error) {
			return build(config.GetPreset(name))
		}, opts...)
	}

	sess, err := build(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()
	return viz.Run(sess, append(opts, viz.WithTitle(cfg.Name.First+" "+cfg.Name.Last))...)
}

func printLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	measurer, err := layout.NewFontMeasurer(cfg.Fonts.Regular, cfg.Fonts.Emphasized)
	if err != nil {
		return err
	}

	nl := layout.Compute(cfg.Viewport.Width, cfg.Viewport.Height, cfg.Name, measurer)
	fmt.Printf("viewport: %gx%g\n", cfg.Viewport.Width, cfg.Viewport.Height)
	fmt.Printf("font size: %.2f\n", nl.FontSize)
	fmt.Printf("stacked: %v\n\n", nl.Stacked)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tCHAR\tWEIGHT\tX\tY\tWIDTH")
	for i, l := range nl.Letters {
		fmt.Fprintf(w, "%d\t%c\t%s\t%.2f\t%.2f\t%.2f\n", i, l.Char, l.Weight, l.X, nl.HomeY(i), l.Width)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, storage.WithLogger(log.Default()))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEXT\tTIME\tTICKS\tVIEWPORT\tPRESET\tIMPACTS")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gx%g\t%s\t%d\n",
			run.ID,
			run.Text,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Width, run.Height,
			p,
			run.ImpactCount,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, storage.WithLogger(log.Default()))
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	track, err := st.LoadTrack(runID, letterIdx)
	if err != nil {
		return err
	}
	if len(track) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("letter: %d (%s)\n", letterIdx, track[0].Char)
	fmt.Printf("samples: %d\n\n", len(track))

	series := []struct {
		caption string
		value   func(storage.TrackRow) float64
	}{
		// screen y grows downward; plot height above the ground instead
		{"height above ground", func(r storage.TrackRow) float64 { return meta.Height - session.GroundOffset - r.Y }},
		{"x position", func(r storage.TrackRow) float64 { return r.X }},
		{"restlessness", func(r storage.TrackRow) float64 { return r.Restlessness }},
	}

	for _, s := range series {
		data := make([]float64, len(track))
		for i, r := range track {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgOut != "" {
		svg := export.TrackToSVG(track, meta.Width, meta.Height, "#00cccc")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n\n", svgOut)
	}

	impacts, err := st.LoadImpacts(runID)
	if err != nil {
		return err
	}
	if len(impacts) > 1 {
		data := make([]float64, len(impacts))
		for i, im := range impacts {
			data[i] = im.Intensity
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("impact intensity"),
		))
	}
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript()
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, log.Default())
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Resize(cfg.Viewport.Width, cfg.Viewport.Height); err != nil {
		return err
	}

	player := script.NewPlayer(sc)
	n := max(cfg.Ticks, sc.Ticks()+1)
	for i := 0; i < n; i++ {
		if err := player.Advance(sess); err != nil {
			return err
		}
		if _, err := sess.Tick(); err != nil {
			return err
		}
	}

	svg := export.SnapshotToSVG(sess.Snapshot(), viz.GetTheme(cfg.Theme))
	if err := os.WriteFile(snapOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d to %s\n", n, snapOut)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript()
	if err != nil {
		return err
	}
	measurer, err := layout.NewFontMeasurer(cfg.Fonts.Regular, cfg.Fonts.Emphasized)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d seeds from %d...\n", runs, cfg.Seed)
	start := time.Now()

	results, err := ensemble.Run(ctx, ensemble.Config{
		Session:   cfg.Session(),
		Width:     cfg.Viewport.Width,
		Height:    cfg.Viewport.Height,
		Ticks:     cfg.Ticks,
		Script:    sc,
		Runs:      runs,
		SeedStart: cfg.Seed,
		Workers:   workers,
	}, measurer)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start).Round(time.Millisecond))

	summary := ensemble.Summarize(results)
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range names {
		s := summary[name]
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", name, s.Mean, s.Min, s.Max)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, storage.WithLogger(log.Default()))

	if outFile == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := st.ExportJSON(f, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %s to %s\n", args[0], outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Describe(name))
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	measurer, err := layout.NewFontMeasurer(cfg.Fonts.Regular, cfg.Fonts.Emphasized)
	if err != nil {
		return err
	}

	viewports := [][2]float64{{390, 844}, {800, 600}, {1280, 720}, {1920, 1080}}

	fmt.Printf("benchmarking %d ticks per viewport\n\n", benchN)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tSTACKED\tTICKS\tTIME\tTICKS/SEC")

	for _, vp := range viewports {
		sess, err := session.New(cfg.Session(), measurer)
		if err != nil {
			return err
		}
		if err := sess.Resize(vp[0], vp[1]); err != nil {
			return err
		}
		player := script.NewPlayer(mustScript("show\nwait 120\nscatter\nwait 300\nscatter"))

		start := time.Now()
		for i := 0; i < benchN; i++ {
			if err := player.Advance(sess); err != nil {
				return err
			}
			if _, err := sess.Tick(); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		stacked := sess.Layout().Stacked
		sess.Close()

		fmt.Fprintf(w, "%gx%g\t%v\t%d\t%v\t%.0f\n",
			vp[0], vp[1],
			stacked,
			benchN,
			elapsed.Round(time.Microsecond),
			float64(benchN)/elapsed.Seconds(),
		)
	}

	return w.Flush()
}

func mustScript(src string) *script.Script {
	sc, err := script.ParseString(src)
	if err != nil {
		panic(err)
	}
	return sc
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
