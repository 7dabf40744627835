package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	logLevel    string
	width       float64
	height      float64
	seed        int64
	fontRegular string
	fontBold    string

	ticks      int
	scriptFile string
	save       bool

	theme   string
	audioOn bool
	pick    bool

	letterIdx int
	outFile   string
	svgOut    string
	snapOut   string
	benchN    int

	runs    int
	workers int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// newRootCmd registers the kinetype commands. The root runs the live view
// when no subcommand is given. Errors are left to the caller to log.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kinetype",
		Short:         "kinetic typography in the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".kinetype", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.Float64Var(&width, "width", 0, "viewport width")
	pf.Float64Var(&height, "height", 0, "viewport height")
	pf.Int64Var(&seed, "seed", 1, "random seed")
	pf.StringVar(&fontRegular, "font-regular", "", "regular weight font file (ttf/otf)")
	pf.StringVar(&fontBold, "font-bold", "", "emphasized weight font file (ttf/otf)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless session and print metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "interaction script to replay")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", "", "color theme")
		c.Flags().StringVar(&scriptFile, "script", "", "interaction script to replay")
		c.Flags().BoolVar(&audioOn, "audio", false, "play impact sounds")
		c.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "print the rest layout for the viewport",
		Args:  cobra.NoArgs,
		RunE:  printLayout,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a letter's track from a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&letterIdx, "letter", 0, "letter index")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the letter's path as svg")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run a headless session and write the final frame as svg",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")
	snapshotCmd.Flags().StringVar(&scriptFile, "script", "", "interaction script to replay")
	snapshotCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "snapshot.svg", "output file")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many seeds in parallel and summarize their metrics",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")
	ensembleCmd.Flags().StringVar(&scriptFile, "script", "", "interaction script to replay")
	ensembleCmd.Flags().IntVar(&runs, "runs", 16, "number of seeds")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default GOMAXPROCS)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput across viewports",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	benchCmd.Flags().IntVarP(&benchN, "count", "n", 3000, "ticks per viewport")

	rootCmd.AddCommand(runCmd, liveCmd, layoutCmd, listCmd, plotCmd, snapshotCmd, ensembleCmd, exportJSONCmd, presetsCmd, benchCmd)
	return rootCmd
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "kinetype",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	log.SetDefault(logger)
	return nil
}
