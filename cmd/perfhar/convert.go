package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bhecquet/seleniumRobot-sub007/internal/config"
	"github.com/bhecquet/seleniumRobot-sub007/internal/export"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
	"github.com/bhecquet/seleniumRobot-sub007/internal/logging"
	"github.com/bhecquet/seleniumRobot-sub007/internal/metrics"
	"github.com/bhecquet/seleniumRobot-sub007/internal/synth"
)

type convertFlags struct {
	logFile   string
	stepsFile string
	out       string
	summary   bool

	timeZone      string
	logFormat     string
	onlyUsedPages bool
	maskValues    bool
}

func newConvertCmd(g *globalFlags) *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a performance log to a HAR file",
		Long: `Convert a WebDriver performance log into a HAR document.

The log is either a JSON array of {"message": "..."} records, as returned
by driver.manage().logs().get("performance"), or one record per line.
The steps file is a YAML or JSON list:

  - started_at: 2025-02-14T15:42:13.421Z   # or epoch milliseconds
    label: step 1

Examples:
  # Write to a file
  perfhar convert --log perf.json --steps steps.yaml --out run.har

  # Write to stdout, print counters to stderr
  perfhar convert --log perf.ndjson --summary > run.har`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, g, f)
		},
	}

	cmd.Flags().StringVarP(&f.logFile, "log", "l", "", "performance log file (required)")
	cmd.Flags().StringVarP(&f.stepsFile, "steps", "s", "", "test steps file (YAML or JSON)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", `output HAR path, "-" for stdout`)
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print run counters to stderr")
	cmd.Flags().StringVar(&f.timeZone, "time-zone", "", "IANA zone for startedDateTime (default from config)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "log encoding: text, json")
	cmd.Flags().BoolVar(&f.onlyUsedPages, "only-used-pages", false, "list only pages that have entries")
	cmd.Flags().BoolVar(&f.maskValues, "mask-values", false, "mask secrets inside kept header values")
	_ = cmd.MarkFlagRequired("log")
	return cmd
}

// overrides collects the flags the user actually set.
func (f *convertFlags) overrides(cmd *cobra.Command, g *globalFlags) *config.FlagOverrides {
	o := &config.FlagOverrides{}
	if cmd.Flags().Changed("time-zone") {
		o.TimeZone = &f.timeZone
	}
	if cmd.Flags().Changed("log-format") {
		o.LogFormat = &f.logFormat
	}
	if cmd.Flags().Changed("only-used-pages") {
		o.OnlyUsedPages = &f.onlyUsedPages
	}
	if cmd.Flags().Changed("mask-values") {
		o.MaskValues = &f.maskValues
	}
	if g.verbose {
		debug := "debug"
		o.LogLevel = &debug
	}
	return o
}

func runConvert(cmd *cobra.Command, g *globalFlags, f *convertFlags) error {
	cfg, err := config.Load(g.cfgFile, f.overrides(cmd, g))
	if err != nil {
		return err
	}
	logCfg := cfg.Logging()
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	logger = logger.With("run_id", uuid.NewString())
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	policy, invalid := cfg.RedactionPolicy()
	for _, name := range invalid {
		logger.Warn("skipping redaction pattern that does not compile", "pattern", name)
	}

	lines, err := readLogFile(f.logFile)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	steps, err := readStepsFile(f.stepsFile)
	if err != nil {
		return fmt.Errorf("read steps: %w", err)
	}

	collector := metrics.NewCollector(metrics.Config{Namespace: cfg.Metrics.Namespace}, nil)
	res := synth.Synthesize(lines, steps, synth.Options{
		Logger:        logger,
		Policy:        policy,
		Location:      loc,
		Creator:       har.Creator{Name: cfg.Creator.Name, Version: cfg.Creator.Version},
		OnlyUsedPages: cfg.Pages.OnlyUsed,
		Metrics:       collector,
	})

	if f.out == "" || f.out == "-" {
		if _, err := export.Encode(cmd.OutOrStdout(), res.Har); err != nil {
			return err
		}
	} else {
		result, err := export.WriteFile(res.Har, f.out, allowedRoots()...)
		if err != nil {
			return err
		}
		logger.Info("har written", "path", result.SavedTo, "entries", result.EntriesCount, "bytes", result.FileSizeBytes)
	}

	if f.summary {
		return printSummary(cmd.ErrOrStderr(), res.Stats, collector)
	}
	return nil
}

// allowedRoots are the directories absolute --out paths may point into.
func allowedRoots() []string {
	var roots []string
	if wd, err := os.Getwd(); err == nil {
		roots = append(roots, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, home)
	}
	return roots
}

func printSummary(w io.Writer, stats synth.Stats, collector *metrics.Collector) error {
	fmt.Fprintf(w, "lines: %d read, %d skipped\n", stats.LinesRead, stats.LinesSkipped)
	fmt.Fprintf(w, "entries: %d http, %d websocket, %d bags dropped\n", stats.HTTPEntries, stats.WebSocketEntries, stats.DroppedBags)
	fmt.Fprintf(w, "pages: %d\n", stats.Pages)

	samples, err := collector.Snapshot()
	if err != nil {
		return err
	}
	for _, s := range samples {
		fmt.Fprintf(w, "%s{%s} %g\n", s.Name, s.Labels, s.Value)
	}
	return nil
}
