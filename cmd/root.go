// Package cmd implements the chatrecap CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/config"
	"github.com/theirongolddev/chatrecap/internal/logger"
	"github.com/theirongolddev/chatrecap/internal/metrics"
	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/notify"
	"github.com/theirongolddev/chatrecap/internal/pipeline"
	"github.com/theirongolddev/chatrecap/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagOutDir      string
	flagNoCache     bool
	flagQuiet       bool
	flagLogLevel    string
	flagMetricsFile string
	flagNotify      bool
)

// cfg is the effective configuration, loaded before every command runs.
var cfg = config.DefaultConfig()

var errFileNotFound = errors.New("file not found")

// analysisError wraps a failure while loading or reporting on an export.
type analysisError struct {
	err error
}

func (e *analysisError) Error() string { return "analysis failed: " + e.err.Error() }

func (e *analysisError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "chatrecap <export.json> [year]",
	Short: "Summarize an exported AI chat history",
	Long: "Analyze an exported chat history: conversations, messages per role, " +
		"monthly activity and model usage. Writes a Markdown summary next to the console report.",
	Args:              cobra.RangeArgs(1, 2),
	PersistentPreRunE: loadSettings,
	RunE:              runReport,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ae *analysisError
		if errors.Is(err, errFileNotFound) || errors.As(err, &ae) {
			fmt.Fprintln(os.Stderr, cli.Error("❌ "+err.Error()))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\nRun 'chatrecap --help' for usage.\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutDir, "out-dir", "o", "", "Directory for the Markdown summary (default from config, else .)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the export")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&flagMetricsFile, "metrics-file", "", "Write report totals as a Prometheus textfile")
	rootCmd.PersistentFlags().BoolVar(&flagNotify, "notify", false, "Send a desktop notification when the report is saved")
}

// loadSettings reads the config file and initializes logging. Flags win over
// config values.
func loadSettings(_ *cobra.Command, _ []string) error {
	loaded, cfgErr := config.Load()
	if cfgErr == nil {
		cfg = loaded
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger.Init(logger.Config{Level: level, Pretty: true})

	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", config.Path()).Msg("using default configuration")
	}
	return nil
}

// parseReportArgs splits "<export.json> [year]".
func parseReportArgs(args []string) (string, int, error) {
	path := args[0]
	if len(args) < 2 {
		return path, 0, nil
	}
	year, err := strconv.Atoi(args[1])
	if err != nil || year < 1 || year > 9999 {
		return "", 0, fmt.Errorf("invalid year %q: expected a four-digit year such as 2025", args[1])
	}
	return path, year, nil
}

func checkExport(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", errFileNotFound, path)
	}
	return nil
}

func cacheEnabled() bool {
	return !flagNoCache && cfg.Cache.Enabled
}

func cachePath() string {
	if cfg.Cache.Path != "" {
		return cfg.Cache.Path
	}
	return pipeline.CachePath()
}

func outputDir() string {
	if flagOutDir != "" {
		return flagOutDir
	}
	if cfg.General.OutputDir != "" {
		return cfg.General.OutputDir
	}
	return "."
}

func progress(format string, a ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, a...)
	}
}

// loadData is the shared data loading path used by all report commands.
// Uses the SQLite cache when enabled for fast subsequent runs.
func loadData(path string) (*pipeline.LoadResult, error) {
	if err := checkExport(path); err != nil {
		return nil, err
	}

	progress("  Reading %s...\n", path)

	var (
		result *pipeline.LoadResult
		err    error
	)
	if cacheEnabled() {
		result, err = pipeline.LoadCached(path, cachePath())
	} else {
		result, err = pipeline.Load(path)
	}
	if err != nil {
		return nil, &analysisError{err: err}
	}

	source := "parsed"
	if result.FromCache {
		source = "from cache"
	}
	progress("  Loaded %s messages across %s conversations (%s)\n",
		cli.FormatNumber(int64(len(result.Messages))),
		cli.FormatNumber(int64(result.TotalConversations)),
		source,
	)
	if result.Dropped > 0 {
		log.Debug().Int("dropped", result.Dropped).Msg("skipped messages without a timestamp")
	}
	return result, nil
}

// noMessages reports an export without any usable messages.
func noMessages(result *pipeline.LoadResult) bool {
	if len(result.Messages) > 0 {
		return false
	}
	fmt.Println(cli.Warn("\n  ⚠️  No messages with timestamps found. Nothing to report."))
	return true
}

func runReport(_ *cobra.Command, args []string) error {
	path, year, err := parseReportArgs(args)
	if err != nil {
		return err
	}

	result, err := loadData(path)
	if err != nil {
		return err
	}
	if noMessages(result) {
		return nil
	}

	r := pipeline.Aggregate(result.Messages, result.TotalConversations, model.Scope{Year: year}, nil)
	fmt.Print(report.Console(r))

	out, err := report.WriteMarkdown(outputDir(), r)
	if err != nil {
		return &analysisError{err: err}
	}
	fmt.Println(cli.Success("✅ Report saved to " + out))

	if flagMetricsFile != "" {
		if err := metrics.Export(flagMetricsFile, r); err != nil {
			return &analysisError{err: err}
		}
		progress("  Metrics written to %s\n", flagMetricsFile)
	}

	if flagNotify || cfg.General.Notify {
		if err := notify.ReportSaved(out); err != nil {
			log.Warn().Err(err).Msg("desktop notification failed")
		}
	}
	return nil
}
