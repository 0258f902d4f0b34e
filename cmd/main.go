package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/medalpool/internal/adapters/table"
	app "github.com/okian/medalpool/internal/app"
	"github.com/okian/medalpool/internal/config"
	"github.com/okian/medalpool/internal/domain/scoring"
	"github.com/okian/medalpool/pkg/logger"
)

// flags holds command line overrides; empty values fall back to config.
type flags struct {
	configPath  string
	output      string
	metricsFile string
	strict      bool
	jsonLogs    bool
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "medalpool <result_file> <guess_file>",
		Short: "Score medal pool guesses against event results",
		Long: `medalpool reads a CSV of actual medal winners and a CSV of guessed
winners, scores every finished event that has no score yet, and writes the
scored guesses next to the guess file with an "_updated" suffix.

Nothing is written when no score changed or when any event fails to score.

Configuration is read from MEDALPOOL_CONFIG (YAML), MEDALPOOL_* env vars
and a .env file in the working directory.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), f, args[0], args[1], cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML config file (overrides MEDALPOOL_CONFIG)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write updated guesses here instead of <guess>_updated.<ext>")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject events whose unmatched guesses and results differ in count")
	cmd.Flags().BoolVar(&f.jsonLogs, "json", false, "log JSON lines instead of text")
	return cmd
}

func run(ctx context.Context, f flags, resultPath, guessPath string, stdout, stderr io.Writer) error {
	if err := logger.Init(logger.WithWriter(stderr), logger.WithJSON(f.jsonLogs)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("medalpool")

	// A local .env may carry MEDALPOOL_* settings; real env wins.
	_ = godotenv.Load()

	// Load configuration (defaults -> optional file -> env)
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(ctx, f.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if f.metricsFile != "" {
		cfg.MetricsTextfile = f.metricsFile
	}
	if f.strict {
		cfg.StrictBalance = true
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithCodec(table.New(table.WithSeparator(cfg.ListSeparator))),
		app.WithScorer(scoring.NewSetScorer(scoring.NewEventScorer(scoring.WithStrictBalance(cfg.StrictBalance)))),
		app.WithOutputSuffix(cfg.OutputSuffix),
		app.WithOutputPath(f.output),
		app.WithMetricsTextfile(cfg.MetricsTextfile),
	)

	report, err := svc.Run(ctx, resultPath, guessPath)
	if err != nil {
		return err
	}

	if !report.Written() {
		fmt.Fprintln(stdout, "No updates")
		return nil
	}
	fmt.Fprintf(stdout, "Scored %d events for %d points, wrote %s\n", report.Scored, report.Points, report.Output)
	return nil
}
