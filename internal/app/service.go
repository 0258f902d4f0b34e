// Package service runs one medal pool scoring pass: it reads the result and
// guess tables, scores every finished event and persists the updated guesses.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/medalpool/internal/adapters/table"
	"github.com/okian/medalpool/internal/domain/model"
	"github.com/okian/medalpool/internal/domain/scoring"
	"github.com/okian/medalpool/pkg/logger"
	"github.com/okian/medalpool/pkg/metrics"
)

const defaultOutputSuffix = "_updated"

// RunReport summarizes a finished run.
type RunReport struct {
	RunID   string
	Scored  int    // events scored in this run
	Skipped int    // events pending or already scored
	Points  int    // points awarded in this run
	Output  string // path written, empty when nothing changed
}

// Written reports whether the run persisted an updated table.
func (r *RunReport) Written() bool {
	return r.Output != ""
}

// Service wires the table codec, the scorer, logging and metrics.
type Service struct {
	codec   *table.Codec
	scorer  *scoring.SetScorer
	metrics *metrics.Manager
	logger  logger.Logger

	outputSuffix    string
	outputPath      string
	metricsTextfile string

	now func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCodec sets the CSV codec used for both tables.
func WithCodec(c *table.Codec) Option {
	return func(s *Service) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithScorer sets the scorer applied to the tables.
func WithScorer(sc *scoring.SetScorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithMetrics sets the metrics manager runs are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithOutputSuffix sets the suffix used to derive the output path from the
// guess path.
func WithOutputSuffix(suffix string) Option {
	return func(s *Service) {
		if suffix != "" {
			s.outputSuffix = suffix
		}
	}
}

// WithOutputPath writes updates to path instead of a derived name.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		s.outputPath = path
	}
}

// WithMetricsTextfile exports metrics to path after every run.
func WithMetricsTextfile(path string) Option {
	return func(s *Service) {
		s.metricsTextfile = path
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		codec:        table.New(),
		scorer:       scoring.NewSetScorer(nil),
		metrics:      metrics.Default(),
		outputSuffix: defaultOutputSuffix,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run scores the guesses at guessPath against the results at resultPath.
// The updated guesses are written only when at least one score changed, and
// never after an error.
func (s *Service) Run(ctx context.Context, resultPath, guessPath string) (*RunReport, error) {
	start := s.now()
	report := &RunReport{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", report.RunID))

	log.Info(ctx, "scoring run started",
		logger.String("results", resultPath),
		logger.String("guesses", guessPath))

	result, err := s.run(ctx, log, report, resultPath, guessPath)
	if err != nil {
		s.metrics.RecordScoringError()
		result = metrics.RunFailed
		log.Error(ctx, "scoring run failed", logger.Error(err))
	}
	finished := s.now()
	s.metrics.RecordRun(result, finished, finished.Sub(start))
	s.exportMetrics(ctx, log)

	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) run(ctx context.Context, log logger.Logger, report *RunReport, resultPath, guessPath string) (string, error) {
	results, guesses, err := s.load(resultPath, guessPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	scored, outcomes, err := s.scorer.ScoreAll(results, guesses)
	if err != nil {
		return "", fmt.Errorf("score events: %w", err)
	}
	for _, o := range outcomes {
		s.report(ctx, log, report, o)
	}

	if scored.Equal(guesses) {
		log.Info(ctx, "no updates",
			logger.Int("skipped", report.Skipped))
		return metrics.RunUnchanged, nil
	}

	out, err := s.output(guessPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.codec.WriteFile(out, scored); err != nil {
		return "", fmt.Errorf("save guesses: %w", err)
	}
	report.Output = out

	log.Info(ctx, "updated guesses written",
		logger.String("output", out),
		logger.Int("scored", report.Scored),
		logger.Int("points", report.Points))
	return metrics.RunUpdated, nil
}

// load reads both tables concurrently.
func (s *Service) load(resultPath, guessPath string) (results, guesses *model.Table, err error) {
	var g errgroup.Group
	g.Go(func() error {
		t, err := s.codec.ReadFile(resultPath)
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}
		results = t
		return nil
	})
	g.Go(func() error {
		t, err := s.codec.ReadFile(guessPath)
		if err != nil {
			return fmt.Errorf("load guesses: %w", err)
		}
		guesses = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, guesses, nil
}

// report logs one outcome and records it on the metrics manager.
func (s *Service) report(ctx context.Context, log logger.Logger, report *RunReport, o scoring.Outcome) {
	event := logger.String("event", o.Key.String())
	if o.Skipped != scoring.NotSkipped {
		report.Skipped++
		s.metrics.RecordEventSkipped(string(o.Skipped))
		log.Debug(ctx, "event skipped", event, logger.String("reason", string(o.Skipped)))
		return
	}

	for _, line := range o.Log {
		log.Info(ctx, line, event)
	}
	log.Info(ctx, "event scored", event, logger.Int("points", o.Points))

	report.Scored++
	report.Points += o.Points
	s.metrics.RecordEventScored(o.Points)
	s.metrics.RecordPoints(metrics.AwardExact, o.Exact*scoring.CorrectGuessPoints)
	s.metrics.RecordPoints(metrics.AwardNear, o.Near*scoring.NearGuessPoints)
	if o.Perfect {
		s.metrics.RecordPoints(metrics.AwardPerfect, scoring.PerfectPodiumBonus)
	}
}

// output returns where updated guesses go.
func (s *Service) output(guessPath string) (string, error) {
	if s.outputPath != "" {
		return s.outputPath, nil
	}
	abs, err := filepath.Abs(guessPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", guessPath, err)
	}
	return table.UpdatedPath(abs, s.outputSuffix), nil
}

func (s *Service) exportMetrics(ctx context.Context, log logger.Logger) {
	if s.metricsTextfile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.metricsTextfile); err != nil {
		log.Warn(ctx, "metrics export failed", logger.String("path", s.metricsTextfile), logger.Error(err))
	}
}
