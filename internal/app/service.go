// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/babypool/internal/adapters/sink"
	"github.com/okian/babypool/internal/adapters/source"
	"github.com/okian/babypool/internal/domain/model"
	"github.com/okian/babypool/internal/domain/record"
	"github.com/okian/babypool/internal/domain/scoring"
	"github.com/okian/babypool/pkg/logger"
	"github.com/okian/babypool/pkg/metrics"
)

// Failure kinds reported in metrics and logs.
const (
	KindSchema = "schema"
	KindParse  = "parse"
	KindEmpty  = "empty"
	KindOther  = "other"
)

// Service scores batches of raw pool records against one actual outcome.
type Service struct {
	mu sync.RWMutex

	scorer    *scoring.Scorer
	actual    model.ActualOutcome
	hasActual bool

	// State of the last successful batch.
	last     scoring.Report
	hasLast  bool
	batches  int
	scoredAt time.Time

	logger logger.Logger
}

// Stats summarizes what the service has scored so far.
type Stats struct {
	Batches          int       `json:"batches"`
	LastBatchGuesses int       `json:"last_batch_guesses"`
	LastScoredAt     time.Time `json:"last_scored_at"`
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

// WithScorer replaces the default scorer.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithActual sets the outcome every batch is scored against.
func WithActual(a model.ActualOutcome) Option {
	return func(s *Service) {
		s.actual = a
		s.hasActual = true
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer(scoring.WithLogger(s.logger.Named("scoring")))
	}
	return s
}

// Score decodes and scores one batch. The batch fails as a whole.
func (s *Service) Score(ctx context.Context, rows []record.Raw) (scoring.Report, error) {
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))

	if !s.hasActual {
		return scoring.Report{}, ErrNoActual
	}
	if err := ctx.Err(); err != nil {
		return scoring.Report{}, err
	}

	guesses, err := record.DecodeAll(rows)
	if err != nil {
		return scoring.Report{}, s.fail(ctx, log, err)
	}

	report, err := s.scorer.Score(ctx, guesses, s.actual)
	if err != nil {
		return scoring.Report{}, s.fail(ctx, log, err)
	}

	now := time.Now()
	metrics.RecordBatch(len(report.Results), float64(report.Elapsed.Microseconds())/1e3, float64(now.Unix()))
	for _, st := range report.Fields {
		metrics.UpdateFieldStats(st.Field.String(), st.Difficulty, st.MaxDistance)
	}

	s.mu.Lock()
	s.last = report
	s.hasLast = true
	s.batches++
	s.scoredAt = now
	s.mu.Unlock()

	log.Info(ctx, "scored batch",
		logger.Int("guesses", len(report.Results)),
		logger.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// Run reads every record from src, scores them and writes the results to dst.
func (s *Service) Run(ctx context.Context, src source.Source, dst sink.Sink) (scoring.Report, error) {
	rows, err := src.Records(ctx)
	if err != nil {
		metrics.RecordBatchFailure(KindOther)
		return scoring.Report{}, fmt.Errorf("read records: %w", err)
	}
	report, err := s.Score(ctx, rows)
	if err != nil {
		return scoring.Report{}, err
	}
	if err := dst.Write(ctx, report.Results); err != nil {
		return scoring.Report{}, fmt.Errorf("write results: %w", err)
	}
	return report, nil
}

// LastReport returns the most recent successful batch.
func (s *Service) LastReport() (scoring.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.hasLast
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Batches: s.batches, LastScoredAt: s.scoredAt}
	if s.hasLast {
		st.LastBatchGuesses = len(s.last.Results)
	}
	return st
}

// FailureKind classifies a scoring error.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingField):
		return KindSchema
	case errors.Is(err, model.ErrParse):
		return KindParse
	case errors.Is(err, scoring.ErrNoGuesses):
		return KindEmpty
	default:
		return KindOther
	}
}

func (s *Service) fail(ctx context.Context, log logger.Logger, err error) error {
	kind := FailureKind(err)
	metrics.RecordBatchFailure(kind)
	log.Warn(ctx, "batch rejected", logger.String("kind", kind), logger.Error(err))
	return err
}
