// Package scoring turns a batch of pool guesses into population-relative
// scores.
//
// Scoring is a two-pass batch computation. The first pass computes a raw
// distance per guess and field. The second pass scales magnitude fields into
// [0,1] by their column maximum, derives each field's difficulty (mean scaled
// distance) and maximum, and sums the weighted correctness of every field.
// A guess cannot be scored without the rest of its batch.
package scoring

import (
	"context"
	"math"
	"time"

	"github.com/okian/babypool/internal/domain/model"
	"github.com/okian/babypool/pkg/logger"
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithLogger sets the logger used for batch diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// FieldStat describes one field across a scored batch.
type FieldStat struct {
	Field model.Field
	// Difficulty is the mean scaled distance; harder fields weigh more.
	Difficulty float64
	// MaxDistance is the largest scaled distance anyone had, possibly 0.
	MaxDistance float64
	// Answered counts guesses that carried a value for the field.
	Answered int
}

// Report is the output of one scored batch.
type Report struct {
	Results []model.Result
	Fields  []FieldStat
	Elapsed time.Duration
}

// Scorer computes overall scores for a batch of guesses. It keeps no state
// between calls and is safe for concurrent use.
type Scorer struct {
	logger logger.Logger
}

// NewScorer creates a Scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalcScores scores guesses against actual with a default Scorer and returns
// one result per guess in input order.
func CalcScores(ctx context.Context, guesses []model.Guess, actual model.ActualOutcome) ([]model.Result, error) {
	report, err := NewScorer().Score(ctx, guesses, actual)
	if err != nil {
		return nil, err
	}
	return report.Results, nil
}

// distances holds one row of per-field values; present marks fields the
// guess answered.
type distances struct {
	value   [model.FieldCount]float64
	present [model.FieldCount]bool
}

// Score scores the whole batch. Either every guess is scored or an error is
// returned; there are no partial results.
func (s *Scorer) Score(ctx context.Context, guesses []model.Guess, actual model.ActualOutcome) (Report, error) {
	start := time.Now()
	if len(guesses) == 0 {
		return Report{}, ErrNoGuesses
	}

	rows, err := rawDistances(guesses, actual)
	if err != nil {
		return Report{}, err
	}
	scaleMagnitudes(rows)
	stats := fieldStats(rows)

	results := make([]model.Result, len(guesses))
	for i, g := range guesses {
		results[i] = model.Result{
			Identity:     g.Identity,
			OverallScore: overallScore(rows[i], stats),
		}
	}

	report := Report{Results: results, Fields: stats, Elapsed: time.Since(start)}
	for _, st := range stats {
		s.logger.Debug(ctx, "field statistics",
			logger.String("field", st.Field.String()),
			logger.Float64("difficulty", st.Difficulty),
			logger.Float64("max_distance", st.MaxDistance),
			logger.Int("answered", st.Answered),
		)
	}
	s.logger.Debug(ctx, "scored batch",
		logger.Int("guesses", len(guesses)),
		logger.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// rawDistances is the first pass.
func rawDistances(guesses []model.Guess, actual model.ActualOutcome) ([]distances, error) {
	rows := make([]distances, len(guesses))
	for i, g := range guesses {
		for _, f := range model.Fields() {
			d, ok := fieldDistance(f, g, actual)
			if !ok {
				continue
			}
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, &model.FieldError{Row: i, Field: f.String(), Err: model.ErrParse}
			}
			rows[i].value[f] = d
			rows[i].present[f] = true
		}
	}
	return rows, nil
}

// scaleMagnitudes divides magnitude columns by their maximum. A column whose
// maximum is 0 is already all zeros and is left alone.
func scaleMagnitudes(rows []distances) {
	for _, f := range model.Fields() {
		if !f.Magnitude() {
			continue
		}
		maxVal := columnMax(rows, f)
		if maxVal <= 0 {
			continue
		}
		for i := range rows {
			if rows[i].present[f] {
				rows[i].value[f] /= maxVal
			}
		}
	}
}

func fieldStats(rows []distances) []FieldStat {
	stats := make([]FieldStat, model.FieldCount)
	for _, f := range model.Fields() {
		var sum float64
		var n int
		for i := range rows {
			if rows[i].present[f] {
				sum += rows[i].value[f]
				n++
			}
		}
		st := FieldStat{Field: f, Answered: n}
		if n > 0 {
			st.Difficulty = sum / float64(n)
			st.MaxDistance = columnMax(rows, f)
		}
		stats[f] = st
	}
	return stats
}

// overallScore sums difficulty * (1 - d) / max over the answered fields.
func overallScore(row distances, stats []FieldStat) float64 {
	var total float64
	for _, f := range model.Fields() {
		if !row.present[f] {
			continue
		}
		st := stats[f]
		denom := st.MaxDistance
		if denom <= 0 {
			denom = 1
		}
		total += st.Difficulty * (1 - row.value[f]) / denom
	}
	return total
}

// columnMax relies on distances being nonnegative.
func columnMax(rows []distances, f model.Field) float64 {
	var maxVal float64
	for i := range rows {
		if rows[i].present[f] && rows[i].value[f] > maxVal {
			maxVal = rows[i].value[f]
		}
	}
	return maxVal
}
