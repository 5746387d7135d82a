// Package types contains wire shapes shared by the HTTP API and file sinks.
package types

import (
	"github.com/okian/babypool/internal/domain/model"
	"github.com/okian/babypool/internal/domain/scoring"
)

// ScoreRow is one scored participant as serialized to clients.
type ScoreRow struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Timestamp    string  `json:"timestamp"`
	OverallScore float64 `json:"overall_score"`
}

// FieldRow describes one field of a scored batch.
type FieldRow struct {
	Field       string  `json:"field"`
	Difficulty  float64 `json:"difficulty"`
	MaxDistance float64 `json:"max_distance"`
	Answered    int     `json:"answered"`
}

// ScoreRows converts results, keeping order.
func ScoreRows(results []model.Result) []ScoreRow {
	out := make([]ScoreRow, len(results))
	for i, r := range results {
		out[i] = ScoreRow{
			Name:         r.Name,
			Email:        r.Email,
			Timestamp:    r.Timestamp,
			OverallScore: r.OverallScore,
		}
	}
	return out
}

// FieldRows converts field statistics, keeping order.
func FieldRows(stats []scoring.FieldStat) []FieldRow {
	out := make([]FieldRow, len(stats))
	for i, st := range stats {
		out[i] = FieldRow{
			Field:       st.Field.String(),
			Difficulty:  st.Difficulty,
			MaxDistance: st.MaxDistance,
			Answered:    st.Answered,
		}
	}
	return out
}
