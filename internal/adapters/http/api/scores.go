package api

import (
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/babypool/internal/app"
	"github.com/okian/babypool/internal/domain/model"
	"github.com/okian/babypool/internal/domain/record"
	"github.com/okian/babypool/internal/domain/types"
)

// ScoresHandler handles batch scoring requests.
type ScoresHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps, maxBodyBytes: defaultMaxBodyBytes}
}

type scoresResponse struct {
	Results   []types.ScoreRow `json:"results"`
	Fields    []types.FieldRow `json:"fields"`
	ElapsedMS float64          `json:"elapsed_ms"`
}

// HandlePostScores handles POST /scores. The body is a JSON array of form
// rows keyed by question title.
func (h *ScoresHandler) HandlePostScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_scores"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	dec.UseNumber()
	var rows []record.Raw
	if err := dec.Decode(&rows); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.deps.Score(r.Context(), rows)
	if err != nil {
		writeScoreError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, scoresResponse{
		Results:   types.ScoreRows(report.Results),
		Fields:    types.FieldRows(report.Fields),
		ElapsedMS: float64(report.Elapsed.Microseconds()) / 1e3,
	})
}

// writeScoreError maps a rejected batch to 422 with the offending row and
// field, and anything else to 500.
func writeScoreError(w http.ResponseWriter, op string, err error) {
	kind := service.FailureKind(err)
	if kind == service.KindOther {
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
		return
	}

	resp := errorResponse{Code: kind, Message: WrapKind(op, ErrUnprocessable, err).Error()}
	var fe *model.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
		if fe.Row >= 0 {
			row := fe.Row
			resp.Row = &row
		}
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
