package api

import (
	"net/http"

	"github.com/okian/babypool/internal/domain/types"
)

// FieldsHandler serves per-field statistics of the last batch.
type FieldsHandler struct {
	deps Dependencies
}

// NewFieldsHandler creates a new fields handler.
func NewFieldsHandler(deps Dependencies) *FieldsHandler {
	return &FieldsHandler{deps: deps}
}

type fieldsResponse struct {
	Guesses int              `json:"guesses"`
	Fields  []types.FieldRow `json:"fields"`
}

// HandleGetFields handles GET /fields requests.
func (h *FieldsHandler) HandleGetFields(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_fields"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	report, ok := h.deps.LastReport()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNoBatch))
		return
	}
	writeJSON(w, http.StatusOK, fieldsResponse{
		Guesses: len(report.Results),
		Fields:  types.FieldRows(report.Fields),
	})
}
