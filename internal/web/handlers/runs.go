package handlers

import (
	"net/http"
	"time"

	"github.com/abbrev-extract/internal/store"
)

// RunsHandler serves extraction run history.
type RunsHandler struct {
	Store *store.Store
}

// RunResponse is one extraction run.
type RunResponse struct {
	RunID         int64      `json:"run_id"`
	RunUUID       string     `json:"run_uuid"`
	Label         string     `json:"label,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	DocsProcessed int        `json:"docs_processed"`
	PairsKept     int        `json:"pairs_kept"`
	PairsOmitted  int        `json:"pairs_omitted"`
}

// ListRuns handles GET /api/runs, newest first.
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r.URL.Query().Get("limit"), 50)

	runs, err := h.Store.ListRuns(limit)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	resp := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, RunResponse{
			RunID:         run.RunID,
			RunUUID:       run.RunUUID,
			Label:         run.Label,
			StartedAt:     run.StartedAt,
			CompletedAt:   run.CompletedAt,
			DocsProcessed: run.DocsProcessed,
			PairsKept:     run.PairsKept,
			PairsOmitted:  run.PairsOmitted,
		})
	}
	writeJSON(w, resp)
}
