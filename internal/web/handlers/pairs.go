package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abbrev-extract/internal/store"
)

// PairsHandler serves stored abbreviation/definition pairs.
type PairsHandler struct {
	Store *store.Store
}

// StoredPairResponse is one persisted pair.
type StoredPairResponse struct {
	Abbreviation string    `json:"abbreviation"`
	Definition   string    `json:"definition"`
	Document     string    `json:"document"`
	DocID        int64     `json:"doc_id"`
	RunID        int64     `json:"run_id"`
	Line         int       `json:"line"`
	AbbrevStart  int       `json:"abbrev_start"`
	AbbrevStop   int       `json:"abbrev_stop"`
	DefStart     int       `json:"def_start"`
	DefStop      int       `json:"def_stop"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// PairsListResponse is a paginated pair listing.
type PairsListResponse struct {
	Pairs   []StoredPairResponse `json:"pairs"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	PerPage int                  `json:"per_page"`
}

// ListPairs handles GET /api/pairs with page and per_page parameters.
func (h *PairsHandler) ListPairs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parseIntParam(query.Get("page"), 1)
	perPage := parseIntParam(query.Get("per_page"), 50)
	if perPage > 1000 {
		perPage = 1000
	}
	offset := (page - 1) * perPage

	pairs, total, err := h.Store.ListPairs(perPage, offset)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	resp := PairsListResponse{
		Pairs:   make([]StoredPairResponse, 0, len(pairs)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for _, p := range pairs {
		resp.Pairs = append(resp.Pairs, toPairResponse(p))
	}
	writeJSON(w, resp)
}

// GetPair handles GET /api/pairs/{abbrev}, returning every document's
// definition for that abbreviation.
func (h *PairsHandler) GetPair(w http.ResponseWriter, r *http.Request) {
	abbrev := mux.Vars(r)["abbrev"]

	pairs, err := h.Store.LookupPairs(abbrev)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if len(pairs) == 0 {
		http.Error(w, "abbreviation not found", http.StatusNotFound)
		return
	}

	resp := make([]StoredPairResponse, 0, len(pairs))
	for _, p := range pairs {
		resp = append(resp, toPairResponse(p))
	}
	writeJSON(w, resp)
}

func toPairResponse(p store.StoredPair) StoredPairResponse {
	return StoredPairResponse{
		Abbreviation: p.Abbreviation,
		Definition:   p.Definition,
		Document:     p.DocLabel,
		DocID:        p.DocID,
		RunID:        p.RunID,
		Line:         p.LineNo,
		AbbrevStart:  p.AbbrevStart,
		AbbrevStop:   p.AbbrevStop,
		DefStart:     p.DefStart,
		DefStop:      p.DefStop,
		ExtractedAt:  p.ExtractedAt,
	}
}
