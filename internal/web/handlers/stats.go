package handlers

import (
	"net/http"

	"github.com/abbrev-extract/internal/store"
)

// StatsHandler serves corpus-wide extraction statistics.
type StatsHandler struct {
	Store *store.Store
}

// AbbrevCountResponse is one abbreviation with its occurrence count.
type AbbrevCountResponse struct {
	Abbreviation string `json:"abbreviation"`
	Count        int    `json:"count"`
}

// StatsResponse summarizes everything stored so far.
type StatsResponse struct {
	Documents             int                   `json:"documents"`
	Runs                  int                   `json:"runs"`
	Pairs                 int                   `json:"pairs"`
	DistinctAbbreviations int                   `json:"distinct_abbreviations"`
	ByDocument            map[string]int        `json:"by_document"`
	TopAbbreviations      []AbbrevCountResponse `json:"top_abbreviations"`
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Stats()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{
		Documents:             stats.Documents,
		Runs:                  stats.Runs,
		Pairs:                 stats.Pairs,
		DistinctAbbreviations: stats.DistinctAbbreviations,
		ByDocument:            stats.ByDocument,
		TopAbbreviations:      make([]AbbrevCountResponse, 0, len(stats.TopAbbreviations)),
	}
	for _, tc := range stats.TopAbbreviations {
		resp.TopAbbreviations = append(resp.TopAbbreviations, AbbrevCountResponse{
			Abbreviation: tc.Abbreviation,
			Count:        tc.Count,
		})
	}
	writeJSON(w, resp)
}
