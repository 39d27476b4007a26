// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abbrev-extract/internal/extract"
	"github.com/abbrev-extract/internal/input"
)

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	Text string `json:"text"`
}

// FoundPair is one accepted pair with its source positions, for
// highlighting in clients.
type FoundPair struct {
	Line         int    `json:"line"`
	Abbreviation string `json:"abbreviation"`
	Definition   string `json:"definition"`
	AbbrevStart  int    `json:"abbrev_start"`
	AbbrevStop   int    `json:"abbrev_stop"`
	DefStart     int    `json:"def_start"`
	DefStop      int    `json:"def_stop"`
}

// ExtractResponse is the extraction outcome for one posted document.
type ExtractResponse struct {
	Pairs   map[string]string `json:"pairs"`
	Found   []FoundPair       `json:"found"`
	Kept    int               `json:"kept"`
	Omitted int               `json:"omitted"`
}

// ExtractHandler runs ad-hoc extraction over posted text. Responses are
// cached in an LRU keyed by the text's content hash, so repeated posts of
// the same document skip the pipeline.
type ExtractHandler struct {
	extractor *extract.Extractor
	cache     *lru.Cache[uint64, *ExtractResponse]
}

// NewExtractHandler creates the handler with an LRU response cache of
// cacheSize entries.
func NewExtractHandler(cacheSize int) (*ExtractHandler, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[uint64, *ExtractResponse](cacheSize)
	if err != nil {
		return nil, err
	}
	return &ExtractHandler{
		extractor: extract.NewExtractor(extract.Config{}),
		cache:     cache,
	}, nil
}

// Extract handles POST /api/extract.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	key := xxhash.Sum64String(req.Text)
	if resp, ok := h.cache.Get(key); ok {
		writeJSON(w, resp)
		return
	}

	src := input.FromText(req.Text)
	result, err := h.extractor.Extract(src)
	if err != nil {
		http.Error(w, "extraction failed", http.StatusInternalServerError)
		return
	}

	resp := buildExtractResponse(result)
	h.cache.Add(key, resp)
	writeJSON(w, resp)
}

func buildExtractResponse(result *extract.Result) *ExtractResponse {
	resp := &ExtractResponse{
		Pairs:   make(map[string]string, len(result.Pairs)),
		Found:   make([]FoundPair, 0, len(result.Found)),
		Kept:    result.Kept,
		Omitted: result.Omitted,
	}
	for abbrev, def := range result.Pairs {
		resp.Pairs[abbrev] = def.Text
	}
	for _, pair := range result.Found {
		resp.Found = append(resp.Found, FoundPair{
			Line:         pair.Line,
			Abbreviation: pair.Abbrev.Text,
			Definition:   pair.Definition.Text,
			AbbrevStart:  pair.Abbrev.Start,
			AbbrevStop:   pair.Abbrev.Stop,
			DefStart:     pair.Definition.Start,
			DefStop:      pair.Definition.Stop,
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// parseIntParam parses a positive integer query parameter with a default.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}
