package api

import (
	"encoding/json"
	"net/http"
)

// StatsProvider exposes a snapshot of interview service counters: lifecycle
// state plus stored session and user totals.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the interview service statistics snapshot.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a stats handler backed by the given provider.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats, returning the current counters as JSON.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	stats := h.statsProvider.GetStats()
	_ = json.NewEncoder(w).Encode(stats)
}
