package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orbitsim/internal/matchrun"
	"orbitsim/internal/scenario"
)

// Handler methods for routerHandlers. Used by both the standalone router
// (for testing) and the full Server.

func (h *routerHandlers) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	names := scenario.Names()
	out := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		sc, err := scenario.Get(name)
		if err != nil {
			continue
		}
		out = append(out, map[string]interface{}{
			"name":         name,
			"description":  sc.Description(),
			"isTournament": sc.IsTournament(),
		})
	}
	writeJSON(w, out)
}

func (h *routerHandlers) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scenario string `json:"scenario"`
		Seed     int64  `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Scenario == "" {
		writeError(w, "scenario is required", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.Start(req.Scenario, req.Seed)
	if err != nil {
		if err == matchrun.ErrTooManyMatches {
			writeError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	RecordMatchStarted()
	writeJSON(w, job.View())
}

func (h *routerHandlers) handleMatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := h.jobs.Get(id)
	if !ok {
		writeError(w, "unknown match id", http.StatusNotFound)
		return
	}
	writeJSON(w, job.View())
}

func (h *routerHandlers) handleMatchSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := h.jobs.Get(id)
	if !ok {
		writeError(w, "unknown match id", http.StatusNotFound)
		return
	}
	snap, ok := job.LatestSnapshot()
	if !ok {
		writeError(w, "no snapshot captured yet", http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

func (h *routerHandlers) handleRateLimitStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"http":            h.rateLimiter.GetStats(),
		"runningMatches":  h.jobs.RunningCount(),
	})
}

// Helper functions (package-level for reuse).

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
