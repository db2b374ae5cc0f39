package web

import (
	"net/http"
	"time"

	"tradecapacity/internal/application/projections"
)

// perfWindow is how far back /api/perf aggregates.
const perfWindow = 15 * time.Minute

// handleAPIState handles GET /api/state
func handleAPIState(w http.ResponseWriter, r *http.Request) {
	c, ok := controllerFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, projections.QueryGetState(c.Snapshot()))
}

// handleAPIPerf handles GET /api/perf
func handleAPIPerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(time.Now().Add(-perfWindow), 10))
}

// handleHealthz handles GET /healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
