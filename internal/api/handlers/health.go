package handlers

import (
	"cows-tsp/internal/api/dto"
	"net/http"
)

// HealthHandler reports liveness and which matrix sources POST /tour accepts.
type HealthHandler struct {
	FetchEnabled bool
	MatrixKey    string
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sources := []string{"load"}
	if h.FetchEnabled {
		sources = append(sources, "fetch")
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:        "ok",
		MatrixSources: sources,
		MatrixKey:     h.MatrixKey,
	})
}
