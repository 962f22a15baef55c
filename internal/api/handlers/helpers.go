package handlers

import (
	"cows-tsp/internal/ports"
	"cows-tsp/internal/services"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps pipeline failures to HTTP statuses without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrMatrixNotFound):
		writeError(w, r, http.StatusNotFound, "distance matrix not found")
	case errors.Is(err, services.ErrPointCountMismatch):
		writeError(w, r, http.StatusConflict, "point count does not match expected count")
	case errors.Is(err, services.ErrResponseNotOK), errors.Is(err, services.ErrMalformedResponse):
		writeError(w, r, http.StatusBadGateway, "distance service error")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
