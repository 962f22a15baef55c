package api

import (
	"cows-tsp/internal/api/handlers"
	"cows-tsp/internal/ports"
	"cows-tsp/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// assembler may be nil when no distance service is configured; POST /tour then
// only accepts matrix_source "load".
func NewRouter(
	points ports.PointSource,
	assembler *services.MatrixAssembler,
	store ports.MatrixStore,
	req services.PlanTourRequest,
	alpha float64,
) http.Handler {
	mux := http.NewServeMux()

	pointsHandler := &handlers.PointsHandler{Points: points, Request: req}
	tourHandler := &handlers.TourHandler{
		Points:       points,
		Assembler:    assembler,
		Store:        store,
		Request:      req,
		DefaultAlpha: alpha,
	}

	healthHandler := &handlers.HealthHandler{FetchEnabled: assembler != nil, MatrixKey: req.MatrixKey}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/points", pointsHandler.List)
	mux.HandleFunc("/tour", tourHandler.Plan)

	return loggingMiddleware(mux)
}
