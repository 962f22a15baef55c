package handlers

import (
	"cows-tsp/internal/api/dto"
	"cows-tsp/internal/ports"
	"cows-tsp/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// Solver names accepted by POST /tour.
const (
	SolverSimulatedAnnealing = "simulated_annealing"
	SolverNearestNeighbor    = "nearest_neighbor"
)

type TourHandler struct {
	Points    ports.PointSource
	Assembler *services.MatrixAssembler
	Store     ports.MatrixStore
	// Request holds the fixed exclusions, start offset and matrix defaults.
	Request      services.PlanTourRequest
	DefaultAlpha float64
}

// Plan runs the full pipeline and returns the tour in visiting order.
func (h *TourHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TourRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	// An empty body selects every default.
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	planReq := h.Request
	switch strings.ToLower(strings.TrimSpace(req.MatrixSource)) {
	case "":
	case "fetch":
		planReq.FetchMatrix = true
	case "load":
		planReq.FetchMatrix = false
	default:
		writeError(w, r, http.StatusBadRequest, "matrix_source must be \"fetch\" or \"load\"")
		return
	}

	if planReq.FetchMatrix && h.Assembler == nil {
		writeError(w, r, http.StatusBadRequest, "distance service is not configured")
		return
	}

	alpha := h.DefaultAlpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	if !(alpha > 0 && alpha < 1) {
		writeError(w, r, http.StatusBadRequest, "alpha must be between 0 and 1 (exclusive)")
		return
	}

	var solver ports.TourSolver
	switch req.Solver {
	case "", SolverSimulatedAnnealing:
		solver = services.NewSimulatedAnnealingSolver(alpha)
	case SolverNearestNeighbor:
		solver = services.NearestNeighborSolver{}
	default:
		writeError(w, r, http.StatusBadRequest, "solver must be \"simulated_annealing\" or \"nearest_neighbor\"")
		return
	}

	plan, err := services.PlanTour(r.Context(), planReq, h.Points, h.Assembler, h.Store, solver)
	if err != nil {
		log.Printf("plan tour failed: %v", err)
		writeServiceError(w, r, err)
		return
	}

	res := dto.TourResponse{
		Stops:               make([]dto.TourStopResponse, 0, len(plan.Stops)),
		TotalDistanceMeters: plan.Tour.DistanceMeters,
	}
	for i, s := range plan.Stops {
		res.Stops = append(res.Stops, dto.TourStopResponse{
			Index:     plan.Tour.Order[i],
			Name:      s.Name,
			Lat:       s.Location.Lat,
			Lon:       s.Location.Lon,
			LegMeters: plan.Legs[i],
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
