package handlers

import (
	"cows-tsp/internal/api/dto"
	"cows-tsp/internal/ports"
	"cows-tsp/internal/services"
	"log"
	"net/http"
)

// PointsHandler exposes the filtered, rotated point sequence the tour is planned over.
type PointsHandler struct {
	Points  ports.PointSource
	Request services.PlanTourRequest
}

func (h *PointsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	points, err := services.PreparePoints(r.Context(), h.Request, h.Points)
	if err != nil {
		log.Printf("list points failed: %v", err)
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListPointsResponse{
		Points: make([]dto.PointResponse, 0, len(points)),
	}
	for i, p := range points {
		res.Points = append(res.Points, dto.PointResponse{
			Index: i,
			Name:  p.Name,
			Lat:   p.Location.Lat,
			Lon:   p.Location.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
