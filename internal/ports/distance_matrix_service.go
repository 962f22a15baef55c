package ports

import (
	"context"
	"cows-tsp/internal/domain"
)

// Travel modes understood by distance-matrix services.
const (
	TravelModeWalking = "walking"
	TravelModeDriving = "driving"
)

// Top-level and per-element status reported by the service when a query succeeds.
const StatusOK = "OK"

// Human-readable text paired with a numeric value (meters or seconds).
type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// One origin×destination cell of a distance-matrix response.
// Distance and Duration are nil when the service could not route the pair.
type DistanceMatrixElement struct {
	Status   string     `json:"status"`
	Distance *TextValue `json:"distance,omitempty"`
	Duration *TextValue `json:"duration,omitempty"`
}

// All cells for a single origin, one per destination.
type DistanceMatrixRow struct {
	Elements []DistanceMatrixElement `json:"elements"`
}

// Row-major response of a distance-matrix query.
type DistanceMatrixResponse struct {
	Status               string              `json:"status"`
	ErrorMessage         string              `json:"error_message,omitempty"`
	OriginAddresses      []string            `json:"origin_addresses"`
	DestinationAddresses []string            `json:"destination_addresses"`
	Rows                 []DistanceMatrixRow `json:"rows"`
}

// Contract for retrieving pairwise travel distances between coordinate lists.
type DistanceMatrixService interface {
	// Return one row per origin and one element per destination.
	// Implementations return the service status as-is; callers validate it.
	ComputeDistances(
		ctx context.Context,
		origins []domain.Coordinates,
		destinations []domain.Coordinates,
		mode string,
	) (*DistanceMatrixResponse, error)
}
