package ports

import (
	"context"
	"cows-tsp/internal/domain"
)

// Port: a boundary for retrieving the ordered point sequence.
type PointSource interface {
	// Retrieve all points in source order.
	ListPoints(ctx context.Context) ([]domain.Point, error)
}
