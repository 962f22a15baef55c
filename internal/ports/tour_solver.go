package ports

import (
	"context"
	"cows-tsp/internal/domain"
)

// Contract for heuristic or exact solvers of the traveling-salesman problem.
type TourSolver interface {
	// Return a permutation of matrix indices and its closed-loop distance.
	SolveTour(ctx context.Context, m domain.Matrix) (domain.Tour, error)
}
