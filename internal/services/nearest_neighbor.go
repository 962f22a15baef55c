package services

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"errors"
	"fmt"
	"math"
)

// NearestNeighborSolver builds a tour with a greedy nearest-neighbor walk.
//
// The algorithm minimizes the immediate leg at each step starting from
// index 0. It does not attempt global optimization; it prioritizes
// determinism and speed and serves as a quick baseline for the annealer.
type NearestNeighborSolver struct{}

func (NearestNeighborSolver) SolveTour(ctx context.Context, m domain.Matrix) (_ domain.Tour, err error) {
	defer obs.Time(ctx, "tour.NearestNeighbor")(&err)

	n, err := m.Size()
	if err != nil {
		return domain.Tour{}, fmt.Errorf("nearest neighbor: %w", err)
	}

	if n == 0 {
		return domain.Tour{Order: []int{}}, nil
	}

	remaining := make(map[int]struct{}, n-1)
	for i := 1; i < n; i++ {
		remaining[i] = struct{}{}
	}

	order := make([]int, 0, n)
	order = append(order, 0)
	current := 0

	for len(remaining) > 0 {
		best := -1
		minDistance := math.MaxInt

		// Select next stop by minimum leg distance (greedy step).
		for candidate := range remaining {
			d := m[current][candidate]
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if d < minDistance || (d == minDistance && candidate < best) {
				minDistance = d
				best = candidate
			}
		}

		if best < 0 {
			return domain.Tour{}, errors.New("nearest neighbor: failed to select next stop")
		}

		order = append(order, best)
		delete(remaining, best)
		current = best
	}

	return domain.Tour{Order: order, DistanceMeters: permutationDistance(m, order)}, nil
}
