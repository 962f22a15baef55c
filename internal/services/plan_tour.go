package services

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"errors"
	"fmt"
	"log"
	"slices"
)

type PlanTourRequest struct {
	// Names removed before planning; matched exactly.
	Exclude []string
	// Left rotation applied after filtering, choosing the fixed first stop.
	StartIndex int
	// Required post-filter point count; 0 disables the check.
	ExpectedCount int
	// FetchMatrix queries the distance service (and saves the result when a
	// store is configured); otherwise the matrix is loaded from the store.
	FetchMatrix bool
	MatrixKey   string
}

// PreparePoints loads, filters and rotates the points and checks the
// expected count. The returned order defines matrix indices.
func PreparePoints(ctx context.Context, req PlanTourRequest, source ports.PointSource) ([]domain.Point, error) {
	if source == nil {
		return nil, errors.New("prepare points: point source is nil")
	}

	all, err := source.ListPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare points: %w", err)
	}

	points := FilterExcluded(all, req.Exclude)

	// Rotation preserves length, so a stale exclusion list is reported as a
	// count mismatch before the offset is range-checked.
	if req.ExpectedCount > 0 && len(points) != req.ExpectedCount {
		return nil, fmt.Errorf("prepare points: %w", &CountMismatchError{Got: len(points), Want: req.ExpectedCount})
	}

	points, err = Rotate(points, req.StartIndex)
	if err != nil {
		return nil, fmt.Errorf("prepare points: %w", err)
	}

	return points, nil
}

// PlanTour runs the whole pipeline: prepare points, obtain the distance
// matrix, drop the return leg to the start, and solve.
func PlanTour(
	ctx context.Context,
	req PlanTourRequest,
	source ports.PointSource,
	assembler *MatrixAssembler,
	store ports.MatrixStore,
	solver ports.TourSolver,
) (_ *domain.TourPlan, err error) {
	defer obs.Time(ctx, "tour.PlanTour")(&err)

	if solver == nil {
		return nil, errors.New("plan tour: solver is nil")
	}

	points, err := PreparePoints(ctx, req, source)
	if err != nil {
		return nil, fmt.Errorf("plan tour: %w", err)
	}

	var matrix domain.Matrix
	if req.FetchMatrix {
		if assembler == nil {
			return nil, errors.New("plan tour: matrix assembler is nil")
		}

		matrix, err = assembler.Assemble(ctx, points)
		if err != nil {
			return nil, fmt.Errorf("plan tour: %w", err)
		}

		// Persist the unmodified matrix so a later run can load it.
		if store != nil {
			if err := store.Save(ctx, req.MatrixKey, matrix); err != nil {
				log.Printf("matrix store write failed key=%s: %v", req.MatrixKey, err)
			}
		}
	} else {
		if store == nil {
			return nil, errors.New("plan tour: matrix store is nil")
		}

		matrix, err = store.Load(ctx, req.MatrixKey)
		if err != nil {
			return nil, fmt.Errorf("plan tour: load matrix %q: %w", req.MatrixKey, err)
		}
	}

	n, err := matrix.Size()
	if err != nil {
		return nil, fmt.Errorf("plan tour: %w", err)
	}
	if n != len(points) {
		return nil, fmt.Errorf("plan tour: matrix side %d does not match %d points", n, len(points))
	}

	// The tour need not return to the start.
	if n > 0 {
		if err := ZeroColumn(matrix, 0); err != nil {
			return nil, fmt.Errorf("plan tour: %w", err)
		}
	}

	tour, err := solver.SolveTour(ctx, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan tour: solve: %w", err)
	}

	plan, err := domain.NewTourPlan(points, tour)
	if err != nil {
		return nil, fmt.Errorf("plan tour: %w", err)
	}
	plan.Legs = domain.LegDistances(matrix, tour.Order)

	return plan, nil
}

// FilterExcluded returns the points whose names are not in exclude,
// preserving order. The input is not modified.
func FilterExcluded(points []domain.Point, exclude []string) []domain.Point {
	out := make([]domain.Point, 0, len(points))
	for _, p := range points {
		if slices.Contains(exclude, p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Rotate moves the first k elements to the end, preserving relative order.
// k must satisfy 0 ≤ k < len(items); k = 0 is accepted for an empty slice.
func Rotate[T any](items []T, k int) ([]T, error) {
	if k < 0 || (k > 0 && k >= len(items)) {
		return nil, fmt.Errorf("rotate: offset %d out of range for %d items", k, len(items))
	}

	out := make([]T, 0, len(items))
	out = append(out, items[k:]...)
	out = append(out, items[:k]...)
	return out, nil
}
