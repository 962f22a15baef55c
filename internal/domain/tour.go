package domain

import "fmt"

// Dense square matrix of walking distances in meters.
// Matrix[i][j] is the distance from point i to point j.
type Matrix [][]int

// NewMatrix allocates an n×n zero matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// Size returns the side length of a square matrix, or an error if the
// matrix is ragged or not square.
func (m Matrix) Size() (int, error) {
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return 0, fmt.Errorf("matrix: row %d has %d columns, want %d", i, len(row), n)
		}
	}
	return n, nil
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Represents the output of a tour solver.
// Order is a permutation of point indices; DistanceMeters is the aggregate
// length of the closed loop as measured on the matrix handed to the solver.
// It is immutable planning data.
type Tour struct {
	Order          []int
	DistanceMeters int
}

// Represents a solved tour resolved back to named points.
// Stops[i] is the point at Tour.Order[i]; Legs[i] is the distance walked
// to reach it from Stops[i-1].
type TourPlan struct {
	Stops []Point
	Legs  []int
	Tour  Tour
}

// Build a TourPlan by resolving tour indices against the point sequence
// the matrix was built from.
func NewTourPlan(points []Point, tour Tour) (*TourPlan, error) {
	stops := make([]Point, 0, len(tour.Order))
	for _, idx := range tour.Order {
		if idx < 0 || idx >= len(points) {
			return nil, fmt.Errorf("tour plan: index %d out of range (points=%d)", idx, len(points))
		}
		stops = append(stops, points[idx])
	}

	return &TourPlan{Stops: stops, Tour: tour}, nil
}

// LegDistances returns, for each stop in order, the distance from the
// previous stop; the first entry is 0.
func LegDistances(m Matrix, order []int) []int {
	legs := make([]int, len(order))
	for k := 1; k < len(order); k++ {
		legs[k] = m[order[k-1]][order[k]]
	}
	return legs
}
