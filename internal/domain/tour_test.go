package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTourPlan(t *testing.T) {
	// build test data
	points := []Point{
		{Name: "A", Location: Coordinates{Lat: 1, Lon: 2}},
		{Name: "B", Location: Coordinates{Lat: 3, Lon: 4}},
		{Name: "C", Location: Coordinates{Lat: 5, Lon: 6}},
	}
	tour := Tour{Order: []int{0, 2, 1}, DistanceMeters: 10}

	// call the method under test
	plan, err := NewTourPlan(points, tour)
	require.NoError(t, err)

	// verify behavior
	names := make([]string, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"A", "C", "B"}, names)
	require.Equal(t, 10, plan.Tour.DistanceMeters)
}

func TestNewTourPlanRejectsOutOfRangeIndex(t *testing.T) {
	points := []Point{{Name: "A"}}

	_, err := NewTourPlan(points, Tour{Order: []int{0, 1}})
	require.Error(t, err)
}

func TestMatrixSize(t *testing.T) {
	n, err := NewMatrix(3).Size()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = Matrix{{0, 1}, {1}}.Size()
	require.Error(t, err)

	_, err = Matrix{{0, 1, 2}, {1, 0, 2}}.Size()
	require.Error(t, err)
}

func TestMatrixCloneIsDeep(t *testing.T) {
	m := Matrix{{0, 5}, {5, 0}}
	c := m.Clone()
	c[1][0] = 99

	require.Equal(t, 5, m[1][0])
}

func TestCoordinatesFormatting(t *testing.T) {
	c := Coordinates{Lat: 42.3601, Lon: -71.0589}

	require.Equal(t, "42.3601,-71.0589", c.LatLonString())
	require.Equal(t, []float64{-71.0589, 42.3601}, c.CoordsToList())
}

func TestLegDistances(t *testing.T) {
	m := Matrix{
		{0, 5, 7},
		{0, 0, 3},
		{0, 3, 0},
	}

	require.Equal(t, []int{0, 5, 3}, LegDistances(m, []int{0, 1, 2}))
	require.Equal(t, []int{}, LegDistances(m, []int{}))
}
