package services

import (
	"context"
	"cows-tsp/internal/domain"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// lineMatrix places n points 100 m apart on a line.
func lineMatrix(n int) domain.Matrix {
	m := domain.NewMatrix(n)
	for i := range n {
		for j := range n {
			d := i - j
			if d < 0 {
				d = -d
			}
			m[i][j] = 100 * d
		}
	}
	return m
}

func requirePermutation(t *testing.T, order []int, n int) {
	t.Helper()
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, sorted)
}

func TestSimulatedAnnealingFindsOpenPathOnLine(t *testing.T) {
	m := lineMatrix(7)
	require.NoError(t, ZeroColumn(m, 0))

	for _, scheme := range []string{PerturbationTwoOpt, PerturbationSwap} {
		t.Run(scheme, func(t *testing.T) {
			solver := NewSimulatedAnnealingSolver(DefaultCoolingRate)
			solver.Perturbation = scheme
			solver.Rand = seededRand(42)

			tour, err := solver.SolveTour(context.Background(), m)
			require.NoError(t, err)
			require.Equal(t, 0, tour.Order[0])
			requirePermutation(t, tour.Order, 7)
			require.Equal(t, permutationDistance(m, tour.Order), tour.DistanceMeters)
			require.GreaterOrEqual(t, tour.DistanceMeters, 600)
			if scheme == PerturbationTwoOpt {
				require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, tour.Order)
			}
		})
	}
}

func TestSimulatedAnnealingStopsWithCoLocatedPoints(t *testing.T) {
	// Points 2 and 3 share a location, so swapping them never changes the length.
	m := domain.Matrix{
		{0, 100, 300, 300},
		{100, 0, 200, 200},
		{300, 200, 0, 0},
		{300, 200, 0, 0},
	}
	require.NoError(t, ZeroColumn(m, 0))

	for seed := uint64(1); seed <= 5; seed++ {
		solver := NewSimulatedAnnealingSolver(DefaultCoolingRate)
		solver.Rand = seededRand(seed)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		tour, err := solver.SolveTour(ctx, m)
		cancel()

		require.NoError(t, err, "seed %d", seed)
		requirePermutation(t, tour.Order, 4)
		require.Equal(t, 0, tour.Order[0])
		require.Equal(t, 300, tour.DistanceMeters, "seed %d", seed)
	}
}

func TestAcceptRejectsNeutralMoves(t *testing.T) {
	rng := seededRand(7)
	for range 1000 {
		require.False(t, accept(500, 500, 1e9, rng))
		require.True(t, accept(500, 499, 1e-9, rng))
		require.False(t, accept(500, 10_000, 1e-9, rng))
	}
}

func TestSimulatedAnnealingDeterministicWithSeed(t *testing.T) {
	m := lineMatrix(15)
	m[3][9], m[9][3] = 10, 10

	run := func() domain.Tour {
		solver := NewSimulatedAnnealingSolver(0.9)
		solver.Rand = seededRand(1)
		tour, err := solver.SolveTour(context.Background(), m)
		require.NoError(t, err)
		return tour
	}

	require.Equal(t, run(), run())
}

func TestSimulatedAnnealingSmallInputs(t *testing.T) {
	solver := NewSimulatedAnnealingSolver(DefaultCoolingRate)

	tour, err := solver.SolveTour(context.Background(), domain.Matrix{})
	require.NoError(t, err)
	require.Empty(t, tour.Order)
	require.Zero(t, tour.DistanceMeters)

	tour, err = solver.SolveTour(context.Background(), domain.Matrix{{4}})
	require.NoError(t, err)
	require.Equal(t, []int{0}, tour.Order)
	require.Equal(t, 4, tour.DistanceMeters)

	tour, err = solver.SolveTour(context.Background(), domain.Matrix{{0, 5}, {0, 0}})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, tour.Order)
	require.Equal(t, 5, tour.DistanceMeters)
}

func TestSimulatedAnnealingValidatesInput(t *testing.T) {
	ctx := context.Background()

	_, err := NewSimulatedAnnealingSolver(DefaultCoolingRate).SolveTour(ctx, domain.Matrix{{0, 1}})
	require.Error(t, err)

	_, err = NewSimulatedAnnealingSolver(1.0).SolveTour(ctx, lineMatrix(4))
	require.Error(t, err)

	solver := NewSimulatedAnnealingSolver(DefaultCoolingRate)
	solver.Perturbation = "or_opt"
	_, err = solver.SolveTour(ctx, lineMatrix(4))
	require.Error(t, err)
}

func TestSimulatedAnnealingHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedAnnealingSolver(DefaultCoolingRate).SolveTour(ctx, lineMatrix(10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedAnnealingMaxProcessingTime(t *testing.T) {
	solver := NewSimulatedAnnealingSolver(0.999999)
	solver.MaxProcessingTime = time.Nanosecond
	solver.Rand = seededRand(3)

	tour, err := solver.SolveTour(context.Background(), lineMatrix(30))
	require.NoError(t, err)
	requirePermutation(t, tour.Order, 30)
}

func TestNeighborsKeepStartFixed(t *testing.T) {
	rng := seededRand(9)
	x := []int{0, 1, 2, 3, 4, 5}

	for range 200 {
		for _, perturb := range []func([]int, *rand.Rand) []int{twoOptNeighbor, swapNeighbor} {
			xn := perturb(x, rng)
			require.Equal(t, 0, xn[0])
			require.NotEqual(t, x, xn)
			requirePermutation(t, xn, len(x))
		}
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, x, "input is not modified")
}

func TestNearestNeighborSolver(t *testing.T) {
	m := domain.Matrix{
		{0, 5, 7, 2},
		{5, 0, 3, 4},
		{7, 3, 0, 6},
		{2, 4, 6, 0},
	}
	require.NoError(t, ZeroColumn(m, 0))

	tour, err := NearestNeighborSolver{}.SolveTour(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, []int{0, 3, 1, 2}, tour.Order)
	require.Equal(t, 2+4+3, tour.DistanceMeters)

	tour, err = NearestNeighborSolver{}.SolveTour(context.Background(), domain.Matrix{})
	require.NoError(t, err)
	require.Empty(t, tour.Order)
}
