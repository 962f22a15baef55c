package services

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Perturbation schemes for neighbor generation.
const (
	PerturbationTwoOpt = "two_opt"
	PerturbationSwap   = "swap"
)

// Cooling rate used when none is configured.
const DefaultCoolingRate = 0.99

const (
	maxNonImprovements        = 3
	innerIterationsMultiplier = 10
	initialTemperatureSamples = 100
	// Probability of accepting an average worsening move at the initial temperature.
	initialAcceptance = 0.5
)

// SimulatedAnnealingSolver approximates a shortest closed tour over a
// distance matrix. Index 0 is pinned as the first stop; only positions
// 1..n-1 are permuted.
//
// A solver holds its own random source and is not safe for concurrent use.
type SimulatedAnnealingSolver struct {
	// Alpha is the geometric cooling rate, in (0,1).
	Alpha        float64
	Perturbation string
	Rand         *rand.Rand
	// MaxProcessingTime stops the search early when positive; the current
	// solution is returned.
	MaxProcessingTime time.Duration
}

func NewSimulatedAnnealingSolver(alpha float64) *SimulatedAnnealingSolver {
	return &SimulatedAnnealingSolver{
		Alpha:        alpha,
		Perturbation: PerturbationTwoOpt,
	}
}

// SolveTour returns a permutation starting at 0 and its closed-loop distance,
// including the leg from the last stop back to index 0.
func (s *SimulatedAnnealingSolver) SolveTour(ctx context.Context, m domain.Matrix) (_ domain.Tour, err error) {
	defer obs.Time(ctx, "tour.SimulatedAnnealing")(&err)

	n, err := m.Size()
	if err != nil {
		return domain.Tour{}, fmt.Errorf("simulated annealing: %w", err)
	}

	if !(s.Alpha > 0 && s.Alpha < 1) {
		return domain.Tour{}, fmt.Errorf("simulated annealing: alpha must be in (0,1), got %v", s.Alpha)
	}

	perturb, err := s.perturbation()
	if err != nil {
		return domain.Tour{}, err
	}

	// Fewer than three stops leave nothing to permute.
	if n < 3 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return domain.Tour{Order: order, DistanceMeters: permutationDistance(m, order)}, nil
	}

	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	x := initialPermutation(n, rng)
	fx := permutationDistance(m, x)
	temp := initialTemperature(m, x, fx, perturb, rng)

	var deadline time.Time
	if s.MaxProcessingTime > 0 {
		deadline = time.Now().Add(s.MaxProcessingTime)
	}

	kInnerMin := n
	kInnerMax := innerIterationsMultiplier * n
	noImprovements := 0
	stopEarly := false

	for noImprovements < maxNonImprovements && !stopEarly {
		if err := ctx.Err(); err != nil {
			return domain.Tour{}, fmt.Errorf("simulated annealing: %w", err)
		}

		accepted := 0
		for k := 0; k < kInnerMax; k++ {
			if !deadline.IsZero() && time.Now().After(deadline) {
				stopEarly = true
				break
			}

			xn := perturb(x, rng)
			fn := permutationDistance(m, xn)
			if accept(fx, fn, temp, rng) {
				x, fx = xn, fn
				accepted++
				noImprovements = 0
			}

			if accepted >= kInnerMin {
				break
			}
		}

		temp *= s.Alpha
		if accepted == 0 {
			noImprovements++
		}
	}

	return domain.Tour{Order: x, DistanceMeters: fx}, nil
}

func (s *SimulatedAnnealingSolver) perturbation() (func([]int, *rand.Rand) []int, error) {
	switch s.Perturbation {
	case "", PerturbationTwoOpt:
		return twoOptNeighbor, nil
	case PerturbationSwap:
		return swapNeighbor, nil
	default:
		return nil, fmt.Errorf("simulated annealing: unknown perturbation scheme %q", s.Perturbation)
	}
}

// initialPermutation returns [0] followed by a shuffle of 1..n-1.
func initialPermutation(n int, rng *rand.Rand) []int {
	x := make([]int, n)
	for i := range x {
		x[i] = i
	}
	rng.Shuffle(n-1, func(i, j int) { x[i+1], x[j+1] = x[j+1], x[i+1] })
	return x
}

// initialTemperature picks T0 so that an average-sized move is accepted
// with probability initialAcceptance.
func initialTemperature(m domain.Matrix, x []int, fx int, perturb func([]int, *rand.Rand) []int, rng *rand.Rand) float64 {
	var sum float64
	for range initialTemperatureSamples {
		xn := perturb(x, rng)
		sum += float64(permutationDistance(m, xn) - fx)
	}
	mean := math.Abs(sum / initialTemperatureSamples)
	return -mean / math.Log(initialAcceptance)
}

// accept takes every improving move and a worsening one with probability
// exp(-Δ/T). Neutral moves are rejected so that plateaus still count as idle loops.
func accept(fx, fn int, temp float64, rng *rand.Rand) bool {
	dfx := float64(fn - fx)
	return dfx < 0 || (dfx > 0 && rng.Float64() <= math.Exp(-dfx/temp))
}

// distinctPositions returns i < j drawn from 1..n-1.
func distinctPositions(n int, rng *rand.Rand) (int, int) {
	i := 1 + rng.IntN(n-1)
	j := 1 + rng.IntN(n-2)
	if j >= i {
		j++
	}
	if i > j {
		i, j = j, i
	}
	return i, j
}

// twoOptNeighbor reverses the segment x[i..j].
func twoOptNeighbor(x []int, rng *rand.Rand) []int {
	i, j := distinctPositions(len(x), rng)
	xn := append([]int(nil), x...)
	for ; i < j; i, j = i+1, j-1 {
		xn[i], xn[j] = xn[j], xn[i]
	}
	return xn
}

// swapNeighbor exchanges x[i] and x[j].
func swapNeighbor(x []int, rng *rand.Rand) []int {
	i, j := distinctPositions(len(x), rng)
	xn := append([]int(nil), x...)
	xn[i], xn[j] = xn[j], xn[i]
	return xn
}

// permutationDistance sums the closed loop x[0] → … → x[n-1] → x[0].
func permutationDistance(m domain.Matrix, x []int) int {
	if len(x) == 0 {
		return 0
	}
	total := 0
	for k := range x {
		total += m[x[k]][x[(k+1)%len(x)]]
	}
	return total
}
