package main

import (
	"bytes"
	"cows-tsp/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintTour(t *testing.T) {
	plan := &domain.TourPlan{
		Stops: []domain.Point{{Name: "A"}, {Name: "C"}, {Name: "B"}},
		Tour:  domain.Tour{Order: []int{0, 2, 1}, DistanceMeters: 1234},
	}

	var buf bytes.Buffer
	require.NoError(t, printTour(&buf, plan))
	require.Equal(t, "A\nC\nB\n1234 meters\n", buf.String())
}
