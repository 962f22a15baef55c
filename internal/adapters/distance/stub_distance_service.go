package distance

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/ports"
	"fmt"
	"strconv"
)

// StubDistanceService answers distance queries from a fixed matrix, keyed by
// the coordinates of the points the matrix was built for. It is intended for
// tests and offline runs.
type StubDistanceService struct {
	index  map[domain.Coordinates]int
	matrix domain.Matrix

	// Status overrides the top-level response status when non-empty.
	Status string
	// Calls counts ComputeDistances invocations.
	Calls int
	// Requests records the (origins, destinations) sizes of each call.
	Requests [][2]int
}

func NewStubDistanceService(points []domain.Point, m domain.Matrix) *StubDistanceService {
	index := make(map[domain.Coordinates]int, len(points))
	for i, p := range points {
		if _, ok := index[p.Location]; !ok {
			index[p.Location] = i
		}
	}
	return &StubDistanceService{index: index, matrix: m}
}

func (s *StubDistanceService) ComputeDistances(
	ctx context.Context,
	origins []domain.Coordinates,
	destinations []domain.Coordinates,
	mode string,
) (*ports.DistanceMatrixResponse, error) {
	s.Calls++
	s.Requests = append(s.Requests, [2]int{len(origins), len(destinations)})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.Status != "" && s.Status != ports.StatusOK {
		return &ports.DistanceMatrixResponse{Status: s.Status}, nil
	}

	resp := &ports.DistanceMatrixResponse{
		Status:               ports.StatusOK,
		OriginAddresses:      make([]string, 0, len(origins)),
		DestinationAddresses: make([]string, 0, len(destinations)),
		Rows:                 make([]ports.DistanceMatrixRow, 0, len(origins)),
	}
	for _, d := range destinations {
		resp.DestinationAddresses = append(resp.DestinationAddresses, d.LatLonString())
	}

	for _, o := range origins {
		oi, ok := s.index[o]
		if !ok {
			return nil, fmt.Errorf("stub distance service: unknown origin %s", o.LatLonString())
		}
		resp.OriginAddresses = append(resp.OriginAddresses, o.LatLonString())

		row := ports.DistanceMatrixRow{Elements: make([]ports.DistanceMatrixElement, 0, len(destinations))}
		for _, d := range destinations {
			di, ok := s.index[d]
			if !ok {
				return nil, fmt.Errorf("stub distance service: unknown destination %s", d.LatLonString())
			}

			meters := s.matrix[oi][di]
			row.Elements = append(row.Elements, ports.DistanceMatrixElement{
				Status:   ports.StatusOK,
				Distance: &ports.TextValue{Text: formatMeters(meters), Value: meters},
			})
		}
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

// formatMeters renders a distance the way distance-matrix services do ("850 m", "1.2 km").
func formatMeters(m int) string {
	if m < 1000 {
		return strconv.Itoa(m) + " m"
	}
	return strconv.FormatFloat(float64(m)/1000, 'f', 1, 64) + " km"
}
