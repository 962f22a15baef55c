package distance

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Element status used when ORS cannot route between two locations; such
// elements carry no distance or duration.
const statusZeroResults = "ZERO_RESULTS"

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
	Units        string      `json:"units"`
}

type matrixLocation struct {
	Location []float64 `json:"location"`
	Name     string    `json:"name"`
}

type matrixResponse struct {
	Distances    [][]*float64     `json:"distances"`
	Durations    [][]*float64     `json:"durations"`
	Sources      []matrixLocation `json:"sources"`
	Destinations []matrixLocation `json:"destinations"`
}

// ORSDistanceMatrixService implements DistanceMatrixService using the
// OpenRouteService matrix endpoint. ORS has no top-level status field, so a
// successfully decoded response is reported as OK and unroutable cells are
// marked ZERO_RESULTS.
type ORSDistanceMatrixService struct {
	client  httpClient
	baseURL string
}

func NewORSDistanceMatrixService(apiKey string) (*ORSDistanceMatrixService, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSDistanceMatrixService{
		client:  newHTTPClient(apiKey),
		baseURL: "https://api.openrouteservice.org",
	}, nil
}

// orsProfile maps a travel mode to an ORS routing profile.
func orsProfile(mode string) (string, error) {
	switch mode {
	case "", ports.TravelModeWalking:
		return "foot-walking", nil
	case ports.TravelModeDriving:
		return "driving-car", nil
	default:
		return "", fmt.Errorf("ORS: unsupported travel mode %q", mode)
	}
}

func (o *ORSDistanceMatrixService) ComputeDistances(
	ctx context.Context,
	origins []domain.Coordinates,
	destinations []domain.Coordinates,
	mode string,
) (_ *ports.DistanceMatrixResponse, err error) {
	defer obs.Time(ctx, "ors.ComputeDistances")(&err)

	if len(origins) == 0 || len(destinations) == 0 {
		return nil, errors.New("ORS matrix: origins and destinations must be non-empty")
	}

	profile, err := orsProfile(mode)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, profile)

	// Origins first, then destinations; sources/destinations index into locations.
	locations := make([][]float64, 0, len(origins)+len(destinations))
	sources := make([]int, 0, len(origins))
	for _, c := range origins {
		sources = append(sources, len(locations))
		locations = append(locations, c.CoordsToList())
	}
	destIdx := make([]int, 0, len(destinations))
	for _, c := range destinations {
		destIdx = append(destIdx, len(locations))
		locations = append(locations, c.CoordsToList())
	}

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      sources,
		Units:        "m",
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.client.send(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != len(origins) || len(mr.Durations) != len(origins) {
		return nil, fmt.Errorf(
			"expected %d source rows; got distances=%d durations=%d",
			len(origins), len(mr.Distances), len(mr.Durations),
		)
	}

	out := &ports.DistanceMatrixResponse{
		Status:               ports.StatusOK,
		OriginAddresses:      addresses(mr.Sources, origins),
		DestinationAddresses: addresses(mr.Destinations, destinations),
		Rows:                 make([]ports.DistanceMatrixRow, 0, len(origins)),
	}

	for i := range origins {
		rowDistances := mr.Distances[i]
		rowDurations := mr.Durations[i]

		if len(rowDistances) != len(destinations) || len(rowDurations) != len(destinations) {
			return nil, fmt.Errorf(
				"row %d lengths do not match destinations: distances=%d durations=%d destinations=%d",
				i, len(rowDistances), len(rowDurations), len(destinations),
			)
		}

		row := ports.DistanceMatrixRow{Elements: make([]ports.DistanceMatrixElement, 0, len(destinations))}
		for j := range destinations {
			metersPtr := rowDistances[j]
			secondsPtr := rowDurations[j]

			if metersPtr == nil || secondsPtr == nil {
				row.Elements = append(row.Elements, ports.DistanceMatrixElement{Status: statusZeroResults})
				continue
			}

			// ORS returns float metrics; round to nearest integer for domain consistency.
			meters := int(math.Round(*metersPtr))
			seconds := int(math.Round(*secondsPtr))
			row.Elements = append(row.Elements, ports.DistanceMatrixElement{
				Status:   ports.StatusOK,
				Distance: &ports.TextValue{Text: formatMeters(meters), Value: meters},
				Duration: &ports.TextValue{Text: formatSeconds(seconds), Value: seconds},
			})
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// addresses prefers the snapped street name ORS reports, falling back to
// the requested coordinates.
func addresses(meta []matrixLocation, coords []domain.Coordinates) []string {
	out := make([]string, 0, len(coords))
	for i, c := range coords {
		if i < len(meta) && meta[i].Name != "" {
			out = append(out, meta[i].Name)
			continue
		}
		out = append(out, c.LatLonString())
	}
	return out
}

func formatSeconds(s int) string {
	mins := (s + 30) / 60
	if mins == 1 {
		return "1 min"
	}
	return strconv.Itoa(mins) + " mins"
}
