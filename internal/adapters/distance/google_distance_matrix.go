package distance

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GoogleDistanceMatrixService implements DistanceMatrixService using the
// Google Maps Distance Matrix API. The response is passed through unchanged;
// the caller decides what to do with a non-OK status.
type GoogleDistanceMatrixService struct {
	client  httpClient
	apiKey  string
	baseURL string
}

func NewGoogleDistanceMatrixService(apiKey string) (*GoogleDistanceMatrixService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is empty")
	}

	return &GoogleDistanceMatrixService{
		client:  newHTTPClient(""),
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
	}, nil
}

func (g *GoogleDistanceMatrixService) ComputeDistances(
	ctx context.Context,
	origins []domain.Coordinates,
	destinations []domain.Coordinates,
	mode string,
) (_ *ports.DistanceMatrixResponse, err error) {
	defer obs.Time(ctx, "google.ComputeDistances")(&err)

	if len(origins) == 0 || len(destinations) == 0 {
		return nil, errors.New("google distance matrix: origins and destinations must be non-empty")
	}

	endpoint := g.baseURL + "/maps/api/distancematrix/json"

	q := url.Values{}
	q.Set("origins", joinLatLon(origins))
	q.Set("destinations", joinLatLon(destinations))
	if mode != "" {
		q.Set("mode", mode)
	}
	q.Set("key", g.apiKey)

	resp, err := g.client.send(ctx, http.MethodGet, endpoint, q, nil)
	if err != nil {
		return nil, fmt.Errorf("google distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded ports.DistanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode google distance matrix response: %w", err)
	}

	return &decoded, nil
}

// joinLatLon formats coordinates as "lat,lon|lat,lon|...".
func joinLatLon(coords []domain.Coordinates) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, c.LatLonString())
	}
	return strings.Join(parts, "|")
}
