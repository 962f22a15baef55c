package distance

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/ports"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestGoogle(t *testing.T, h http.HandlerFunc) *GoogleDistanceMatrixService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewGoogleDistanceMatrixService("test-key")
	require.NoError(t, err)
	g.baseURL = srv.URL
	g.client.retry.backoff = time.Millisecond
	return g
}

func TestGoogleComputeDistances(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "1,2|3,4", q.Get("origins"))
		require.Equal(t, "5,6", q.Get("destinations"))
		require.Equal(t, "walking", q.Get("mode"))
		require.Equal(t, "test-key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"origin_addresses": ["A St", "B St"],
			"destination_addresses": ["C St"],
			"rows": [
				{"elements": [{"status": "OK", "distance": {"text": "7 m", "value": 7}, "duration": {"text": "1 min", "value": 6}}]},
				{"elements": [{"status": "OK", "distance": {"text": "3 m", "value": 3}, "duration": {"text": "1 min", "value": 2}}]}
			]
		}`))
	})

	resp, err := g.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		[]domain.Coordinates{{Lat: 5, Lon: 6}},
		ports.TravelModeWalking,
	)
	require.NoError(t, err)
	require.Equal(t, ports.StatusOK, resp.Status)
	require.Equal(t, []string{"A St", "B St"}, resp.OriginAddresses)
	require.Len(t, resp.Rows, 2)
	require.Equal(t, 7, resp.Rows[0].Elements[0].Distance.Value)
	require.Equal(t, 3, resp.Rows[1].Elements[0].Distance.Value)
}

func TestGoogleUnroutableElementHasNoDistance(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [
				{"status": "OK", "distance": {"text": "4.2 km", "value": 4200}},
				{"status": "ZERO_RESULTS"}
			]}]
		}`))
	})

	resp, err := g.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		[]domain.Coordinates{{Lat: 3, Lon: 4}, {Lat: 5, Lon: 6}},
		ports.TravelModeWalking,
	)
	require.NoError(t, err)

	elements := resp.Rows[0].Elements
	require.NotNil(t, elements[0].Distance)
	require.Equal(t, 4200, elements[0].Distance.Value)
	require.Equal(t, "ZERO_RESULTS", elements[1].Status)
	require.Nil(t, elements[1].Distance)
}

func TestGooglePassesThroughNonOKStatus(t *testing.T) {
	var calls atomic.Int32
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(ports.DistanceMatrixResponse{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		})
	})

	resp, err := g.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		ports.TravelModeWalking,
	)
	require.NoError(t, err)
	require.Equal(t, "REQUEST_DENIED", resp.Status)
	require.Equal(t, int32(1), calls.Load())
}

func TestGoogleRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":0}}]}]}`))
	})

	resp, err := g.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		ports.TravelModeWalking,
	)
	require.NoError(t, err)
	require.Equal(t, ports.StatusOK, resp.Status)
	require.Equal(t, int32(3), calls.Load())
}

func TestGoogleDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := g.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		ports.TravelModeWalking,
	)
	require.Error(t, err)

	var he *statusError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, int32(1), calls.Load())
}

func TestGoogleGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	})

	_, err := g.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		[]domain.Coordinates{{Lat: 1, Lon: 2}},
		ports.TravelModeWalking,
	)
	require.Error(t, err)
	require.Equal(t, int32(g.client.retry.maxAttempts), calls.Load())
}

func TestNewGoogleRequiresKey(t *testing.T) {
	_, err := NewGoogleDistanceMatrixService("  ")
	require.Error(t, err)
}
