package distance

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/ports"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestORSComputeDistances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/matrix/foot-walking", r.URL.Path)
		require.Equal(t, "ors-key", r.Header.Get("Authorization"))

		var req matrixRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// lon,lat order; origins then destinations
		require.Equal(t, [][]float64{{2, 1}, {4, 3}, {6, 5}}, req.Locations)
		require.Equal(t, []int{0, 1}, req.Sources)
		require.Equal(t, []int{2}, req.Destinations)

		_, _ = w.Write([]byte(`{
			"distances": [[1234.4], [null]],
			"durations": [[95.6], [null]],
			"sources": [{"location": [2, 1], "name": "Main St"}, {"location": [4, 3]}],
			"destinations": [{"location": [6, 5], "name": "Elm St"}]
		}`))
	}))
	defer srv.Close()

	o, err := NewORSDistanceMatrixService("ors-key")
	require.NoError(t, err)
	o.baseURL = srv.URL
	o.client.retry.backoff = time.Millisecond

	resp, err := o.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		[]domain.Coordinates{{Lat: 5, Lon: 6}},
		ports.TravelModeWalking,
	)
	require.NoError(t, err)
	require.Equal(t, ports.StatusOK, resp.Status)
	require.Equal(t, []string{"Main St", "3,4"}, resp.OriginAddresses)
	require.Equal(t, []string{"Elm St"}, resp.DestinationAddresses)

	require.Len(t, resp.Rows, 2)
	first := resp.Rows[0].Elements[0]
	require.Equal(t, ports.StatusOK, first.Status)
	require.Equal(t, 1234, first.Distance.Value)
	require.Equal(t, "1.2 km", first.Distance.Text)
	require.Equal(t, 96, first.Duration.Value)
	require.Equal(t, "2 mins", first.Duration.Text)

	unroutable := resp.Rows[1].Elements[0]
	require.Equal(t, statusZeroResults, unroutable.Status)
	require.Nil(t, unroutable.Distance)
	require.Nil(t, unroutable.Duration)
}

func TestORSRejectsShortResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"distances": [[1]], "durations": [[1]]}`))
	}))
	defer srv.Close()

	o, err := NewORSDistanceMatrixService("ors-key")
	require.NoError(t, err)
	o.baseURL = srv.URL

	_, err = o.ComputeDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		[]domain.Coordinates{{Lat: 5, Lon: 6}},
		ports.TravelModeWalking,
	)
	require.Error(t, err)
}

func TestORSProfile(t *testing.T) {
	p, err := orsProfile(ports.TravelModeWalking)
	require.NoError(t, err)
	require.Equal(t, "foot-walking", p)

	p, err = orsProfile(ports.TravelModeDriving)
	require.NoError(t, err)
	require.Equal(t, "driving-car", p)

	_, err = orsProfile("teleport")
	require.Error(t, err)
}
