// Package app wires configuration to concrete adapters. It is shared by the
// commands under cmd/.
package app

import (
	"cows-tsp/internal/adapters/distance"
	"cows-tsp/internal/adapters/matrixstore"
	"cows-tsp/internal/config"
	"cows-tsp/internal/platform/db"
	"cows-tsp/internal/ports"
	"cows-tsp/internal/services"
	"errors"
	"fmt"
	"io"
)

// Cows excluded from the tour.
var Exclude = []string{
	"A Midsummer's Eve",
	"Jordan's Pop Art",
	"The Eliot",
	"Gridiron Grazer",
	"Luna the Mooon Cow!",
	"GAIA",
}

const (
	// StartIndex rotates the filtered list so the tour begins at this cow.
	StartIndex = 38
	// ExpectedCount guards against the exclusion list drifting from the data.
	ExpectedCount = 68
	CoolingRate   = services.DefaultCoolingRate
)

// PlanRequest returns the fixed tour request for cfg's matrix settings.
func PlanRequest(cfg config.Config) services.PlanTourRequest {
	return services.PlanTourRequest{
		Exclude:       Exclude,
		StartIndex:    StartIndex,
		ExpectedCount: ExpectedCount,
		FetchMatrix:   cfg.MatrixSource == config.MatrixSourceFetch,
		MatrixKey:     cfg.MatrixKey,
	}
}

// NewDistanceService returns the distance service selected by cfg's
// credentials, or nil if none is configured.
func NewDistanceService(cfg config.Config) (ports.DistanceMatrixService, error) {
	switch cfg.Provider() {
	case config.ProviderGoogle:
		return distance.NewGoogleDistanceMatrixService(cfg.GoogleKey)
	case config.ProviderORS:
		return distance.NewORSDistanceMatrixService(cfg.ORSKey)
	default:
		return nil, nil
	}
}

// NewMatrixStore opens the matrix store selected by cfg. The closer
// releases any connection it holds.
func NewMatrixStore(cfg config.Config) (ports.MatrixStore, io.Closer, error) {
	switch cfg.MatrixStore {
	case config.MatrixStoreFile:
		return matrixstore.NewFileMatrixStore(cfg.MatrixDir), io.NopCloser(nil), nil
	case config.MatrixStorePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("new matrix store: %w", err)
		}
		return matrixstore.NewPostgresMatrixStore(conn), conn, nil
	case config.MatrixStoreRedis:
		store, err := matrixstore.NewRedisMatrixStoreFromURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("new matrix store: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, errors.New("new matrix store: unknown backend " + cfg.MatrixStore)
	}
}
