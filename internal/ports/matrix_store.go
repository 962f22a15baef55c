package ports

import (
	"context"
	"cows-tsp/internal/domain"
	"errors"
)

// ErrMatrixNotFound is returned by MatrixStore.Load when no matrix is stored under the key.
var ErrMatrixNotFound = errors.New("matrix not found")

// Port: persistence for assembled distance matrices, so a later run can
// skip re-querying the distance service.
type MatrixStore interface {
	Save(ctx context.Context, key string, m domain.Matrix) error
	Load(ctx context.Context, key string) (domain.Matrix, error)
}
