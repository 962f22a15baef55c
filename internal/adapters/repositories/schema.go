package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema used by the matrix store.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDistanceMatrixQuery := `
	CREATE TABLE IF NOT EXISTS distance_matrix (
        matrix_key TEXT NOT NULL,
        origin_idx INTEGER NOT NULL,
        destination_idx INTEGER NOT NULL,
        distance_meters INTEGER NOT NULL,
        PRIMARY KEY (matrix_key, origin_idx, destination_idx)
    );
	`

	createMatrixMetaQuery := `
	CREATE TABLE IF NOT EXISTS distance_matrix_meta (
        matrix_key TEXT PRIMARY KEY,
        size INTEGER NOT NULL,
        saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	statements := []string{
		createDistanceMatrixQuery,
		createMatrixMetaQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
