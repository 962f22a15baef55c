package matrixstore

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PostgresMatrixStore persists matrices cell by cell in the distance_matrix
// table (see repositories.InitSchema).
type PostgresMatrixStore struct {
	DB *sql.DB
}

func NewPostgresMatrixStore(db *sql.DB) *PostgresMatrixStore {
	return &PostgresMatrixStore{DB: db}
}

// Load reads the matrix stored under key.
func (s *PostgresMatrixStore) Load(ctx context.Context, key string) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "matrix.postgres.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres matrix store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("load matrix: key must not be empty")
	}

	var size int
	err = s.DB.QueryRowContext(ctx, `
	SELECT size
    FROM distance_matrix_meta
    WHERE matrix_key = $1;
	`, key).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load matrix %q: %w", key, ports.ErrMatrixNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load matrix: query distance_matrix_meta table: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT origin_idx, destination_idx, distance_meters
    FROM distance_matrix
    WHERE matrix_key = $1;
	`, key)
	if err != nil {
		return nil, fmt.Errorf("load matrix: query distance_matrix table: %w", err)
	}
	defer rows.Close()

	cells := make([]matrixCell, 0, size*size)
	for rows.Next() {
		var c matrixCell
		if err := rows.Scan(&c.Origin, &c.Destination, &c.Meters); err != nil {
			return nil, fmt.Errorf("load matrix: scan rows: %w", err)
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load matrix: row iteration: %w", err)
	}

	m, err := buildMatrix(size, cells)
	if err != nil {
		return nil, fmt.Errorf("load matrix %q: %w", key, err)
	}
	return m, nil
}

// matrixCell is one distance_matrix row.
type matrixCell struct {
	Origin      int
	Destination int
	Meters      int
}

// buildMatrix places cells into a size×size matrix. Every position must be
// covered exactly once.
func buildMatrix(size int, cells []matrixCell) (domain.Matrix, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative size %d", size)
	}

	m := domain.NewMatrix(size)
	seen := make([]bool, size*size)
	for _, c := range cells {
		if c.Origin < 0 || c.Origin >= size || c.Destination < 0 || c.Destination >= size {
			return nil, fmt.Errorf("cell (%d,%d) out of range for size %d", c.Origin, c.Destination, size)
		}
		k := c.Origin*size + c.Destination
		if seen[k] {
			return nil, fmt.Errorf("duplicate cell (%d,%d)", c.Origin, c.Destination)
		}
		seen[k] = true
		m[c.Origin][c.Destination] = c.Meters
	}

	if len(cells) != size*size {
		return nil, fmt.Errorf("got %d cells, want %d", len(cells), size*size)
	}
	return m, nil
}

// Save replaces the matrix stored under key in a single transaction.
func (s *PostgresMatrixStore) Save(ctx context.Context, key string, m domain.Matrix) (err error) {
	defer obs.Time(ctx, "matrix.postgres.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres matrix store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("save matrix: key must not be empty")
	}

	size, err := m.Size()
	if err != nil {
		return fmt.Errorf("save matrix: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save matrix: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM distance_matrix WHERE matrix_key = $1;`, key); err != nil {
		return fmt.Errorf("save matrix: clear previous cells: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO distance_matrix_meta (matrix_key, size, saved_at)
    VALUES ($1, $2, now())
	ON CONFLICT (matrix_key) DO UPDATE
	SET size = EXCLUDED.size,
		saved_at = EXCLUDED.saved_at;
	`, key, size); err != nil {
		return fmt.Errorf("save matrix: upsert meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO distance_matrix (matrix_key, origin_idx, destination_idx, distance_meters)
    VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("save matrix: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, row := range m {
		for j, meters := range row {
			if _, err := stmt.ExecContext(ctx, key, i, j, meters); err != nil {
				return fmt.Errorf("save matrix cell=(%d,%d): %w", i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save matrix commit: %w", err)
	}

	return nil
}
