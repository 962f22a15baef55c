package services

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"errors"
	"fmt"
	"log"
)

// MatrixAssembler builds a dense distance matrix by querying the distance
// service once per (origin batch, destination batch) pair.
//
// Calls are issued sequentially. There is no caching: every Assemble
// re-queries the service for every batch pair.
type MatrixAssembler struct {
	Service   ports.DistanceMatrixService
	BatchSize int
	Mode      string
}

func NewMatrixAssembler(service ports.DistanceMatrixService) *MatrixAssembler {
	return &MatrixAssembler{
		Service:   service,
		BatchSize: DistanceBatchSize,
		Mode:      ports.TravelModeWalking,
	}
}

// Assemble returns the len(points)×len(points) walking-distance matrix.
// Any non-OK response status aborts assembly; no partial matrix is returned.
func (a *MatrixAssembler) Assemble(ctx context.Context, points []domain.Point) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "matrix.Assemble")(&err)

	if a.Service == nil {
		return nil, errors.New("assemble matrix: distance service is nil")
	}

	mode := a.Mode
	if mode == "" {
		mode = ports.TravelModeWalking
	}

	batches, err := Chunk(points, a.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("assemble matrix: %w", err)
	}

	rowBlocks := make([]domain.Matrix, 0, len(batches))
	for oi, originBatch := range batches {
		origins := domain.Locations(originBatch)

		// One response per destination batch, placed side by side.
		blocks := make([]domain.Matrix, 0, len(batches))
		for di, destinationBatch := range batches {
			destinations := domain.Locations(destinationBatch)

			resp, err := a.Service.ComputeDistances(ctx, origins, destinations, mode)
			if err != nil {
				return nil, fmt.Errorf("assemble matrix: batch (%d,%d): %w", oi, di, err)
			}

			block, err := extractDistances(resp, len(origins), len(destinations))
			if err != nil {
				return nil, fmt.Errorf("assemble matrix: batch (%d,%d): %w", oi, di, err)
			}
			blocks = append(blocks, block)
		}

		rowBlocks = append(rowBlocks, concatColumns(blocks))
	}

	return concatRows(rowBlocks), nil
}

// extractDistances validates the response envelope and returns its
// origins×destinations block of meters.
func extractDistances(resp *ports.DistanceMatrixResponse, nOrigins, nDestinations int) (domain.Matrix, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}

	if resp.Status != ports.StatusOK {
		return nil, &StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}

	if len(resp.Rows) != nOrigins {
		return nil, fmt.Errorf("%w: got %d rows for %d origins", ErrMalformedResponse, len(resp.Rows), nOrigins)
	}

	block := make(domain.Matrix, 0, nOrigins)
	for i, row := range resp.Rows {
		if len(row.Elements) != nDestinations {
			return nil, fmt.Errorf(
				"%w: row %d has %d elements for %d destinations",
				ErrMalformedResponse, i, len(row.Elements), nDestinations,
			)
		}

		values := make([]int, 0, nDestinations)
		for j, el := range row.Elements {
			// Element status is not validated, but a cell without a distance
			// cannot be filled.
			if el.Distance == nil {
				return nil, fmt.Errorf(
					"%w: element (%d,%d) has no distance (status=%s)",
					ErrMalformedResponse, i, j, el.Status,
				)
			}
			if el.Status != ports.StatusOK {
				log.Printf("matrix element status=%s origin=%d destination=%d meters=%d", el.Status, i, j, el.Distance.Value)
			}
			values = append(values, el.Distance.Value)
		}
		block = append(block, values)
	}

	return block, nil
}

// concatColumns joins blocks with equal row counts left to right.
func concatColumns(blocks []domain.Matrix) domain.Matrix {
	if len(blocks) == 0 {
		return domain.Matrix{}
	}

	out := make(domain.Matrix, len(blocks[0]))
	for i := range out {
		for _, b := range blocks {
			out[i] = append(out[i], b[i]...)
		}
	}
	return out
}

// concatRows stacks blocks top to bottom.
func concatRows(blocks []domain.Matrix) domain.Matrix {
	out := domain.Matrix{}
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// ZeroColumn sets m[i][col] = 0 for every row, in place. Zeroing the
// start column lets a closed-loop solver ignore the return leg.
func ZeroColumn(m domain.Matrix, col int) error {
	for i, row := range m {
		if col < 0 || col >= len(row) {
			return fmt.Errorf("zero column: column %d out of range in row %d (len=%d)", col, i, len(row))
		}
		row[col] = 0
	}
	return nil
}
