package services

import "fmt"

// Batch size accepted by the distance service per request axis
// (at most 10 origins × 10 destinations).
const DistanceBatchSize = 10

// Chunk splits items into consecutive, non-overlapping slices of at most
// size elements, preserving order and without padding. The chunks share
// the backing array of items.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("chunk: size must be positive, got %d", size)
	}

	// Ceiling division: the last chunk may be shorter.
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}

	return chunks, nil
}
