package matrixstore

import (
	"cows-tsp/internal/domain"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// storedMatrix is the msgpack payload shared by the file and Redis stores.
type storedMatrix struct {
	Size  int     `msgpack:"size"`
	Cells [][]int `msgpack:"cells"`
}

func encodeMatrix(w io.Writer, m domain.Matrix) error {
	size, err := m.Size()
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(storedMatrix{Size: size, Cells: m})
}

func decodeMatrix(r io.Reader) (domain.Matrix, error) {
	var sm storedMatrix
	if err := msgpack.NewDecoder(r).Decode(&sm); err != nil {
		return nil, fmt.Errorf("decode matrix: %w", err)
	}

	m := domain.Matrix(sm.Cells)
	if m == nil {
		m = domain.Matrix{}
	}
	size, err := m.Size()
	if err != nil {
		return nil, fmt.Errorf("decode matrix: %w", err)
	}
	if size != sm.Size {
		return nil, fmt.Errorf("decode matrix: header size %d does not match %d rows", sm.Size, size)
	}
	return m, nil
}
