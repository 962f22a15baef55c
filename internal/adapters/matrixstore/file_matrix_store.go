package matrixstore

import (
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/ports"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const fileExtension = ".msgpack.zst"

// FileMatrixStore keeps each matrix in <Dir>/<key>.msgpack.zst
// (msgpack-encoded, zstd-compressed).
type FileMatrixStore struct {
	Dir string
}

func NewFileMatrixStore(dir string) *FileMatrixStore {
	return &FileMatrixStore{Dir: dir}
}

// Path returns the file backing key.
func (s *FileMatrixStore) Path(key string) string {
	return filepath.Join(s.Dir, key+fileExtension)
}

func (s *FileMatrixStore) Save(ctx context.Context, key string, m domain.Matrix) (err error) {
	defer obs.Time(ctx, "matrix.file.Save")(&err)

	if strings.TrimSpace(key) == "" {
		return errors.New("save matrix: key must not be empty")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("save matrix: create dir %q: %w", s.Dir, err)
	}

	// A failed save leaves the previous matrix in place.
	f, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("save matrix: create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return fmt.Errorf("save matrix: create zstd writer: %w", err)
	}

	if err := encodeMatrix(zw, m); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("save matrix: encode: %w", err)
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("save matrix: close zstd writer: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("save matrix: close file: %w", err)
	}

	if err := os.Rename(tmp, s.Path(key)); err != nil {
		return fmt.Errorf("save matrix: rename: %w", err)
	}

	return nil
}

func (s *FileMatrixStore) Load(ctx context.Context, key string) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "matrix.file.Load")(&err)

	path := s.Path(key)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load matrix %q: %w", path, ports.ErrMatrixNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load matrix: open %q: %w", path, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("load matrix: create zstd reader: %w", err)
	}
	defer zr.Close()

	m, err := decodeMatrix(zr)
	if err != nil {
		return nil, fmt.Errorf("load matrix %q: %w", path, err)
	}

	return m, nil
}
