package matrixstore

import (
	"context"
	"cows-tsp/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMatrix(t *testing.T) {
	full := []matrixCell{
		{0, 0, 0}, {0, 1, 120},
		{1, 0, 130}, {1, 1, 0},
	}

	tests := []struct {
		name    string
		size    int
		cells   []matrixCell
		want    domain.Matrix
		wantErr string
	}{
		{name: "complete", size: 2, cells: full, want: domain.Matrix{{0, 120}, {130, 0}}},
		{name: "any order", size: 2, cells: []matrixCell{full[3], full[1], full[2], full[0]}, want: domain.Matrix{{0, 120}, {130, 0}}},
		{name: "empty", size: 0, cells: nil, want: domain.Matrix{}},
		{name: "missing cell", size: 2, cells: full[:3], wantErr: "got 3 cells, want 4"},
		{name: "single", size: 1, cells: full[:1], want: domain.Matrix{{0}}},
		{name: "out of range", size: 1, cells: full[:2], wantErr: "out of range"},
		{name: "duplicate", size: 2, cells: []matrixCell{full[0], full[0], full[1], full[2]}, wantErr: "duplicate cell (0,0)"},
		{name: "negative size", size: -1, wantErr: "negative size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := buildMatrix(tc.size, tc.cells)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				require.Nil(t, m)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, m)
		})
	}
}

func TestPostgresMatrixStoreRequiresDB(t *testing.T) {
	s := NewPostgresMatrixStore(nil)

	_, err := s.Load(context.Background(), "distances")
	require.Error(t, err)
	require.Error(t, s.Save(context.Background(), "distances", domain.Matrix{{0}}))
}
