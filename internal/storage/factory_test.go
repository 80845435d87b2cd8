package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		check   func(t *testing.T, store any)
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "sqlite backend is migrated",
			cfg:  Config{Backend: BackendSQLite, Path: filepath.Join(dir, "a.db")},
			check: func(t *testing.T, store any) {
				sqliteStore, ok := store.(*SQLiteStorage)
				require.True(t, ok)
				version, err := sqliteStore.SchemaVersion(ctx)
				require.NoError(t, err)
				assert.Equal(t, ExpectedSchemaVersion, version)
			},
		},
		{
			name: "empty backend defaults to sqlite",
			cfg:  Config{Path: filepath.Join(dir, "b.db")},
			check: func(t *testing.T, store any) {
				assert.IsType(t, &SQLiteStorage{}, store)
			},
		},
		{
			name: "json backend",
			cfg:  Config{Backend: BackendJSON, Path: filepath.Join(dir, "budget_data.json")},
			check: func(t *testing.T, store any) {
				assert.IsType(t, &JSONStorage{}, store)
			},
		},
		{
			name:    "unknown backend",
			cfg:     Config{Backend: "postgres", Path: "x"},
			wantErr: ErrUnknownBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			tt.check(t, store)
		})
	}
}
