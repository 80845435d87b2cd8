package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckpointManager(t *testing.T) (*SQLiteStorage, *CheckpointManager) {
	t.Helper()

	store := createTestStorage(t)
	require.NoError(t, store.SaveAccount(context.Background(), createTestAccount()))

	manager, err := store.NewCheckpointManager()
	require.NoError(t, err)
	return store, manager
}

func TestCheckpointManager_Create(t *testing.T) {
	_, manager := newCheckpointManager(t)
	ctx := context.Background()

	tests := []struct {
		errType     error
		name        string
		tag         string
		description string
		wantErr     bool
	}{
		{
			name:        "Create checkpoint with tag",
			tag:         "before-import",
			description: "Before importing the legacy file",
		},
		{
			name:        "Create checkpoint without tag",
			tag:         "",
			description: "Auto checkpoint",
		},
		{
			name:    "Duplicate tag",
			tag:     "before-import",
			wantErr: true,
			errType: ErrCheckpointExists,
		},
		{
			name:    "Path separator in tag",
			tag:     "../escape",
			wantErr: true,
			errType: ErrInvalidCheckpointID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := manager.Create(ctx, tt.tag, tt.description)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errType)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, info.ID)
			assert.Equal(t, tt.description, info.Description)
			assert.Equal(t, 4, info.Transactions)
			assert.Equal(t, ExpectedSchemaVersion, info.SchemaVersion)
			assert.Positive(t, info.FileSize)

			assert.FileExists(t, filepath.Join(manager.Dir(), info.ID+".db"))
			assert.FileExists(t, filepath.Join(manager.Dir(), info.ID+".meta.json"))
		})
	}
}

func TestCheckpointManager_List(t *testing.T) {
	_, manager := newCheckpointManager(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	for i, tag := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Hour)
		manager.now = func() time.Time { return at }
		_, err := manager.Create(ctx, tag, "")
		require.NoError(t, err)
	}

	// Unreadable metadata is skipped.
	require.NoError(t, os.WriteFile(filepath.Join(manager.Dir(), "broken.meta.json"), []byte("{"), 0600))

	checkpoints, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, checkpoints, 3)
	assert.Equal(t, "third", checkpoints[0].ID)
	assert.Equal(t, "second", checkpoints[1].ID)
	assert.Equal(t, "first", checkpoints[2].ID)
}

func TestCheckpointManager_Restore(t *testing.T) {
	store, manager := newCheckpointManager(t)
	ctx := context.Background()

	_, err := manager.Create(ctx, "full", "")
	require.NoError(t, err)

	account := createTestAccount()
	account.Transactions = account.Transactions[:1]
	require.NoError(t, store.SaveAccount(ctx, account))

	require.NoError(t, manager.Restore(ctx, "full"))

	reopened, err := NewSQLiteStorage(store.Path())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	count, err := reopened.TransactionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	_, err = os.Stat(store.Path() + ".restore-backup")
	assert.True(t, os.IsNotExist(err))
}

func TestCheckpointManager_RestoreErrors(t *testing.T) {
	_, manager := newCheckpointManager(t)
	ctx := context.Background()

	err := manager.Restore(ctx, "missing")
	assert.ErrorIs(t, err, ErrCheckpointNotFound)

	err = manager.Restore(ctx, "a/b")
	assert.ErrorIs(t, err, ErrInvalidCheckpointID)

	require.NoError(t, os.WriteFile(filepath.Join(manager.Dir(), "garbage.db"), []byte("not a database"), 0600))
	require.NoError(t, saveMetadata(filepath.Join(manager.Dir(), "garbage.meta.json"), CheckpointMetadata{ID: "garbage"}))

	err = manager.Restore(ctx, "garbage")
	assert.Error(t, err)
}

func TestCheckpointManager_Delete(t *testing.T) {
	_, manager := newCheckpointManager(t)
	ctx := context.Background()

	_, err := manager.Create(ctx, "old", "")
	require.NoError(t, err)

	require.NoError(t, manager.Delete(ctx, "old"))
	assert.NoFileExists(t, filepath.Join(manager.Dir(), "old.db"))
	assert.NoFileExists(t, filepath.Join(manager.Dir(), "old.meta.json"))

	var rows int
	require.NoError(t, manager.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checkpoint_metadata WHERE id = 'old'`).Scan(&rows))
	assert.Zero(t, rows)

	assert.ErrorIs(t, manager.Delete(ctx, "old"), ErrCheckpointNotFound)
}
