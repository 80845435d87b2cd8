package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	for _, table := range []string{"accounts", "transactions", "checkpoint_metadata"} {
		var name string
		err := store.db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAccount(ctx, createTestAccount()))
	require.NoError(t, store.Migrate(ctx))

	count, err := store.TransactionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMigrate_RejectsUnknownKind(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.db.ExecContext(context.Background(), `
		INSERT INTO transactions (id, position, kind, amount, label, description, date)
		VALUES ('x', 0, 'Transfer', '10', 'Bank', '', '2024-06-01T00:00:00Z')
	`)
	assert.Error(t, err)
}

func TestMigrations_Ordered(t *testing.T) {
	for i, migration := range migrations {
		assert.Equal(t, i+1, migration.Version)
		assert.NotEmpty(t, migration.Description)
	}
	assert.Equal(t, ExpectedSchemaVersion, migrations[len(migrations)-1].Version)
}
