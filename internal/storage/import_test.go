package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAccount(t *testing.T) {
	ctx := context.Background()

	src := newJSONStore(t)
	account := createTestAccount()
	require.NoError(t, src.SaveAccount(ctx, account))

	dst := createTestStorage(t)

	var progress [][2]int
	n, err := ImportAccount(ctx, src, dst, ImportOptions{
		OnProgress: func(done, total int) {
			progress = append(progress, [2]int{done, total})
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, [][2]int{{1, 4}, {2, 4}, {3, 4}, {4, 4}}, progress)

	loaded, err := dst.LoadAccount(ctx)
	require.NoError(t, err)
	assertSameAccount(t, account, loaded)
}

func TestImportAccount_DestinationExists(t *testing.T) {
	ctx := context.Background()

	src := newJSONStore(t)
	require.NoError(t, src.SaveAccount(ctx, createTestAccount()))

	dst := createTestStorage(t)
	existing := createTestAccount()
	existing.Username = "bob"
	existing.Transactions = existing.Transactions[:1]
	require.NoError(t, dst.SaveAccount(ctx, existing))

	_, err := ImportAccount(ctx, src, dst, ImportOptions{})
	assert.ErrorIs(t, err, ErrAccountExists)

	loaded, err := dst.LoadAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", loaded.Username)

	n, err := ImportAccount(ctx, src, dst, ImportOptions{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	loaded, err = dst.LoadAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Username)
}

func TestImportAccount_MissingSource(t *testing.T) {
	_, err := ImportAccount(context.Background(), newJSONStore(t), createTestStorage(t), ImportOptions{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestImportAccount_Canceled(t *testing.T) {
	src := newJSONStore(t)
	require.NoError(t, src.SaveAccount(context.Background(), createTestAccount()))
	dst := createTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ImportAccount(ctx, src, dst, ImportOptions{})
	require.Error(t, err)

	_, err = dst.LoadAccount(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}
