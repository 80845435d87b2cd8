package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage returns a migrated file-backed store under t.TempDir.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTxn(kind model.Kind, amount, label, description string, date time.Time) model.Transaction {
	txn := model.Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Date:        date,
	}
	if kind == model.KindIncome {
		txn.Source = label
	} else {
		txn.Category = label
	}
	return txn
}

func createTestAccount() *model.Account {
	account := model.NewAccount("alice")
	account.Transactions = []model.Transaction{
		testTxn(model.KindIncome, "1500", "Salary", "Monthly payment", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
		testTxn(model.KindExpense, "50.25", "Food", "Groceries", time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC)),
		testTxn(model.KindExpense, "100", "Food", "", time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)),
		testTxn(model.KindExpense, "20", "Transport", "Bus pass", time.Date(2024, 5, 28, 8, 0, 0, 0, time.UTC)),
	}
	return account
}

func assertSameAccount(t *testing.T, want, got *model.Account) {
	t.Helper()

	require.NotNil(t, got)
	assert.Equal(t, want.Username, got.Username)
	require.Len(t, got.Transactions, len(want.Transactions))

	for i := range want.Transactions {
		w, g := want.Transactions[i], got.Transactions[i]
		assert.Equal(t, w.ID, g.ID, "transaction %d", i)
		assert.Equal(t, w.Kind, g.Kind, "transaction %d", i)
		assert.True(t, w.Amount.Equal(g.Amount), "transaction %d amount: want %s got %s", i, w.Amount, g.Amount)
		assert.Equal(t, w.Label(), g.Label(), "transaction %d", i)
		assert.Equal(t, w.Description, g.Description, "transaction %d", i)
		assert.True(t, w.Date.Equal(g.Date), "transaction %d date: want %s got %s", i, w.Date, g.Date)
	}
}
