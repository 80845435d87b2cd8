package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/budget-tracker/internal/ledger"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewManager_RequiresCollaborators(t *testing.T) {
	_, err := ledger.NewManager(nil, testutil.NewMemoryStore())
	assert.Error(t, err)

	_, err = ledger.NewManager(model.NewAccount("u"), nil)
	assert.Error(t, err)
}

func TestManager_AddIncome_SavesOnce(t *testing.T) {
	account := model.NewAccount("TestUser")
	store := &testutil.MockStore{}
	store.On("SaveAccount", mock.Anything, account).Return(nil).Once()

	manager, err := ledger.NewManager(account, store, ledger.WithClock(testutil.Clock(testutil.FixedNow)))
	require.NoError(t, err)

	txn, err := manager.AddIncome(context.Background(), dec("1500"), "Salary", "Monthly payment", nil)
	require.NoError(t, err)

	require.Len(t, account.Transactions, 1)
	assert.Equal(t, model.KindIncome, account.Transactions[0].Kind)
	assert.True(t, dec("1500").Equal(account.Transactions[0].Amount))
	assert.Equal(t, testutil.FixedNow, txn.Date)
	assert.Equal(t, "Monthly payment", txn.Description)
	store.AssertExpectations(t)
}

func TestManager_AddExpense_SavesOnce(t *testing.T) {
	account := model.NewAccount("TestUser")
	store := &testutil.MockStore{}
	store.On("SaveAccount", mock.Anything, account).Return(nil).Once()

	manager, err := ledger.NewManager(account, store)
	require.NoError(t, err)

	_, err = manager.AddExpense(context.Background(), dec("50.25"), "Food", "Groceries", nil)
	require.NoError(t, err)

	require.Len(t, account.Transactions, 1)
	assert.Equal(t, model.KindExpense, account.Transactions[0].Kind)
	assert.True(t, dec("50.25").Equal(account.Transactions[0].Amount))
	store.AssertExpectations(t)
}

func TestManager_Add_ValidationNeverReachesStorage(t *testing.T) {
	account := model.NewAccount("TestUser")
	store := &testutil.MockStore{}

	manager, err := ledger.NewManager(account, store)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = manager.AddIncome(ctx, dec("-100"), "Salary", "", nil)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = manager.AddExpense(ctx, dec("10"), "  ", "", nil)
	assert.ErrorIs(t, err, model.ErrEmptyField)

	assert.Empty(t, account.Transactions)
	store.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}

func TestManager_Add_SaveFailurePropagatesAndRollsBack(t *testing.T) {
	tl := testutil.NewLedger(t, testutil.Income("100", "Salary"))
	saveErr := errors.New("disk full")
	tl.Store.SaveErr = saveErr

	_, err := tl.Manager.AddExpense(context.Background(), dec("10"), "Food", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr)

	assert.Equal(t, 1, tl.Manager.Count())
	assert.True(t, dec("100").Equal(tl.Manager.Balance()))
}

func TestManager_Add_PanickingSaveRollsBack(t *testing.T) {
	store := &testutil.MockStore{}
	store.On("SaveAccount", mock.Anything, mock.Anything).Panic("store exploded")

	m, err := ledger.NewManager(model.NewAccount("alice"), store)
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = m.AddIncome(context.Background(), dec("5"), "Gift", "", nil)
	})
	assert.Equal(t, 0, m.Count())
	store.AssertExpectations(t)
}

func TestManager_Balance(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		entries []testutil.Entry
	}{
		{
			name: "incomes and expenses",
			entries: []testutil.Entry{
				testutil.Income("2000", "Source1"),
				testutil.Income("500", "Source2"),
				testutil.Expense("300", "Category1"),
				testutil.Expense("100", "Category2"),
			},
			want: "2100",
		},
		{
			name: "expenses exceed income",
			entries: []testutil.Entry{
				testutil.Income("1000", "Source1"),
				testutil.Expense("200", "Category1"),
				testutil.Expense("1300", "Category2"),
			},
			want: "-500",
		},
		{
			name: "fractional amounts keep precision",
			entries: []testutil.Entry{
				testutil.Income("0.1", "Source1"),
				testutil.Income("0.2", "Source2"),
				testutil.Expense("0.3", "Category1"),
			},
			want: "0",
		},
		{
			name: "empty ledger",
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := testutil.NewLedger(t, tt.entries...)
			got := tl.Manager.Balance()
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestManager_Transactions_ByType(t *testing.T) {
	tl := testutil.NewLedger(t,
		testutil.Income("1500", "Salary"),
		testutil.Expense("50", "Food"),
		testutil.Income("200", "Bonus"),
	)

	incomes := tl.Manager.Transactions(model.TypeIncome, model.AllTime())
	require.Len(t, incomes, 2)
	assert.Equal(t, "Salary", incomes[0].Source)
	assert.Equal(t, "Bonus", incomes[1].Source)
	for _, txn := range incomes {
		assert.Equal(t, model.KindIncome, txn.Kind)
	}

	expenses := tl.Manager.Transactions(model.TypeExpense, model.AllTime())
	require.Len(t, expenses, 1)
	assert.Equal(t, "Food", expenses[0].Category)

	all := tl.Manager.Transactions(model.TypeAll, model.AllTime())
	assert.Len(t, all, 3)
}

func TestManager_Transactions_ByDate(t *testing.T) {
	may := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	june := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2023, time.June, 3, 9, 0, 0, 0, time.UTC)

	tl := testutil.NewLedger(t,
		testutil.Expense("10", "Food").On(june),
		testutil.Expense("20", "Rent").On(may),
		testutil.Income("30", "Gift").On(lastYear),
		testutil.Income("40", "Salary").On(june),
	)

	current := tl.Manager.Transactions(model.TypeAll, model.CurrentMonth())
	require.Len(t, current, 2)
	assert.Equal(t, "Food", current[0].Label())
	assert.Equal(t, "Salary", current[1].Label())

	custom := tl.Manager.Transactions(model.TypeAll, model.Between(may, june))
	require.Len(t, custom, 3)
	assert.Equal(t, []string{"Food", "Rent", "Salary"}, labels(custom))

	open := tl.Manager.Transactions(model.TypeAll, model.DateRange{Filter: model.DateCustom, Start: &may})
	assert.Empty(t, open)
}

func TestManager_Transactions_EmptyIsNotNil(t *testing.T) {
	tl := testutil.NewLedger(t)
	got := tl.Manager.Transactions(model.TypeAll, model.AllTime())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestManager_CategorySpending(t *testing.T) {
	tl := testutil.NewLedger(t,
		testutil.Expense("100", "Food").Described("Groceries"),
		testutil.Expense("50", "Food").Described("Restaurant"),
		testutil.Expense("30", "Transport").Described("Bus"),
		testutil.Income("1000", "Salary"),
	)

	spending := tl.Manager.CategorySpending(ledger.DefaultSpendingRange)
	require.Equal(t, 2, spending.Len())

	food, ok := spending.Get("Food")
	require.True(t, ok)
	assert.True(t, dec("150").Equal(food))

	transport, ok := spending.Get("Transport")
	require.True(t, ok)
	assert.True(t, dec("30").Equal(transport))

	_, ok = spending.Get("Salary")
	assert.False(t, ok)
	assert.Equal(t, []string{"Food", "Transport"}, spending.Categories())
}

func TestManager_CategorySpending_DateFilters(t *testing.T) {
	may := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)

	tl := testutil.NewLedger(t,
		testutil.Expense("25", "Travel").On(may),
		testutil.Expense("5", "Food"),
	)

	current := tl.Manager.CategorySpending(model.CurrentMonth())
	assert.Equal(t, []string{"Food"}, current.Categories())

	all := tl.Manager.CategorySpending(model.AllTime())
	assert.Equal(t, []string{"Travel", "Food"}, all.Categories())

	none := tl.Manager.CategorySpending(model.DateRange{Filter: model.DateCustom})
	assert.Equal(t, 0, none.Len())
}

func labels(txns []model.Transaction) []string {
	out := make([]string, 0, len(txns))
	for _, txn := range txns {
		out = append(out, txn.Label())
	}
	return out
}
