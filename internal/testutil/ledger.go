package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/budget-tracker/internal/ledger"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/shopspring/decimal"
)

// FixedNow is the clock used by test ledgers: 15 June 2024, noon UTC.
var FixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// Clock returns a time source that always reports t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Entry describes a transaction to seed into a test ledger.
type Entry struct {
	Date        time.Time
	Kind        model.Kind
	Amount      string
	Label       string
	Description string
}

// Income builds an income entry dated at FixedNow.
func Income(amount, source string) Entry {
	return Entry{Kind: model.KindIncome, Amount: amount, Label: source, Date: FixedNow}
}

// Expense builds an expense entry dated at FixedNow.
func Expense(amount, category string) Entry {
	return Entry{Kind: model.KindExpense, Amount: amount, Label: category, Date: FixedNow}
}

// On returns a copy of e dated at date.
func (e Entry) On(date time.Time) Entry {
	e.Date = date
	return e
}

// Described returns a copy of e with a description.
func (e Entry) Described(description string) Entry {
	e.Description = description
	return e
}

// TestLedger bundles a manager with the store behind it.
type TestLedger struct {
	Manager *ledger.Manager
	Store   *MemoryStore
	Account *model.Account
}

// NewLedger creates a manager over an empty "TestUser" account backed by a
// MemoryStore, with the clock fixed at FixedNow, and seeds entries.
func NewLedger(t *testing.T, entries ...Entry) *TestLedger {
	t.Helper()

	account := model.NewAccount("TestUser")
	store := NewMemoryStore()
	manager, err := ledger.NewManager(account, store, ledger.WithClock(Clock(FixedNow)))
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}

	tl := &TestLedger{Manager: manager, Store: store, Account: account}
	tl.Seed(t, entries...)
	return tl
}

// Seed adds entries through the manager, failing the test on any error.
func (tl *TestLedger) Seed(t *testing.T, entries ...Entry) {
	t.Helper()

	ctx := context.Background()
	for _, e := range entries {
		amount := decimal.RequireFromString(e.Amount)
		date := e.Date
		var err error
		if e.Kind == model.KindIncome {
			_, err = tl.Manager.AddIncome(ctx, amount, e.Label, e.Description, &date)
		} else {
			_, err = tl.Manager.AddExpense(ctx, amount, e.Label, e.Description, &date)
		}
		if err != nil {
			t.Fatalf("failed to seed %s %s %s: %v", e.Kind, e.Amount, e.Label, err)
		}
	}
}
