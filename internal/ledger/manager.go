// Package ledger owns an account's transactions and answers balance and
// spending queries over them.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/service"
	"github.com/shopspring/decimal"
)

// DefaultSpendingRange is the range used by callers that do not pick one.
var DefaultSpendingRange = model.CurrentMonth()

// Manager is the only writer of its account's transaction list.
// It is not safe for concurrent use.
type Manager struct {
	account *model.Account
	store   service.AccountStore
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for default dates and the
// current-month filter.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager wraps account and persists it through store after every change.
func NewManager(account *model.Account, store service.AccountStore, opts ...Option) (*Manager, error) {
	if account == nil {
		return nil, fmt.Errorf("account cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	m := &Manager{
		account: account,
		store:   store,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Account returns the managed account. Callers must not modify it.
func (m *Manager) Account() *model.Account {
	return m.account
}

// Count returns the number of transactions in the ledger.
func (m *Manager) Count() int {
	return len(m.account.Transactions)
}

// Now returns the manager's current time.
func (m *Manager) Now() time.Time {
	return m.now()
}

// AddIncome records an income. A nil date means now.
func (m *Manager) AddIncome(ctx context.Context, amount decimal.Decimal, source, description string, date *time.Time) (model.Transaction, error) {
	return m.add(ctx, model.KindIncome, amount, source, description, date)
}

// AddExpense records an expense. A nil date means now.
func (m *Manager) AddExpense(ctx context.Context, amount decimal.Decimal, category, description string, date *time.Time) (model.Transaction, error) {
	return m.add(ctx, model.KindExpense, amount, category, description, date)
}

func (m *Manager) add(ctx context.Context, kind model.Kind, amount decimal.Decimal, label, description string, date *time.Time) (model.Transaction, error) {
	txn, err := model.NewTransaction(kind, amount, label, description, date, m.now)
	if err != nil {
		return model.Transaction{}, err
	}

	previous := m.account.Transactions
	m.account.Transactions = append(m.account.Transactions, txn)

	// Keep memory in step with the last snapshot that made it to storage,
	// even if the store panics.
	saved := false
	defer func() {
		if !saved {
			m.account.Transactions = previous
		}
	}()

	if err := m.store.SaveAccount(ctx, m.account); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to save %s: %w", kind, err)
	}
	saved = true

	m.logger.Debug("Recorded transaction",
		"kind", kind,
		"amount", txn.Amount.String(),
		"label", txn.Label(),
		"count", len(m.account.Transactions))

	return txn, nil
}

// Balance returns total income minus total expenses.
func (m *Manager) Balance() decimal.Decimal {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, txn := range m.account.Transactions {
		switch txn.Kind {
		case model.KindIncome:
			income = income.Add(txn.Amount)
		case model.KindExpense:
			expenses = expenses.Add(txn.Amount)
		}
	}
	return income.Sub(expenses)
}

// Transactions returns the transactions passing both filters in insertion order.
func (m *Manager) Transactions(typeFilter model.TypeFilter, dateRange model.DateRange) []model.Transaction {
	now := m.now()
	results := []model.Transaction{}

	for _, txn := range m.account.Transactions {
		if typeFilter.Matches(txn) && dateRange.Matches(txn.Date, now) {
			results = append(results, txn)
		}
	}
	return results
}

// CategorySpending sums expenses per category for transactions in dateRange.
// Categories appear in the order they were first seen.
func (m *Manager) CategorySpending(dateRange model.DateRange) *model.CategorySpending {
	now := m.now()
	spending := model.NewCategorySpending()

	for _, txn := range m.account.Transactions {
		if txn.Kind != model.KindExpense || !dateRange.Matches(txn.Date, now) {
			continue
		}
		spending.Add(txn.Category, txn.Amount)
	}
	return spending
}
