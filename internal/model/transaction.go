package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the dd/MM/yyyy layout used for rendering and parsing dates.
const DateLayout = "02/01/2006"

// Kind identifies which side of the ledger a transaction belongs to.
type Kind string

const (
	// KindIncome marks money coming into the account.
	KindIncome Kind = "Income"
	// KindExpense marks money leaving the account.
	KindExpense Kind = "Expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single income or expense entry in the ledger.
// Source is set for income, Category for expenses.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	ID          string
	Kind        Kind
	Description string
	Source      string
	Category    string
}

// NewIncome validates and creates an income transaction. A nil date means now.
func NewIncome(amount decimal.Decimal, source, description string, date *time.Time) (Transaction, error) {
	return newTransaction(KindIncome, amount, source, description, date, time.Now)
}

// NewExpense validates and creates an expense transaction. A nil date means now.
func NewExpense(amount decimal.Decimal, category, description string, date *time.Time) (Transaction, error) {
	return newTransaction(KindExpense, amount, category, description, date, time.Now)
}

// NewTransaction creates a transaction of the given kind using now for a missing date.
func NewTransaction(kind Kind, amount decimal.Decimal, label, description string, date *time.Time, now func() time.Time) (Transaction, error) {
	if !kind.Valid() {
		return Transaction{}, fmt.Errorf("unknown transaction kind %q", kind)
	}
	if now == nil {
		now = time.Now
	}
	return newTransaction(kind, amount, label, description, date, now)
}

func newTransaction(kind Kind, amount decimal.Decimal, label, description string, date *time.Time, now func() time.Time) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, &InvalidAmountError{Amount: amount}
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return Transaction{}, &EmptyFieldError{Field: kind.labelField()}
	}

	txn := Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Amount:      amount,
		Description: description,
	}
	if date != nil {
		txn.Date = *date
	} else {
		txn.Date = now()
	}

	if kind == KindIncome {
		txn.Source = label
	} else {
		txn.Category = label
	}
	return txn, nil
}

func (k Kind) labelField() string {
	if k == KindIncome {
		return "Source"
	}
	return "Category"
}

// Label returns the source of an income or the category of an expense.
func (t Transaction) Label() string {
	switch t.Kind {
	case KindIncome:
		return t.Source
	case KindExpense:
		return t.Category
	default:
		return ""
	}
}

// Sign returns "+" for income and "-" for expenses.
func (t Transaction) Sign() string {
	if t.Kind == KindIncome {
		return "+"
	}
	return "-"
}

// SignedAmount renders the amount with its sign and two decimals, e.g. "+1500.00".
func (t Transaction) SignedAmount() string {
	return t.Sign() + t.Amount.StringFixed(2)
}

// String renders the transaction as "dd/MM/yyyy | ±amount | label | description".
func (t Transaction) String() string {
	return fmt.Sprintf("%s | %s | %s | %s",
		t.Date.Format(DateLayout),
		t.SignedAmount(),
		t.Label(),
		t.Description)
}

// Validate checks the invariants enforced at construction. It is used for
// transactions rebuilt from storage.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	if !t.Amount.IsPositive() {
		return &InvalidAmountError{Amount: t.Amount}
	}
	if strings.TrimSpace(t.Label()) == "" {
		return &EmptyFieldError{Field: t.Kind.labelField()}
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidDate)
	}
	return nil
}
