// Package command turns single lines of user input into ledger operations
// and renders their results as text.
package command

import (
	"time"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/shopspring/decimal"
)

// Request is a parsed command line.
type Request interface {
	request()
}

// AddRequest records an income or an expense.
type AddRequest struct {
	Date        *time.Time
	Amount      decimal.Decimal
	Kind        model.Kind
	Label       string
	Description string
}

// ListRequest lists transactions matching a type and a date range.
type ListRequest struct {
	TypeName string
	Period   string
	Range    model.DateRange
	Type     model.TypeFilter
}

// BalanceRequest asks for the current balance.
type BalanceRequest struct{}

// CategorySummaryRequest asks for expense totals per category.
type CategorySummaryRequest struct {
	Period string
	Range  model.DateRange
}

// HelpRequest asks for the command reference.
type HelpRequest struct{}

// ExitRequest ends the session.
type ExitRequest struct{}

func (AddRequest) request()             {}
func (ListRequest) request()            {}
func (BalanceRequest) request()         {}
func (CategorySummaryRequest) request() {}
func (HelpRequest) request()            {}
func (ExitRequest) request()            {}
