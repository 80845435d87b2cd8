package command

import (
	"fmt"
	"strings"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/money"
)

const (
	listHeader    = "Date       | Amount | Category/Source | Description"
	listSeparator = "-----------|--------|-----------------|--------------------"
	listFooterLen = 60
	summaryFooter = 40
)

func renderAdded(f *money.Formatter, txn model.Transaction) string {
	date := txn.Date.Format(model.DateLayout)
	if txn.Kind == model.KindIncome {
		return fmt.Sprintf("Income of %s from %s added for %s.", f.Format(txn.Amount), txn.Source, date)
	}

	var detail string
	if txn.Description != "" {
		detail = fmt.Sprintf(" (%s)", txn.Description)
	}
	return fmt.Sprintf("Expense of %s for %s%s added for %s.", f.Format(txn.Amount), txn.Category, detail, date)
}

// renderTransactions draws the fixed-width transaction table.
func renderTransactions(txns []model.Transaction, typeName, period string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (%s) ---\n", typeName, period)
	b.WriteString(listHeader + "\n")
	b.WriteString(listSeparator + "\n")

	for _, txn := range txns {
		fmt.Fprintf(&b, "%s | %6s | %-15s | %s\n",
			txn.Date.Format(model.DateLayout),
			txn.SignedAmount(),
			txn.Label(),
			txn.Description)
	}

	b.WriteString(strings.Repeat("-", listFooterLen))
	return b.String()
}

func renderCategorySpending(f *money.Formatter, spending *model.CategorySpending, period string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Category Spending (%s) ---\n", period)

	for _, total := range spending.Totals() {
		fmt.Fprintf(&b, "%s: %s\n", total.Category, f.Format(total.Total))
	}

	b.WriteString(strings.Repeat("-", summaryFooter))
	return b.String()
}

func renderEmpty(typeName, period string) string {
	return fmt.Sprintf("No %s found for %s.", strings.ToLower(typeName), period)
}
