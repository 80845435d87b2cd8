package model

import "github.com/shopspring/decimal"

// CategoryTotal is the summed spending of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategorySpending maps category names to totals, keeping first-seen order.
type CategorySpending struct {
	totals map[string]decimal.Decimal
	order  []string
}

// NewCategorySpending returns an empty mapping.
func NewCategorySpending() *CategorySpending {
	return &CategorySpending{totals: make(map[string]decimal.Decimal)}
}

// Add accumulates amount under category.
func (s *CategorySpending) Add(category string, amount decimal.Decimal) {
	current, ok := s.totals[category]
	if !ok {
		s.order = append(s.order, category)
	}
	s.totals[category] = current.Add(amount)
}

// Get returns the total for category and whether it is present.
func (s *CategorySpending) Get(category string) (decimal.Decimal, bool) {
	total, ok := s.totals[category]
	return total, ok
}

// Len returns the number of categories.
func (s *CategorySpending) Len() int {
	return len(s.order)
}

// Categories returns the category names in first-seen order.
func (s *CategorySpending) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Totals returns the entries in first-seen order.
func (s *CategorySpending) Totals() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, CategoryTotal{Category: name, Total: s.totals[name]})
	}
	return out
}

// Map returns a copy of the totals keyed by category.
func (s *CategorySpending) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.totals))
	for k, v := range s.totals {
		out[k] = v
	}
	return out
}
