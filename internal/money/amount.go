// Package money parses amounts from user input and renders them as currency.
package money

import (
	"strings"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a plain decimal number such as "1500", "50.25" or "-3".
// Thousands separators and exponents are rejected. The sign is kept so the
// domain layer can report non-positive amounts itself.
func ParseAmount(token string) (decimal.Decimal, error) {
	s := strings.TrimSpace(token)
	if !isPlainDecimal(s) {
		return decimal.Zero, &model.InvalidAmountError{Token: token}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &model.InvalidAmountError{Token: token}
	}
	return amount, nil
}

func isPlainDecimal(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}

	digits := 0
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return digits > 0
}
