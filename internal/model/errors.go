package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain validation errors.
var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyField    = errors.New("empty field")
	ErrInvalidDate   = errors.New("invalid date")
)

// InvalidAmountError is returned when an amount is not a positive number.
// Token holds the raw input when the amount could not be parsed at all.
type InvalidAmountError struct {
	Token  string
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("Invalid amount: '%s' is not a valid number.", e.Token)
	}
	return fmt.Sprintf("Invalid amount: %s. Amount must be greater than zero.", e.Amount.String())
}

// Is makes errors.Is(err, ErrInvalidAmount) match.
func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount
}

// EmptyFieldError is returned when a required text field is blank.
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s cannot be empty or whitespace.", e.Field)
}

// Is makes errors.Is(err, ErrEmptyField) match.
func (e *EmptyFieldError) Is(target error) bool {
	return target == ErrEmptyField
}
