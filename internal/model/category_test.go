package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategorySpending(t *testing.T) {
	spending := NewCategorySpending()
	spending.Add("Food", decimal.NewFromInt(100))
	spending.Add("Transport", decimal.NewFromInt(30))
	spending.Add("Food", decimal.NewFromInt(50))

	assert.Equal(t, 2, spending.Len())
	assert.Equal(t, []string{"Food", "Transport"}, spending.Categories())

	food, ok := spending.Get("Food")
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(150).Equal(food))

	_, ok = spending.Get("Salary")
	assert.False(t, ok)

	totals := spending.Totals()
	assert.Equal(t, "Food", totals[0].Category)
	assert.Equal(t, "Transport", totals[1].Category)
	assert.True(t, decimal.NewFromInt(30).Equal(totals[1].Total))

	m := spending.Map()
	assert.Len(t, m, 2)
}

func TestCategorySpending_Empty(t *testing.T) {
	spending := NewCategorySpending()
	assert.Equal(t, 0, spending.Len())
	assert.Empty(t, spending.Categories())
	assert.Empty(t, spending.Totals())
}
