package model

import "time"

// TypeFilter selects transactions by kind.
type TypeFilter int

const (
	// TypeAll matches every transaction.
	TypeAll TypeFilter = iota
	// TypeIncome matches income only.
	TypeIncome
	// TypeExpense matches expenses only.
	TypeExpense
)

// Matches reports whether txn passes the filter.
func (f TypeFilter) Matches(txn Transaction) bool {
	switch f {
	case TypeAll:
		return true
	case TypeIncome:
		return txn.Kind == KindIncome
	case TypeExpense:
		return txn.Kind == KindExpense
	default:
		return false
	}
}

// DateFilter selects transactions by date.
type DateFilter int

const (
	// DateAll matches every date.
	DateAll DateFilter = iota
	// DateCurrentMonth matches the calendar month and year of the current time.
	DateCurrentMonth
	// DateCustom matches Start <= date <= End.
	DateCustom
)

// DateRange combines a date filter with the bounds used by DateCustom.
type DateRange struct {
	Start  *time.Time
	End    *time.Time
	Filter DateFilter
}

// AllTime matches every date.
func AllTime() DateRange {
	return DateRange{Filter: DateAll}
}

// CurrentMonth matches dates in the month of the call.
func CurrentMonth() DateRange {
	return DateRange{Filter: DateCurrentMonth}
}

// Between matches dates in [start, end].
func Between(start, end time.Time) DateRange {
	return DateRange{Filter: DateCustom, Start: &start, End: &end}
}

// Matches reports whether date passes the range given the current time.
// A custom range with a missing bound matches nothing.
func (r DateRange) Matches(date, now time.Time) bool {
	switch r.Filter {
	case DateAll:
		return true
	case DateCurrentMonth:
		return date.Month() == now.Month() && date.Year() == now.Year()
	case DateCustom:
		if r.Start == nil || r.End == nil {
			return false
		}
		return !date.Before(*r.Start) && !date.After(*r.End)
	default:
		return false
	}
}
