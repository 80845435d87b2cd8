package command

import (
	"errors"
	"strings"
	"time"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/money"
)

// Tokenize splits a line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// Parser builds requests from tokens. Dates are read in Location.
type Parser struct {
	Location *time.Location
}

// NewParser returns a parser reading dates in loc. A nil loc means time.Local.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{Location: loc}
}

// ParseLine tokenizes and parses line.
func (p *Parser) ParseLine(line string) (Request, error) {
	return p.Parse(Tokenize(line))
}

// Parse builds a request from tokens. Keywords are case-insensitive.
func (p *Parser) Parse(tokens []string) (Request, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch name {
	case "add":
		return p.parseAdd(args)
	case "list":
		return p.parseList(args)
	case "balance":
		if len(args) > 0 {
			return nil, usage(UsageBalance)
		}
		return BalanceRequest{}, nil
	case "category_summary":
		return p.parseCategorySummary(args)
	case "help":
		if len(args) > 0 {
			return nil, usage(UsageHelp)
		}
		return HelpRequest{}, nil
	case "exit":
		if len(args) > 0 {
			return nil, usage(UsageExit)
		}
		return ExitRequest{}, nil
	default:
		return nil, &UnknownCommandError{Name: tokens[0]}
	}
}

// parseAdd reads: income|expense <amount> <label> [description...] [date].
func (p *Parser) parseAdd(args []string) (Request, error) {
	if len(args) == 0 {
		return nil, usage(UsageAdd)
	}

	var kind model.Kind
	var usageText string
	switch strings.ToLower(args[0]) {
	case "income":
		kind, usageText = model.KindIncome, UsageAddIncome
	case "expense":
		kind, usageText = model.KindExpense, UsageAddExpense
	default:
		return nil, usage(UsageAdd)
	}

	if len(args) < 3 {
		return nil, usage(usageText)
	}

	amount, err := money.ParseAmount(args[1])
	if err != nil {
		return nil, err
	}

	req := AddRequest{
		Kind:   kind,
		Amount: amount,
		Label:  args[2],
	}

	rest := args[3:]
	if len(rest) > 0 {
		if date, ok := p.parseDate(rest[len(rest)-1]); ok {
			req.Date = &date
			rest = rest[:len(rest)-1]
		}
	}
	req.Description = strings.Join(rest, " ")

	return req, nil
}

// parseList reads: [income|expense|all] [current_month|all|<start> <end>].
func (p *Parser) parseList(args []string) (Request, error) {
	req := ListRequest{
		Type:     model.TypeAll,
		TypeName: "Transactions",
		Range:    model.AllTime(),
		Period:   "All Time",
	}

	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "income":
			req.Type, req.TypeName = model.TypeIncome, "Income"
			args = args[1:]
		case "expense":
			req.Type, req.TypeName = model.TypeExpense, "Expenses"
			args = args[1:]
		case "all":
			args = args[1:]
		}
	}

	dateRange, period, err := p.parseRange(args)
	if err != nil {
		return nil, usage(UsageList)
	}
	if period != "" {
		req.Range, req.Period = dateRange, period
	}
	return req, nil
}

// parseCategorySummary reads: [current_month|all|<start> <end>].
func (p *Parser) parseCategorySummary(args []string) (Request, error) {
	req := CategorySummaryRequest{
		Range:  model.AllTime(),
		Period: "All Time",
	}

	switch len(args) {
	case 0:
		return req, nil
	case 1, 2:
		dateRange, period, err := p.parseRange(args)
		if err != nil {
			if errors.Is(err, errBadDate) {
				return nil, usage(UsageSummaryDate)
			}
			return nil, usage(UsageSummaryRange)
		}
		req.Range, req.Period = dateRange, period
		return req, nil
	default:
		return nil, usage(UsageSummaryRange)
	}
}

type rangeError string

func (e rangeError) Error() string { return string(e) }

const (
	errBadDate      = rangeError("bad date")
	errBadRange     = rangeError("bad range")
	errBadRangeWord = rangeError("bad range keyword")
)

// parseRange reads a date slot. An empty slot returns an empty period.
func (p *Parser) parseRange(args []string) (model.DateRange, string, error) {
	switch len(args) {
	case 0:
		return model.DateRange{}, "", nil
	case 1:
		switch strings.ToLower(args[0]) {
		case "current_month":
			return model.CurrentMonth(), "Current Month", nil
		case "all":
			return model.AllTime(), "All Time", nil
		default:
			return model.DateRange{}, "", errBadRangeWord
		}
	case 2:
		start, ok := p.parseDate(args[0])
		if !ok {
			return model.DateRange{}, "", errBadDate
		}
		end, ok := p.parseDate(args[1])
		if !ok {
			return model.DateRange{}, "", errBadDate
		}
		if start.After(end) {
			return model.DateRange{}, "", errBadRange
		}
		period := start.Format(model.DateLayout) + " to " + end.Format(model.DateLayout)
		return model.Between(start, endOfDay(end)), period, nil
	default:
		return model.DateRange{}, "", errBadRange
	}
}

// parseDate accepts exactly dd/MM/yyyy.
func (p *Parser) parseDate(token string) (time.Time, bool) {
	date, err := time.ParseInLocation(model.DateLayout, token, p.Location)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
