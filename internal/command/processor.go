package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/budget-tracker/internal/ledger"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/money"
	"github.com/Veraticus/budget-tracker/internal/storage"
)

// MessageGoodbye is the reply to "exit".
const MessageGoodbye = "Goodbye! Your data has been saved."

// Status classifies a Result.
type Status int

const (
	// StatusOK is a successful command.
	StatusOK Status = iota
	// StatusUsage is a command that did not match its grammar.
	StatusUsage
	// StatusError is a command that failed while running.
	StatusError
)

// Result is the outcome of one command line.
type Result struct {
	Text   string
	Status Status
	// Exit is set when the session should end.
	Exit bool
}

// Failed reports whether the command did not complete.
func (r Result) Failed() bool {
	return r.Status != StatusOK
}

// Processor executes command lines against a ledger.
// It is not safe for concurrent use.
type Processor struct {
	ledger    *ledger.Manager
	parser    *Parser
	formatter *money.Formatter
	logger    *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithFormatter sets the currency formatter used in replies.
func WithFormatter(f *money.Formatter) Option {
	return func(p *Processor) {
		p.formatter = f
	}
}

// WithLogger sets the logger for failed commands.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor returns a processor driving m.
func NewProcessor(m *ledger.Manager, opts ...Option) (*Processor, error) {
	if m == nil {
		return nil, fmt.Errorf("ledger manager cannot be nil")
	}

	p := &Processor{
		ledger: m,
		parser: NewParser(m.Now().Location()),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.formatter == nil {
		p.formatter = money.MustFormatter(money.DefaultLocale)
	}
	return p, nil
}

// Process runs line and returns the reply text. It never fails.
func (p *Processor) Process(ctx context.Context, line string) string {
	return p.Execute(ctx, line).Text
}

// Execute runs line and returns the full result. Panics raised while
// running are recovered and reported as unexpected errors.
func (p *Processor) Execute(ctx context.Context, line string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Command panicked", "line", line, "panic", r)
			result = Result{Text: fmt.Sprintf("Unexpected error: %v", r), Status: StatusError}
		}
	}()

	req, err := p.parser.ParseLine(line)
	if err != nil {
		return p.rejected(err)
	}
	return p.run(ctx, req)
}

func (p *Processor) run(ctx context.Context, req Request) Result {
	switch r := req.(type) {
	case AddRequest:
		return p.add(ctx, r)
	case ListRequest:
		txns := p.ledger.Transactions(r.Type, r.Range)
		if len(txns) == 0 {
			return ok(renderEmpty(r.TypeName, r.Period))
		}
		return ok(renderTransactions(txns, r.TypeName, r.Period))
	case BalanceRequest:
		return ok("Current balance: " + p.formatter.Format(p.ledger.Balance()))
	case CategorySummaryRequest:
		spending := p.ledger.CategorySpending(r.Range)
		if spending.Len() == 0 {
			return ok(renderEmpty("Expenses", r.Period))
		}
		return ok(renderCategorySpending(p.formatter, spending, r.Period))
	case HelpRequest:
		return ok(HelpText)
	case ExitRequest:
		return Result{Text: MessageGoodbye, Exit: true}
	default:
		return p.failed(fmt.Errorf("unsupported request %T", req))
	}
}

func (p *Processor) add(ctx context.Context, r AddRequest) Result {
	var txn model.Transaction
	var err error
	if r.Kind == model.KindIncome {
		txn, err = p.ledger.AddIncome(ctx, r.Amount, r.Label, r.Description, r.Date)
	} else {
		txn, err = p.ledger.AddExpense(ctx, r.Amount, r.Label, r.Description, r.Date)
	}
	if err != nil {
		return p.failed(err)
	}
	return ok(renderAdded(p.formatter, txn))
}

// rejected maps parse failures to replies.
func (p *Processor) rejected(err error) Result {
	var usageErr *UsageError
	var unknownErr *UnknownCommandError

	switch {
	case errors.Is(err, ErrEmptyInput):
		return Result{Text: MessageEmptyInput, Status: StatusUsage}
	case errors.As(err, &unknownErr):
		return Result{Text: MessageUnknownPrefix + strings.Join(Commands, ", "), Status: StatusUsage}
	case errors.As(err, &usageErr):
		return Result{Text: usageErr.Message, Status: StatusUsage}
	default:
		return p.failed(err)
	}
}

// failed maps execution failures to "Error:", "Storage Error:" or
// "Unexpected error:" replies.
func (p *Processor) failed(err error) Result {
	var storeErr *storage.Error

	switch {
	case errors.As(err, &storeErr):
		p.logger.Error("Command failed to persist", "path", storeErr.Path, "error", err)
		return Result{Text: "Storage Error: " + storeErr.Error(), Status: StatusError}
	case isDomainError(err):
		return Result{Text: "Error: " + err.Error(), Status: StatusError}
	default:
		p.logger.Error("Command failed", "error", err)
		return Result{Text: "Unexpected error: " + err.Error(), Status: StatusError}
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, model.ErrInvalidAmount) ||
		errors.Is(err, model.ErrEmptyField) ||
		errors.Is(err, model.ErrInvalidDate)
}

func ok(text string) Result {
	return Result{Text: text}
}
