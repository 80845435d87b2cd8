package command

import "errors"

// Usage messages returned for malformed commands.
const (
	UsageAdd             = "Usage: add income <amount> <source> [description] [date] OR add expense <amount> <category> [description] [date]"
	UsageAddIncome       = "Usage: add income <amount> <source> [description] [date]"
	UsageAddExpense      = "Usage: add expense <amount> <category> [description] [date]"
	UsageList            = "Invalid parameter. Usage: list [income|expense|all] [current_month|all|dd/MM/yyyy dd/MM/yyyy]"
	UsageSummaryDate     = "Invalid date format. Use: category_summary [current_month|all|dd/MM/yyyy dd/MM/yyyy]"
	UsageSummaryRange    = "Invalid date range. Use: category_summary [current_month|all|dd/MM/yyyy dd/MM/yyyy]"
	UsageBalance         = "Usage: balance"
	UsageHelp            = "Usage: help"
	UsageExit            = "Usage: exit"
	MessageEmptyInput    = "Please enter a command"
	MessageUnknownPrefix = "Unknown command. Available commands: "
)

// Commands lists the interpreter's command words.
var Commands = []string{"add", "list", "balance", "category_summary", "help", "exit"}

// ErrEmptyInput is returned by Parse for a blank line.
var ErrEmptyInput = errors.New("empty input")

// UsageError reports a command that does not match its grammar. Its
// message is shown to the user as-is.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// UnknownCommandError reports an unrecognized command word.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command " + e.Name
}

func usage(message string) error {
	return &UsageError{Message: message}
}
