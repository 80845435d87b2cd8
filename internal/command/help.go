package command

import "strings"

// HelpText is the command reference shown by "help".
var HelpText = strings.Join([]string{
	"Available Commands:",
	"  add income <amount> <source> [description] [dd/MM/yyyy]",
	"  add expense <amount> <category> [description] [dd/MM/yyyy]",
	"  list [income|expense|all] [current_month|all|dd/MM/yyyy dd/MM/yyyy]",
	"  balance",
	"  category_summary [current_month|all|dd/MM/yyyy dd/MM/yyyy]",
	"  help    - Show this help message",
	"  clear   - Clear the screen",
	"  exit    - Exit the application",
	"",
	"Examples:",
	"  add income 1500 Salary",
	"  add expense 50.25 Food Groceries",
	"  list expense current_month",
	"  category_summary current_month",
}, "\n")
