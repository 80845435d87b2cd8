package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/budget-tracker/internal/command"
)

// Prompt is printed before every command line.
const Prompt = "Budget Tracker> "

// DefaultUsername is used when the user enters a blank name.
const DefaultUsername = "User"

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// Executor runs one command line.
type Executor interface {
	Execute(ctx context.Context, line string) command.Result
}

// Shell is the interactive read-execute-print loop.
type Shell struct {
	executor Executor
	reader   *NonBlockingReader
	out      io.Writer
}

// NewShell returns a shell reading commands from in and writing replies to out.
func NewShell(executor Executor, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		executor: executor,
		reader:   NewNonBlockingReader(in),
		out:      out,
	}
}

// NewShellWithReader shares an existing reader, so that input buffered while
// prompting for the username is not lost.
func NewShellWithReader(executor Executor, reader *NonBlockingReader, out io.Writer) *Shell {
	return &Shell{
		executor: executor,
		reader:   reader,
		out:      out,
	}
}

// PromptUsername asks for a username. A blank answer or end of input
// yields DefaultUsername.
func PromptUsername(ctx context.Context, reader *NonBlockingReader, out io.Writer) (string, error) {
	fmt.Fprint(out, FormatPrompt("Enter your username: "))

	name, err := reader.ReadLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if name == "" {
		return DefaultUsername, nil
	}
	return name, nil
}

// Welcome prints the banner.
func (s *Shell) Welcome() {
	fmt.Fprintln(s.out, RenderBox("Personal Budget Tracker",
		SubtleStyle.Render("Track income, expenses and spending by category")))
	fmt.Fprintln(s.out)
}

// Help prints the command reference.
func (s *Shell) Help() {
	fmt.Fprintln(s.out, command.HelpText)
	fmt.Fprintln(s.out)
}

// Run prints the banner and help, then executes commands until "exit", end
// of input, or cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	s.Welcome()
	s.Help()

	for {
		fmt.Fprint(s.out, FormatPrompt(Prompt))

		line, err := s.reader.ReadLine(ctx)
		switch {
		case errors.Is(err, ErrInputCancelled):
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, command.MessageGoodbye)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read command: %w", err)
		}

		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "help":
			s.Help()
			continue
		case "clear":
			fmt.Fprint(s.out, clearScreen)
			s.Welcome()
			continue
		}

		result := s.executor.Execute(ctx, line)
		fmt.Fprintln(s.out, styleResult(result))

		if result.Exit {
			return nil
		}
		fmt.Fprintln(s.out)
	}
}

// styleResult colors failed replies. Multi-line tables stay plain so their
// columns line up.
func styleResult(result command.Result) string {
	switch result.Status {
	case command.StatusError:
		return ErrorStyle.Render(result.Text)
	case command.StatusUsage:
		return WarningStyle.Render(result.Text)
	default:
		if strings.HasPrefix(result.Text, "Income of ") || strings.HasPrefix(result.Text, "Expense of ") {
			return SuccessStyle.Render(result.Text)
		}
		return result.Text
	}
}
