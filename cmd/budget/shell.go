package main

import (
	"fmt"

	"github.com/Veraticus/budget-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Load your ledger and read commands until you type exit.

If no ledger exists yet you are asked for a username and a new account is
created. Every command that changes the ledger is saved immediately.`,
		Example: `  budget shell
  Budget Tracker> add income 1500 Salary Monthly payment
  Budget Tracker> add expense 50.25 Food Groceries 03/06/2024
  Budget Tracker> category_summary current_month`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	interrupts := cli.NewInterruptHandler(out)
	ctx := interrupts.HandleInterrupts(cmd.Context())

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	account, created, err := loadAccount(ctx, store, func() (string, error) {
		return cli.PromptUsername(ctx, reader, out)
	})
	if err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		return err
	}

	if created {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("New account created for %s!", account.Username)))
	} else {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Welcome back, %s!", account.Username)))
	}
	fmt.Fprintln(out)

	processor, err := newProcessor(cfg, account, store)
	if err != nil {
		return err
	}

	return cli.NewShellWithReader(processor, reader, out).Run(ctx)
}
