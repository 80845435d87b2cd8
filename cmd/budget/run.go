package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/budget-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "run <command words...>",
		Short: "Run a single ledger command",
		Long: `Run one interpreter command and print its reply, for scripts.

The exit status is non-zero when the command is rejected or fails.`,
		Example: `  budget run add expense 12.50 Transport Bus pass
  budget run list expense current_month
  budget run category_summary 01/06/2024 30/06/2024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			account, _, err := loadAccount(ctx, store, func() (string, error) {
				return username, nil
			})
			if err != nil {
				return err
			}

			processor, err := newProcessor(cfg, account, store)
			if err != nil {
				return err
			}

			result := processor.Execute(ctx, strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), result.Text)

			if result.Failed() {
				return errCommandFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", cli.DefaultUsername, "Username for a new account")
	// Amounts such as -5 must reach the interpreter as words, not flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
