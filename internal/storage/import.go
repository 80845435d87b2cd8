package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/service"
)

// ImportOptions controls ImportAccount.
type ImportOptions struct {
	// OnProgress is called after each transaction is checked.
	OnProgress func(done, total int)
	// Overwrite allows replacing an account already present in the destination.
	Overwrite bool
}

// ImportAccount copies the account held by src into dst, checking every
// transaction on the way. It returns the number of transactions copied.
func ImportAccount(ctx context.Context, src, dst service.AccountStore, opts ImportOptions) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	account, err := src.LoadAccount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load source account: %w", err)
	}

	if !opts.Overwrite {
		_, err := dst.LoadAccount(ctx)
		switch {
		case err == nil:
			return 0, ErrAccountExists
		case !errors.Is(err, common.ErrNotFound):
			return 0, fmt.Errorf("failed to inspect destination: %w", err)
		}
	}

	total := len(account.Transactions)
	copied := model.NewAccount(account.Username)
	for i, txn := range account.Transactions {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if err := validateTransaction(txn); err != nil {
			return 0, fmt.Errorf("transaction at index %d: %w", i, err)
		}
		copied.Transactions = append(copied.Transactions, txn)

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, total)
		}
	}

	if err := dst.SaveAccount(ctx, copied); err != nil {
		return 0, fmt.Errorf("failed to save destination account: %w", err)
	}
	return total, nil
}
