package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/mattn/go-sqlite3"
)

// SaveAccount replaces the stored snapshot with account in one transaction.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, account *model.Account) error {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return storageError(s.dbPath, "validate account", err)
	}

	return common.WithRetry(ctx, func() error {
		err := s.saveOnce(ctx, account)
		if err != nil && !isBusy(err) {
			return common.Permanent(err)
		}
		return err
	}, saveRetry)
}

// saveRetry bounds how long a save waits on a locked database beyond the
// driver's own busy timeout.
var saveRetry = common.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     time.Second,
}

func (s *SQLiteStorage) saveOnce(ctx context.Context, account *model.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError(s.dbPath, "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveAccountTx(ctx, tx, account); err != nil {
		return storageError(s.dbPath, "save account", err)
	}

	if err := tx.Commit(); err != nil {
		return storageError(s.dbPath, "commit account", err)
	}
	return nil
}

// isBusy reports whether err comes from another connection holding a lock.
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func (s *SQLiteStorage) saveAccountTx(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (id, username, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, updated_at = CURRENT_TIMESTAMP
	`, account.Username)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, position, kind, amount, label, description, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range account.Transactions {
		_, err := stmt.ExecContext(ctx,
			txn.ID,
			i,
			string(txn.Kind),
			txn.Amount,
			txn.Label(),
			txn.Description,
			txn.Date.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return nil
}

// LoadAccount reads the stored snapshot. It returns common.ErrNotFound when
// no account has been saved.
func (s *SQLiteStorage) LoadAccount(ctx context.Context) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var username string
	err := s.db.QueryRowContext(ctx, `SELECT username FROM accounts WHERE id = 1`).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no account in %s", common.ErrNotFound, s.dbPath)
	}
	if err != nil {
		return nil, storageError(s.dbPath, "load account", err)
	}

	transactions, err := s.loadTransactions(ctx, s.db)
	if err != nil {
		return nil, storageError(s.dbPath, "load transactions", err)
	}

	return &model.Account{
		Username:     username,
		Transactions: transactions,
	}, nil
}

func (s *SQLiteStorage) loadTransactions(ctx context.Context, q queryable) ([]model.Transaction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, kind, amount, label, description, date
		FROM transactions
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var txn model.Transaction
		var kind, label, date string

		if err := rows.Scan(&txn.ID, &kind, &txn.Amount, &label, &txn.Description, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.Kind = model.Kind(kind)
		if txn.Kind == model.KindIncome {
			txn.Source = label
		} else {
			txn.Category = label
		}

		txn.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s has unreadable date %q", common.ErrDatabaseCorrupted, txn.ID, date)
		}

		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("%w: transaction %s: %w", common.ErrDatabaseCorrupted, txn.ID, err)
		}

		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// TransactionCount returns the number of stored transactions.
func (s *SQLiteStorage) TransactionCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
