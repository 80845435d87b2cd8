// Package service defines the interfaces between the ledger and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/budget-tracker/internal/model"
)

// AccountStore persists full account snapshots.
type AccountStore interface {
	// SaveAccount overwrites the stored snapshot with account.
	SaveAccount(ctx context.Context, account *model.Account) error
	// LoadAccount returns the stored snapshot, or common.ErrNotFound when
	// nothing has been saved yet.
	LoadAccount(ctx context.Context) (*model.Account, error)
	Close() error
}

// Migrator is implemented by stores that keep a versioned schema.
type Migrator interface {
	Migrate(ctx context.Context) error
}
