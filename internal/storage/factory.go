package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/service"
)

// Backend names accepted in configuration.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config selects and locates a store.
type Config struct {
	Backend string
	Path    string
}

// Open returns the configured store, migrating it when it keeps a schema.
func Open(ctx context.Context, cfg Config) (service.AccountStore, error) {
	var (
		store service.AccountStore
		err   error
	)

	switch cfg.Backend {
	case BackendSQLite, "":
		store, err = NewSQLiteStorage(cfg.Path)
	case BackendJSON:
		store, err = NewJSONStorage(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if migrator, ok := store.(service.Migrator); ok {
		if err := migrator.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	common.LogDebug("Opened ledger", common.Fields{
		"backend": cfg.Backend,
		"path":    cfg.Path,
	})
	return store, nil
}
