package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/budget-tracker/internal/command"
	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/config"
	"github.com/Veraticus/budget-tracker/internal/ledger"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/Veraticus/budget-tracker/internal/money"
	"github.com/Veraticus/budget-tracker/internal/service"
	"github.com/Veraticus/budget-tracker/internal/storage"
	"github.com/spf13/viper"
)

// errCommandFailed signals a failed interpreter command whose reply has
// already been printed.
var errCommandFailed = errors.New("command failed")

// loadConfig resolves the configuration from viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", err)
	}
	return cfg, nil
}

// initStorage opens the configured store, migrating SQLite on the way.
func initStorage(ctx context.Context, cfg *config.Config) (service.AccountStore, error) {
	store, err := storage.Open(ctx, storage.Config{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
	})
	if err != nil {
		return nil, common.NewUserError("Could not open your budget data", err)
	}
	return store, nil
}

// initSQLiteStorage opens the configured store and requires it to be SQLite.
func initSQLiteStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	if cfg.Storage.Backend != storage.BackendSQLite {
		return nil, common.NewUserError("Checkpoints need the sqlite backend",
			fmt.Errorf("configured backend is %q", cfg.Storage.Backend))
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sqliteStore, ok := store.(*storage.SQLiteStorage)
	if !ok {
		_ = store.Close()
		return nil, fmt.Errorf("storage is not SQLite")
	}
	return sqliteStore, nil
}

// loadAccount loads the stored account. When none exists, a new one is
// created with the name returned by askUsername and saved immediately.
func loadAccount(ctx context.Context, store service.AccountStore, askUsername func() (string, error)) (*model.Account, bool, error) {
	account, err := store.LoadAccount(ctx)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, common.NewUserError("Could not load your budget data", err)
	}

	username, err := askUsername()
	if err != nil {
		return nil, false, err
	}

	account = model.NewAccount(username)
	if err := store.SaveAccount(ctx, account); err != nil {
		return nil, false, common.NewUserError("Could not create your account", err)
	}
	slog.Info("Created account", "username", username)
	return account, true, nil
}

// newProcessor wires a ledger manager and command processor over account.
func newProcessor(cfg *config.Config, account *model.Account, store service.AccountStore) (*command.Processor, error) {
	manager, err := ledger.NewManager(account, store, ledger.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}

	formatter, err := money.NewFormatter(cfg.Display.Locale)
	if err != nil {
		return nil, err
	}

	return command.NewProcessor(manager,
		command.WithFormatter(formatter),
		command.WithLogger(slog.Default()))
}

func closeStore(store service.AccountStore) {
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close storage", nil)
	}
}
