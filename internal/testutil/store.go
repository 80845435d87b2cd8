// Package testutil provides test doubles and fixtures for the ledger packages.
package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/stretchr/testify/mock"
)

// MemoryStore is an in-memory AccountStore that keeps a deep copy of the last
// saved snapshot, the way a real store would.
type MemoryStore struct {
	snapshot *model.Account
	// SaveErr, when set, is returned by every SaveAccount call.
	SaveErr error
	// LoadErr, when set, is returned by every LoadAccount call.
	LoadErr error
	saves   int
	mu      sync.Mutex
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveAccount implements service.AccountStore.
func (s *MemoryStore) SaveAccount(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snapshot = CloneAccount(account)
	s.saves++
	return nil
}

// LoadAccount implements service.AccountStore.
func (s *MemoryStore) LoadAccount(_ context.Context) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.snapshot == nil {
		return nil, common.ErrNotFound
	}
	return CloneAccount(s.snapshot), nil
}

// Close implements service.AccountStore.
func (s *MemoryStore) Close() error {
	return nil
}

// Saves returns the number of successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// CloneAccount deep-copies an account.
func CloneAccount(account *model.Account) *model.Account {
	clone := &model.Account{
		Username:     account.Username,
		Transactions: make([]model.Transaction, len(account.Transactions)),
	}
	copy(clone.Transactions, account.Transactions)
	return clone
}

// MockStore is a testify mock of service.AccountStore.
type MockStore struct {
	mock.Mock
}

// SaveAccount implements service.AccountStore.
func (m *MockStore) SaveAccount(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// LoadAccount implements service.AccountStore.
func (m *MockStore) LoadAccount(ctx context.Context) (*model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if account, ok := args.Get(0).(*model.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// Close implements service.AccountStore.
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
