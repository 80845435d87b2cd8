package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JSONStorage keeps the account as one indented JSON document.
type JSONStorage struct {
	path string
}

// accountRecord is the persisted snapshot shape.
type accountRecord struct {
	Username     string              `json:"username"`
	Transactions []transactionRecord `json:"transactions"`
}

// transactionRecord is tagged by $type with the variant's identifier field.
type transactionRecord struct {
	Date        snapshotTime `json:"date"`
	Amount      json.Number  `json:"amount"`
	Type        string       `json:"$type"`
	ID          string       `json:"id,omitempty"`
	Description string       `json:"description"`
	Source      string       `json:"source,omitempty"`
	Category    string       `json:"category,omitempty"`
}

// snapshotTime writes RFC 3339 and also reads the offset-less timestamps
// produced by older snapshots, interpreting them in local time.
type snapshotTime struct {
	time.Time
}

var legacyTimeLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

func (t snapshotTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *snapshotTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range legacyTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", raw)
}

// NewJSONStorage returns a store writing to path. The file is created on
// the first save.
func NewJSONStorage(path string) (*JSONStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &JSONStorage{path: path}, nil
}

// Path returns the snapshot file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Close is a no-op; every save writes the file completely.
func (s *JSONStorage) Close() error {
	return nil
}

// SaveAccount writes the full snapshot atomically.
func (s *JSONStorage) SaveAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return storageError(s.path, "validate account", err)
	}

	data, err := encodeAccount(account)
	if err != nil {
		return storageError(s.path, "Failed to serialize account data to JSON.", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return storageError(s.path, "Directory not found.", err)
	}

	// Write to temporary file first
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return storageError(s.path, describeIOError(err), err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return storageError(s.path, describeIOError(err), err)
	}
	return nil
}

// LoadAccount reads the snapshot. A missing file is common.ErrNotFound.
func (s *JSONStorage) LoadAccount(ctx context.Context) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from configuration
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: account data file not found: %s", common.ErrNotFound, s.path)
	}
	if err != nil {
		return nil, storageError(s.path, describeIOError(err), err)
	}

	account, err := decodeAccount(data)
	if err != nil {
		return nil, storageError(s.path, "Invalid JSON format - file may be corrupted.", err)
	}
	return account, nil
}

func describeIOError(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "Access denied. Check file permissions."
	case errors.Is(err, fs.ErrNotExist):
		return "Directory not found."
	default:
		return "File input/output error."
	}
}

func encodeAccount(account *model.Account) ([]byte, error) {
	record := accountRecord{
		Username:     account.Username,
		Transactions: make([]transactionRecord, 0, len(account.Transactions)),
	}

	for _, txn := range account.Transactions {
		record.Transactions = append(record.Transactions, transactionRecord{
			Type:        string(txn.Kind),
			ID:          txn.ID,
			Amount:      json.Number(txn.Amount.String()),
			Description: txn.Description,
			Date:        snapshotTime{txn.Date},
			Source:      txn.Source,
			Category:    txn.Category,
		})
	}

	return json.MarshalIndent(record, "", "  ")
}

func decodeAccount(data []byte) (*model.Account, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.New("deserialized account is null")
	}

	var record accountRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	account := model.NewAccount(record.Username)
	for i, rec := range record.Transactions {
		amount, err := decimal.NewFromString(rec.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("%w: transaction at index %d: bad amount %q", common.ErrDatabaseCorrupted, i, rec.Amount)
		}

		txn := model.Transaction{
			ID:          rec.ID,
			Kind:        model.Kind(rec.Type),
			Amount:      amount,
			Description: rec.Description,
			Date:        rec.Date.Time,
		}
		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}

		switch txn.Kind {
		case model.KindIncome:
			txn.Source = strings.TrimSpace(rec.Source)
		case model.KindExpense:
			txn.Category = strings.TrimSpace(rec.Category)
		}

		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("%w: transaction at index %d: %w", common.ErrDatabaseCorrupted, i, err)
		}
		account.Transactions = append(account.Transactions, txn)
	}

	return account, nil
}
