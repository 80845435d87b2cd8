package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: "   ", wantErr: true},
		{name: "string with spaces", str: "  test  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "param") {
				t.Errorf("validateString() error should contain param name, got %v", err)
			}
		})
	}
}

func TestValidateTransaction(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		modify  func(txn *model.Transaction)
		wantErr bool
	}{
		{name: "valid expense", modify: func(*model.Transaction) {}},
		{name: "missing id", modify: func(txn *model.Transaction) { txn.ID = "" }, wantErr: true},
		{name: "blank category", modify: func(txn *model.Transaction) { txn.Category = " " }, wantErr: true},
		{name: "unknown kind", modify: func(txn *model.Transaction) { txn.Kind = "Transfer" }, wantErr: true},
		{name: "zero date", modify: func(txn *model.Transaction) { txn.Date = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := testTxn(model.KindExpense, "12.50", "Food", "", now)
			tt.modify(&txn)

			err := validateTransaction(txn)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransaction)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
