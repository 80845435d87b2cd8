// Package model defines the ledger's domain types.
package model

// Account holds one user's ledger. Transactions are kept in insertion order.
type Account struct {
	Username     string
	Transactions []Transaction
}

// NewAccount returns an empty account for username.
func NewAccount(username string) *Account {
	return &Account{
		Username:     username,
		Transactions: []Transaction{},
	}
}
