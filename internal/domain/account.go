// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds indicates that the balance cannot cover a debit.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNonPositiveAmount indicates a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrStaleAccount indicates that the account changed since it was read.
	ErrStaleAccount = errors.New("account version conflict")
)

// Account holds an owner's balance within a bank.
//
// BankID is a non-owning back-reference to the bank whose collection holds
// the account; the bank's collection remains the single owning edge.
// Version is bumped on every update and backs the optimistic-concurrency
// check at persistence time.
type Account struct {
	ID        int64           `json:"id"`
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	BankID    int64           `json:"bank_id,omitempty"`
	Version   int32           `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

// Debit decreases the balance by amount.
//
// The new balance is the exact decimal subtraction. A debit exceeding the
// current balance fails with ErrInsufficientFunds and leaves the balance
// untouched.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}

	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)

	return nil
}

// Credit increases the balance by amount. It never fails for a positive
// amount.
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}

	a.Balance = a.Balance.Add(amount)

	return nil
}
