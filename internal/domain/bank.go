package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBankNotFound indicates that the bank is not found.
	ErrBankNotFound = errors.New("bank not found")
	// ErrStaleBank indicates that the bank changed since it was read.
	ErrStaleBank = errors.New("bank version conflict")
)

// Bank aggregates the accounts it owns and moves money between them.
//
// Accounts keeps insertion order. The slice is the single owning edge;
// each held account points back via its BankID.
type Bank struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Accounts  []*Account `json:"accounts,omitempty"`
	Version   int32      `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// AddAccount appends the account to the bank's collection and sets the
// account's back-reference. No duplicate detection is performed; adding the
// same account twice leaves two entries referencing it.
func (b *Bank) AddAccount(a *Account) {
	b.Accounts = append(b.Accounts, a)
	a.BankID = b.ID
}

// Transfer debits src and then credits dst by amount.
//
// The credit is never attempted when the debit fails, so a failed transfer
// leaves both balances untouched.
func (b *Bank) Transfer(src, dst *Account, amount decimal.Decimal) error {
	if err := src.Debit(amount); err != nil {
		return err
	}

	return dst.Credit(amount)
}
