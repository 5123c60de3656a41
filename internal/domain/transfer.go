package domain

import (
	"errors"
	"time"
)

// ErrInvalidAmount indicates an amount that does not parse as a decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// StatusCompleted is the receipt status of a successful transfer.
const StatusCompleted = "transfer completed successfully"

// TransferParams is the input data for a transfer between two accounts.
//
// Amount travels as a decimal string so that precision survives any
// serialization at the boundary. BankID is optional; zero means no explicit
// bank aggregate is resolved.
type TransferParams struct {
	SourceAccountID      int64  `json:"source_account_id"`
	DestinationAccountID int64  `json:"destination_account_id"`
	Amount               string `json:"amount"` // must be positive
	BankID               int64  `json:"bank_id,omitempty"`
}

// Receipt echoes a completed transfer back to the caller.
//
// It is built per call and never persisted.
type Receipt struct {
	TransactionID        string    `json:"transaction_id"`
	SourceAccountID      int64     `json:"source_account_id"`
	DestinationAccountID int64     `json:"destination_account_id"`
	Amount               string    `json:"amount"`
	BankID               int64     `json:"bank_id,omitempty"`
	Status               string    `json:"status"`
	Timestamp            time.Time `json:"timestamp"`
}
