// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/go-banco/banco/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create opens an account for the given owner in the given bank and returns
// it as persisted. The starting balance must parse as a non-negative decimal.
func (s *Service) Create(ctx context.Context, owner, balance string, bankID int64) (domain.Account, error) {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if amount.IsNegative() {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	account := domain.Account{
		Owner:   owner,
		Balance: amount,
		BankID:  bankID,
	}

	return s.repo.Create(ctx, account)
}

// Get returns the account with the given ID as persisted, unchanged.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all persisted accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Delete removes the account with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
