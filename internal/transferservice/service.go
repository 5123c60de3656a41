// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-banco/banco/internal/domain"
)

// AccountRepo provides the account data access interface needed by the
// transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountRepo interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
}

// BankRepo provides the bank data access interface needed by the transfer
// service layer.
type BankRepo interface {
	Get(ctx context.Context, id int64) (domain.Bank, error)
}

// Service orchestrates transfers between two accounts.
type Service struct {
	accounts AccountRepo
	banks    BankRepo
}

// New returns transfer service struct to manage transfer business logic.
func New(ar AccountRepo, br BankRepo) *Service {
	return &Service{
		accounts: ar,
		banks:    br,
	}
}

// Transfer moves the requested amount from the source to the destination
// account and returns a receipt.
//
// Both accounts are resolved through the account repository; when a bank ID
// is given the bank aggregate performs the debit/credit pair, otherwise the
// accounts are debited and credited directly. The mutated accounts are
// persisted source first, mirroring the debit/credit order. When the
// destination update fails after the source update went through, the source
// is re-credited so that no money silently disappears.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.Receipt, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Receipt{}, domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Receipt{}, domain.ErrNonPositiveAmount
	}

	src, err := s.accounts.Get(ctx, arg.SourceAccountID)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Receipt{}, err
	}

	dst, err := s.accounts.Get(ctx, arg.DestinationAccountID)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Receipt{}, err
	}

	if arg.BankID != 0 {
		bank, err := s.banks.Get(ctx, arg.BankID)
		if err != nil {
			l.Info().Err(err).Send()
			return domain.Receipt{}, err
		}

		if err := bank.Transfer(&src, &dst, amount); err != nil {
			l.Info().Err(err).Send()
			return domain.Receipt{}, err
		}
	} else {
		if err := src.Debit(amount); err != nil {
			l.Info().Err(err).Send()
			return domain.Receipt{}, err
		}

		if err := dst.Credit(amount); err != nil {
			l.Info().Err(err).Send()
			return domain.Receipt{}, err
		}
	}

	src, err = s.accounts.Update(ctx, src)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Receipt{}, err
	}

	if _, err = s.accounts.Update(ctx, dst); err != nil {
		l.Error().Err(err).Send()
		s.compensate(ctx, src, amount)

		return domain.Receipt{}, err
	}

	return domain.Receipt{
		TransactionID:        uuid.NewString(),
		SourceAccountID:      arg.SourceAccountID,
		DestinationAccountID: arg.DestinationAccountID,
		Amount:               arg.Amount,
		BankID:               arg.BankID,
		Status:               domain.StatusCompleted,
		Timestamp:            time.Now().UTC(),
	}, nil
}

// compensate re-credits the source account after the destination update
// failed. The repository contract offers no transaction, so the re-credit is
// a second explicit update; if it fails too the ledger is left inconsistent
// and the error is logged for manual repair.
func (s *Service) compensate(ctx context.Context, src domain.Account, amount decimal.Decimal) {
	l := zerolog.Ctx(ctx)

	if err := src.Credit(amount); err != nil {
		l.Error().Err(err).Int64("account_id", src.ID).Msg("compensating credit failed")
		return
	}

	if _, err := s.accounts.Update(ctx, src); err != nil {
		l.Error().Err(err).Int64("account_id", src.ID).Msg("compensating update failed")
	}
}
