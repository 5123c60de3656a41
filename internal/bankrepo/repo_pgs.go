// Package bankrepo manages repository layer of banks.
package bankrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/go-banco/banco/internal/domain"
	"github.com/go-banco/banco/pkg/dbpkg"
	"github.com/go-banco/banco/pkg/errorspkg"
)

// RepoPGS facilitates bank repository layer logic backed by Postgres.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns bank RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT
	id, name, version, created_at
FROM banks
WHERE id = $1
`

const getAccountsQuery = `
SELECT
	id, owner, balance, bank_id, version, created_at
FROM accounts
WHERE bank_id = $1
ORDER BY id
`

// Get returns the bank with the given id together with the accounts it owns,
// ordered by id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var b domain.Bank

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Version,
		&b.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return b, domain.ErrBankNotFound
		}

		return b, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, getAccountsQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return b, errorspkg.ErrInternal
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Owner, &a.Balance, &a.BankID, &a.Version, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return b, errorspkg.ErrInternal
		}

		b.Accounts = append(b.Accounts, &a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return b, errorspkg.ErrInternal
	}

	return b, nil
}

const listQuery = `
SELECT
	id, name, version, created_at
FROM banks
ORDER BY id
`

// List returns all banks ordered by id, without their account collections.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Bank{}

	for rows.Next() {
		var b domain.Bank
		if err := rows.Scan(&b.ID, &b.Name, &b.Version, &b.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, b)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE banks
SET name = $1, version = version + 1
WHERE id = $2 AND version = $3
RETURNING id, name, version, created_at
`

// Update persists the bank row and returns the stored representation.
// Owned accounts are persisted through the account repository, not here.
func (r *RepoPGS) Update(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, bank.Name, bank.ID, bank.Version)

	var b domain.Bank

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Version,
		&b.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, bank.ID); getErr == domain.ErrBankNotFound {
				return b, domain.ErrBankNotFound
			}

			return b, domain.ErrStaleBank
		}

		return b, errorspkg.ErrInternal
	}

	return b, nil
}
