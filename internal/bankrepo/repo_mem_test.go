package bankrepo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-banco/banco/internal/domain"
)

func seededRepo(t *testing.T) *RepoMem {
	t.Helper()

	bank := domain.Bank{ID: 1, Name: "Banco Financiero"}
	ivan := domain.Account{ID: 1, Owner: "Ivan", Balance: decimal.RequireFromString("1000.00")}
	juan := domain.Account{ID: 2, Owner: "Juan", Balance: decimal.RequireFromString("500.00")}
	bank.AddAccount(&ivan)
	bank.AddAccount(&juan)

	repo := NewRepoMem()
	repo.Seed(bank)

	return repo
}

func TestRepoMemGet(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)

	bank, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Banco Financiero", bank.Name)
	require.Len(t, bank.Accounts, 2)
	require.Equal(t, bank.ID, bank.Accounts[0].BankID)

	_, err = repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrBankNotFound)
}

func TestRepoMemList(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	repo.Seed(domain.Bank{Name: "Banco Norte"})

	banks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 2)
	require.Equal(t, int64(1), banks[0].ID)
	require.Equal(t, int64(2), banks[1].ID)
	require.Equal(t, "Banco Norte", banks[1].Name)
}

func TestRepoMemGetCopiesAccounts(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	ctx := context.Background()

	bank, err := repo.Get(ctx, 1)
	require.NoError(t, err)

	// Mutating the returned aggregate must not leak into the store.
	bank.Accounts[0].Balance = decimal.Zero
	bank.Accounts = bank.Accounts[:1]

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored.Accounts, 2)
	require.True(t, stored.Accounts[0].Balance.Equal(decimal.RequireFromString("1000.00")))
}

func TestRepoMemUpdate(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	ctx := context.Background()

	bank, err := repo.Get(ctx, 1)
	require.NoError(t, err)

	bank.Name = "Banco Central"

	updated, err := repo.Update(ctx, bank)
	require.NoError(t, err)
	require.Equal(t, "Banco Central", updated.Name)
	require.Equal(t, bank.Version+1, updated.Version)

	_, err = repo.Update(ctx, bank)
	require.ErrorIs(t, err, domain.ErrStaleBank)
}

func TestRepoMemUpdateNotFound(t *testing.T) {
	t.Parallel()

	repo := NewRepoMem()

	_, err := repo.Update(context.Background(), domain.Bank{ID: 3})
	require.ErrorIs(t, err, domain.ErrBankNotFound)
}
