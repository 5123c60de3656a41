package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAddAccount(t *testing.T) {
	t.Parallel()

	bank := Bank{ID: 1, Name: "Banco Financiero"}
	ivan := Account{ID: 1, Owner: "Ivan", Balance: decimal.RequireFromString("1000.12345")}
	juan := Account{ID: 2, Owner: "Juan", Balance: decimal.RequireFromString("500.00")}

	bank.AddAccount(&ivan)
	bank.AddAccount(&juan)

	require.Len(t, bank.Accounts, 2)
	require.Equal(t, bank.ID, ivan.BankID)
	require.Equal(t, bank.ID, juan.BankID)
	require.Equal(t, []*Account{&ivan, &juan}, bank.Accounts)
}

func TestBankTransfer(t *testing.T) {
	t.Parallel()

	bank := Bank{ID: 1, Name: "Banco Financiero"}
	ivan := Account{ID: 1, Owner: "Ivan", Balance: decimal.RequireFromString("1000.12345")}
	juan := Account{ID: 2, Owner: "Juan", Balance: decimal.RequireFromString("500.00")}
	bank.AddAccount(&ivan)
	bank.AddAccount(&juan)

	err := bank.Transfer(&ivan, &juan, decimal.RequireFromString("100.00"))
	require.NoError(t, err)

	require.EqualValues(t, 900, ivan.Balance.IntPart())
	require.EqualValues(t, 600, juan.Balance.IntPart())
	require.Equal(t, "900.12345", ivan.Balance.String())
	require.Equal(t, "600.00", juan.Balance.StringFixed(2))
	require.Len(t, bank.Accounts, 2)
}

func TestBankTransferInsufficientFunds(t *testing.T) {
	t.Parallel()

	bank := Bank{ID: 1, Name: "Banco Financiero"}
	src := Account{ID: 1, Owner: "Ivan", Balance: decimal.RequireFromString("1000.00")}
	dst := Account{ID: 2, Owner: "Juan", Balance: decimal.RequireFromString("500.00")}
	bank.AddAccount(&src)
	bank.AddAccount(&dst)

	err := bank.Transfer(&src, &dst, decimal.RequireFromString("2000.00"))

	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, "1000.00", src.Balance.StringFixed(2))
	// The credit must never run when the debit failed.
	require.Equal(t, "500.00", dst.Balance.StringFixed(2))
}

func TestBankTransferRoundTrip(t *testing.T) {
	t.Parallel()

	bank := Bank{ID: 1, Name: "Banco Financiero"}
	a := Account{ID: 1, Owner: "Ivan", Balance: decimal.RequireFromString("1000.12345")}
	b := Account{ID: 2, Owner: "Juan", Balance: decimal.RequireFromString("500.00")}
	bank.AddAccount(&a)
	bank.AddAccount(&b)

	amount := decimal.RequireFromString("123.45")

	require.NoError(t, bank.Transfer(&a, &b, amount))
	require.NoError(t, bank.Transfer(&b, &a, amount))

	require.True(t, a.Balance.Equal(decimal.RequireFromString("1000.12345")))
	require.True(t, b.Balance.Equal(decimal.RequireFromString("500.00")))
}
