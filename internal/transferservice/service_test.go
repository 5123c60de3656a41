package transferservice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-banco/banco/internal/domain"
	"github.com/go-banco/banco/pkg/errorspkg"
)

func testAccount(id int64, owner, balance string) domain.Account {
	return domain.Account{
		ID:        id,
		Owner:     owner,
		Balance:   decimal.RequireFromString(balance),
		BankID:    1,
		Version:   3,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// accountWith matches a domain.Account by id and exact balance.
type accountWith struct {
	id      int64
	balance string
}

func (m accountWith) Matches(x interface{}) bool {
	a, ok := x.(domain.Account)
	if !ok {
		return false
	}

	return a.ID == m.id && a.Balance.Equal(decimal.RequireFromString(m.balance))
}

func (m accountWith) String() string {
	return fmt.Sprintf("account %d with balance %s", m.id, m.balance)
}

func TestTransfer(t *testing.T) {
	testBank := domain.Bank{ID: 1, Name: "Banco Financiero", Version: 1}
	testAmount := "100.00"

	testCases := []struct {
		name          string
		arg           domain.TransferParams
		buildStubs    func(accounts *MockAccountRepo, banks *MockBankRepo)
		checkResponse func(t *testing.T, res domain.Receipt, err error)
	}{
		{
			name: "InvalidAmount",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               "!@#$",
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
				banks.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "NegativeAmount",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               "-100.00",
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
				banks.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			},
		},
		{
			name: "SourceAccountNotFound",
			arg: domain.TransferParams{
				SourceAccountID:      77,
				DestinationAccountID: 2,
				Amount:               testAmount,
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(77))).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
				banks.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "DestinationAccountNotFound",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 88,
				Amount:               testAmount,
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(88))).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
				banks.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "BankNotFound",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               testAmount,
				BankID:               9,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(2))).
					Times(1).
					Return(testAccount(2, "Juan", "500.00"), nil)
				banks.EXPECT().Get(gomock.Any(), gomock.Eq(int64(9))).
					Times(1).
					Return(domain.Bank{}, domain.ErrBankNotFound)
				accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrBankNotFound)
			},
		},
		{
			name: "InsufficientFunds",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               "10000.00",
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(2))).
					Times(1).
					Return(testAccount(2, "Juan", "500.00"), nil)
				banks.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testBank, nil)
				accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientFunds)
			},
		},
		{
			name: "SourceUpdateConflict",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               testAmount,
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(2))).
					Times(1).
					Return(testAccount(2, "Juan", "500.00"), nil)
				banks.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testBank, nil)
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 1, balance: "900.00"}).
					Times(1).
					Return(domain.Account{}, domain.ErrStaleAccount)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrStaleAccount)
			},
		},
		{
			name: "DestinationUpdateFailureCompensates",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               testAmount,
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(2))).
					Times(1).
					Return(testAccount(2, "Juan", "500.00"), nil)
				banks.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testBank, nil)

				debited := testAccount(1, "Ivan", "900.00")
				debited.Version++

				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 1, balance: "900.00"}).
					Times(1).
					Return(debited, nil)
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 2, balance: "600.00"}).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
				// The compensating update restores the source balance.
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 1, balance: "1000.00"}).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "OK",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               testAmount,
				BankID:               1,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(2))).
					Times(1).
					Return(testAccount(2, "Juan", "500.00"), nil)
				banks.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testBank, nil)
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 1, balance: "900.00"}).
					Times(1).
					Return(testAccount(1, "Ivan", "900.00"), nil)
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 2, balance: "600.00"}).
					Times(1).
					Return(testAccount(2, "Juan", "600.00"), nil)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.NoError(t, err)
				require.Equal(t, int64(1), res.SourceAccountID)
				require.Equal(t, int64(2), res.DestinationAccountID)
				require.Equal(t, "100.00", res.Amount)
				require.Equal(t, int64(1), res.BankID)
				require.Equal(t, domain.StatusCompleted, res.Status)
				require.WithinDuration(t, time.Now().UTC(), res.Timestamp, 2*time.Second)

				_, err = uuid.Parse(res.TransactionID)
				require.NoError(t, err)
			},
		},
		{
			name: "OKWithoutBank",
			arg: domain.TransferParams{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               testAmount,
			},
			buildStubs: func(accounts *MockAccountRepo, banks *MockBankRepo) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(testAccount(1, "Ivan", "1000.00"), nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(int64(2))).
					Times(1).
					Return(testAccount(2, "Juan", "500.00"), nil)
				banks.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 1, balance: "900.00"}).
					Times(1).
					Return(testAccount(1, "Ivan", "900.00"), nil)
				accounts.EXPECT().Update(gomock.Any(), accountWith{id: 2, balance: "600.00"}).
					Times(1).
					Return(testAccount(2, "Juan", "600.00"), nil)
			},
			checkResponse: func(t *testing.T, res domain.Receipt, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.StatusCompleted, res.Status)
				require.Zero(t, res.BankID)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountRepo(ctrl)
			banks := NewMockBankRepo(ctrl)
			service := New(accounts, banks)

			tc.buildStubs(accounts, banks)

			res, err := service.Transfer(context.Background(), tc.arg)
			tc.checkResponse(t, res, err)
		})
	}
}
