package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountCode(t *testing.T) {
	for _, valid := range []string{"0000", "1101", "7999"} {
		code, err := domain.ParseAccountCode(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, valid, code.String())
	}
	for _, invalid := range []string{"", "110", "11011", "11a1", " 1101"} {
		_, err := domain.ParseAccountCode(invalid)
		assert.ErrorIs(t, err, apperrors.ErrValidation, invalid)
	}
}

func TestAccountCode_Categorization(t *testing.T) {
	tests := []struct {
		code          string
		wantType      domain.AccountType
		balanceSheet  bool
		normalBalance domain.Side
	}{
		{code: "1101", wantType: domain.Asset, balanceSheet: true, normalBalance: domain.SideDebit},
		{code: "1999", wantType: domain.Asset, balanceSheet: true, normalBalance: domain.SideDebit},
		{code: "2101", wantType: domain.Liability, balanceSheet: true, normalBalance: domain.SideCredit},
		{code: "3101", wantType: domain.Equity, balanceSheet: true, normalBalance: domain.SideCredit},
		{code: "4101", wantType: domain.Revenue, balanceSheet: false, normalBalance: domain.SideCredit},
		{code: "5101", wantType: domain.Expense, balanceSheet: false, normalBalance: domain.SideDebit},
		{code: "7901", wantType: domain.Expense, balanceSheet: false, normalBalance: domain.SideDebit},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			code, err := domain.ParseAccountCode(tt.code)
			require.NoError(t, err)

			got, err := code.Type()
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got)
			assert.Equal(t, tt.balanceSheet, code.IsBalanceSheet())
			assert.Equal(t, !tt.balanceSheet, code.IsIncomeStatement())
			assert.Equal(t, tt.normalBalance, got.NormalBalance())
		})
	}
}

func TestAccountCode_UnclassifiedPrefix(t *testing.T) {
	for _, c := range []string{"1000", "2000", "8001", "9999"} {
		code, err := domain.ParseAccountCode(c)
		require.NoError(t, err)

		_, err = code.Type()
		assert.ErrorIs(t, err, apperrors.ErrValidation, c)
		assert.False(t, code.IsBalanceSheet())
		assert.False(t, code.IsIncomeStatement())
	}
}

func TestNewAccount(t *testing.T) {
	acc, err := domain.NewAccount("1101", "Cash", domain.Asset)
	require.NoError(t, err)
	assert.Nil(t, acc.ID)
	assert.False(t, acc.IsPersisted())

	_, err = domain.NewAccount("1101", "  ", domain.Asset)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewAccount("11", "Cash", domain.Asset)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewAccount("1101", "Cash", domain.AccountType("INCOME"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseAccountType(t *testing.T) {
	got, err := domain.ParseAccountType("revenue")
	require.NoError(t, err)
	assert.Equal(t, domain.Revenue, got)

	_, err = domain.ParseAccountType("INCOME")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
