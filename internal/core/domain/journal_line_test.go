package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJournalEntryLineFromPair(t *testing.T) {
	amount := mustMoney(t, "250")

	tests := []struct {
		name       string
		debit      *domain.Money
		credit     *domain.Money
		wantErr    bool
		wantDebit  bool
		wantCredit bool
	}{
		{name: "debit only", debit: &amount, wantDebit: true},
		{name: "credit only", credit: &amount, wantCredit: true},
		{name: "both", debit: &amount, credit: &amount, wantErr: true},
		{name: "neither", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := domain.NewJournalEntryLineFromPair(1, 42, tt.debit, tt.credit, "memo")
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebit, line.IsDebit())
			assert.Equal(t, tt.wantCredit, line.IsCredit())
			if tt.wantDebit {
				require.NotNil(t, line.Debit())
				assert.Nil(t, line.Credit())
				assert.True(t, line.Debit().Equal(amount))
			} else {
				require.NotNil(t, line.Credit())
				assert.Nil(t, line.Debit())
			}
		})
	}
}

func TestNewJournalEntryLine_Validation(t *testing.T) {
	amount := domain.DebitAmount(mustMoney(t, "1"))

	_, err := domain.NewJournalEntryLine(0, 1, amount, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewJournalEntryLine(1, 0, amount, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewJournalEntryLine(1, 1, domain.LineAmount{}, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]domain.Side{"D": domain.SideDebit, "c": domain.SideCredit, " C ": domain.SideCredit} {
		got, err := domain.ParseSide(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "DC", "X", "debit"} {
		_, err := domain.ParseSide(in)
		assert.ErrorIs(t, err, apperrors.ErrValidation, in)
	}
}
