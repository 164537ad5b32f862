package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is a non-negative arbitrary-precision amount. The zero value is ZeroMoney.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the identity for summation.
var ZeroMoney = Money{amount: decimal.Zero}

// NewMoney wraps d, rejecting negative values.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, d.String())
	}
	return Money{amount: d}, nil
}

// NewMoneyFromString parses s as a decimal and wraps it.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, s)
	}
	return NewMoney(d)
}

// Add returns m + other.
func (m Money) Add(other *Money) (Money, error) {
	if other == nil {
		return Money{}, fmt.Errorf("%w: add", apperrors.ErrMissingOperand)
	}
	return m.plus(*other), nil
}

// Subtract returns m - other. The result is not re-validated and may be negative;
// keeping ledger balances meaningful is the caller's concern.
func (m Money) Subtract(other *Money) (Money, error) {
	if other == nil {
		return Money{}, fmt.Errorf("%w: subtract", apperrors.ErrMissingOperand)
	}
	return Money{amount: m.amount.Sub(other.amount)}, nil
}

func (m Money) plus(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Equal compares by numeric value, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON encodes the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON decodes a decimal and enforces the non-negative invariant.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SumMoney folds amounts starting from ZeroMoney.
func SumMoney(amounts ...Money) Money {
	total := ZeroMoney
	for _, a := range amounts {
		total = total.plus(a)
	}
	return total
}
