package domain

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

var accountCodePattern = regexp.MustCompile(`^\d{4}$`)

// AccountCode is a 4-digit chart-of-accounts code. The first two digits select the category.
type AccountCode string

// ParseAccountCode validates s as a 4-digit code.
func ParseAccountCode(s string) (AccountCode, error) {
	if !accountCodePattern.MatchString(s) {
		return "", fmt.Errorf("%w: account code must be exactly 4 digits, got %q", apperrors.ErrValidation, s)
	}
	return AccountCode(s), nil
}

// Prefix returns the numeric category prefix (first two digits).
func (c AccountCode) Prefix() int {
	if len(c) < 2 {
		return -1
	}
	p, err := strconv.Atoi(string(c[:2]))
	if err != nil {
		return -1
	}
	return p
}

// Type resolves the account category from the prefix ranges
// 11-19 asset, 21-29 liability, 31-39 equity, 41-49 revenue, 51-79 expense.
func (c AccountCode) Type() (AccountType, error) {
	p := c.Prefix()
	switch {
	case p >= 11 && p <= 19:
		return Asset, nil
	case p >= 21 && p <= 29:
		return Liability, nil
	case p >= 31 && p <= 39:
		return Equity, nil
	case p >= 41 && p <= 49:
		return Revenue, nil
	case p >= 51 && p <= 79:
		return Expense, nil
	}
	return "", fmt.Errorf("%w: account code %q has no category for prefix %d", apperrors.ErrValidation, string(c), p)
}

// IsBalanceSheet reports whether the code classifies as asset, liability or equity.
func (c AccountCode) IsBalanceSheet() bool {
	t, err := c.Type()
	return err == nil && t.IsBalanceSheet()
}

// IsIncomeStatement reports whether the code classifies as revenue or expense.
func (c AccountCode) IsIncomeStatement() bool {
	t, err := c.Type()
	return err == nil && !t.IsBalanceSheet()
}

func (c AccountCode) String() string {
	return string(c)
}
