package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ParseAccountType validates s against the five account categories.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(s))
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
}

// NormalBalance is the side on which the account's balance increases.
// Assets and expenses are debit-normal; liabilities, equity and revenue are credit-normal.
func (t AccountType) NormalBalance() Side {
	switch t {
	case Asset, Expense:
		return SideDebit
	default:
		return SideCredit
	}
}

// IsBalanceSheet is true for asset, liability and equity accounts.
func (t AccountType) IsBalanceSheet() bool {
	return t == Asset || t == Liability || t == Equity
}

// Account represents a ledger account within the core domain.
type Account struct {
	ID   *int64      `json:"id"` // nil until persisted
	Code AccountCode `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
	AuditFields
}

// NewAccount validates and builds an unsaved account.
func NewAccount(code AccountCode, name string, accountType AccountType) (Account, error) {
	if _, err := ParseAccountCode(string(code)); err != nil {
		return Account{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Account{}, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if _, err := ParseAccountType(string(accountType)); err != nil {
		return Account{}, err
	}
	return Account{Code: code, Name: name, Type: accountType}, nil
}

// IsPersisted reports whether the account has been assigned an identity.
func (a Account) IsPersisted() bool {
	return a.ID != nil
}
