package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID   int64       `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	AuditFields
}

// AccountStructure is a row of the account_structures table.
// Path is the materialized ancestor chain, e.g. "1000~1100~1130".
type AccountStructure struct {
	Code         string  `db:"code"`
	Path         string  `db:"path"`
	Level        int     `db:"level"`
	ParentCode   *string `db:"parent_code"` // Nullable
	DisplayOrder int     `db:"display_order"`
}
