package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the workflow state of a journal entry.
type JournalStatus string

const (
	Draft     JournalStatus = "DRAFT"
	Pending   JournalStatus = "PENDING"
	Approved  JournalStatus = "APPROVED"
	Confirmed JournalStatus = "CONFIRMED"
)

// JournalEntry is a row of the journal_entries table. Lines live in journal_entry_lines.
type JournalEntry struct {
	JournalEntryID  int64         `db:"journal_entry_id"`
	JournalDate     time.Time     `db:"journal_date"`
	Memo            string        `db:"memo"`
	Status          JournalStatus `db:"status"`
	CreatedBy       string        `db:"created_by"`
	ApprovedBy      *string       `db:"approved_by"`      // Nullable
	ApprovedAt      *time.Time    `db:"approved_at"`      // Nullable
	RejectionReason *string       `db:"rejection_reason"` // Nullable
	Version         int64         `db:"version"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// JournalEntryLine is a row of the journal_entry_lines table.
// Exactly one of Debit and Credit is non-null; a CHECK constraint enforces it.
type JournalEntryLine struct {
	JournalEntryID int64            `db:"journal_entry_id"`
	LineNumber     int              `db:"line_number"`
	AccountID      int64            `db:"account_id"`
	Debit          *decimal.Decimal `db:"debit"`
	Credit         *decimal.Decimal `db:"credit"`
	Description    string           `db:"description"`
}
