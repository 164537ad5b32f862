package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// Side is the debit/credit designator of a line, stored as "D" or "C".
type Side string

const (
	SideDebit  Side = "D"
	SideCredit Side = "C"
)

// ParseSide accepts exactly "D" or "C" (case-insensitive, surrounding spaces ignored).
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideDebit:
		return SideDebit, nil
	case SideCredit:
		return SideCredit, nil
	}
	return "", fmt.Errorf("%w: debit/credit designator must be D or C, got %q", apperrors.ErrValidation, s)
}

// LineAmount holds the amount of a line on exactly one side.
type LineAmount struct {
	side   Side
	amount Money
}

// DebitAmount puts m on the debit side.
func DebitAmount(m Money) LineAmount {
	return LineAmount{side: SideDebit, amount: m}
}

// CreditAmount puts m on the credit side.
func CreditAmount(m Money) LineAmount {
	return LineAmount{side: SideCredit, amount: m}
}

// NewLineAmount places m on side.
func NewLineAmount(side Side, m Money) (LineAmount, error) {
	switch side {
	case SideDebit:
		return DebitAmount(m), nil
	case SideCredit:
		return CreditAmount(m), nil
	}
	return LineAmount{}, fmt.Errorf("%w: unknown side %q", apperrors.ErrValidation, side)
}

func (a LineAmount) Side() Side {
	return a.side
}

func (a LineAmount) Money() Money {
	return a.amount
}

// JournalEntryLine is one debit or credit posting inside a journal entry.
// Line numbers are scoped to the owning entry.
type JournalEntryLine struct {
	LineNumber  int        `json:"lineNumber"`
	AccountID   int64      `json:"accountID"`
	Amount      LineAmount `json:"-"`
	Description string     `json:"description,omitempty"`
}

// NewJournalEntryLine builds a line with a structurally single-sided amount.
func NewJournalEntryLine(lineNumber int, accountID int64, amount LineAmount, description string) (JournalEntryLine, error) {
	if lineNumber <= 0 {
		return JournalEntryLine{}, fmt.Errorf("%w: line number must be positive, got %d", apperrors.ErrValidation, lineNumber)
	}
	if accountID <= 0 {
		return JournalEntryLine{}, fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, lineNumber)
	}
	if amount.side != SideDebit && amount.side != SideCredit {
		return JournalEntryLine{}, fmt.Errorf("%w: line %d has no amount", apperrors.ErrValidation, lineNumber)
	}
	return JournalEntryLine{
		LineNumber:  lineNumber,
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
	}, nil
}

// NewJournalEntryLineFromPair builds a line from nullable debit/credit amounts as they
// arrive from storage or requests. Exactly one of debit and credit must be set.
func NewJournalEntryLineFromPair(lineNumber int, accountID int64, debit, credit *Money, description string) (JournalEntryLine, error) {
	switch {
	case debit != nil && credit != nil:
		return JournalEntryLine{}, fmt.Errorf("%w: line %d sets both debit and credit", apperrors.ErrValidation, lineNumber)
	case debit == nil && credit == nil:
		return JournalEntryLine{}, fmt.Errorf("%w: line %d sets neither debit nor credit", apperrors.ErrValidation, lineNumber)
	case debit != nil:
		return NewJournalEntryLine(lineNumber, accountID, DebitAmount(*debit), description)
	default:
		return NewJournalEntryLine(lineNumber, accountID, CreditAmount(*credit), description)
	}
}

func (l JournalEntryLine) IsDebit() bool {
	return l.Amount.side == SideDebit
}

func (l JournalEntryLine) IsCredit() bool {
	return l.Amount.side == SideCredit
}

// Debit returns the debit amount, or nil for a credit line.
func (l JournalEntryLine) Debit() *Money {
	if !l.IsDebit() {
		return nil
	}
	m := l.Amount.amount
	return &m
}

// Credit returns the credit amount, or nil for a debit line.
func (l JournalEntryLine) Credit() *Money {
	if !l.IsCredit() {
		return nil
	}
	m := l.Amount.amount
	return &m
}
