package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// JournalEntry is the aggregate root for one double-entry transaction.
// Every operation returns a new snapshot; the receiver is never modified.
type JournalEntry struct {
	ID              *int64             `json:"id"` // nil until persisted
	JournalDate     time.Time          `json:"journalDate"`
	Memo            string             `json:"memo"`
	Status          JournalStatus      `json:"status"`
	Lines           []JournalEntryLine `json:"lines"`
	CreatedBy       string             `json:"createdBy"`
	ApprovedBy      *string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	Version         int64              `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// NewJournalEntry creates an empty DRAFT entry stamped with clock.
func NewJournalEntry(journalDate time.Time, memo string, createdBy string, version int64, clock Clock) (JournalEntry, error) {
	if strings.TrimSpace(createdBy) == "" {
		return JournalEntry{}, fmt.Errorf("%w: journal entry author is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(memo) == "" {
		return JournalEntry{}, fmt.Errorf("%w: journal entry memo is required", apperrors.ErrValidation)
	}
	if journalDate.IsZero() {
		return JournalEntry{}, fmt.Errorf("%w: journal date is required", apperrors.ErrValidation)
	}
	if version < 0 {
		return JournalEntry{}, fmt.Errorf("%w: version must not be negative", apperrors.ErrValidation)
	}
	now := clock()
	return JournalEntry{
		JournalDate: journalDate,
		Memo:        memo,
		Status:      StatusDraft,
		Lines:       []JournalEntryLine{},
		CreatedBy:   createdBy,
		Version:     version,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces date, memo and the whole line set. Only drafts can be edited.
func (e JournalEntry) Update(journalDate time.Time, memo string, lines []JournalEntryLine, clock Clock) (JournalEntry, error) {
	if !e.Status.IsEditable() {
		return JournalEntry{}, fmt.Errorf("%w: journal entry in status %s cannot be edited", apperrors.ErrInvalidStateTransition, e.Status)
	}
	if journalDate.IsZero() {
		return JournalEntry{}, fmt.Errorf("%w: journal date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(memo) == "" {
		return JournalEntry{}, fmt.Errorf("%w: journal entry memo is required", apperrors.ErrValidation)
	}
	if lines == nil {
		return JournalEntry{}, fmt.Errorf("%w: journal entry lines are required", apperrors.ErrValidation)
	}
	next := e.clone()
	next.JournalDate = journalDate
	next.Memo = memo
	next.Lines = append([]JournalEntryLine(nil), lines...)
	next.UpdatedAt = clock()
	return next, nil
}

// AddLine appends line. Confirmed entries are frozen.
func (e JournalEntry) AddLine(line JournalEntryLine) (JournalEntry, error) {
	if e.Status.IsTerminal() {
		return JournalEntry{}, fmt.Errorf("%w: confirmed journal entry cannot change lines", apperrors.ErrInvalidStateTransition)
	}
	next := e.clone()
	next.Lines = append(next.Lines, line)
	return next, nil
}

// RemoveLine drops every line numbered lineNumber. Confirmed entries are frozen.
func (e JournalEntry) RemoveLine(lineNumber int) (JournalEntry, error) {
	if e.Status.IsTerminal() {
		return JournalEntry{}, fmt.Errorf("%w: confirmed journal entry cannot change lines", apperrors.ErrInvalidStateTransition)
	}
	next := e.clone()
	kept := make([]JournalEntryLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		if l.LineNumber != lineNumber {
			kept = append(kept, l)
		}
	}
	next.Lines = kept
	return next, nil
}

// SubmitForApproval moves DRAFT to PENDING.
func (e JournalEntry) SubmitForApproval(clock Clock) (JournalEntry, error) {
	next, err := e.moveTo(StatusPending, clock)
	if err != nil {
		return JournalEntry{}, err
	}
	next.RejectionReason = nil
	return next, nil
}

// Approve moves PENDING to APPROVED and records the approver.
func (e JournalEntry) Approve(approver string, clock Clock) (JournalEntry, error) {
	if e.Status != StatusPending {
		return JournalEntry{}, fmt.Errorf("%w: only pending journal entries can be approved, status is %s", apperrors.ErrInvalidStateTransition, e.Status)
	}
	if strings.TrimSpace(approver) == "" {
		return JournalEntry{}, fmt.Errorf("%w: approver is required", apperrors.ErrValidation)
	}
	next, err := e.moveTo(StatusApproved, clock)
	if err != nil {
		return JournalEntry{}, err
	}
	approvedAt := next.UpdatedAt
	next.ApprovedBy = &approver
	next.ApprovedAt = &approvedAt
	next.RejectionReason = nil
	return next, nil
}

// Reject sends a PENDING entry back to DRAFT with a mandatory reason.
func (e JournalEntry) Reject(reason string, clock Clock) (JournalEntry, error) {
	if e.Status != StatusPending {
		return JournalEntry{}, fmt.Errorf("%w: only pending journal entries can be rejected, status is %s", apperrors.ErrInvalidStateTransition, e.Status)
	}
	if strings.TrimSpace(reason) == "" {
		return JournalEntry{}, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	next, err := e.moveTo(StatusDraft, clock)
	if err != nil {
		return JournalEntry{}, err
	}
	next.RejectionReason = &reason
	next.ApprovedBy = nil
	next.ApprovedAt = nil
	return next, nil
}

// Confirm moves APPROVED to the terminal CONFIRMED status.
func (e JournalEntry) Confirm(clock Clock) (JournalEntry, error) {
	return e.moveTo(StatusConfirmed, clock)
}

// CanDelete is true only for drafts.
func (e JournalEntry) CanDelete() bool {
	return e.Status == StatusDraft
}

// TotalDebit sums debit amounts; credit lines count as zero.
func (e JournalEntry) TotalDebit() Money {
	total := ZeroMoney
	for _, l := range e.Lines {
		if l.IsDebit() {
			total = total.plus(l.Amount.amount)
		}
	}
	return total
}

// TotalCredit sums credit amounts; debit lines count as zero.
func (e JournalEntry) TotalCredit() Money {
	total := ZeroMoney
	for _, l := range e.Lines {
		if l.IsCredit() {
			total = total.plus(l.Amount.amount)
		}
	}
	return total
}

func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// ValidateForSave must pass before the entry is persisted.
func (e JournalEntry) ValidateForSave() error {
	if len(e.Lines) == 0 {
		return fmt.Errorf("%w: journal entry has no lines", apperrors.ErrUnbalancedEntry)
	}
	debit, credit := e.TotalDebit(), e.TotalCredit()
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debit total %s does not equal credit total %s", apperrors.ErrUnbalancedEntry, debit, credit)
	}
	return nil
}

func (e JournalEntry) moveTo(next JournalStatus, clock Clock) (JournalEntry, error) {
	if err := e.Status.transitionTo(next); err != nil {
		return JournalEntry{}, err
	}
	out := e.clone()
	out.Status = next
	out.UpdatedAt = clock()
	return out, nil
}

func (e JournalEntry) clone() JournalEntry {
	out := e
	out.Lines = append([]JournalEntryLine(nil), e.Lines...)
	if out.Lines == nil {
		out.Lines = []JournalEntryLine{}
	}
	return out
}
