package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	StatusDraft     JournalStatus = "DRAFT"
	StatusPending   JournalStatus = "PENDING"
	StatusApproved  JournalStatus = "APPROVED"
	StatusConfirmed JournalStatus = "CONFIRMED"
)

// ParseJournalStatus validates s against the four lifecycle states.
func ParseJournalStatus(s string) (JournalStatus, error) {
	st := JournalStatus(s)
	switch st {
	case StatusDraft, StatusPending, StatusApproved, StatusConfirmed:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown journal status %q", apperrors.ErrValidation, s)
}

// IsEditable is true only for drafts.
func (s JournalStatus) IsEditable() bool {
	return s == StatusDraft
}

func (s JournalStatus) IsTerminal() bool {
	return s == StatusConfirmed
}

// transitionTo checks that next is reachable from s in a single step.
// PENDING may also fall back to DRAFT on rejection.
func (s JournalStatus) transitionTo(next JournalStatus) error {
	var allowed bool
	switch s {
	case StatusDraft:
		allowed = next == StatusPending
	case StatusPending:
		allowed = next == StatusApproved || next == StatusDraft
	case StatusApproved:
		allowed = next == StatusConfirmed
	case StatusConfirmed:
		allowed = false
	}
	if !allowed {
		return fmt.Errorf("%w: cannot move journal entry from %s to %s", apperrors.ErrInvalidStateTransition, s, next)
	}
	return nil
}
