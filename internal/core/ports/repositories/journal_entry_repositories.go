package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries and their lines
type JournalEntryReader interface {
	// FindJournalEntryByID retrieves an entry together with its lines.
	FindJournalEntryByID(ctx context.Context, id int64) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries ordered by journal date descending.
	// A nil status lists every status. It returns the entries and a token for the next page.
	ListJournalEntries(ctx context.Context, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountLinesByAccountID reports how many journal lines reference an account.
	CountLinesByAccountID(ctx context.Context, accountID int64) (int, error)
}

// JournalEntryWriter defines write operations for journal entries.
// Updates are conditional on JournalEntry.Version and fail with
// apperrors.ErrConcurrentModification when the stored version moved on.
type JournalEntryWriter interface {
	// SaveJournalEntry inserts a new entry and its lines and returns it with identity assigned.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// SaveJournalEntries inserts several entries in a single database transaction.
	SaveJournalEntries(ctx context.Context, entries []domain.JournalEntry) ([]domain.JournalEntry, error)

	// UpdateJournalEntry replaces header and lines of an entry and bumps its version.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes an entry if it is still at version.
	DeleteJournalEntry(ctx context.Context, id int64, version int64) error
}

// JournalEntryRepositoryFacade combines all journal entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
