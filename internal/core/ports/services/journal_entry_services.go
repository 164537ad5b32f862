package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetJournalEntry retrieves a specific entry with its lines.
	GetJournalEntry(ctx context.Context, id int64) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries, optionally filtered by status.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalEntryWriterSvc defines edit operations on DRAFT entries
type JournalEntryWriterSvc interface {
	// CreateJournalEntry persists a new balanced DRAFT entry.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateJournalEntry replaces the header and lines of a DRAFT entry.
	UpdateJournalEntry(ctx context.Context, id int64, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a DRAFT entry.
	DeleteJournalEntry(ctx context.Context, id int64, version int64, userID string) error
}

// JournalEntryWorkflowSvc defines lifecycle transitions
type JournalEntryWorkflowSvc interface {
	// SubmitJournalEntry moves DRAFT to PENDING.
	SubmitJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error)

	// ApproveJournalEntry moves PENDING to APPROVED, recording userID as approver.
	ApproveJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error)

	// RejectJournalEntry moves PENDING back to DRAFT with a reason.
	RejectJournalEntry(ctx context.Context, id int64, req dto.RejectJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// ConfirmJournalEntry moves APPROVED to CONFIRMED.
	ConfirmJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal entry service interfaces
// This is a facade for clients that need access to all operations
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	JournalEntryWorkflowSvc
}
