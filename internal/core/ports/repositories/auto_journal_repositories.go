package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AutoJournalPatternReader defines read operations for auto-journal patterns
type AutoJournalPatternReader interface {
	// FindPatternByID retrieves a pattern with its items.
	FindPatternByID(ctx context.Context, id int64) (*domain.AutoJournalPattern, error)

	// FindPatternByCode retrieves a pattern with its items by its unique code.
	FindPatternByCode(ctx context.Context, code string) (*domain.AutoJournalPattern, error)

	// ListPatterns retrieves patterns with their items, optionally only the active ones.
	ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error)
}

// AutoJournalPatternWriter defines write operations for auto-journal patterns
type AutoJournalPatternWriter interface {
	// SavePattern persists a pattern and its items atomically.
	SavePattern(ctx context.Context, pattern domain.AutoJournalPattern) (*domain.AutoJournalPattern, error)

	// SetPatternActive toggles whether a pattern may be executed.
	SetPatternActive(ctx context.Context, id int64, active bool, userID string, now time.Time) error
}

// AutoJournalPatternRepositoryFacade combines all pattern repository interfaces
type AutoJournalPatternRepositoryFacade interface {
	AutoJournalPatternReader
	AutoJournalPatternWriter
}

// ExecutionLogReader defines read operations for execution logs
type ExecutionLogReader interface {
	// ListLogsByPattern retrieves the most recent logs of a pattern, newest first.
	ListLogsByPattern(ctx context.Context, patternID int64, limit int) ([]domain.AutoJournalExecutionLog, error)
}

// ExecutionLogWriter appends execution logs. Logs are never updated or deleted.
type ExecutionLogWriter interface {
	AppendLog(ctx context.Context, log domain.AutoJournalExecutionLog) (*domain.AutoJournalExecutionLog, error)
}

// ExecutionLogRepositoryFacade combines all execution log repository interfaces
type ExecutionLogRepositoryFacade interface {
	ExecutionLogReader
	ExecutionLogWriter
}
