package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/autojournal"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// PatternReaderSvc defines read operations for auto-journal patterns and their logs
type PatternReaderSvc interface {
	GetPattern(ctx context.Context, id int64) (*domain.AutoJournalPattern, error)
	ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error)
	ListExecutionLogs(ctx context.Context, patternID int64, limit int) ([]domain.AutoJournalExecutionLog, error)
}

// PatternWriterSvc defines write operations for auto-journal patterns
type PatternWriterSvc interface {
	CreatePattern(ctx context.Context, req dto.CreatePatternRequest, userID string) (*domain.AutoJournalPattern, error)
	SetPatternActive(ctx context.Context, id int64, active bool, userID string) error
}

// PatternExecutorSvc generates journal entries from patterns. Every call appends
// exactly one execution log, whatever the outcome.
type PatternExecutorSvc interface {
	// Execute generates and persists one DRAFT entry. The returned result carries the
	// stored log; result.Err mirrors the returned error.
	Execute(ctx context.Context, patternID int64, req dto.ExecutePatternRequest, userID string) (*autojournal.Result, error)

	// ExecuteBatch generates one entry per parameter set and persists the successful ones together.
	ExecuteBatch(ctx context.Context, patternID int64, req dto.ExecuteBatchRequest, userID string) (*autojournal.BatchResult, error)
}

// AutoJournalSvcFacade combines all auto-journal service interfaces
type AutoJournalSvcFacade interface {
	PatternReaderSvc
	PatternWriterSvc
	PatternExecutorSvc
}
