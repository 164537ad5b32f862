package domain

import "time"

// ExecutionStatus tags the outcome of an auto-journal run.
type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "SUCCESS"
	ExecutionFailed  ExecutionStatus = "FAILED"
	ExecutionPartial ExecutionStatus = "PARTIAL"
)

// AutoJournalExecutionLog records one generation attempt. Records are append-only.
type AutoJournalExecutionLog struct {
	ID             *int64          `json:"id"`
	PatternID      int64           `json:"patternID"`
	ExecutedAt     time.Time       `json:"executedAt"`
	ProcessedCount int             `json:"processedCount"`
	GeneratedCount int             `json:"generatedCount"`
	Status         ExecutionStatus `json:"status"`
	Message        string          `json:"message"`
	ErrorDetail    *string         `json:"errorDetail,omitempty"`
	ExecutedBy     string          `json:"executedBy"`
}

func (l AutoJournalExecutionLog) Succeeded() bool {
	return l.Status == ExecutionSuccess
}
