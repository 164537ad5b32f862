package models

import "time"

// AutoJournalPattern is a row of the auto_journal_patterns table.
type AutoJournalPattern struct {
	PatternID   int64   `db:"pattern_id"`
	Code        string  `db:"code"`
	Name        string  `db:"name"`
	SourceTable string  `db:"source_table"`
	Description *string `db:"description"`
	IsActive    bool    `db:"is_active"`
	AuditFields
}

// AutoJournalPatternItem is a row of the auto_journal_pattern_items table.
type AutoJournalPatternItem struct {
	PatternID           int64   `db:"pattern_id"`
	LineNumber          int     `db:"line_number"`
	Side                string  `db:"side"`
	AccountCode         string  `db:"account_code"`
	AmountFormula       string  `db:"amount_formula"`
	DescriptionTemplate *string `db:"description_template"`
}

// AutoJournalExecutionLog is a row of the append-only auto_journal_execution_logs table.
type AutoJournalExecutionLog struct {
	LogID          int64     `db:"log_id"`
	PatternID      int64     `db:"pattern_id"`
	ExecutedAt     time.Time `db:"executed_at"`
	ProcessedCount int       `db:"processed_count"`
	GeneratedCount int       `db:"generated_count"`
	Status         string    `db:"status"`
	Message        string    `db:"message"`
	ErrorDetail    *string   `db:"error_detail"`
	ExecutedBy     string    `db:"executed_by"`
}
