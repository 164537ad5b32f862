package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PatternItemRequest defines one line template of a pattern.
type PatternItemRequest struct {
	LineNumber          int     `json:"lineNumber" binding:"required,min=1"`
	Side                string  `json:"side" binding:"required,side"`
	AccountCode         string  `json:"accountCode" binding:"required,accountcode"`
	AmountFormula       string  `json:"amountFormula" binding:"required"`
	DescriptionTemplate *string `json:"descriptionTemplate"`
}

// CreatePatternRequest defines the data needed to register an auto-journal pattern.
type CreatePatternRequest struct {
	Code        string               `json:"code" binding:"required,max=50"`
	Name        string               `json:"name" binding:"required"`
	SourceTable string               `json:"sourceTable" binding:"required"`
	Description *string              `json:"description"`
	IsActive    *bool                `json:"isActive"`
	Items       []PatternItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SetPatternActiveRequest toggles a pattern.
type SetPatternActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ExecutePatternRequest runs a pattern once.
type ExecutePatternRequest struct {
	JournalDate time.Time                  `json:"journalDate" binding:"required"`
	Memo        string                     `json:"memo"`
	Params      map[string]decimal.Decimal `json:"params" binding:"required"`
}

// ExecuteBatchRequest runs a pattern once per parameter set.
type ExecuteBatchRequest struct {
	JournalDate time.Time                    `json:"journalDate" binding:"required"`
	Memo        string                       `json:"memo"`
	ParamSets   []map[string]decimal.Decimal `json:"paramSets" binding:"required,min=1"`
}

// ListLogsParams defines query parameters for listing execution logs.
type ListLogsParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// ExecutionResponse reports the outcome of an execution. Entry is nil on failure.
type ExecutionResponse struct {
	Entry *JournalEntryResponse `json:"entry,omitempty"`
	Log   ExecutionLogResponse  `json:"log"`
}

// BatchExecutionResponse reports the outcome of a batch execution.
type BatchExecutionResponse struct {
	Entries  []JournalEntryResponse `json:"entries"`
	Failures []BatchFailureResponse `json:"failures,omitempty"`
	Log      ExecutionLogResponse   `json:"log"`
}

// ExecutionFailureResponse is returned when a run fails; the log has already been written.
type ExecutionFailureResponse struct {
	Error string               `json:"error"`
	Log   ExecutionLogResponse `json:"log"`
}

// BatchFailureResponse identifies a failed parameter set by its index in the request.
type BatchFailureResponse struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// PatternItemResponse defines the data returned for one pattern item.
type PatternItemResponse struct {
	LineNumber          int     `json:"lineNumber"`
	Side                string  `json:"side"`
	AccountCode         string  `json:"accountCode"`
	AmountFormula       string  `json:"amountFormula"`
	DescriptionTemplate *string `json:"descriptionTemplate,omitempty"`
}

// PatternResponse defines the data returned for an auto-journal pattern.
type PatternResponse struct {
	ID            int64                 `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	SourceTable   string                `json:"sourceTable"`
	Description   *string               `json:"description,omitempty"`
	IsActive      bool                  `json:"isActive"`
	Items         []PatternItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ExecutionLogResponse defines the data returned for an execution log record.
// ID is nil when the record could not be stored.
type ExecutionLogResponse struct {
	ID             *int64                 `json:"id"`
	PatternID      int64                  `json:"patternID"`
	ExecutedAt     time.Time              `json:"executedAt"`
	ProcessedCount int                    `json:"processedCount"`
	GeneratedCount int                    `json:"generatedCount"`
	Status         domain.ExecutionStatus `json:"status"`
	Message        string                 `json:"message"`
	ErrorDetail    *string                `json:"errorDetail,omitempty"`
	ExecutedBy     string                 `json:"executedBy"`
}

// ToPatternResponse converts a domain.AutoJournalPattern to its response DTO.
func ToPatternResponse(p *domain.AutoJournalPattern) PatternResponse {
	var id int64
	if p.ID != nil {
		id = *p.ID
	}
	items := make([]PatternItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = PatternItemResponse{
			LineNumber:          it.LineNumber,
			Side:                string(it.Side),
			AccountCode:         it.AccountCode.String(),
			AmountFormula:       it.AmountFormula,
			DescriptionTemplate: it.DescriptionTemplate,
		}
	}
	return PatternResponse{
		ID:            id,
		Code:          p.Code,
		Name:          p.Name,
		SourceTable:   p.SourceTable,
		Description:   p.Description,
		IsActive:      p.IsActive,
		Items:         items,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToPatternResponses converts a slice of patterns.
func ToPatternResponses(patterns []domain.AutoJournalPattern) []PatternResponse {
	res := make([]PatternResponse, len(patterns))
	for i := range patterns {
		res[i] = ToPatternResponse(&patterns[i])
	}
	return res
}

// ToExecutionLogResponse converts a domain.AutoJournalExecutionLog to its response DTO.
func ToExecutionLogResponse(l domain.AutoJournalExecutionLog) ExecutionLogResponse {
	return ExecutionLogResponse{
		ID:             l.ID,
		PatternID:      l.PatternID,
		ExecutedAt:     l.ExecutedAt,
		ProcessedCount: l.ProcessedCount,
		GeneratedCount: l.GeneratedCount,
		Status:         l.Status,
		Message:        l.Message,
		ErrorDetail:    l.ErrorDetail,
		ExecutedBy:     l.ExecutedBy,
	}
}

// ToExecutionLogResponses converts a slice of logs.
func ToExecutionLogResponses(logs []domain.AutoJournalExecutionLog) []ExecutionLogResponse {
	res := make([]ExecutionLogResponse, len(logs))
	for i, l := range logs {
		res[i] = ToExecutionLogResponse(l)
	}
	return res
}
