package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalLineRequest carries one line. Exactly one of Debit and Credit must be set.
type JournalLineRequest struct {
	LineNumber  int           `json:"lineNumber" binding:"required,min=1"`
	AccountID   int64         `json:"accountID" binding:"required,min=1"`
	Debit       *domain.Money `json:"debit"`
	Credit      *domain.Money `json:"credit"`
	Description string        `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a DRAFT journal entry.
type CreateJournalEntryRequest struct {
	JournalDate time.Time            `json:"journalDate" binding:"required"`
	Memo        string               `json:"memo" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest replaces the header and all lines of a DRAFT entry.
type UpdateJournalEntryRequest struct {
	JournalDate time.Time            `json:"journalDate" binding:"required"`
	Memo        string               `json:"memo" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
	Version     int64                `json:"version" binding:"min=0"`
}

// TransitionRequest carries the version the caller last read. It guards
// submit, approve, confirm and delete.
type TransitionRequest struct {
	Version int64 `json:"version" form:"version" binding:"min=0"`
}

// RejectJournalEntryRequest sends a pending entry back to its author.
type RejectJournalEntryRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Version int64  `json:"version" binding:"min=0"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED CONFIRMED"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNumber  int           `json:"lineNumber"`
	AccountID   int64         `json:"accountID"`
	Debit       *domain.Money `json:"debit,omitempty"`
	Credit      *domain.Money `json:"credit,omitempty"`
	Description string        `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID              int64                 `json:"id"`
	JournalDate     time.Time             `json:"journalDate"`
	Memo            string                `json:"memo"`
	Status          domain.JournalStatus  `json:"status"`
	Lines           []JournalLineResponse `json:"lines"`
	TotalDebit      domain.Money          `json:"totalDebit"`
	TotalCredit     domain.Money          `json:"totalCredit"`
	CreatedBy       string                `json:"createdBy"`
	ApprovedBy      *string               `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time            `json:"approvedAt,omitempty"`
	RejectionReason *string               `json:"rejectionReason,omitempty"`
	Version         int64                 `json:"version"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	var id int64
	if e.ID != nil {
		id = *e.ID
	}
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Debit:       l.Debit(),
			Credit:      l.Credit(),
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		ID:              id,
		JournalDate:     e.JournalDate,
		Memo:            e.Memo,
		Status:          e.Status,
		Lines:           lines,
		TotalDebit:      e.TotalDebit(),
		TotalCredit:     e.TotalCredit(),
		CreatedBy:       e.CreatedBy,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		Version:         e.Version,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
