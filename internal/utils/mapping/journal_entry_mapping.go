package mapping

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its header row and line rows.
// The line rows carry the header ID, which is 0 for an unsaved entry.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalEntryLine) {
	var id int64
	if d.ID != nil {
		id = *d.ID
	}
	header := models.JournalEntry{
		JournalEntryID:  id,
		JournalDate:     d.JournalDate,
		Memo:            d.Memo,
		Status:          models.JournalStatus(d.Status),
		CreatedBy:       d.CreatedBy,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectionReason: d.RejectionReason,
		Version:         d.Version,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	lines := make([]models.JournalEntryLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = ToModelJournalEntryLine(id, l)
	}
	return header, lines
}

// ToModelJournalEntryLine converts a domain line to a row of the given entry.
func ToModelJournalEntryLine(entryID int64, d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		JournalEntryID: entryID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		Debit:          moneyToDecimal(d.Debit()),
		Credit:         moneyToDecimal(d.Credit()),
		Description:    d.Description,
	}
}

// ToDomainJournalEntry rebuilds an entry from its rows. Rows that violate the
// single-sided amount rule are reported instead of silently repaired.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) (domain.JournalEntry, error) {
	id := m.JournalEntryID
	entry := domain.JournalEntry{
		ID:              &id,
		JournalDate:     m.JournalDate,
		Memo:            m.Memo,
		Status:          domain.JournalStatus(m.Status),
		Lines:           make([]domain.JournalEntryLine, 0, len(lines)),
		CreatedBy:       m.CreatedBy,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectionReason: m.RejectionReason,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, l := range lines {
		line, err := ToDomainJournalEntryLine(l)
		if err != nil {
			return domain.JournalEntry{}, fmt.Errorf("journal entry %d: %w", id, err)
		}
		entry.Lines = append(entry.Lines, line)
	}
	return entry, nil
}

// ToDomainJournalEntryLine converts a stored line row to a domain line.
func ToDomainJournalEntryLine(m models.JournalEntryLine) (domain.JournalEntryLine, error) {
	debit, err := decimalToMoney(m.Debit)
	if err != nil {
		return domain.JournalEntryLine{}, err
	}
	credit, err := decimalToMoney(m.Credit)
	if err != nil {
		return domain.JournalEntryLine{}, err
	}
	return domain.NewJournalEntryLineFromPair(m.LineNumber, m.AccountID, debit, credit, m.Description)
}
