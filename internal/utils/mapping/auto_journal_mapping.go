package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAutoJournalPattern converts a pattern to its header row and item rows.
func ToModelAutoJournalPattern(d domain.AutoJournalPattern) (models.AutoJournalPattern, []models.AutoJournalPatternItem) {
	var id int64
	if d.ID != nil {
		id = *d.ID
	}
	header := models.AutoJournalPattern{
		PatternID:   id,
		Code:        d.Code,
		Name:        d.Name,
		SourceTable: d.SourceTable,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	items := make([]models.AutoJournalPatternItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.AutoJournalPatternItem{
			PatternID:           id,
			LineNumber:          it.LineNumber,
			Side:                string(it.Side),
			AccountCode:         string(it.AccountCode),
			AmountFormula:       it.AmountFormula,
			DescriptionTemplate: it.DescriptionTemplate,
		}
	}
	return header, items
}

// ToDomainAutoJournalPattern rebuilds a pattern from stored rows without re-validating formulas.
func ToDomainAutoJournalPattern(m models.AutoJournalPattern, items []models.AutoJournalPatternItem) domain.AutoJournalPattern {
	id := m.PatternID
	p := domain.AutoJournalPattern{
		ID:          &id,
		Code:        m.Code,
		Name:        m.Name,
		SourceTable: m.SourceTable,
		Description: m.Description,
		IsActive:    m.IsActive,
		Items:       make([]domain.AutoJournalPatternItem, len(items)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, it := range items {
		p.Items[i] = domain.AutoJournalPatternItem{
			LineNumber:          it.LineNumber,
			Side:                domain.Side(it.Side),
			AccountCode:         domain.AccountCode(it.AccountCode),
			AmountFormula:       it.AmountFormula,
			DescriptionTemplate: it.DescriptionTemplate,
		}
	}
	return p
}

// ToModelExecutionLog converts a domain log to a row. The row ID is assigned by the database.
func ToModelExecutionLog(d domain.AutoJournalExecutionLog) models.AutoJournalExecutionLog {
	return models.AutoJournalExecutionLog{
		PatternID:      d.PatternID,
		ExecutedAt:     d.ExecutedAt,
		ProcessedCount: d.ProcessedCount,
		GeneratedCount: d.GeneratedCount,
		Status:         string(d.Status),
		Message:        d.Message,
		ErrorDetail:    d.ErrorDetail,
		ExecutedBy:     d.ExecutedBy,
	}
}

// ToDomainExecutionLog converts a stored log row to a domain log.
func ToDomainExecutionLog(m models.AutoJournalExecutionLog) domain.AutoJournalExecutionLog {
	id := m.LogID
	return domain.AutoJournalExecutionLog{
		ID:             &id,
		PatternID:      m.PatternID,
		ExecutedAt:     m.ExecutedAt,
		ProcessedCount: m.ProcessedCount,
		GeneratedCount: m.GeneratedCount,
		Status:         domain.ExecutionStatus(m.Status),
		Message:        m.Message,
		ErrorDetail:    m.ErrorDetail,
		ExecutedBy:     m.ExecutedBy,
	}
}
