package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/shopspring/decimal"
)

// Audit columns are identical on both sides, so the conversion is field by field.

func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}

// moneyToDecimal maps an absent amount to SQL NULL.
func moneyToDecimal(m *domain.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Decimal()
	return &d
}

// decimalToMoney rejects stored amounts that are no longer valid Money, such as negatives
// written around the domain layer.
func decimalToMoney(d *decimal.Decimal) (*domain.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := domain.NewMoney(*d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
