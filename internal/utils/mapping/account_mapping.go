package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account. An unsaved account maps to ID 0.
func ToModelAccount(d domain.Account) models.Account {
	var id int64
	if d.ID != nil {
		id = *d.ID
	}
	return models.Account{
		AccountID:   id,
		Code:        string(d.Code),
		Name:        d.Name,
		AccountType: models.AccountType(d.Type),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	id := m.AccountID
	return domain.Account{
		ID:          &id,
		Code:        domain.AccountCode(m.Code),
		Name:        m.Name,
		Type:        domain.AccountType(m.AccountType),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountStructure converts a domain AccountStructure to a model AccountStructure
func ToModelAccountStructure(d domain.AccountStructure) models.AccountStructure {
	var parent *string
	if d.ParentCode != nil {
		p := string(*d.ParentCode)
		parent = &p
	}
	return models.AccountStructure{
		Code:         string(d.Code),
		Path:         d.Path,
		Level:        d.Level,
		ParentCode:   parent,
		DisplayOrder: d.DisplayOrder,
	}
}

// ToDomainAccountStructure converts a model AccountStructure to a domain AccountStructure
func ToDomainAccountStructure(m models.AccountStructure) domain.AccountStructure {
	var parent *domain.AccountCode
	if m.ParentCode != nil {
		p := domain.AccountCode(*m.ParentCode)
		parent = &p
	}
	return domain.ReconstructAccountStructure(domain.AccountCode(m.Code), m.Path, m.Level, parent, m.DisplayOrder)
}
