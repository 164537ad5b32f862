package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// AutoJournalPattern is a named template of formula-driven lines.
// SourceTable identifies the upstream data that triggers generation.
type AutoJournalPattern struct {
	ID          *int64                   `json:"id"`
	Code        string                   `json:"code"`
	Name        string                   `json:"name"`
	SourceTable string                   `json:"sourceTable"`
	Description *string                  `json:"description,omitempty"`
	IsActive    bool                     `json:"isActive"`
	Items       []AutoJournalPatternItem `json:"items"`
	AuditFields
}

// AutoJournalPatternItem describes one generated line.
type AutoJournalPatternItem struct {
	LineNumber          int         `json:"lineNumber"`
	Side                Side        `json:"side"`
	AccountCode         AccountCode `json:"accountCode"`
	AmountFormula       string      `json:"amountFormula"`
	DescriptionTemplate *string     `json:"descriptionTemplate,omitempty"`
}

// NewAutoJournalPatternItem validates the designator, account code and formula presence.
func NewAutoJournalPatternItem(lineNumber int, side string, accountCode string, amountFormula string, descriptionTemplate *string) (AutoJournalPatternItem, error) {
	if lineNumber <= 0 {
		return AutoJournalPatternItem{}, fmt.Errorf("%w: pattern item line number must be positive, got %d", apperrors.ErrValidation, lineNumber)
	}
	s, err := ParseSide(side)
	if err != nil {
		return AutoJournalPatternItem{}, err
	}
	code, err := ParseAccountCode(accountCode)
	if err != nil {
		return AutoJournalPatternItem{}, err
	}
	if strings.TrimSpace(amountFormula) == "" {
		return AutoJournalPatternItem{}, fmt.Errorf("%w: pattern item %d has no amount formula", apperrors.ErrValidation, lineNumber)
	}
	return AutoJournalPatternItem{
		LineNumber:          lineNumber,
		Side:                s,
		AccountCode:         code,
		AmountFormula:       strings.TrimSpace(amountFormula),
		DescriptionTemplate: descriptionTemplate,
	}, nil
}

// NewAutoJournalPattern validates header fields. Items may be attached later with WithItems.
func NewAutoJournalPattern(code, name, sourceTable string, description *string, isActive bool) (AutoJournalPattern, error) {
	if strings.TrimSpace(code) == "" {
		return AutoJournalPattern{}, fmt.Errorf("%w: pattern code is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return AutoJournalPattern{}, fmt.Errorf("%w: pattern name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(sourceTable) == "" {
		return AutoJournalPattern{}, fmt.Errorf("%w: pattern source table is required", apperrors.ErrValidation)
	}
	return AutoJournalPattern{
		Code:        code,
		Name:        name,
		SourceTable: sourceTable,
		Description: description,
		IsActive:    isActive,
		Items:       []AutoJournalPatternItem{},
	}, nil
}

// WithItems returns a copy of p owning items. Line numbers must be unique.
func (p AutoJournalPattern) WithItems(items []AutoJournalPatternItem) (AutoJournalPattern, error) {
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it.LineNumber] {
			return AutoJournalPattern{}, fmt.Errorf("%w: duplicate pattern item line number %d", apperrors.ErrValidation, it.LineNumber)
		}
		seen[it.LineNumber] = true
	}
	out := p
	out.Items = append([]AutoJournalPatternItem(nil), items...)
	return out, nil
}

// AccountCodes lists the distinct account codes referenced by the items, in item order.
func (p AutoJournalPattern) AccountCodes() []AccountCode {
	seen := make(map[AccountCode]bool, len(p.Items))
	codes := make([]AccountCode, 0, len(p.Items))
	for _, it := range p.Items {
		if !seen[it.AccountCode] {
			seen[it.AccountCode] = true
			codes = append(codes, it.AccountCode)
		}
	}
	return codes
}
