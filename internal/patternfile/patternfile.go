// Package patternfile reads auto-journal pattern definitions from YAML so that
// patterns can be kept under version control and loaded in bulk.
package patternfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"gopkg.in/yaml.v3"
)

// Item is one line template as written in the file.
type Item struct {
	Line        int     `yaml:"line"`
	Side        string  `yaml:"side"`
	Account     string  `yaml:"account"`
	Formula     string  `yaml:"formula"`
	Description *string `yaml:"description"`
}

// Pattern is one pattern as written in the file. Active defaults to true.
type Pattern struct {
	Code        string  `yaml:"code"`
	Name        string  `yaml:"name"`
	SourceTable string  `yaml:"source_table"`
	Description *string `yaml:"description"`
	Active      *bool   `yaml:"active"`
	Items       []Item  `yaml:"items"`
}

// File is the document root.
type File struct {
	Patterns []Pattern `yaml:"patterns"`
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data strictly; unknown keys are rejected so typos do not silently drop fields.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: pattern file is empty", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", apperrors.ErrValidation, err)
	}
	if len(f.Patterns) == 0 {
		return nil, fmt.Errorf("%w: pattern file defines no patterns", apperrors.ErrValidation)
	}

	seen := make(map[string]bool, len(f.Patterns))
	for _, p := range f.Patterns {
		if seen[p.Code] {
			return nil, fmt.Errorf("%w: pattern %q is defined twice", apperrors.ErrValidation, p.Code)
		}
		seen[p.Code] = true
	}
	return &f, nil
}

// Request converts p into the payload accepted by the pattern service.
func (p Pattern) Request() dto.CreatePatternRequest {
	items := make([]dto.PatternItemRequest, len(p.Items))
	for i, it := range p.Items {
		items[i] = dto.PatternItemRequest{
			LineNumber:          it.Line,
			Side:                it.Side,
			AccountCode:         it.Account,
			AmountFormula:       it.Formula,
			DescriptionTemplate: it.Description,
		}
	}
	return dto.CreatePatternRequest{
		Code:        p.Code,
		Name:        p.Name,
		SourceTable: p.SourceTable,
		Description: p.Description,
		IsActive:    p.Active,
		Items:       items,
	}
}

// Domain validates p with the domain constructors. Accounts are not resolved.
func (p Pattern) Domain() (domain.AutoJournalPattern, error) {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	pattern, err := domain.NewAutoJournalPattern(p.Code, p.Name, p.SourceTable, p.Description, active)
	if err != nil {
		return domain.AutoJournalPattern{}, err
	}
	if len(p.Items) == 0 {
		return domain.AutoJournalPattern{}, fmt.Errorf("%w: pattern %s has no items", apperrors.ErrValidation, p.Code)
	}
	items := make([]domain.AutoJournalPatternItem, 0, len(p.Items))
	for _, it := range p.Items {
		item, err := domain.NewAutoJournalPatternItem(it.Line, it.Side, it.Account, it.Formula, it.Description)
		if err != nil {
			return domain.AutoJournalPattern{}, fmt.Errorf("pattern %s: %w", p.Code, err)
		}
		items = append(items, item)
	}
	return pattern.WithItems(items)
}
