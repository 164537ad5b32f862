package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// PathDelimiter separates ancestor codes in a materialized path.
const PathDelimiter = "~"

// AccountStructure places an account in the chart-of-accounts tree.
// Path holds the codes from the root down to Code, joined by PathDelimiter.
type AccountStructure struct {
	Code         AccountCode  `json:"code"`
	Path         string       `json:"path"`
	Level        int          `json:"level"`
	ParentCode   *AccountCode `json:"parentCode,omitempty"`
	DisplayOrder int          `json:"displayOrder"`
}

// NewAccountStructure computes the path and level of a node. A node with a parent
// requires the parent's materialized path.
func NewAccountStructure(code AccountCode, parentCode *AccountCode, parentPath string, displayOrder int) (AccountStructure, error) {
	if _, err := ParseAccountCode(string(code)); err != nil {
		return AccountStructure{}, err
	}

	path := string(code)
	if parentCode != nil {
		if parentPath == "" {
			return AccountStructure{}, fmt.Errorf("%w: account %s declares parent %s", apperrors.ErrMissingParentPath, code, *parentCode)
		}
		if *parentCode == code {
			return AccountStructure{}, fmt.Errorf("%w: account %s cannot be its own parent", apperrors.ErrValidation, code)
		}
		path = parentPath + PathDelimiter + string(code)
	}

	parent := copyCode(parentCode)
	return AccountStructure{
		Code:         code,
		Path:         path,
		Level:        len(strings.Split(path, PathDelimiter)),
		ParentCode:   parent,
		DisplayOrder: displayOrder,
	}, nil
}

// ReconstructAccountStructure rebuilds a node from stored values without validation.
func ReconstructAccountStructure(code AccountCode, path string, level int, parentCode *AccountCode, displayOrder int) AccountStructure {
	return AccountStructure{
		Code:         code,
		Path:         path,
		Level:        level,
		ParentCode:   copyCode(parentCode),
		DisplayOrder: displayOrder,
	}
}

// Segments returns the ancestor codes, root first, ending with the node itself.
func (s AccountStructure) Segments() []AccountCode {
	parts := strings.Split(s.Path, PathDelimiter)
	codes := make([]AccountCode, len(parts))
	for i, p := range parts {
		codes[i] = AccountCode(p)
	}
	return codes
}

func (s AccountStructure) IsRoot() bool {
	return s.ParentCode == nil
}

// IsAncestorOf reports whether other lies strictly below s in the tree.
func (s AccountStructure) IsAncestorOf(other AccountStructure) bool {
	return strings.HasPrefix(other.Path, s.Path+PathDelimiter)
}

func copyCode(c *AccountCode) *AccountCode {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
