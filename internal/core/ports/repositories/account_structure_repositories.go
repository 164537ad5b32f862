package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountStructureReader defines read operations for the account hierarchy
type AccountStructureReader interface {
	// FindStructureByCode retrieves the hierarchy node of an account.
	FindStructureByCode(ctx context.Context, code domain.AccountCode) (*domain.AccountStructure, error)

	// ListSubtree retrieves root and every descendant, ordered by path.
	ListSubtree(ctx context.Context, root domain.AccountStructure) ([]domain.AccountStructure, error)

	// CountChildren reports the number of direct children of code.
	CountChildren(ctx context.Context, code domain.AccountCode) (int, error)
}

// AccountStructureWriter defines write operations for the account hierarchy
type AccountStructureWriter interface {
	// UpdateDisplayOrder changes the sibling ordering of a node.
	UpdateDisplayOrder(ctx context.Context, code domain.AccountCode, displayOrder int) error
}

// AccountStructureRepositoryFacade combines all hierarchy repository interfaces
type AccountStructureRepositoryFacade interface {
	AccountStructureReader
	AccountStructureWriter
}
