package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, id int64) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its four digit code.
	FindAccountByCode(ctx context.Context, code domain.AccountCode) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, ids []int64) (map[int64]domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code. Missing codes are absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []domain.AccountCode) (map[domain.AccountCode]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
// An account and its hierarchy node are always written together.
type AccountWriter interface {
	// SaveAccount persists a new account and its structure node atomically.
	SaveAccount(ctx context.Context, account domain.Account, structure domain.AccountStructure) (*domain.Account, error)

	// DeleteAccount removes an account and its structure node atomically.
	DeleteAccount(ctx context.Context, code domain.AccountCode) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
