package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations for accounts and their hierarchy
type AccountReaderSvc interface {
	// GetAccountByCode retrieves an account by its four digit code.
	GetAccountByCode(ctx context.Context, code domain.AccountCode) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// GetHierarchy retrieves the subtree rooted at code.
	GetHierarchy(ctx context.Context, code domain.AccountCode) ([]domain.AccountStructure, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account and places it in the hierarchy.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateDisplayOrder moves an account among its siblings.
	UpdateDisplayOrder(ctx context.Context, code domain.AccountCode, displayOrder int, userID string) error

	// DeleteAccount removes an unused leaf account.
	DeleteAccount(ctx context.Context, code domain.AccountCode, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
