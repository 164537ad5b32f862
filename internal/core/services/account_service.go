package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	structureRepo portsrepo.AccountStructureRepositoryFacade
	lineReader    portsrepo.JournalEntryReader
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, structureRepo portsrepo.AccountStructureRepositoryFacade, lineReader portsrepo.JournalEntryReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService:   newBaseService(options...),
		accountRepo:   accountRepo,
		structureRepo: structureRepo,
		lineReader:    lineReader,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code, err := domain.ParseAccountCode(req.Code)
	if err != nil {
		return nil, err
	}
	accountType, err := code.Type()
	if err != nil {
		return nil, err
	}
	account, err := domain.NewAccount(code, req.Name, accountType)
	if err != nil {
		return nil, err
	}

	structure, err := s.placeInHierarchy(ctx, code, req.ParentCode, req.DisplayOrder)
	if err != nil {
		s.logFailure(ctx, err, "Failed to place account in hierarchy", slog.String("account_code", req.Code))
		return nil, err
	}

	now := s.Now()
	account.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account, structure)
	if err != nil {
		s.logFailure(ctx, err, "Failed to save account", slog.String("account_code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_code", string(saved.Code)),
		slog.String("account_type", string(saved.Type)),
		slog.String("path", structure.Path))
	return saved, nil
}

// placeInHierarchy resolves the parent's path. An unknown parent leaves the path
// empty, which the hierarchy rejects as a missing parent path.
func (s *accountService) placeInHierarchy(ctx context.Context, code domain.AccountCode, parent *string, displayOrder int) (domain.AccountStructure, error) {
	if parent == nil {
		return domain.NewAccountStructure(code, nil, "", displayOrder)
	}
	parentCode, err := domain.ParseAccountCode(*parent)
	if err != nil {
		return domain.AccountStructure{}, err
	}

	parentPath := ""
	node, err := s.structureRepo.FindStructureByCode(ctx, parentCode)
	switch {
	case err == nil:
		parentPath = node.Path
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.AccountStructure{}, err
	}
	return domain.NewAccountStructure(code, &parentCode, parentPath, displayOrder)
}

func (s *accountService) GetAccountByCode(ctx context.Context, code domain.AccountCode) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find account by code", slog.String("account_code", string(code)))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetHierarchy(ctx context.Context, code domain.AccountCode) ([]domain.AccountStructure, error) {
	root, err := s.structureRepo.FindStructureByCode(ctx, code)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find account structure", slog.String("account_code", string(code)))
		return nil, err
	}
	nodes, err := s.structureRepo.ListSubtree(ctx, *root)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account subtree", slog.String("path", root.Path))
		return nil, err
	}
	return nodes, nil
}

func (s *accountService) UpdateDisplayOrder(ctx context.Context, code domain.AccountCode, displayOrder int, userID string) error {
	if displayOrder < 0 {
		return fmt.Errorf("%w: display order must not be negative", apperrors.ErrValidation)
	}
	if err := s.structureRepo.UpdateDisplayOrder(ctx, code, displayOrder); err != nil {
		s.logFailure(ctx, err, "Failed to update display order", slog.String("account_code", string(code)))
		return err
	}
	s.LogInfo(ctx, "Account display order updated",
		slog.String("account_code", string(code)),
		slog.Int("display_order", displayOrder),
		slog.String("user_id", userID))
	return nil
}

// DeleteAccount refuses accounts that still have children or journal lines.
func (s *accountService) DeleteAccount(ctx context.Context, code domain.AccountCode, userID string) error {
	account, err := s.GetAccountByCode(ctx, code)
	if err != nil {
		return err
	}

	children, err := s.structureRepo.CountChildren(ctx, code)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: account %s has %d child accounts", apperrors.ErrValidation, code, children)
	}

	lines, err := s.lineReader.CountLinesByAccountID(ctx, *account.ID)
	if err != nil {
		return err
	}
	if lines > 0 {
		return fmt.Errorf("%w: account %s is referenced by %d journal lines", apperrors.ErrValidation, code, lines)
	}

	if err := s.accountRepo.DeleteAccount(ctx, code); err != nil {
		s.logFailure(ctx, err, "Failed to delete account", slog.String("account_code", string(code)))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_code", string(code)), slog.String("user_id", userID))
	return nil
}
