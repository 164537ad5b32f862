package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	accountRepo   *MockAccountRepository
	structureRepo *MockAccountStructureRepository
	entryRepo     *MockJournalEntryRepository
	service       portssvc.AccountSvcFacade
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.accountRepo = new(MockAccountRepository)
	s.structureRepo = new(MockAccountStructureRepository)
	s.entryRepo = new(MockJournalEntryRepository)
	s.service = services.NewAccountService(s.accountRepo, s.structureRepo, s.entryRepo, services.WithClock(domain.FixedClock(serviceNow)))
}

func (s *AccountServiceTestSuite) TearDownTest() {
	s.accountRepo.AssertExpectations(s.T())
	s.structureRepo.AssertExpectations(s.T())
	s.entryRepo.AssertExpectations(s.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func echoAccount(_ context.Context, a domain.Account, _ domain.AccountStructure) (*domain.Account, error) {
	a.ID = int64Ptr(501)
	return &a, nil
}

func (s *AccountServiceTestSuite) TestCreateAccount_Root() {
	s.accountRepo.On("SaveAccount", s.ctx,
		mock.MatchedBy(func(a domain.Account) bool {
			return a.Code == "1100" && a.Type == domain.Asset && a.CreatedBy == "alice" && a.CreatedAt.Equal(serviceNow)
		}),
		domain.ReconstructAccountStructure("1100", "1100", 1, nil, 0),
	).Return(echoAccount).Once()

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "1100", Name: "Current assets"}, "alice")

	s.Require().NoError(err)
	s.Equal(int64(501), *account.ID)
	s.Equal(domain.Asset, account.Type)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Child() {
	parent := domain.ReconstructAccountStructure("1100", "1000~1100", 2, codePtr("1000"), 0)
	s.structureRepo.On("FindStructureByCode", s.ctx, domain.AccountCode("1100")).Return(&parent, nil).Once()
	s.accountRepo.On("SaveAccount", s.ctx,
		mock.AnythingOfType("domain.Account"),
		domain.ReconstructAccountStructure("1130", "1000~1100~1130", 3, codePtr("1100"), 4),
	).Return(echoAccount).Once()

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:         "1130",
		Name:         "Receivables",
		ParentCode:   strPtr("1100"),
		DisplayOrder: 4,
	}, "alice")

	s.Require().NoError(err)
	s.Equal(domain.AccountCode("1130"), account.Code)
}

func (s *AccountServiceTestSuite) TestCreateAccount_UnknownParent() {
	s.structureRepo.On("FindStructureByCode", s.ctx, domain.AccountCode("1900")).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "1130", Name: "Receivables", ParentCode: strPtr("1900")}, "alice")

	s.ErrorIs(err, apperrors.ErrMissingParentPath)
	s.accountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Invalid() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
	}{
		{"malformed code", dto.CreateAccountRequest{Code: "11A0", Name: "x"}},
		{"uncategorised prefix", dto.CreateAccountRequest{Code: "9000", Name: "x"}},
		{"missing name", dto.CreateAccountRequest{Code: "1100", Name: " "}},
		{"self parent", dto.CreateAccountRequest{Code: "1100", Name: "x", ParentCode: strPtr("1100")}},
	}
	parent := domain.ReconstructAccountStructure("1100", "1100", 1, nil, 0)
	s.structureRepo.On("FindStructureByCode", s.ctx, domain.AccountCode("1100")).Return(&parent, nil).Maybe()

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateAccount(s.ctx, tt.req, "alice")
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *AccountServiceTestSuite) TestCreateAccount_Duplicate() {
	s.accountRepo.On("SaveAccount", s.ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "4100", Name: "Sales"}, "alice")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestGetHierarchy() {
	root := domain.ReconstructAccountStructure("1000", "1000", 1, nil, 0)
	child := domain.ReconstructAccountStructure("1100", "1000~1100", 2, codePtr("1000"), 0)
	s.structureRepo.On("FindStructureByCode", s.ctx, domain.AccountCode("1000")).Return(&root, nil).Once()
	s.structureRepo.On("ListSubtree", s.ctx, root).Return([]domain.AccountStructure{root, child}, nil).Once()

	nodes, err := s.service.GetHierarchy(s.ctx, "1000")

	s.Require().NoError(err)
	s.Len(nodes, 2)
	s.True(nodes[0].IsAncestorOf(nodes[1]))
}

func (s *AccountServiceTestSuite) TestDeleteAccount() {
	acc := &domain.Account{ID: int64Ptr(9), Code: "5100"}

	s.Run("unused leaf", func() {
		s.accountRepo.On("FindAccountByCode", s.ctx, domain.AccountCode("5100")).Return(acc, nil).Once()
		s.structureRepo.On("CountChildren", s.ctx, domain.AccountCode("5100")).Return(0, nil).Once()
		s.entryRepo.On("CountLinesByAccountID", s.ctx, int64(9)).Return(0, nil).Once()
		s.accountRepo.On("DeleteAccount", s.ctx, domain.AccountCode("5100")).Return(nil).Once()

		s.NoError(s.service.DeleteAccount(s.ctx, "5100", "alice"))
	})

	s.Run("referenced by journal lines", func() {
		s.accountRepo.On("FindAccountByCode", s.ctx, domain.AccountCode("5100")).Return(acc, nil).Once()
		s.structureRepo.On("CountChildren", s.ctx, domain.AccountCode("5100")).Return(0, nil).Once()
		s.entryRepo.On("CountLinesByAccountID", s.ctx, int64(9)).Return(3, nil).Once()

		err := s.service.DeleteAccount(s.ctx, "5100", "alice")
		s.ErrorIs(err, apperrors.ErrValidation)
		s.ErrorContains(err, "3 journal lines")
	})

	s.Run("has children", func() {
		s.accountRepo.On("FindAccountByCode", s.ctx, domain.AccountCode("5100")).Return(acc, nil).Once()
		s.structureRepo.On("CountChildren", s.ctx, domain.AccountCode("5100")).Return(2, nil).Once()

		s.ErrorIs(s.service.DeleteAccount(s.ctx, "5100", "alice"), apperrors.ErrValidation)
	})

	s.accountRepo.AssertNumberOfCalls(s.T(), "DeleteAccount", 1)
}

func (s *AccountServiceTestSuite) TestUpdateDisplayOrder() {
	s.ErrorIs(s.service.UpdateDisplayOrder(s.ctx, "1100", -1, "alice"), apperrors.ErrValidation)

	s.structureRepo.On("UpdateDisplayOrder", s.ctx, domain.AccountCode("1100"), 3).Return(nil).Once()
	s.NoError(s.service.UpdateDisplayOrder(s.ctx, "1100", 3, "alice"))
}

func (s *AccountServiceTestSuite) TestListAccounts() {
	s.accountRepo.On("ListAccounts", s.ctx, 50, 0).Return(nil, nil).Once()
	accounts, err := s.service.ListAccounts(s.ctx, dto.ListAccountsParams{Limit: 50})
	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)

	boom := errors.New("db down")
	s.accountRepo.On("ListAccounts", s.ctx, 50, 50).Return(nil, boom).Once()
	_, err = s.service.ListAccounts(s.ctx, dto.ListAccountsParams{Limit: 50, Offset: 50})
	s.ErrorIs(err, boom)
}

func codePtr(c string) *domain.AccountCode {
	code := domain.AccountCode(c)
	return &code
}
