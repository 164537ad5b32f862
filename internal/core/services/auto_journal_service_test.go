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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AutoJournalServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	patternRepo *MockPatternRepository
	logRepo     *MockExecutionLogRepository
	accountRepo *MockAccountRepository
	entryRepo   *MockJournalEntryRepository
	service     portssvc.AutoJournalSvcFacade
	appended    []domain.AutoJournalExecutionLog
}

func (s *AutoJournalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.patternRepo = new(MockPatternRepository)
	s.logRepo = new(MockExecutionLogRepository)
	s.accountRepo = new(MockAccountRepository)
	s.entryRepo = new(MockJournalEntryRepository)
	s.appended = nil
	s.service = services.NewAutoJournalService(s.patternRepo, s.logRepo, s.accountRepo, s.entryRepo,
		services.WithClock(domain.FixedClock(serviceNow)))
}

func (s *AutoJournalServiceTestSuite) TearDownTest() {
	s.patternRepo.AssertExpectations(s.T())
	s.logRepo.AssertExpectations(s.T())
	s.accountRepo.AssertExpectations(s.T())
	s.entryRepo.AssertExpectations(s.T())
}

func TestAutoJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutoJournalServiceTestSuite))
}

// feePattern books a card fee: the gross charge against the bank and fee expense.
func (s *AutoJournalServiceTestSuite) feePattern(active bool) *domain.AutoJournalPattern {
	p, err := domain.NewAutoJournalPattern("CARD_FEE", "Card fee", "card_settlements", nil, active)
	s.Require().NoError(err)
	items := make([]domain.AutoJournalPatternItem, 0, 2)
	for _, it := range []struct {
		n       int
		side    string
		code    string
		formula string
	}{
		{1, "D", "5300", "fee"},
		{2, "C", "1110", "fee"},
	} {
		item, err := domain.NewAutoJournalPatternItem(it.n, it.side, it.code, it.formula, nil)
		s.Require().NoError(err)
		items = append(items, item)
	}
	p, err = p.WithItems(items)
	s.Require().NoError(err)
	p.ID = int64Ptr(3)
	return &p
}

func (s *AutoJournalServiceTestSuite) expectPattern(p *domain.AutoJournalPattern) {
	s.patternRepo.On("FindPatternByID", s.ctx, int64(3)).Return(p, nil).Once()
}

func (s *AutoJournalServiceTestSuite) expectAccounts(codes ...domain.AccountCode) {
	found := map[domain.AccountCode]domain.Account{}
	ids := map[domain.AccountCode]int64{"5300": 53, "1110": 11}
	for _, c := range codes {
		found[c] = domain.Account{ID: int64Ptr(ids[c]), Code: c}
	}
	s.accountRepo.On("FindAccountsByCodes", s.ctx, []domain.AccountCode{"5300", "1110"}).Return(found, nil).Once()
}

// captureLogs records appended logs and assigns them an ID.
func (s *AutoJournalServiceTestSuite) captureLogs() *mock.Call {
	return s.logRepo.On("AppendLog", s.ctx, mock.AnythingOfType("domain.AutoJournalExecutionLog")).
		Return(func(_ context.Context, l domain.AutoJournalExecutionLog) (*domain.AutoJournalExecutionLog, error) {
			s.appended = append(s.appended, l)
			l.ID = int64Ptr(int64(len(s.appended)))
			return &l, nil
		})
}

func (s *AutoJournalServiceTestSuite) TestExecute_Success() {
	s.expectPattern(s.feePattern(true))
	s.expectAccounts("5300", "1110")
	s.entryRepo.On("SaveJournalEntry", s.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft && e.Lines[0].AccountID == 53 && e.Lines[1].AccountID == 11
	})).Return(func(_ context.Context, e domain.JournalEntry) (*domain.JournalEntry, error) {
		e.ID = int64Ptr(120)
		return &e, nil
	}).Once()
	s.captureLogs().Once()

	res, err := s.service.Execute(s.ctx, 3, dto.ExecutePatternRequest{
		JournalDate: bookingDate,
		Params:      map[string]decimal.Decimal{"fee": decimal.NewFromInt(35)},
	}, "system")

	s.Require().NoError(err)
	s.Equal(int64(120), *res.Entry.ID)
	s.Equal("Card fee", res.Entry.Memo)
	s.Equal(domain.ExecutionSuccess, res.Log.Status)
	s.Equal(int64(1), *res.Log.ID)
	s.Equal(int64(3), res.Log.PatternID)
	s.Equal("system", res.Log.ExecutedBy)
	s.Equal(serviceNow, res.Log.ExecutedAt)
	s.Len(s.appended, 1)
}

func (s *AutoJournalServiceTestSuite) TestExecute_FailuresAreLogged() {
	tests := []struct {
		name     string
		pattern  *domain.AutoJournalPattern
		accounts []domain.AccountCode
		params   map[string]decimal.Decimal
		wantErr  error
	}{
		{"missing parameter", s.feePattern(true), []domain.AccountCode{"5300", "1110"}, map[string]decimal.Decimal{}, apperrors.ErrMissingParameter},
		{"unknown account", s.feePattern(true), []domain.AccountCode{"5300"}, map[string]decimal.Decimal{"fee": decimal.NewFromInt(1)}, apperrors.ErrNotFound},
		{"inactive pattern", s.feePattern(false), []domain.AccountCode{"5300", "1110"}, map[string]decimal.Decimal{"fee": decimal.NewFromInt(1)}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.appended = nil
			s.expectPattern(tt.pattern)
			s.expectAccounts(tt.accounts...)
			s.captureLogs().Once()

			res, err := s.service.Execute(s.ctx, 3, dto.ExecutePatternRequest{JournalDate: bookingDate, Params: tt.params}, "system")

			s.ErrorIs(err, tt.wantErr)
			s.Require().NotNil(res)
			s.Nil(res.Entry)
			s.Equal(domain.ExecutionFailed, res.Log.Status)
			s.Require().Len(s.appended, 1)
			s.NotNil(s.appended[0].ErrorDetail)
		})
	}
	s.entryRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestExecute_StoreFailureIsLogged() {
	s.expectPattern(s.feePattern(true))
	s.expectAccounts("5300", "1110")
	boom := errors.New("insert failed")
	s.entryRepo.On("SaveJournalEntry", s.ctx, mock.Anything).Return(nil, boom).Once()
	s.captureLogs().Once()

	res, err := s.service.Execute(s.ctx, 3, dto.ExecutePatternRequest{
		JournalDate: bookingDate,
		Params:      map[string]decimal.Decimal{"fee": decimal.NewFromInt(35)},
	}, "system")

	s.ErrorIs(err, boom)
	s.Equal(domain.ExecutionFailed, res.Log.Status)
	s.Equal(0, res.Log.GeneratedCount)
	s.Equal("insert failed", *s.appended[0].ErrorDetail)
}

func (s *AutoJournalServiceTestSuite) TestExecute_LogWriteFailureDoesNotChangeOutcome() {
	s.expectPattern(s.feePattern(true))
	s.expectAccounts("5300", "1110")
	s.entryRepo.On("SaveJournalEntry", s.ctx, mock.Anything).Return(func(_ context.Context, e domain.JournalEntry) (*domain.JournalEntry, error) {
		e.ID = int64Ptr(121)
		return &e, nil
	}).Once()
	s.logRepo.On("AppendLog", s.ctx, mock.Anything).Return(nil, errors.New("log table locked")).Once()

	res, err := s.service.Execute(s.ctx, 3, dto.ExecutePatternRequest{
		JournalDate: bookingDate,
		Params:      map[string]decimal.Decimal{"fee": decimal.NewFromInt(35)},
	}, "system")

	s.Require().NoError(err)
	s.Equal(domain.ExecutionSuccess, res.Log.Status)
	s.Nil(res.Log.ID)
}

func (s *AutoJournalServiceTestSuite) TestExecute_UnknownPattern() {
	s.patternRepo.On("FindPatternByID", s.ctx, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

	res, err := s.service.Execute(s.ctx, 3, dto.ExecutePatternRequest{JournalDate: bookingDate}, "system")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(res)
	s.logRepo.AssertNotCalled(s.T(), "AppendLog", mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestExecute_AccountLookupFailureIsLogged() {
	s.expectPattern(s.feePattern(true))
	boom := errors.New("db down")
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(nil, boom).Once()
	s.captureLogs().Once()

	res, err := s.service.Execute(s.ctx, 3, dto.ExecutePatternRequest{
		JournalDate: bookingDate,
		Params:      map[string]decimal.Decimal{"fee": decimal.NewFromInt(35)},
	}, "system")

	s.ErrorIs(err, boom)
	s.Require().NotNil(res)
	s.Nil(res.Entry)
	s.Equal(domain.ExecutionFailed, res.Log.Status)
	s.Equal(1, res.Log.ProcessedCount)
	s.Equal(0, res.Log.GeneratedCount)
	s.Equal("system", res.Log.ExecutedBy)
	s.logRepo.AssertNumberOfCalls(s.T(), "AppendLog", 1)
	s.Require().NotNil(s.appended[0].ErrorDetail)
	s.Contains(*s.appended[0].ErrorDetail, "db down")
	s.entryRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestExecuteBatch_AccountLookupFailureIsLogged() {
	s.expectPattern(s.feePattern(true))
	boom := errors.New("db down")
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(nil, boom).Once()
	s.captureLogs().Once()

	res, err := s.service.ExecuteBatch(s.ctx, 3, dto.ExecuteBatchRequest{
		JournalDate: bookingDate,
		ParamSets: []map[string]decimal.Decimal{
			{"fee": decimal.NewFromInt(10)},
			{"fee": decimal.NewFromInt(12)},
		},
	}, "system")

	s.ErrorIs(err, boom)
	s.Require().NotNil(res)
	s.Empty(res.Entries)
	s.Equal(domain.ExecutionFailed, res.Log.Status)
	s.Equal(2, res.Log.ProcessedCount)
	s.Equal(0, res.Log.GeneratedCount)
	s.logRepo.AssertNumberOfCalls(s.T(), "AppendLog", 1)
	s.entryRepo.AssertNotCalled(s.T(), "SaveJournalEntries", mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestExecuteBatch_Partial() {
	s.expectPattern(s.feePattern(true))
	s.expectAccounts("5300", "1110")
	s.entryRepo.On("SaveJournalEntries", s.ctx, mock.MatchedBy(func(es []domain.JournalEntry) bool { return len(es) == 2 })).
		Return(func(_ context.Context, es []domain.JournalEntry) ([]domain.JournalEntry, error) {
			for i := range es {
				es[i].ID = int64Ptr(int64(200 + i))
			}
			return es, nil
		}).Once()
	s.captureLogs().Once()

	res, err := s.service.ExecuteBatch(s.ctx, 3, dto.ExecuteBatchRequest{
		JournalDate: bookingDate,
		ParamSets: []map[string]decimal.Decimal{
			{"fee": decimal.NewFromInt(10)},
			{},
			{"fee": decimal.NewFromInt(12)},
		},
	}, "system")

	s.Require().NoError(err)
	s.Equal(domain.ExecutionPartial, res.Log.Status)
	s.Equal(3, res.Log.ProcessedCount)
	s.Equal(2, res.Log.GeneratedCount)
	s.Len(res.Entries, 2)
	s.Require().Len(res.Failures, 1)
	s.Equal(1, res.Failures[0].Index)
	s.Len(s.appended, 1)
}

func (s *AutoJournalServiceTestSuite) TestExecuteBatch_StoreFailureFailsWholeBatch() {
	s.expectPattern(s.feePattern(true))
	s.expectAccounts("5300", "1110")
	boom := errors.New("tx aborted")
	s.entryRepo.On("SaveJournalEntries", s.ctx, mock.Anything).Return(nil, boom).Once()
	s.captureLogs().Once()

	res, err := s.service.ExecuteBatch(s.ctx, 3, dto.ExecuteBatchRequest{
		JournalDate: bookingDate,
		ParamSets:   []map[string]decimal.Decimal{{"fee": decimal.NewFromInt(10)}},
	}, "system")

	s.ErrorIs(err, boom)
	s.Equal(domain.ExecutionFailed, res.Log.Status)
	s.Equal(0, res.Log.GeneratedCount)
	s.Empty(res.Entries)
	s.Len(s.appended, 1)
}

func (s *AutoJournalServiceTestSuite) TestCreatePattern() {
	req := dto.CreatePatternRequest{
		Code:        "CARD_FEE",
		Name:        "Card fee",
		SourceTable: "card_settlements",
		Items: []dto.PatternItemRequest{
			{LineNumber: 1, Side: "d", AccountCode: "5300", AmountFormula: "fee"},
			{LineNumber: 2, Side: "C", AccountCode: "1110", AmountFormula: "fee"},
		},
	}

	s.Run("success", func() {
		s.expectAccounts("5300", "1110")
		s.patternRepo.On("SavePattern", s.ctx, mock.MatchedBy(func(p domain.AutoJournalPattern) bool {
			return p.IsActive && len(p.Items) == 2 && p.Items[0].Side == domain.SideDebit && p.CreatedBy == "alice"
		})).Return(func(_ context.Context, p domain.AutoJournalPattern) (*domain.AutoJournalPattern, error) {
			p.ID = int64Ptr(3)
			return &p, nil
		}).Once()

		p, err := s.service.CreatePattern(s.ctx, req, "alice")
		s.Require().NoError(err)
		s.Equal(int64(3), *p.ID)
	})

	s.Run("unknown account", func() {
		s.expectAccounts("5300")
		_, err := s.service.CreatePattern(s.ctx, req, "alice")
		s.ErrorIs(err, apperrors.ErrValidation)
	})

	s.Run("formula that can never evaluate", func() {
		bad := req
		bad.Items = []dto.PatternItemRequest{{LineNumber: 1, Side: "D", AccountCode: "5300", AmountFormula: "fee * rate"}}
		_, err := s.service.CreatePattern(s.ctx, bad, "alice")
		s.ErrorIs(err, apperrors.ErrValidation)
		s.ErrorIs(err, apperrors.ErrUnsupportedFormula)
	})

	s.patternRepo.AssertNumberOfCalls(s.T(), "SavePattern", 1)
}

func (s *AutoJournalServiceTestSuite) TestListExecutionLogs() {
	s.expectPattern(s.feePattern(true))
	s.logRepo.On("ListLogsByPattern", s.ctx, int64(3), 50).Return(nil, nil).Once()

	logs, err := s.service.ListExecutionLogs(s.ctx, 3, 0)

	s.Require().NoError(err)
	s.NotNil(logs)
	s.Empty(logs)
}
