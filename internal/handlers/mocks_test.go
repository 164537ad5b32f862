package handlers_test

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/autojournal"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- MockJournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetJournalEntry(ctx context.Context, id int64) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id))
}
func (m *MockJournalEntryService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalEntryService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, userID))
}
func (m *MockJournalEntryService) UpdateJournalEntry(ctx context.Context, id int64, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, req, userID))
}
func (m *MockJournalEntryService) DeleteJournalEntry(ctx context.Context, id int64, version int64, userID string) error {
	args := m.Called(ctx, id, version, userID)
	return args.Error(0)
}
func (m *MockJournalEntryService) SubmitJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, version, userID))
}
func (m *MockJournalEntryService) ApproveJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, version, userID))
}
func (m *MockJournalEntryService) RejectJournalEntry(ctx context.Context, id int64, req dto.RejectJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, req, userID))
}
func (m *MockJournalEntryService) ConfirmJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, version, userID))
}

// Ensure mock implements the interface
var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

// --- MockAccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code domain.AccountCode) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetHierarchy(ctx context.Context, code domain.AccountCode) ([]domain.AccountStructure, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountStructure), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateDisplayOrder(ctx context.Context, code domain.AccountCode, displayOrder int, userID string) error {
	args := m.Called(ctx, code, displayOrder, userID)
	return args.Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, code domain.AccountCode, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- MockAutoJournalService ---
type MockAutoJournalService struct {
	mock.Mock
}

func (m *MockAutoJournalService) GetPattern(ctx context.Context, id int64) (*domain.AutoJournalPattern, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalPattern), args.Error(1)
}
func (m *MockAutoJournalService) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoJournalPattern), args.Error(1)
}
func (m *MockAutoJournalService) ListExecutionLogs(ctx context.Context, patternID int64, limit int) ([]domain.AutoJournalExecutionLog, error) {
	args := m.Called(ctx, patternID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoJournalExecutionLog), args.Error(1)
}
func (m *MockAutoJournalService) CreatePattern(ctx context.Context, req dto.CreatePatternRequest, userID string) (*domain.AutoJournalPattern, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalPattern), args.Error(1)
}
func (m *MockAutoJournalService) SetPatternActive(ctx context.Context, id int64, active bool, userID string) error {
	args := m.Called(ctx, id, active, userID)
	return args.Error(0)
}
func (m *MockAutoJournalService) Execute(ctx context.Context, patternID int64, req dto.ExecutePatternRequest, userID string) (*autojournal.Result, error) {
	args := m.Called(ctx, patternID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*autojournal.Result), args.Error(1)
}
func (m *MockAutoJournalService) ExecuteBatch(ctx context.Context, patternID int64, req dto.ExecuteBatchRequest, userID string) (*autojournal.BatchResult, error) {
	args := m.Called(ctx, patternID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*autojournal.BatchResult), args.Error(1)
}

var _ portssvc.AutoJournalSvcFacade = (*MockAutoJournalService)(nil)
