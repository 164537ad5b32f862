package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- MockJournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindJournalEntryByID(ctx context.Context, id int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListJournalEntries(ctx context.Context, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalEntryRepository) CountLinesByAccountID(ctx context.Context, accountID int64) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if fn, ok := args.Get(0).(func(context.Context, domain.JournalEntry) (*domain.JournalEntry, error)); ok {
		return fn(ctx, entry)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveJournalEntries(ctx context.Context, entries []domain.JournalEntry) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, entries)
	if fn, ok := args.Get(0).(func(context.Context, []domain.JournalEntry) ([]domain.JournalEntry, error)); ok {
		return fn(ctx, entries)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if fn, ok := args.Get(0).(func(context.Context, domain.JournalEntry) (*domain.JournalEntry, error)); ok {
		return fn(ctx, entry)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) DeleteJournalEntry(ctx context.Context, id int64, version int64) error {
	args := m.Called(ctx, id, version)
	return args.Error(0)
}

// --- MockAccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code domain.AccountCode) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, ids []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []domain.AccountCode) (map[domain.AccountCode]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountCode]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, structure domain.AccountStructure) (*domain.Account, error) {
	args := m.Called(ctx, account, structure)
	if fn, ok := args.Get(0).(func(context.Context, domain.Account, domain.AccountStructure) (*domain.Account, error)); ok {
		return fn(ctx, account, structure)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, code domain.AccountCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// --- MockAccountStructureRepository ---

type MockAccountStructureRepository struct {
	mock.Mock
}

func (m *MockAccountStructureRepository) FindStructureByCode(ctx context.Context, code domain.AccountCode) (*domain.AccountStructure, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStructure), args.Error(1)
}

func (m *MockAccountStructureRepository) ListSubtree(ctx context.Context, root domain.AccountStructure) ([]domain.AccountStructure, error) {
	args := m.Called(ctx, root)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountStructure), args.Error(1)
}

func (m *MockAccountStructureRepository) CountChildren(ctx context.Context, code domain.AccountCode) (int, error) {
	args := m.Called(ctx, code)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountStructureRepository) UpdateDisplayOrder(ctx context.Context, code domain.AccountCode, displayOrder int) error {
	args := m.Called(ctx, code, displayOrder)
	return args.Error(0)
}

// --- MockPatternRepository ---

type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) FindPatternByID(ctx context.Context, id int64) (*domain.AutoJournalPattern, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalPattern), args.Error(1)
}

func (m *MockPatternRepository) FindPatternByCode(ctx context.Context, code string) (*domain.AutoJournalPattern, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalPattern), args.Error(1)
}

func (m *MockPatternRepository) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoJournalPattern), args.Error(1)
}

func (m *MockPatternRepository) SavePattern(ctx context.Context, pattern domain.AutoJournalPattern) (*domain.AutoJournalPattern, error) {
	args := m.Called(ctx, pattern)
	if fn, ok := args.Get(0).(func(context.Context, domain.AutoJournalPattern) (*domain.AutoJournalPattern, error)); ok {
		return fn(ctx, pattern)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalPattern), args.Error(1)
}

func (m *MockPatternRepository) SetPatternActive(ctx context.Context, id int64, active bool, userID string, now time.Time) error {
	args := m.Called(ctx, id, active, userID, now)
	return args.Error(0)
}

// --- MockExecutionLogRepository ---

type MockExecutionLogRepository struct {
	mock.Mock
}

func (m *MockExecutionLogRepository) ListLogsByPattern(ctx context.Context, patternID int64, limit int) ([]domain.AutoJournalExecutionLog, error) {
	args := m.Called(ctx, patternID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoJournalExecutionLog), args.Error(1)
}

func (m *MockExecutionLogRepository) AppendLog(ctx context.Context, log domain.AutoJournalExecutionLog) (*domain.AutoJournalExecutionLog, error) {
	args := m.Called(ctx, log)
	if fn, ok := args.Get(0).(func(context.Context, domain.AutoJournalExecutionLog) (*domain.AutoJournalExecutionLog, error)); ok {
		return fn(ctx, log)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalExecutionLog), args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }
