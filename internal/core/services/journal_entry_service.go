package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

const defaultJournalPageSize = 20

// journalEntryService drives journal entries through their lifecycle and persists
// every accepted snapshot.
type journalEntryService struct {
	BaseService
	entryRepo   portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalEntryService creates a new JournalEntrySvcFacade.
func NewJournalEntryService(entryRepo portsrepo.JournalEntryRepositoryFacade, accountRepo portsrepo.AccountReader, options ...ServiceOption) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		BaseService: newBaseService(options...),
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

func (s *journalEntryService) GetJournalEntry(ctx context.Context, id int64) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindJournalEntryByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find journal entry", slog.Int64("journal_entry_id", id))
		return nil, err
	}
	return entry, nil
}

func (s *journalEntryService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	var status *domain.JournalStatus
	if params.Status != "" {
		st, err := domain.ParseJournalStatus(params.Status)
		if err != nil {
			return nil, err
		}
		status = &st
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}

	entries, nextToken, err := s.entryRepo.ListJournalEntries(ctx, status, limit, params.NextToken)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list journal entries", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	s.LogDebug(ctx, "Journal entries listed", slog.Int("count", len(entries)))
	return &dto.ListJournalEntriesResponse{
		JournalEntries: dto.ToJournalEntryResponses(entries),
		NextToken:      nextToken,
	}, nil
}

func (s *journalEntryService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	lines, err := toDomainLines(req.Lines)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewJournalEntry(req.JournalDate, req.Memo, userID, 0, s.clock)
	if err != nil {
		return nil, err
	}
	entry, err = entry.Update(req.JournalDate, req.Memo, lines, s.clock)
	if err != nil {
		return nil, err
	}
	if err := s.validateForSave(ctx, entry); err != nil {
		s.logFailure(ctx, err, "Journal entry rejected on create", slog.String("user_id", userID))
		return nil, err
	}

	saved, err := s.entryRepo.SaveJournalEntry(ctx, entry)
	if err != nil {
		s.logFailure(ctx, err, "Failed to save journal entry", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.Int64("journal_entry_id", *saved.ID),
		slog.Int("lines", len(saved.Lines)))
	return saved, nil
}

func (s *journalEntryService) UpdateJournalEntry(ctx context.Context, id int64, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	lines, err := toDomainLines(req.Lines)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, id, req.Version, "update", userID, func(e domain.JournalEntry) (domain.JournalEntry, error) {
		return e.Update(req.JournalDate, req.Memo, lines, s.clock)
	})
}

func (s *journalEntryService) DeleteJournalEntry(ctx context.Context, id int64, version int64, userID string) error {
	current, err := s.load(ctx, id, version)
	if err != nil {
		return err
	}
	if !current.CanDelete() {
		return fmt.Errorf("%w: journal entry %d in status %s cannot be deleted", apperrors.ErrInvalidStateTransition, id, current.Status)
	}
	if err := s.entryRepo.DeleteJournalEntry(ctx, id, version); err != nil {
		s.logFailure(ctx, err, "Failed to delete journal entry", slog.Int64("journal_entry_id", id))
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.Int64("journal_entry_id", id), slog.String("user_id", userID))
	return nil
}

func (s *journalEntryService) SubmitJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, id, version, "submit", userID, func(e domain.JournalEntry) (domain.JournalEntry, error) {
		return e.SubmitForApproval(s.clock)
	})
}

func (s *journalEntryService) ApproveJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, id, version, "approve", userID, func(e domain.JournalEntry) (domain.JournalEntry, error) {
		return e.Approve(userID, s.clock)
	})
}

func (s *journalEntryService) RejectJournalEntry(ctx context.Context, id int64, req dto.RejectJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, id, req.Version, "reject", userID, func(e domain.JournalEntry) (domain.JournalEntry, error) {
		return e.Reject(req.Reason, s.clock)
	})
}

func (s *journalEntryService) ConfirmJournalEntry(ctx context.Context, id int64, version int64, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, id, version, "confirm", userID, func(e domain.JournalEntry) (domain.JournalEntry, error) {
		return e.Confirm(s.clock)
	})
}

// transition loads the entry at version, applies op and stores the result.
func (s *journalEntryService) transition(ctx context.Context, id int64, version int64, op string, userID string, apply func(domain.JournalEntry) (domain.JournalEntry, error)) (*domain.JournalEntry, error) {
	attrs := []any{slog.Int64("journal_entry_id", id), slog.String("operation", op), slog.String("user_id", userID)}

	current, err := s.load(ctx, id, version)
	if err != nil {
		return nil, err
	}
	next, err := apply(*current)
	if err != nil {
		s.logFailure(ctx, err, "Journal entry transition refused", attrs...)
		return nil, err
	}
	if err := s.validateForSave(ctx, next); err != nil {
		s.logFailure(ctx, err, "Journal entry failed validation", attrs...)
		return nil, err
	}

	saved, err := s.entryRepo.UpdateJournalEntry(ctx, next)
	if err != nil {
		s.logFailure(ctx, err, "Failed to update journal entry", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", append(attrs, slog.String("status", string(saved.Status)))...)
	return saved, nil
}

func (s *journalEntryService) load(ctx context.Context, id int64, version int64) (*domain.JournalEntry, error) {
	current, err := s.GetJournalEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Version != version {
		return nil, fmt.Errorf("%w: journal entry %d is at version %d, request carried %d",
			apperrors.ErrConcurrentModification, id, current.Version, version)
	}
	return current, nil
}

// validateForSave checks balance and that every referenced account exists.
func (s *journalEntryService) validateForSave(ctx context.Context, entry domain.JournalEntry) error {
	if err := entry.ValidateForSave(); err != nil {
		return err
	}

	ids := make([]int64, 0, len(entry.Lines))
	seen := make(map[int64]bool, len(entry.Lines))
	for _, l := range entry.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: account %d does not exist", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// toDomainLines maps request lines, rejecting duplicate line numbers.
func toDomainLines(reqs []dto.JournalLineRequest) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, 0, len(reqs))
	seen := make(map[int]bool, len(reqs))
	for _, r := range reqs {
		if seen[r.LineNumber] {
			return nil, fmt.Errorf("%w: duplicate line number %d", apperrors.ErrValidation, r.LineNumber)
		}
		seen[r.LineNumber] = true
		line, err := domain.NewJournalEntryLineFromPair(r.LineNumber, r.AccountID, r.Debit, r.Credit, r.Description)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
