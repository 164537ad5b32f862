package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/autojournal"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

const defaultLogPageSize = 50

// autoJournalService manages patterns and executes them. Execution always appends
// exactly one log record; a failed log write is logged and does not change the outcome.
type autoJournalService struct {
	BaseService
	patternRepo portsrepo.AutoJournalPatternRepositoryFacade
	logRepo     portsrepo.ExecutionLogRepositoryFacade
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.JournalEntryWriter
	generator   autojournal.Generator
}

// NewAutoJournalService creates a new AutoJournalSvcFacade.
func NewAutoJournalService(
	patternRepo portsrepo.AutoJournalPatternRepositoryFacade,
	logRepo portsrepo.ExecutionLogRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	entryRepo portsrepo.JournalEntryWriter,
	options ...ServiceOption,
) portssvc.AutoJournalSvcFacade {
	base := newBaseService(options...)
	return &autoJournalService{
		BaseService: base,
		patternRepo: patternRepo,
		logRepo:     logRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		generator:   autojournal.NewGenerator(base.clock),
	}
}

var _ portssvc.AutoJournalSvcFacade = (*autoJournalService)(nil)

func (s *autoJournalService) CreatePattern(ctx context.Context, req dto.CreatePatternRequest, userID string) (*domain.AutoJournalPattern, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	pattern, err := domain.NewAutoJournalPattern(req.Code, req.Name, req.SourceTable, req.Description, active)
	if err != nil {
		return nil, err
	}

	items := make([]domain.AutoJournalPatternItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := domain.NewAutoJournalPatternItem(it.LineNumber, it.Side, it.AccountCode, it.AmountFormula, it.DescriptionTemplate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	pattern, err = pattern.WithItems(items)
	if err != nil {
		return nil, err
	}
	if _, err := s.generator.RequiredParams(pattern); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if _, err := s.resolveAccounts(ctx, pattern); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := s.Now()
	pattern.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	saved, err := s.patternRepo.SavePattern(ctx, pattern)
	if err != nil {
		s.logFailure(ctx, err, "Failed to save auto-journal pattern", slog.String("pattern_code", req.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Auto-journal pattern created",
		slog.Int64("pattern_id", *saved.ID),
		slog.String("pattern_code", saved.Code),
		slog.Int("items", len(saved.Items)))
	return saved, nil
}

func (s *autoJournalService) GetPattern(ctx context.Context, id int64) (*domain.AutoJournalPattern, error) {
	pattern, err := s.patternRepo.FindPatternByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find auto-journal pattern", slog.Int64("pattern_id", id))
		return nil, err
	}
	return pattern, nil
}

func (s *autoJournalService) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	patterns, err := s.patternRepo.ListPatterns(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list auto-journal patterns")
		return nil, fmt.Errorf("failed to list auto-journal patterns: %w", err)
	}
	if patterns == nil {
		return []domain.AutoJournalPattern{}, nil
	}
	return patterns, nil
}

func (s *autoJournalService) SetPatternActive(ctx context.Context, id int64, active bool, userID string) error {
	if err := s.patternRepo.SetPatternActive(ctx, id, active, userID, s.Now()); err != nil {
		s.logFailure(ctx, err, "Failed to toggle auto-journal pattern", slog.Int64("pattern_id", id))
		return err
	}
	s.LogInfo(ctx, "Auto-journal pattern toggled", slog.Int64("pattern_id", id), slog.Bool("active", active))
	return nil
}

func (s *autoJournalService) ListExecutionLogs(ctx context.Context, patternID int64, limit int) ([]domain.AutoJournalExecutionLog, error) {
	if limit <= 0 {
		limit = defaultLogPageSize
	}
	if _, err := s.GetPattern(ctx, patternID); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListLogsByPattern(ctx, patternID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list execution logs", slog.Int64("pattern_id", patternID))
		return nil, err
	}
	if logs == nil {
		return []domain.AutoJournalExecutionLog{}, nil
	}
	return logs, nil
}

// Execute generates one DRAFT entry from the pattern and stores it. Generation and
// persistence failures both end in a FAILED log.
func (s *autoJournalService) Execute(ctx context.Context, patternID int64, req dto.ExecutePatternRequest, userID string) (*autojournal.Result, error) {
	pattern, err := s.GetPattern(ctx, patternID)
	if err != nil {
		return nil, err
	}

	genReq := autojournal.Request{
		JournalDate: req.JournalDate,
		Memo:        req.Memo,
		CreatedBy:   userID,
		Params:      req.Params,
	}
	genReq.AccountIDs, err = s.resolveAccounts(ctx, *pattern)
	if err != nil && !isClientError(err) {
		res := autojournal.Result{Err: err, Log: s.abortRun(ctx, *pattern, 1, userID, err)}
		s.LogError(ctx, err, "Auto-journal execution aborted", slog.Int64("pattern_id", patternID))
		return &res, err
	}

	res := s.generator.Generate(*pattern, genReq)
	if res.Err == nil {
		saved, saveErr := s.entryRepo.SaveJournalEntry(ctx, *res.Entry)
		if saveErr != nil {
			res = failedResult(res, saveErr)
		} else {
			res.Entry = saved
			res.Log.Message = fmt.Sprintf("%s (journal entry %d)", res.Log.Message, *saved.ID)
		}
	}

	res.Log = s.appendLog(ctx, res.Log)
	attrs := []any{slog.Int64("pattern_id", patternID), slog.String("status", string(res.Log.Status))}
	if res.Err != nil {
		s.logFailure(ctx, res.Err, "Auto-journal execution failed", attrs...)
		return &res, res.Err
	}
	s.LogInfo(ctx, "Auto-journal execution succeeded", append(attrs, slog.Int64("journal_entry_id", *res.Entry.ID))...)
	return &res, nil
}

// ExecuteBatch generates one entry per parameter set. Successful entries are stored in
// a single transaction; if that fails the whole batch is logged as FAILED.
func (s *autoJournalService) ExecuteBatch(ctx context.Context, patternID int64, req dto.ExecuteBatchRequest, userID string) (*autojournal.BatchResult, error) {
	pattern, err := s.GetPattern(ctx, patternID)
	if err != nil {
		return nil, err
	}

	base := autojournal.Request{
		JournalDate: req.JournalDate,
		Memo:        req.Memo,
		CreatedBy:   userID,
	}
	base.AccountIDs, err = s.resolveAccounts(ctx, *pattern)
	if err != nil && !isClientError(err) {
		res := autojournal.BatchResult{
			Entries: []domain.JournalEntry{},
			Log:     s.abortRun(ctx, *pattern, len(req.ParamSets), userID, err),
		}
		s.LogError(ctx, err, "Auto-journal batch aborted", slog.Int64("pattern_id", patternID))
		return &res, err
	}

	res := s.generator.GenerateBatch(*pattern, base, req.ParamSets)
	if len(res.Entries) > 0 {
		saved, saveErr := s.entryRepo.SaveJournalEntries(ctx, res.Entries)
		if saveErr != nil {
			detail := saveErr.Error()
			res.Log.Status = domain.ExecutionFailed
			res.Log.GeneratedCount = 0
			res.Log.ErrorDetail = &detail
			res.Log.Message = fmt.Sprintf("pattern %s generated %d journal entries but none were stored", pattern.Code, len(res.Entries))
			res.Entries = []domain.JournalEntry{}
			res.Log = s.appendLog(ctx, res.Log)
			s.LogError(ctx, saveErr, "Failed to store auto-journal batch", slog.Int64("pattern_id", patternID))
			return &res, saveErr
		}
		res.Entries = saved
	}

	res.Log = s.appendLog(ctx, res.Log)
	s.LogInfo(ctx, "Auto-journal batch executed",
		slog.Int64("pattern_id", patternID),
		slog.String("status", string(res.Log.Status)),
		slog.Int("processed", res.Log.ProcessedCount),
		slog.Int("generated", res.Log.GeneratedCount))
	return &res, nil
}

// resolveAccounts maps the pattern's account codes to stored IDs. Codes that do not
// exist are left out of the map and reported as ErrNotFound alongside the partial map.
func (s *autoJournalService) resolveAccounts(ctx context.Context, pattern domain.AutoJournalPattern) (map[domain.AccountCode]int64, error) {
	codes := pattern.AccountCodes()
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pattern accounts: %w", err)
	}
	ids := make(map[domain.AccountCode]int64, len(accounts))
	var missing []domain.AccountCode
	for _, code := range codes {
		acc, ok := accounts[code]
		if !ok || acc.ID == nil {
			missing = append(missing, code)
			continue
		}
		ids[code] = *acc.ID
	}
	if len(missing) > 0 {
		return ids, fmt.Errorf("%w: accounts %v referenced by pattern %s", apperrors.ErrNotFound, missing, pattern.Code)
	}
	return ids, nil
}

func (s *autoJournalService) appendLog(ctx context.Context, log domain.AutoJournalExecutionLog) domain.AutoJournalExecutionLog {
	stored, err := s.logRepo.AppendLog(ctx, log)
	if err != nil {
		s.LogError(ctx, err, "Failed to append auto-journal execution log",
			slog.Int64("pattern_id", log.PatternID),
			slog.String("status", string(log.Status)))
		return log
	}
	return *stored
}

// abortRun appends the FAILED log of a run that stopped before any entry was generated.
func (s *autoJournalService) abortRun(ctx context.Context, pattern domain.AutoJournalPattern, processed int, userID string, err error) domain.AutoJournalExecutionLog {
	var patternID int64
	if pattern.ID != nil {
		patternID = *pattern.ID
	}
	detail := err.Error()
	return s.appendLog(ctx, domain.AutoJournalExecutionLog{
		PatternID:      patternID,
		ExecutedAt:     s.Now(),
		ProcessedCount: processed,
		Status:         domain.ExecutionFailed,
		Message:        fmt.Sprintf("pattern %s stopped before generation: accounts could not be resolved", pattern.Code),
		ErrorDetail:    &detail,
		ExecutedBy:     userID,
	})
}

func failedResult(res autojournal.Result, err error) autojournal.Result {
	detail := err.Error()
	res.Entry = nil
	res.Err = err
	res.Log.Status = domain.ExecutionFailed
	res.Log.GeneratedCount = 0
	res.Log.ErrorDetail = &detail
	res.Log.Message = "generated journal entry could not be stored"
	return res
}
