package autojournal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Request carries everything a pattern needs besides its own items.
// AccountIDs maps the codes referenced by the pattern to persisted account identities.
type Request struct {
	JournalDate time.Time
	Memo        string
	CreatedBy   string
	Params      map[string]decimal.Decimal
	AccountIDs  map[domain.AccountCode]int64
}

// Result is the outcome of one generation attempt. Log is always populated;
// Entry is set only when Err is nil.
type Result struct {
	Entry *domain.JournalEntry
	Log   domain.AutoJournalExecutionLog
	Err   error
}

// BatchFailure records which parameter set failed and why.
type BatchFailure struct {
	Index int
	Err   error
}

// BatchResult folds several attempts into one summary log.
type BatchResult struct {
	Entries  []domain.JournalEntry
	Failures []BatchFailure
	Log      domain.AutoJournalExecutionLog
}

// Generator builds candidate journal entries from patterns. It holds no mutable state
// and is safe for concurrent use.
type Generator struct {
	evaluator AmountFormulaEvaluator
	clock     domain.Clock
}

// NewGenerator creates a Generator stamping entries and logs with clock.
func NewGenerator(clock domain.Clock) Generator {
	return Generator{clock: clock}
}

// Generate evaluates every item of pattern and returns a balanced DRAFT entry.
// Exactly one execution log is produced whatever the outcome.
func (g Generator) Generate(pattern domain.AutoJournalPattern, req Request) Result {
	log := g.newLog(pattern, req.CreatedBy)
	log.ProcessedCount = 1

	entry, err := g.build(pattern, req)
	if err != nil {
		detail := err.Error()
		log.Status = domain.ExecutionFailed
		log.Message = fmt.Sprintf("pattern %s failed to generate a journal entry", pattern.Code)
		log.ErrorDetail = &detail
		return Result{Log: log, Err: err}
	}

	log.Status = domain.ExecutionSuccess
	log.GeneratedCount = 1
	log.Message = fmt.Sprintf("pattern %s generated 1 journal entry with %d lines", pattern.Code, len(entry.Lines))
	return Result{Entry: &entry, Log: log}
}

// GenerateBatch runs Generate for each parameter set, sharing the rest of base.
// The returned log summarises the whole batch: SUCCESS, FAILED or PARTIAL.
func (g Generator) GenerateBatch(pattern domain.AutoJournalPattern, base Request, paramSets []map[string]decimal.Decimal) BatchResult {
	res := BatchResult{Entries: []domain.JournalEntry{}}
	log := g.newLog(pattern, base.CreatedBy)
	log.ProcessedCount = len(paramSets)

	for i, params := range paramSets {
		req := base
		req.Params = params
		entry, err := g.build(pattern, req)
		if err != nil {
			res.Failures = append(res.Failures, BatchFailure{Index: i, Err: err})
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	log.GeneratedCount = len(res.Entries)

	switch {
	case len(paramSets) == 0:
		detail := "no parameter sets supplied"
		log.Status = domain.ExecutionFailed
		log.ErrorDetail = &detail
	case len(res.Failures) == 0:
		log.Status = domain.ExecutionSuccess
	case len(res.Entries) == 0:
		log.Status = domain.ExecutionFailed
	default:
		log.Status = domain.ExecutionPartial
	}
	if len(res.Failures) > 0 {
		msgs := make([]string, len(res.Failures))
		for i, f := range res.Failures {
			msgs[i] = fmt.Sprintf("#%d: %v", f.Index, f.Err)
		}
		detail := strings.Join(msgs, "; ")
		log.ErrorDetail = &detail
	}
	log.Message = fmt.Sprintf("pattern %s generated %d of %d journal entries", pattern.Code, log.GeneratedCount, log.ProcessedCount)
	res.Log = log
	return res
}

func (g Generator) build(pattern domain.AutoJournalPattern, req Request) (domain.JournalEntry, error) {
	if !pattern.IsActive {
		return domain.JournalEntry{}, fmt.Errorf("%w: pattern %s is inactive", apperrors.ErrValidation, pattern.Code)
	}
	if len(pattern.Items) == 0 {
		return domain.JournalEntry{}, fmt.Errorf("%w: pattern %s has no items", apperrors.ErrValidation, pattern.Code)
	}

	items := append([]domain.AutoJournalPatternItem(nil), pattern.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].LineNumber < items[j].LineNumber })

	lines := make([]domain.JournalEntryLine, 0, len(items))
	for _, item := range items {
		value, err := g.evaluator.Evaluate(item.AmountFormula, req.Params)
		if err != nil {
			return domain.JournalEntry{}, fmt.Errorf("pattern %s item %d: %w", pattern.Code, item.LineNumber, err)
		}
		amount, err := domain.NewMoney(value)
		if err != nil {
			return domain.JournalEntry{}, fmt.Errorf("pattern %s item %d: %w", pattern.Code, item.LineNumber, err)
		}
		accountID, ok := req.AccountIDs[item.AccountCode]
		if !ok {
			return domain.JournalEntry{}, fmt.Errorf("%w: account %s referenced by pattern %s item %d", apperrors.ErrNotFound, item.AccountCode, pattern.Code, item.LineNumber)
		}
		lineAmount, err := domain.NewLineAmount(item.Side, amount)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		line, err := domain.NewJournalEntryLine(item.LineNumber, accountID, lineAmount, renderDescription(item.DescriptionTemplate, req.Params))
		if err != nil {
			return domain.JournalEntry{}, err
		}
		lines = append(lines, line)
	}

	memo := req.Memo
	if strings.TrimSpace(memo) == "" {
		memo = pattern.Name
	}
	entry, err := domain.NewJournalEntry(req.JournalDate, memo, req.CreatedBy, 0, g.clock)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	entry, err = entry.Update(req.JournalDate, memo, lines, g.clock)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if err := entry.ValidateForSave(); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("pattern %s: %w", pattern.Code, err)
	}
	return entry, nil
}

func (g Generator) newLog(pattern domain.AutoJournalPattern, executedBy string) domain.AutoJournalExecutionLog {
	var patternID int64
	if pattern.ID != nil {
		patternID = *pattern.ID
	}
	return domain.AutoJournalExecutionLog{
		PatternID:  patternID,
		ExecutedAt: g.clock(),
		ExecutedBy: executedBy,
	}
}

// renderDescription substitutes {name} placeholders with parameter values.
func renderDescription(template *string, params map[string]decimal.Decimal) string {
	if template == nil {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", params[k].String())
	}
	return strings.NewReplacer(pairs...).Replace(*template)
}

// RequiredParams lists the distinct parameters the pattern's formulas read, sorted by name.
// It fails on the first formula that can never evaluate.
func (g Generator) RequiredParams(pattern domain.AutoJournalPattern) ([]string, error) {
	seen := make(map[string]bool, len(pattern.Items))
	names := make([]string, 0, len(pattern.Items))
	for _, item := range pattern.Items {
		name, err := g.evaluator.Parameter(item.AmountFormula)
		if err != nil {
			return nil, fmt.Errorf("pattern %s item %d: %w", pattern.Code, item.LineNumber, err)
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
