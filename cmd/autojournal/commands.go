package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/autojournal"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/patternfile"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/utils/authtoken"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"
)

// Params is repeated as --param name=value.
type Params map[string]string

func (p Params) decimals() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(p))
	for name, raw := range p {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %q is not a decimal", name, raw)
		}
		out[name] = d
	}
	return out, nil
}

type EvalCmd struct {
	Formula string `arg:"" help:"Formula such as 'amount * 1.1'."`
	Params  Params `short:"p" name:"param" help:"Parameter as name=value; repeatable."`
}

func (cmd *EvalCmd) Run(ctx *kong.Context) error {
	params, err := cmd.Params.decimals()
	if err != nil {
		return err
	}
	v, err := autojournal.AmountFormulaEvaluator{}.Evaluate(cmd.Formula, params)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(ctx.Stdout, v.String())
	return nil
}

type CheckCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Pattern YAML files."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context) error {
	gen := autojournal.NewGenerator(time.Now)
	failed := 0
	for _, path := range cmd.Files {
		f, err := patternfile.Load(path)
		if err != nil {
			_, _ = fmt.Fprintf(ctx.Stderr, "✗ %v\n", err)
			failed++
			continue
		}
		for _, p := range f.Patterns {
			pattern, err := p.Domain()
			if err == nil {
				var names []string
				names, err = gen.RequiredParams(pattern)
				if err == nil {
					_, _ = fmt.Fprintf(ctx.Stdout, "✓ %s (%d items) params: %v\n", pattern.Code, len(pattern.Items), names)
					continue
				}
			}
			_, _ = fmt.Fprintf(ctx.Stderr, "✗ %s: %v\n", p.Code, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d pattern(s) failed validation", failed)
	}
	return nil
}

type PreviewCmd struct {
	File    string `arg:"" type:"existingfile" help:"Pattern YAML file."`
	Pattern string `required:"" help:"Code of the pattern to run."`
	Date    string `default:"" help:"Journal date (YYYY-MM-DD); defaults to today."`
	Memo    string `default:"" help:"Memo of the generated entry."`
	Params  Params `short:"p" name:"param" help:"Parameter as name=value; repeatable."`
}

func (cmd *PreviewCmd) Run(ctx *kong.Context) error {
	f, err := patternfile.Load(cmd.File)
	if err != nil {
		return err
	}
	var pattern *domain.AutoJournalPattern
	for _, p := range f.Patterns {
		if p.Code != cmd.Pattern {
			continue
		}
		built, err := p.Domain()
		if err != nil {
			return err
		}
		pattern = &built
	}
	if pattern == nil {
		return fmt.Errorf("%w: pattern %s is not defined in %s", apperrors.ErrNotFound, cmd.Pattern, cmd.File)
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if cmd.Date != "" {
		if date, err = time.Parse(time.DateOnly, cmd.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", cmd.Date, err)
		}
	}
	params, err := cmd.Params.decimals()
	if err != nil {
		return err
	}

	// Accounts are not resolved offline; each code gets a stand-in identity.
	codes := pattern.AccountCodes()
	ids := make(map[domain.AccountCode]int64, len(codes))
	byID := make(map[int64]domain.AccountCode, len(codes))
	for i, code := range codes {
		ids[code] = int64(i + 1)
		byID[int64(i+1)] = code
	}

	res := autojournal.NewGenerator(time.Now).Generate(*pattern, autojournal.Request{
		JournalDate: date,
		Memo:        cmd.Memo,
		CreatedBy:   "preview",
		Params:      params,
		AccountIDs:  ids,
	})
	if res.Err != nil {
		return res.Err
	}
	printEntry(ctx.Stdout, res.Entry, byID)
	return nil
}

func printEntry(w io.Writer, e *domain.JournalEntry, codes map[int64]domain.AccountCode) {
	_, _ = fmt.Fprintf(w, "%s  %s\n", e.JournalDate.Format(time.DateOnly), e.Memo)
	for _, l := range e.Lines {
		debit, credit := "", ""
		if d := l.Debit(); d != nil {
			debit = d.String()
		}
		if c := l.Credit(); c != nil {
			credit = c.String()
		}
		_, _ = fmt.Fprintf(w, "%3d  %s  %14s  %14s  %s\n", l.LineNumber, codes[l.AccountID], debit, credit, l.Description)
	}
	_, _ = fmt.Fprintf(w, "          %14s  %14s\n", e.TotalDebit().String(), e.TotalCredit().String())
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Pattern YAML file."`
	As   string `default:"autojournal-cli" help:"User recorded as creator."`
}

// Run registers each pattern through the pattern service, which also checks that
// every referenced account exists. Patterns already present are skipped.
func (cmd *ImportCmd) Run(ctx *kong.Context) error {
	f, err := patternfile.Load(cmd.File)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	runCtx := context.Background()
	pool, err := database.NewPgxPool(runCtx, database.PoolOptions{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, Ping: true})
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool)).AutoJournal

	var imported, skipped int
	var errs []error
	for _, p := range f.Patterns {
		saved, err := svc.CreatePattern(runCtx, p.Request(), cmd.As)
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			skipped++
			_, _ = fmt.Fprintf(ctx.Stdout, "- %s already exists\n", p.Code)
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", p.Code, err))
			_, _ = fmt.Fprintf(ctx.Stderr, "✗ %s: %v\n", p.Code, err)
		default:
			imported++
			_, _ = fmt.Fprintf(ctx.Stdout, "✓ %s registered as %d\n", saved.Code, *saved.ID)
		}
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "%d imported, %d skipped, %d failed\n", imported, skipped, len(errs))
	return errors.Join(errs...)
}

type TokenCmd struct {
	User string        `arg:"" help:"Subject recorded as author or approver."`
	TTL  time.Duration `default:"8h" help:"Token lifetime."`
}

func (cmd *TokenCmd) Run(ctx *kong.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	signed, err := authtoken.Issue(authtoken.Params{
		Subject: cmd.User,
		Secret:  cfg.JWTSecret,
		Issuer:  cfg.JWTIssuer,
		TTL:     cmd.TTL,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(ctx.Stdout, signed)
	return nil
}
