package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const patternColumns = `pattern_id, code, name, source_table, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAutoJournalPatternRepository struct {
	BaseRepository
}

func newPgxAutoJournalPatternRepository(pool *pgxpool.Pool) portsrepo.AutoJournalPatternRepositoryFacade {
	return &PgxAutoJournalPatternRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AutoJournalPatternRepositoryFacade = (*PgxAutoJournalPatternRepository)(nil)

func scanPattern(row pgx.Row) (models.AutoJournalPattern, error) {
	var m models.AutoJournalPattern
	err := row.Scan(
		&m.PatternID,
		&m.Code,
		&m.Name,
		&m.SourceTable,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePattern inserts the pattern header and its items in one transaction.
func (r *PgxAutoJournalPatternRepository) SavePattern(ctx context.Context, pattern domain.AutoJournalPattern) (*domain.AutoJournalPattern, error) {
	header, items := mapping.ToModelAutoJournalPattern(pattern)
	query := `
		INSERT INTO auto_journal_patterns (
			code, name, source_table, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING pattern_id;
	`
	itemQuery := `
		INSERT INTO auto_journal_pattern_items (pattern_id, line_number, side, account_code, amount_formula, description_template)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	var id int64
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			header.Code,
			header.Name,
			header.SourceTable,
			header.Description,
			header.IsActive,
			header.CreatedAt,
			header.CreatedBy,
			header.LastUpdatedAt,
			header.LastUpdatedBy,
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: pattern with code %s already exists", apperrors.ErrDuplicate, header.Code)
			}
			return apperrors.NewAppError(500, "failed to save pattern "+header.Code, err)
		}

		batch := &pgx.Batch{}
		for _, it := range items {
			batch.Queue(itemQuery, id, it.LineNumber, it.Side, it.AccountCode, it.AmountFormula, it.DescriptionTemplate)
		}
		br := tx.SendBatch(ctx, batch)
		for range items {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return apperrors.NewAppError(500, "failed to insert pattern item", err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close pattern item batch", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	pattern.ID = &id
	return &pattern, nil
}

func (r *PgxAutoJournalPatternRepository) FindPatternByID(ctx context.Context, id int64) (*domain.AutoJournalPattern, error) {
	query := `SELECT ` + patternColumns + ` FROM auto_journal_patterns WHERE pattern_id = $1;`
	return r.findOne(ctx, query, id, "pattern "+strconv.FormatInt(id, 10))
}

func (r *PgxAutoJournalPatternRepository) FindPatternByCode(ctx context.Context, code string) (*domain.AutoJournalPattern, error) {
	query := `SELECT ` + patternColumns + ` FROM auto_journal_patterns WHERE code = $1;`
	return r.findOne(ctx, query, code, "pattern "+code)
}

func (r *PgxAutoJournalPatternRepository) findOne(ctx context.Context, query string, key any, label string) (*domain.AutoJournalPattern, error) {
	m, err := scanPattern(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, label)
		}
		return nil, apperrors.NewAppError(500, "failed to find "+label, err)
	}
	items, err := r.findItems(ctx, []int64{m.PatternID})
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainAutoJournalPattern(m, items[m.PatternID])
	return &p, nil
}

// ListPatterns returns patterns ordered by code, optionally restricted to active ones.
func (r *PgxAutoJournalPatternRepository) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	query := `SELECT ` + patternColumns + ` FROM auto_journal_patterns`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query patterns", err)
	}
	defer rows.Close()

	var headers []models.AutoJournalPattern
	for rows.Next() {
		m, err := scanPattern(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pattern row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pattern rows", err)
	}

	ids := make([]int64, len(headers))
	for i, h := range headers {
		ids[i] = h.PatternID
	}
	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	patterns := make([]domain.AutoJournalPattern, len(headers))
	for i, h := range headers {
		patterns[i] = mapping.ToDomainAutoJournalPattern(h, items[h.PatternID])
	}
	return patterns, nil
}

func (r *PgxAutoJournalPatternRepository) findItems(ctx context.Context, patternIDs []int64) (map[int64][]models.AutoJournalPatternItem, error) {
	result := make(map[int64][]models.AutoJournalPatternItem, len(patternIDs))
	if len(patternIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT pattern_id, line_number, side, account_code, amount_formula, description_template
		FROM auto_journal_pattern_items
		WHERE pattern_id = ANY($1)
		ORDER BY pattern_id, line_number;
	`
	rows, err := r.Pool.Query(ctx, query, patternIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pattern items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.AutoJournalPatternItem
		if err := rows.Scan(&it.PatternID, &it.LineNumber, &it.Side, &it.AccountCode, &it.AmountFormula, &it.DescriptionTemplate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pattern item", err)
		}
		result[it.PatternID] = append(result[it.PatternID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pattern items", err)
	}
	return result, nil
}

func (r *PgxAutoJournalPatternRepository) SetPatternActive(ctx context.Context, id int64, active bool, userID string, now time.Time) error {
	query := `
		UPDATE auto_journal_patterns
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE pattern_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, id, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update pattern "+strconv.FormatInt(id, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pattern %d", apperrors.ErrNotFound, id)
	}
	return nil
}
