package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalEntryColumns = `journal_entry_id, journal_date, memo, status, created_by, approved_by, approved_at,
	rejection_reason, version, created_at, updated_at`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entries and their lines.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.JournalDate,
		&m.Memo,
		&m.Status,
		&m.CreatedBy,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectionReason,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindJournalEntryByID retrieves an entry with all of its lines.
func (r *PgxJournalEntryRepository) FindJournalEntryByID(ctx context.Context, id int64) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+strconv.FormatInt(id, 10), err)
	}

	lines, err := r.findLines(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	entry, err := mapping.ToDomainJournalEntry(m, lines[id])
	if err != nil {
		return nil, apperrors.NewAppError(500, "stored journal entry is inconsistent", err)
	}
	return &entry, nil
}

// ListJournalEntries returns entries newest first using keyset pagination on (journal_date, id).
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE TRUE`
	args := []any{}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastDate, lastID)
		query += ` AND (journal_date, journal_entry_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY journal_date DESC, journal_entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	headers := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		newToken := pagination.EncodeToken(last.JournalDate, last.JournalEntryID)
		nextTokenVal = &newToken
		headers = headers[:limit]
	}

	ids := make([]int64, len(headers))
	for i, h := range headers {
		ids[i] = h.JournalEntryID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entry, mapErr := mapping.ToDomainJournalEntry(h, lines[h.JournalEntryID])
		if mapErr != nil {
			return nil, nil, apperrors.NewAppError(500, "stored journal entry is inconsistent", mapErr)
		}
		entries[i] = entry
	}
	return entries, nextTokenVal, nil
}

// findLines loads the lines of several entries in one query, keyed by entry ID.
func (r *PgxJournalEntryRepository) findLines(ctx context.Context, entryIDs []int64) (map[int64][]models.JournalEntryLine, error) {
	result := make(map[int64][]models.JournalEntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT journal_entry_id, line_number, account_id, debit, credit, description
		FROM journal_entry_lines
		WHERE journal_entry_id = ANY($1)
		ORDER BY journal_entry_id, line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(&l.JournalEntryID, &l.LineNumber, &l.AccountID, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry line", err)
		}
		result[l.JournalEntryID] = append(result[l.JournalEntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry lines", err)
	}
	return result, nil
}

// CountLinesByAccountID reports how many lines post to the account.
func (r *PgxJournalEntryRepository) CountLinesByAccountID(ctx context.Context, accountID int64) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entry_lines WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal lines for account "+strconv.FormatInt(accountID, 10), err)
	}
	return count, nil
}

// SaveJournalEntry inserts a new entry and its lines in one transaction.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	saved, err := r.SaveJournalEntries(ctx, []domain.JournalEntry{entry})
	if err != nil {
		return nil, err
	}
	return &saved[0], nil
}

// SaveJournalEntries inserts all entries in one transaction; either every entry is stored or none.
func (r *PgxJournalEntryRepository) SaveJournalEntries(ctx context.Context, entries []domain.JournalEntry) ([]domain.JournalEntry, error) {
	insertQuery := `
		INSERT INTO journal_entries (
			journal_date, memo, status, created_by, approved_by, approved_at,
			rejection_reason, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING journal_entry_id;
	`
	saved := make([]domain.JournalEntry, 0, len(entries))
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		for _, entry := range entries {
			header, lines := mapping.ToModelJournalEntry(entry)
			var id int64
			err := tx.QueryRow(ctx, insertQuery,
				header.JournalDate,
				header.Memo,
				header.Status,
				header.CreatedBy,
				header.ApprovedBy,
				header.ApprovedAt,
				header.RejectionReason,
				header.Version,
				header.CreatedAt,
				header.UpdatedAt,
			).Scan(&id)
			if err != nil {
				return apperrors.NewAppError(500, "failed to insert journal entry", err)
			}
			if err := insertLines(ctx, tx, id, lines); err != nil {
				return err
			}
			entry.ID = &id
			saved = append(saved, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// UpdateJournalEntry rewrites the header and line set if the stored version still matches
// entry.Version, then bumps the version.
func (r *PgxJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if entry.ID == nil {
		return nil, fmt.Errorf("%w: journal entry has not been saved", apperrors.ErrValidation)
	}
	id := *entry.ID
	header, lines := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET journal_date = $3,
		    memo = $4,
		    status = $5,
		    approved_by = $6,
		    approved_at = $7,
		    rejection_reason = $8,
		    updated_at = $9,
		    version = version + 1
		WHERE journal_entry_id = $1 AND version = $2
		RETURNING version;
	`

	var newVersion int64
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, updateQuery,
			id,
			header.Version,
			header.JournalDate,
			header.Memo,
			header.Status,
			header.ApprovedBy,
			header.ApprovedAt,
			header.RejectionReason,
			header.UpdatedAt,
		).Scan(&newVersion)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.versionConflict(ctx, tx, id, entry.Version)
			}
			return apperrors.NewAppError(500, "failed to update journal entry "+strconv.FormatInt(id, 10), err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, id); err != nil {
			return apperrors.NewAppError(500, "failed to replace journal entry lines", err)
		}
		return insertLines(ctx, tx, id, lines)
	})
	if err != nil {
		return nil, err
	}
	entry.Version = newVersion
	return &entry, nil
}

// DeleteJournalEntry removes an entry if the stored version still matches. Lines cascade.
func (r *PgxJournalEntryRepository) DeleteJournalEntry(ctx context.Context, id int64, version int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE journal_entry_id = $1 AND version = $2;`, id, version)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+strconv.FormatInt(id, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return r.versionConflict(ctx, r.Pool, id, version)
	}
	return nil
}

// versionConflict tells a missing row apart from a stale version after a conditional write matched nothing.
func (r *PgxJournalEntryRepository) versionConflict(ctx context.Context, q querier, id int64, version int64) error {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE journal_entry_id = $1);`, id).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check journal entry "+strconv.FormatInt(id, 10), err)
	}
	if !exists {
		return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, id)
	}
	return fmt.Errorf("%w: journal entry %d is no longer at version %d", apperrors.ErrConcurrentModification, id, version)
}

func insertLines(ctx context.Context, tx pgx.Tx, entryID int64, lines []models.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (journal_entry_id, line_number, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, l := range lines {
		batch.Queue(lineQuery, entryID, l.LineNumber, l.AccountID, l.Debit, l.Credit, l.Description)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, fmt.Sprintf("failed to insert journal entry line %d", lines[i].LineNumber), err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close journal line batch", err)
	}
	return nil
}
