package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExecutionLogRepository only ever inserts and reads; logs are append-only.
type PgxExecutionLogRepository struct {
	BaseRepository
}

func newPgxExecutionLogRepository(pool *pgxpool.Pool) portsrepo.ExecutionLogRepositoryFacade {
	return &PgxExecutionLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExecutionLogRepositoryFacade = (*PgxExecutionLogRepository)(nil)

func (r *PgxExecutionLogRepository) AppendLog(ctx context.Context, log domain.AutoJournalExecutionLog) (*domain.AutoJournalExecutionLog, error) {
	m := mapping.ToModelExecutionLog(log)
	query := `
		INSERT INTO auto_journal_execution_logs (
			pattern_id, executed_at, processed_count, generated_count, status, message, error_detail, executed_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING log_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.PatternID,
		m.ExecutedAt,
		m.ProcessedCount,
		m.GeneratedCount,
		m.Status,
		m.Message,
		m.ErrorDetail,
		m.ExecutedBy,
	).Scan(&m.LogID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to append execution log for pattern "+strconv.FormatInt(m.PatternID, 10), err)
	}
	stored := mapping.ToDomainExecutionLog(m)
	return &stored, nil
}

func (r *PgxExecutionLogRepository) ListLogsByPattern(ctx context.Context, patternID int64, limit int) ([]domain.AutoJournalExecutionLog, error) {
	query := `
		SELECT log_id, pattern_id, executed_at, processed_count, generated_count, status, message, error_detail, executed_by
		FROM auto_journal_execution_logs
		WHERE pattern_id = $1
		ORDER BY executed_at DESC, log_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, patternID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query execution logs", err)
	}
	defer rows.Close()

	logs := []domain.AutoJournalExecutionLog{}
	for rows.Next() {
		var m models.AutoJournalExecutionLog
		if err := rows.Scan(
			&m.LogID,
			&m.PatternID,
			&m.ExecutedAt,
			&m.ProcessedCount,
			&m.GeneratedCount,
			&m.Status,
			&m.Message,
			&m.ErrorDetail,
			&m.ExecutedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan execution log row", err)
		}
		logs = append(logs, mapping.ToDomainExecutionLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating execution log rows", err)
	}
	return logs, nil
}
