package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const structureColumns = `code, path, level, parent_code, display_order`

// PgxAccountStructureRepository stores the chart-of-accounts tree as materialized paths.
type PgxAccountStructureRepository struct {
	BaseRepository
}

func newPgxAccountStructureRepository(pool *pgxpool.Pool) portsrepo.AccountStructureRepositoryFacade {
	return &PgxAccountStructureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountStructureRepositoryFacade = (*PgxAccountStructureRepository)(nil)

func scanStructure(row pgx.Row) (models.AccountStructure, error) {
	var m models.AccountStructure
	err := row.Scan(&m.Code, &m.Path, &m.Level, &m.ParentCode, &m.DisplayOrder)
	return m, err
}

func (r *PgxAccountStructureRepository) FindStructureByCode(ctx context.Context, code domain.AccountCode) (*domain.AccountStructure, error) {
	query := `SELECT ` + structureColumns + ` FROM account_structures WHERE code = $1;`
	m, err := scanStructure(r.Pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: hierarchy node %s", apperrors.ErrNotFound, code)
		}
		return nil, apperrors.NewAppError(500, "failed to find hierarchy node "+string(code), err)
	}
	s := mapping.ToDomainAccountStructure(m)
	return &s, nil
}

// ListSubtree returns root and all of its descendants. Ordering by path puts every
// ancestor before its descendants.
func (r *PgxAccountStructureRepository) ListSubtree(ctx context.Context, root domain.AccountStructure) ([]domain.AccountStructure, error) {
	query := `
		SELECT ` + structureColumns + `
		FROM account_structures
		WHERE path = $1 OR path LIKE $2
		ORDER BY path, display_order;
	`
	rows, err := r.Pool.Query(ctx, query, root.Path, root.Path+domain.PathDelimiter+"%")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query subtree of "+string(root.Code), err)
	}
	defer rows.Close()

	nodes := []domain.AccountStructure{}
	for rows.Next() {
		m, err := scanStructure(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan hierarchy node", err)
		}
		nodes = append(nodes, mapping.ToDomainAccountStructure(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating hierarchy rows", err)
	}
	return nodes, nil
}

func (r *PgxAccountStructureRepository) CountChildren(ctx context.Context, code domain.AccountCode) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM account_structures WHERE parent_code = $1;`, string(code)).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count children of "+string(code), err)
	}
	return count, nil
}

func (r *PgxAccountStructureRepository) UpdateDisplayOrder(ctx context.Context, code domain.AccountCode, displayOrder int) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE account_structures SET display_order = $2 WHERE code = $1;`, string(code), displayOrder)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update display order of "+string(code), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: hierarchy node %s", apperrors.ErrNotFound, code)
	}
	return nil
}
