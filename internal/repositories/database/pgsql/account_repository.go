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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, code, name, account_type, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements the account repository interfaces using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts the account and its hierarchy node in one transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, structure domain.AccountStructure) (*domain.Account, error) {
	modelAcc := mapping.ToModelAccount(account)
	modelStruct := mapping.ToModelAccountStructure(structure)
	accountQuery := `
		INSERT INTO accounts (code, name, account_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;
	`
	structQuery := `
		INSERT INTO account_structures (code, path, level, parent_code, display_order)
		VALUES ($1, $2, $3, $4, $5);
	`

	var id int64
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, accountQuery,
			modelAcc.Code,
			modelAcc.Name,
			modelAcc.AccountType,
			modelAcc.CreatedAt,
			modelAcc.CreatedBy,
			modelAcc.LastUpdatedAt,
			modelAcc.LastUpdatedBy,
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, modelAcc.Code)
			}
			return apperrors.NewAppError(500, "failed to save account "+modelAcc.Code, err)
		}

		_, err = tx.Exec(ctx, structQuery,
			modelStruct.Code,
			modelStruct.Path,
			modelStruct.Level,
			modelStruct.ParentCode,
			modelStruct.DisplayOrder,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: hierarchy node for %s already exists", apperrors.ErrDuplicate, modelStruct.Code)
			}
			return apperrors.NewAppError(500, "failed to save account structure "+modelStruct.Code, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	account.ID = &id
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+strconv.FormatInt(id, 10), err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code domain.AccountCode) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+string(code), err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts. IDs that do not exist are simply absent.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, ids []int64) (map[int64]domain.Account, error) {
	result := make(map[int64]domain.Account, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	accounts, err := r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1);`, ids)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		result[*acc.ID] = acc
	}
	return result, nil
}

// FindAccountsByCodes retrieves multiple accounts. Codes that do not exist are simply absent.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []domain.AccountCode) (map[domain.AccountCode]domain.Account, error) {
	result := make(map[domain.AccountCode]domain.Account, len(codes))
	if len(codes) == 0 {
		return result, nil
	}
	raw := make([]string, len(codes))
	for i, c := range codes {
		raw[i] = string(c)
	}
	accounts, err := r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ANY($1);`, raw)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		result[acc.Code] = acc
	}
	return result, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`
	return r.queryAccounts(ctx, query, limit, offset)
}

// DeleteAccount removes the hierarchy node and the account in one transaction.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, code domain.AccountCode) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM account_structures WHERE code = $1;`, string(code)); err != nil {
			return apperrors.NewAppError(500, "failed to delete account structure "+string(code), err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE code = $1;`, string(code))
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete account "+string(code), err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		return nil
	})
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}
