package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager runs multi-statement writes atomically. fn's error aborts the
// transaction and is returned unchanged.
type TransactionManager interface {
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
