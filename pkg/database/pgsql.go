package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultConnectTimeout = 5 * time.Second

// PoolOptions configures NewPgxPool. Zero values keep pgx defaults.
type PoolOptions struct {
	URL      string
	MaxConns int32
	// Ping verifies connectivity before the pool is returned.
	Ping bool
}

// NewPgxPool creates a PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, opts PoolOptions) (*pgxpool.Pool, error) {
	if opts.URL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	cfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	cfg.ConnConfig.ConnectTimeout = defaultConnectTimeout
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if opts.Ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		slog.Info("Connected to PostgreSQL", slog.String("host", cfg.ConnConfig.Host), slog.Int("max_conns", int(cfg.MaxConns)))
	}
	return pool, nil
}
