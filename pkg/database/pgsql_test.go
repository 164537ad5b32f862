package database_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPgxPool_RejectsBadURL(t *testing.T) {
	_, err := database.NewPgxPool(context.Background(), database.PoolOptions{})
	assert.ErrorContains(t, err, "cannot be empty")

	_, err = database.NewPgxPool(context.Background(), database.PoolOptions{URL: "postgres://%zz"})
	assert.ErrorContains(t, err, "failed to parse database config")
}

func TestNewPgxPool_LazyWithoutPing(t *testing.T) {
	pool, err := database.NewPgxPool(context.Background(), database.PoolOptions{
		URL:      "postgres://ledger@127.0.0.1:1/ledger",
		MaxConns: 3,
	})
	require.NoError(t, err)
	defer pool.Close()
	assert.Equal(t, int32(3), pool.Config().MaxConns)
}
