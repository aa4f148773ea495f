package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// PoolAdapter adapts *pgxpool.Pool to the pgcsv.DBConnection interface.
// Safe for concurrent use.
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter wraps pool.
func NewPoolAdapter(pool *pgxpool.Pool) pgcsv.DBConnection {
	return &PoolAdapter{pool: pool}
}

func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

// QueryRow always returns a non-nil Row; errors surface from Scan.
func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgcsv.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Begin starts a transaction on a connection held until Commit or Rollback.
func (p *PoolAdapter) Begin(ctx context.Context) (pgcsv.Tx, error) {
	return p.pool.Begin(ctx)
}

var _ pgcsv.DBConnection = (*PoolAdapter)(nil)
