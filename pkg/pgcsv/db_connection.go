package pgcsv

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBConnection abstracts the database operations the loader and probe need.
// This interface decouples the pipeline from *pgxpool.Pool so it can be
// exercised without a server.
type DBConnection interface {
	// Exec executes a query without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Always returns a non-nil Row. Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)
}

// Row represents a single row returned by QueryRow.
type Row interface {
	// Scan reads the values from the row into dest values.
	Scan(dest ...any) error
}

// Tx is the subset of pgx.Tx used for table replacement and appends.
// pgx.Tx satisfies it directly.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TableManager performs the destination table operations.
// Implementations are stateless; the loader owns the FIRST/APPENDING decision.
type TableManager interface {
	// Replace drops the table if present, recreates it with columns and writes rows.
	Replace(ctx context.Context, conn DBConnection, table string, columns []Column, rows [][]any) (int64, error)

	// Append writes rows into the existing table.
	Append(ctx context.Context, conn DBConnection, table string, columns []Column, rows [][]any) (int64, error)

	// Exists reports whether the table exists.
	Exists(ctx context.Context, conn DBConnection, table string) (bool, error)

	// Count returns the number of rows in the table.
	Count(ctx context.Context, conn DBConnection, table string) (int64, error)
}
