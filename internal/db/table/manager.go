package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

const queryTableExists = "SELECT to_regclass($1) IS NOT NULL"

// Manager implements pgcsv.TableManager. Stateless and safe for concurrent use;
// thread safety depends on the injected DBConnection.
type Manager struct{}

// New returns a Manager.
func New() pgcsv.TableManager {
	return &Manager{}
}

// ParseName splits a possibly schema-qualified table name.
func ParseName(table string) (pgx.Identifier, error) {
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("table name %q has more than one schema qualifier: %w", table, pgcsv.ErrInvalidConfig)
	}
	ident := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("table name %q has an empty component: %w", table, pgcsv.ErrInvalidConfig)
		}
		ident = append(ident, p)
	}
	return ident, nil
}

// CreateStatement returns the CREATE TABLE statement for columns.
func CreateStatement(ident pgx.Identifier, columns []pgcsv.Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = pgx.Identifier{c.Name}.Sanitize() + " " + c.Type.SQL()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
}

// Replace drops the table if it exists, recreates it and copies rows.
func (m *Manager) Replace(ctx context.Context, conn pgcsv.DBConnection, table string, columns []pgcsv.Column, rows [][]any) (int64, error) {
	ident, err := ParseName(table)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("cannot create table %s without columns: %w", ident.Sanitize(), pgcsv.ErrLoad)
	}

	return inTx(ctx, conn, table, func(tx pgcsv.Tx) (int64, error) {
		if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
			return 0, fmt.Errorf("failed to drop table %s: %w", ident.Sanitize(), err)
		}
		if _, err := tx.Exec(ctx, CreateStatement(ident, columns)); err != nil {
			return 0, fmt.Errorf("failed to create table %s: %w", ident.Sanitize(), err)
		}
		return copyRows(ctx, tx, ident, columns, rows)
	})
}

// Append copies rows into the existing table.
func (m *Manager) Append(ctx context.Context, conn pgcsv.DBConnection, table string, columns []pgcsv.Column, rows [][]any) (int64, error) {
	ident, err := ParseName(table)
	if err != nil {
		return 0, err
	}

	return inTx(ctx, conn, table, func(tx pgcsv.Tx) (int64, error) {
		return copyRows(ctx, tx, ident, columns, rows)
	})
}

// Exists reports whether the table exists.
func (m *Manager) Exists(ctx context.Context, conn pgcsv.DBConnection, table string) (bool, error) {
	ident, err := ParseName(table)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := conn.QueryRow(ctx, queryTableExists, ident.Sanitize()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// Count returns the number of rows in the table.
func (m *Manager) Count(ctx context.Context, conn pgcsv.DBConnection, table string) (int64, error) {
	ident, err := ParseName(table)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := conn.QueryRow(ctx, "SELECT count(*) FROM "+ident.Sanitize()).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", ident.Sanitize(), err)
	}
	return n, nil
}

// inTx runs fn in a transaction. Any failure rolls back and is wrapped with pgcsv.ErrLoad.
func inTx(ctx context.Context, conn pgcsv.DBConnection, table string, fn func(tx pgcsv.Tx) (int64, error)) (int64, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("table %s: failed to begin transaction: %w: %w", table, pgcsv.ErrLoad, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n, err := fn(tx)
	if err != nil {
		return 0, fmt.Errorf("table %s: %w: %w", table, pgcsv.ErrLoad, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("table %s: failed to commit: %w: %w", table, pgcsv.ErrLoad, err)
	}
	return n, nil
}

func copyRows(ctx context.Context, tx pgcsv.Tx, ident pgx.Identifier, columns []pgcsv.Column, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	n, err := tx.CopyFrom(ctx, ident, names, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy %d rows into %s: %w", len(rows), ident.Sanitize(), err)
	}
	return n, nil
}

var _ pgcsv.TableManager = (*Manager)(nil)
