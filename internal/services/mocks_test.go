package services

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgcsv/internal/db"
	"github.com/vvka-141/pgcsv/internal/logging"
	"github.com/vvka-141/pgcsv/internal/reader"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockConn struct{}

func (mockConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (mockConn) QueryRow(context.Context, string, ...any) pgcsv.Row { return nil }
func (mockConn) Begin(context.Context) (pgcsv.Tx, error)             { return nil, errors.New("not supported") }

// mockSource yields fixed batches and then an optional error.
type mockSource struct {
	batches []*pgcsv.Batch
	err     error
	skipped int
	sum     string
	next    int
	closed  bool
}

func (m *mockSource) Next(context.Context) (*pgcsv.Batch, error) {
	if m.next < len(m.batches) {
		b := m.batches[m.next]
		m.next++
		return b, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return nil, io.EOF
}

func (m *mockSource) Close() error { m.closed = true; return nil }

func (m *mockSource) Skipped() int { return m.skipped }

func (m *mockSource) Checksum() string { return m.sum }

type mockTables struct {
	replaced int
	appended int
	rows     int64
	err      error
	exists   bool
}

func (m *mockTables) Replace(_ context.Context, _ pgcsv.DBConnection, _ string, _ []pgcsv.Column, rows [][]any) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.replaced++
	m.rows = int64(len(rows))
	return int64(len(rows)), nil
}

func (m *mockTables) Append(_ context.Context, _ pgcsv.DBConnection, _ string, _ []pgcsv.Column, rows [][]any) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.appended++
	m.rows += int64(len(rows))
	return int64(len(rows)), nil
}

func (m *mockTables) Exists(context.Context, pgcsv.DBConnection, string) (bool, error) {
	return m.exists || m.replaced > 0, nil
}

func (m *mockTables) Count(context.Context, pgcsv.DBConnection, string) (int64, error) {
	return m.rows, nil
}

func (m *mockTables) writes() int { return m.replaced + m.appended }

type mockApprover struct {
	approve bool
	err     error
	asked   []string
}

func (m *mockApprover) RequestApproval(_ context.Context, table string) (bool, error) {
	m.asked = append(m.asked, table)
	return m.approve, m.err
}

func connectorFactory(c pgcsv.Connector, err error) ConnectorFactory {
	return func(*pgcsv.ConnectionConfig, db.ConnectorOptions) (pgcsv.Connector, error) {
		return c, err
	}
}

func sourceOpener(src *mockSource, err error) SourceOpener {
	return func(string, reader.Options, pgcsv.Logger) (RowSource, error) {
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

func prober(ok bool) db.Prober {
	return func(context.Context, pgcsv.DBConnection, pgcsv.Logger) bool { return ok }
}

var nullLogger = logging.NewNullLogger()
