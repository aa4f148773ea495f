package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// mockConn is a test double for pgcsv.DBConnection.
type mockConn struct {
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgcsv.Row
}

func (m *mockConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockConn) QueryRow(ctx context.Context, sql string, args ...any) pgcsv.Row {
	return m.queryRowFunc(ctx, sql, args...)
}

func (m *mockConn) Begin(ctx context.Context) (pgcsv.Tx, error) {
	return nil, errors.New("not supported")
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

// mockTokenProvider is a test double for TokenProvider.
type mockTokenProvider struct {
	token     string
	expiresIn time.Duration
	calls     int
	err       error
}

func (m *mockTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	m.calls++
	if m.err != nil {
		return "", time.Time{}, m.err
	}
	return m.token, time.Now().Add(m.expiresIn), nil
}

func (m *mockTokenProvider) String() string { return "mockTokenProvider" }
