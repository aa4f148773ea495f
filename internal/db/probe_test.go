package db

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/pgcsv/internal/logging"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func probeConn(value int, err error) *mockConn {
	return &mockConn{queryRowFunc: func(ctx context.Context, sql string, args ...any) pgcsv.Row {
		return scanFunc(func(dest ...any) error {
			if err != nil {
				return err
			}
			*dest[0].(*int) = value
			return nil
		})
	}}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		conn    *mockConn
		want    bool
		logPart string
	}{
		{"healthy", probeConn(1, nil), true, ""},
		{"query fails", probeConn(0, errors.New("server closed the connection unexpectedly")), false, "probe failed"},
		{"unexpected value", probeConn(2, nil), false, "returned 2"},
		{"driver panics", &mockConn{queryRowFunc: func(context.Context, string, ...any) pgcsv.Row {
			panic("conn busy")
		}}, false, "panicked: conn busy"},
		{"scan panics", &mockConn{queryRowFunc: func(context.Context, string, ...any) pgcsv.Row {
			return scanFunc(func(...any) error { panic("nil pointer") })
		}}, false, "panicked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var got bool
			assert.NotPanics(t, func() {
				got = Probe(context.Background(), tt.conn, logging.NewConsoleLoggerWithWriter(&buf, false, false))
			})
			assert.Equal(t, tt.want, got)
			if tt.logPart != "" {
				assert.Contains(t, buf.String(), tt.logPart)
				assert.Contains(t, buf.String(), "level=error")
			}
		})
	}
}

func TestProbe_UsesProbeQuery(t *testing.T) {
	var seen string
	conn := &mockConn{queryRowFunc: func(ctx context.Context, sql string, args ...any) pgcsv.Row {
		seen = sql
		return scanFunc(func(dest ...any) error { *dest[0].(*int) = 1; return nil })
	}}

	assert.True(t, Probe(context.Background(), conn, logging.NewNullLogger()))
	assert.Equal(t, "SELECT 1", seen)
}
