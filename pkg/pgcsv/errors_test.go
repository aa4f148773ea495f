package pgcsv_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, pgcsv.ExitSuccess},
		{"general error", errors.New("something went wrong"), pgcsv.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag: --foo"), pgcsv.ExitUsageError},
		{"accepts args", errors.New("accepts at most 1 arg(s), received 2"), pgcsv.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--batch-size\""), pgcsv.ExitUsageError},
		{"config", fmt.Errorf("BatchSize: %w", pgcsv.ErrInvalidConfig), pgcsv.ExitConfigError},
		{"auth method", fmt.Errorf("x: %w", pgcsv.ErrUnsupportedAuthMethod), pgcsv.ExitConfigError},
		{"connection", fmt.Errorf("probe: %w", pgcsv.ErrConnection), pgcsv.ExitConnectionError},
		{"io", fmt.Errorf("open: %w", pgcsv.ErrIO), pgcsv.ExitIOError},
		{"format", fmt.Errorf("line 3: %w", pgcsv.ErrFormat), pgcsv.ExitFormatError},
		{"schema", fmt.Errorf("missing column: %w", pgcsv.ErrSchema), pgcsv.ExitSchemaError},
		{"load", fmt.Errorf("copy: %w", pgcsv.ErrLoad), pgcsv.ExitLoadError},
		{"approval denied", fmt.Errorf("table voos: %w", pgcsv.ErrApprovalDenied), pgcsv.ExitApprovalDenied},
		{"connection refused text", errors.New("dial tcp: connection refused"), pgcsv.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgcsv.ExitCodeForError(tt.err))
		})
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", pgcsv.ErrorKind(nil))
	assert.Equal(t, "IOError", pgcsv.ErrorKind(fmt.Errorf("x: %w", pgcsv.ErrIO)))
	assert.Equal(t, "FormatError", pgcsv.ErrorKind(fmt.Errorf("x: %w", pgcsv.ErrFormat)))
	assert.Equal(t, "SchemaError", pgcsv.ErrorKind(fmt.Errorf("x: %w", pgcsv.ErrSchema)))
	assert.Equal(t, "ConnectionError", pgcsv.ErrorKind(fmt.Errorf("x: %w", pgcsv.ErrConnection)))
	assert.Equal(t, "LoadError", pgcsv.ErrorKind(fmt.Errorf("x: %w", pgcsv.ErrLoad)))
	assert.Equal(t, "ConfigError", pgcsv.ErrorKind(pgcsv.ErrInvalidConfig))
	assert.Equal(t, "ApprovalDenied", pgcsv.ErrorKind(pgcsv.ErrApprovalDenied))
	assert.Equal(t, "Error", pgcsv.ErrorKind(errors.New("boom")))
}
