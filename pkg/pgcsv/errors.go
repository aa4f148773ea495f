package pgcsv

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure kinds of an import run.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	_, err := importer.Import(ctx, config)
//	if errors.Is(err, pgcsv.ErrSchema) {
//	    // a required column is missing from the source header
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIO indicates the source file is missing or unreadable.
	ErrIO = errors.New("source I/O error")

	// ErrFormat indicates a row or header could not be tokenized.
	ErrFormat = errors.New("format error")

	// ErrSchema indicates an expected column is missing or a header is malformed.
	ErrSchema = errors.New("schema error")

	// ErrConnection indicates the database is unreachable or failed the probe.
	ErrConnection = errors.New("connection failed")

	// ErrLoad indicates a write into the destination table failed.
	ErrLoad = errors.New("load failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrApprovalDenied indicates the user declined replacing an existing table.
	ErrApprovalDenied = errors.New("table replacement denied")

	// ErrSourceClosed is returned by a BatchSource used after Close.
	ErrSourceClosed = errors.New("batch source closed")
)

// usageErrorPrefixes are the message prefixes cobra uses for argument and flag errors.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"accepts at most",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ErrorKind returns the taxonomy name of err for log fields.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return "ConfigError"
	case errors.Is(err, ErrIO):
		return "IOError"
	case errors.Is(err, ErrFormat):
		return "FormatError"
	case errors.Is(err, ErrSchema):
		return "SchemaError"
	case errors.Is(err, ErrConnection):
		return "ConnectionError"
	case errors.Is(err, ErrLoad):
		return "LoadError"
	case errors.Is(err, ErrApprovalDenied):
		return "ApprovalDenied"
	default:
		return "Error"
	}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnection):
		return ExitConnectionError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, ErrFormat):
		return ExitFormatError
	case errors.Is(err, ErrSchema):
		return ExitSchemaError
	case errors.Is(err, ErrLoad):
		return ExitLoadError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
