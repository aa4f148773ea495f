package pgcsv

// Logger provides a pluggable logging interface for pgcsv operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs recoverable problems, such as a skipped row.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})

	// WithField returns a logger that attaches key=value to every line.
	WithField(key string, value interface{}) Logger
}
