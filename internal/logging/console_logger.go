package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// TimestampFormat is the timestamp layout of every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// ConsoleLogger writes structured log lines through logrus.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	entry *logrus.Entry
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose, false)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w.
// quiet raises the threshold to warnings, which keeps the terminal free
// while a progress display owns it.
func NewConsoleLoggerWithWriter(w io.Writer, verbose, quiet bool) *ConsoleLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat:  TimestampFormat,
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	switch {
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	case quiet:
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return &ConsoleLogger{entry: logrus.NewEntry(l)}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// WithField returns a logger that adds key=value to every line.
func (l *ConsoleLogger) WithField(key string, value interface{}) pgcsv.Logger {
	return &ConsoleLogger{entry: l.entry.WithField(key, value)}
}

var _ pgcsv.Logger = (*ConsoleLogger)(nil)
