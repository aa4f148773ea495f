// Package logging provides concrete implementations of the pgcsv.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: logrus-backed structured lines (timestamp, level, message, fields) on stderr
//   - NullLogger: Discards all messages (useful for testing)
//
// Track is a scoped timer: defer logging.Track(logger, "load")() logs how long
// the enclosing operation took.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
