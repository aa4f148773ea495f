package pgcsv

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Import completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Database unreachable or probe failed
	ExitIOError         = 12 // Source file missing or unreadable
	ExitFormatError     = 13 // Row could not be tokenized
	ExitSchemaError     = 14 // Expected column missing
	ExitLoadError       = 15 // Write into the destination table failed
	ExitApprovalDenied  = 16 // User declined replacing the existing table
)

const (
	// DefaultBatchSize is the number of data rows per batch.
	DefaultBatchSize = 10000

	// DefaultSeparator is the field delimiter of the flight-schedule export.
	DefaultSeparator = ';'

	// DefaultTableName is the destination relation.
	DefaultTableName = "voos"

	// DefaultTimestampLayout parses day/month/year hour:minute values.
	DefaultTimestampLayout = "2/1/2006 15:04"

	// TextTimestampLayout renders timestamps when every column is widened to text.
	TextTimestampLayout = "2006-01-02 15:04:05"

	// DefaultRetryInitialDelay is the default initial delay before the first connection retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection retries.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default number of connection retries.
	// Batch writes are never retried.
	DefaultRetryMaxAttempts = 3

	// DefaultForceApprovalCountdown is the countdown before a forced replacement proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// ProbeQuery is the round-trip query used to confirm liveness.
	ProbeQuery = "SELECT 1"
)

// DefaultTimestampColumns returns the scheduled/actual departure and arrival columns.
func DefaultTimestampColumns() []string {
	return []string{
		"Partida Prevista",
		"Partida Real",
		"Chegada Prevista",
		"Chegada Real",
	}
}
