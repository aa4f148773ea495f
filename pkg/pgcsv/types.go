package pgcsv

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportConfig contains all parameters needed for one import run.
type ImportConfig struct {
	// SourcePath is the delimited file to read.
	SourcePath string

	// Separator is the field delimiter.
	Separator rune

	// BatchSize is the number of data rows per batch.
	BatchSize int

	// ConnectionString is the PostgreSQL connection string (URI or ADO.NET format).
	ConnectionString string

	// TableName is the destination relation, optionally schema-qualified.
	TableName string

	// StrictTyping keeps inferred column types. When false every column is loaded as text.
	StrictTyping bool

	// StrictRows aborts on a malformed row. When false the row is skipped with a warning.
	StrictRows bool

	// TimestampColumns are parsed with TimestampLayout; unparseable values become NULL.
	TimestampColumns []string

	// TimestampLayout is a Go reference-time layout.
	TimestampLayout string

	// ConfirmReplace asks for approval before an existing table is dropped.
	// It takes effect through the Approver the caller installs.
	ConfirmReplace bool

	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration

	// ConnectRetries is the number of retries for transient connection failures.
	ConnectRetries int

	// Verbose enables detailed logging
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Cloud authentication parameters, used according to AuthMethod.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	AWSRegion         string
	GoogleInstance    string

	// Progress, if set, is called after every written batch.
	Progress ProgressFunc
}

// Validate checks if the ImportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ImportConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.TableName == "" {
		errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
	}

	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("BatchSize must be a positive integer, got %d: %w", c.BatchSize, ErrInvalidConfig))
	}

	switch c.Separator {
	case 0, '\r', '\n', '"':
		errs = append(errs, fmt.Errorf("separator %q is not a valid field delimiter: %w", c.Separator, ErrInvalidConfig))
	}

	if len(c.TimestampColumns) > 0 && c.TimestampLayout == "" {
		errs = append(errs, fmt.Errorf("TimestampLayout is required when timestamp columns are set: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if c.ConnectRetries < 0 {
		errs = append(errs, fmt.Errorf("connect retries cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ImportResult summarizes a successful run.
type ImportResult struct {
	RunID        uuid.UUID
	Table        string
	Batches      int
	EmptyBatches int
	RowsWritten  int64
	RowsSkipped  int
	Duration     time.Duration

	// SourceChecksum is the hex SHA-256 of the source file, set only when
	// the file was read to the end.
	SourceChecksum string
}

// BatchReport describes one written batch.
type BatchReport struct {
	Index    int
	Rows     int
	Total    int64
	Replaced bool
}

// ProgressFunc receives a report after every written batch.
type ProgressFunc func(BatchReport)

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	AWSRegion         string
	GoogleInstance    string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps a config file spelling to an AuthMethod.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}
