package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgcsv/internal/retry"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Pool sizing for a sequential loader: one connection writes, one spare
// serves the probe and row counts.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 30 * time.Minute
)

// ConnectorOptions configures connection establishment.
type ConnectorOptions struct {
	// Retries is the number of extra attempts after a transient failure.
	Retries int

	// Logger receives retry warnings and server notices. Optional.
	Logger pgcsv.Logger
}

func (o ConnectorOptions) executor() *retry.Executor {
	return retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), retry.DefaultBackoff(o.Retries), o.Logger)
}

func configurePool(poolConfig *pgxpool.Config, logger pgcsv.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	if logger != nil {
		poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
			logger.Verbose("server %s: %s", strings.ToLower(notice.Severity), notice.Message)
		}
	}
}

// openPool creates and pings a pool. Errors are wrapped with pgcsv.ErrConnection.
func openPool(ctx context.Context, connStr string, config *pgcsv.ConnectionConfig, logger pgcsv.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", pgcsv.ErrInvalidConfig, err)
	}
	configurePool(poolConfig, logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, config.Host, config.Port, config.Database)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, config.Host, config.Port, config.Database)
	}
	return pool, nil
}

// StandardConnector connects with username/password credentials and retries
// transient failures.
type StandardConnector struct {
	config        *pgcsv.ConnectionConfig
	logger        pgcsv.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector returns a StandardConnector for config.
func NewStandardConnector(config *pgcsv.ConnectionConfig, opts ConnectorOptions) *StandardConnector {
	return &StandardConnector{
		config:        config,
		logger:        opts.Logger,
		retryExecutor: opts.executor(),
	}
}

// Connect opens and pings a pool.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		var err error
		pool, err = openPool(ctx, connStr, c.config, c.logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// NewConnector returns the Connector matching config.AuthMethod.
func NewConnector(config *pgcsv.ConnectionConfig, opts ConnectorOptions) (pgcsv.Connector, error) {
	switch config.AuthMethod {
	case pgcsv.AuthMethodStandard:
		return NewStandardConnector(config, opts), nil
	case pgcsv.AuthMethodAWSIAM:
		return newAWSConnector(config, opts)
	case pgcsv.AuthMethodGoogleIAM:
		return newGoogleConnector(config, opts)
	case pgcsv.AuthMethodAzureEntraID:
		return newAzureConnector(config, opts)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, pgcsv.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError adds actionable guidance to a raw pgx connection error
// and marks it as a connection failure.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var hint string
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		hint = fmt.Sprintf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection`, addr, host, port)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		hint = fmt.Sprintf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable`, host)

	case strings.Contains(errStr, "password authentication failed"):
		hint = fmt.Sprintf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username
  - User does not have access to the database`, database)

	case strings.Contains(errStr, "does not exist"):
		hint = fmt.Sprintf(`database "%s" does not exist

To create it:
  createdb %s`, database, database)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		hint = fmt.Sprintf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)`, addr)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		hint = `SSL/TLS connection error

Possible causes:
  - Server requires SSL but --sslmode is wrong
  - Certificate verification failed (try --sslmode=require)`

	case strings.Contains(errStr, "too many connections"):
		hint = fmt.Sprintf(`too many connections to database "%s"

Possible causes:
  - max_connections limit reached in postgresql.conf
  - Stale sessions from earlier runs`, database)

	default:
		return fmt.Errorf("failed to connect to database: %w: %w", pgcsv.ErrConnection, err)
	}

	return fmt.Errorf("%s\n\nOriginal error: %w: %w", hint, pgcsv.ErrConnection, err)
}

func newAWSConnector(config *pgcsv.ConnectionConfig, opts ConnectorOptions) (pgcsv.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", opts), nil
}

func newGoogleConnector(config *pgcsv.ConnectionConfig, opts ConnectorOptions) (pgcsv.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", pgcsv.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-U): %w", pgcsv.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance, opts), nil
}

// newAzureConnector uses Service Principal credentials when all three are set,
// otherwise the DefaultAzureCredential chain.
func newAzureConnector(config *pgcsv.ConnectionConfig, opts ConnectorOptions) (pgcsv.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", opts), nil
}
