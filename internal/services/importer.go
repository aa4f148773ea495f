package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/pgcsv/internal/db"
	"github.com/vvka-141/pgcsv/internal/loader"
	"github.com/vvka-141/pgcsv/internal/logging"
	"github.com/vvka-141/pgcsv/internal/normalize"
	"github.com/vvka-141/pgcsv/internal/reader"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// ConnectorFactory builds the connector for a resolved connection.
type ConnectorFactory func(*pgcsv.ConnectionConfig, db.ConnectorOptions) (pgcsv.Connector, error)

// RowSource is a BatchSource that counts the rows it skipped and
// fingerprints the bytes it read.
type RowSource interface {
	pgcsv.BatchSource
	Skipped() int
	Checksum() string
}

// SourceOpener opens the delimited source file.
type SourceOpener func(path string, opts reader.Options, logger pgcsv.Logger) (RowSource, error)

// OpenFile is the SourceOpener backed by reader.Open.
func OpenFile(path string, opts reader.Options, logger pgcsv.Logger) (RowSource, error) {
	r, err := reader.Open(path, opts, logger)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type connectFunc func(ctx context.Context, connConfig *pgcsv.ConnectionConfig, retries int, logger pgcsv.Logger) (pgcsv.DBConnection, func(), error)

// ImportService implements the Importer interface.
// Thread-Safety: NOT safe for concurrent Import() calls on the same instance.
type ImportService struct {
	connectorFactory ConnectorFactory
	openSource       SourceOpener
	tables           pgcsv.TableManager
	probe            db.Prober
	logger           pgcsv.Logger
	approver         pgcsv.Approver
	connect          connectFunc
}

// NewImportService creates a new ImportService with all dependencies injected.
// Panics on nil dependencies; runtime failures are returned as errors.
func NewImportService(
	connectorFactory ConnectorFactory,
	openSource SourceOpener,
	tables pgcsv.TableManager,
	probe db.Prober,
	logger pgcsv.Logger,
) *ImportService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if openSource == nil {
		panic("openSource cannot be nil")
	}
	if tables == nil {
		panic("tables cannot be nil")
	}
	if probe == nil {
		panic("probe cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &ImportService{
		connectorFactory: connectorFactory,
		openSource:       openSource,
		tables:           tables,
		probe:            probe,
		logger:           logger,
	}
	svc.connect = svc.defaultConnect
	return svc
}

// WithApprover makes Import ask approver before an existing table is replaced.
// Without one the table is replaced unconditionally.
func (s *ImportService) WithApprover(approver pgcsv.Approver) *ImportService {
	s.approver = approver
	return s
}

func (s *ImportService) defaultConnect(ctx context.Context, connConfig *pgcsv.ConnectionConfig, retries int, logger pgcsv.Logger) (pgcsv.DBConnection, func(), error) {
	connector, err := s.connectorFactory(connConfig, db.ConnectorOptions{Retries: retries, Logger: logger})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		closeConnector(connector)
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		closeConnector(connector)
	}
	return db.NewPoolAdapter(pool), cleanup, nil
}

// closeConnector releases connectors that hold resources beyond the pool,
// such as the Cloud SQL dialer.
func closeConnector(c pgcsv.Connector) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}

// Import runs one import: validate, open the source, connect, probe, load.
// On failure the returned result still carries what was written so far.
func (s *ImportService) Import(ctx context.Context, config pgcsv.ImportConfig) (pgcsv.ImportResult, error) {
	start := time.Now()
	result := pgcsv.ImportResult{RunID: uuid.New(), Table: config.TableName}
	logger := s.logger.WithField("run_id", result.RunID.String())

	err := s.run(ctx, config, logger, &result)
	result.Duration = time.Since(start)
	if err != nil {
		logger.WithField("kind", pgcsv.ErrorKind(err)).Error("Import failed: %v", err)
		return result, err
	}

	logger.WithField("sha256", result.SourceChecksum).
		Info("✓ Loaded %d rows into %s in %d batches (%d rows skipped)",
			result.RowsWritten, result.Table, result.Batches, result.RowsSkipped)
	return result, nil
}

func (s *ImportService) run(ctx context.Context, config pgcsv.ImportConfig, logger pgcsv.Logger, result *pgcsv.ImportResult) error {
	connConfig, err := s.validateAndParseConfig(config, logger)
	if err != nil {
		return err
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	src, err := s.openSource(config.SourcePath, reader.Options{
		Separator:  config.Separator,
		BatchSize:  config.BatchSize,
		StrictRows: config.StrictRows,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		result.RowsSkipped = src.Skipped()
		result.SourceChecksum = src.Checksum()
		_ = src.Close()
	}()

	conn, cleanup, err := s.connectAndProbe(ctx, connConfig, config.ConnectRetries, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := s.confirmReplace(ctx, conn, config.TableName, logger); err != nil {
		return err
	}

	normalizer := normalize.New(config.TimestampColumns, config.TimestampLayout, logger)
	ld := loader.New(conn, s.tables, loader.Options{
		Table:        config.TableName,
		StrictTyping: config.StrictTyping,
		Progress:     config.Progress,
	}, logger)

	stop := logging.Track(logger, "load")
	stats, err := ld.Load(ctx, normalize.Wrap(src, normalizer))
	stop()

	result.Batches = stats.Batches
	result.EmptyBatches = stats.EmptyBatches
	result.RowsWritten = stats.Rows
	if err != nil {
		return fmt.Errorf("import into %s stopped after %d rows: %w", config.TableName, stats.Rows, err)
	}
	return nil
}

// Probe connects with connConfig and runs the connection probe only.
func (s *ImportService) Probe(ctx context.Context, connConfig *pgcsv.ConnectionConfig, retries int) error {
	_, cleanup, err := s.connectAndProbe(ctx, connConfig, retries, s.logger)
	if err != nil {
		s.logger.WithField("kind", pgcsv.ErrorKind(err)).Error("Probe failed: %v", err)
		return err
	}
	cleanup()
	s.logger.Info("✓ Connection to %s:%d/%s is healthy", connConfig.Host, connConfig.Port, connConfig.Database)
	return nil
}

func (s *ImportService) connectAndProbe(ctx context.Context, connConfig *pgcsv.ConnectionConfig, retries int, logger pgcsv.Logger) (pgcsv.DBConnection, func(), error) {
	stop := logging.Track(logger, "connect")
	conn, cleanup, err := s.connect(ctx, connConfig, retries, logger)
	stop()
	if err != nil {
		if !errors.Is(err, pgcsv.ErrConnection) {
			err = fmt.Errorf("%w: %w", pgcsv.ErrConnection, err)
		}
		return nil, nil, err
	}

	if !s.probe(ctx, conn, logger) {
		cleanup()
		return nil, nil, fmt.Errorf("probe of %s:%d/%s did not succeed: %w",
			connConfig.Host, connConfig.Port, connConfig.Database, pgcsv.ErrConnection)
	}
	return conn, cleanup, nil
}

// confirmReplace asks the approver, if any, before an existing table is dropped.
func (s *ImportService) confirmReplace(ctx context.Context, conn pgcsv.DBConnection, table string, logger pgcsv.Logger) error {
	if s.approver == nil {
		return nil
	}

	exists, err := s.tables.Exists(ctx, conn, table)
	if err != nil {
		return fmt.Errorf("failed to check whether %s exists: %w", table, err)
	}
	if !exists {
		logger.Verbose("Table %s does not exist yet; no confirmation needed", table)
		return nil
	}

	approved, err := s.approver.RequestApproval(ctx, table)
	if err != nil {
		return fmt.Errorf("approval for replacing %s failed: %w", table, err)
	}
	if !approved {
		return fmt.Errorf("replacement of %s: %w", table, pgcsv.ErrApprovalDenied)
	}
	return nil
}

// validateAndParseConfig validates the configuration and parses the connection string.
func (s *ImportService) validateAndParseConfig(config pgcsv.ImportConfig, logger pgcsv.Logger) (*pgcsv.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Verbose("Source: %s (separator %q, batch size %d)", config.SourcePath, config.Separator, config.BatchSize)
	logger.Verbose("Destination table: %s (strict typing: %t)", config.TableName, config.StrictTyping)

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if connConfig.AppName == "" {
		connConfig.AppName = "pgcsv"
	}

	connConfig.AuthMethod = config.AuthMethod
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret
	connConfig.AWSRegion = config.AWSRegion
	connConfig.GoogleInstance = config.GoogleInstance

	return connConfig, nil
}
