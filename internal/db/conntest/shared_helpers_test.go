//go:build conntest || azure

package conntest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgcsv/internal/db"
	"github.com/vvka-141/pgcsv/internal/db/table"
	"github.com/vvka-141/pgcsv/internal/logging"
	"github.com/vvka-141/pgcsv/internal/services"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func connectWithConfig(t *testing.T, config *pgcsv.ConnectionConfig) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	connector, err := db.NewConnector(config, db.ConnectorOptions{})
	if err != nil {
		t.Fatalf("create connector: %v", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func pingSucceeds(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func queryVersion(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var version string
	if err := pool.QueryRow(context.Background(), "SELECT version()").Scan(&version); err != nil {
		t.Fatalf("query version: %v", err)
	}
	return version
}

func newTestImporter() *services.ImportService {
	return services.NewImportService(db.NewConnector, services.OpenFile, table.New(), db.Probe, logging.NewNullLogger())
}

// writeFlightFile writes a small ';'-separated flight schedule with rows data rows.
func writeFlightFile(t *testing.T, rows int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("Voo;Empresa;Partida Prevista;Partida Real;Chegada Prevista;Chegada Real\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&sb, "%d;AZU;01/02/2024 10:05;01/02/2024 10:07;01/02/2024 11:30;31/02/2024 99:99\n", i)
	}
	path := filepath.Join(t.TempDir(), "voos.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func importConfig(source, connStr, tableName string) pgcsv.ImportConfig {
	return pgcsv.ImportConfig{
		SourcePath:       source,
		Separator:        pgcsv.DefaultSeparator,
		BatchSize:        2,
		ConnectionString: connStr,
		TableName:        tableName,
		StrictTyping:     true,
		TimestampColumns: pgcsv.DefaultTimestampColumns(),
		TimestampLayout:  pgcsv.DefaultTimestampLayout,
	}
}

func dropTable(t *testing.T, pool *pgxpool.Pool, name string) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+pgx.Identifier{name}.Sanitize()); err != nil {
		t.Logf("cleanup: failed to drop %s: %v", name, err)
	}
}
