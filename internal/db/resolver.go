package db

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/pgcsv/internal/config"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// GranularConnFlags holds connection parameters given as individual CLI flags
// (-h, -p, -U, -d, --sslmode). Passwords come from $PGPASSWORD, .pgpass or a
// connection string, never from a flag.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no granular flag was provided.
// Database is excluded: it may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags selects a cloud authentication method and its parameters.
// The Azure client secret is read from $AZURE_CLIENT_SECRET only.
type CloudFlags struct {
	Azure         bool
	AzureTenantID string
	AzureClientID string

	AWS       bool
	AWSRegion string

	Google         bool
	GoogleInstance string
}

func (c *CloudFlags) selected() []pgcsv.AuthMethod {
	var methods []pgcsv.AuthMethod
	if c.Azure {
		methods = append(methods, pgcsv.AuthMethodAzureEntraID)
	}
	if c.AWS {
		methods = append(methods, pgcsv.AuthMethodAWSIAM)
	}
	if c.Google {
		methods = append(methods, pgcsv.AuthMethodGoogleIAM)
	}
	return methods
}

// EnvVars holds the environment variables that take part in connection resolution.
// See https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGCSV_CONNECTION_STRING string
	DATABASE_URL            string

	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
	AWS_REGION          string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGCSV_CONNECTION_STRING: os.Getenv("PGCSV_CONNECTION_STRING"),
		DATABASE_URL:            os.Getenv("DATABASE_URL"),
		PGHOST:                  os.Getenv("PGHOST"),
		PGPORT:                  os.Getenv("PGPORT"),
		PGUSER:                  os.Getenv("PGUSER"),
		PGPASSWORD:              os.Getenv("PGPASSWORD"),
		PGDATABASE:              os.Getenv("PGDATABASE"),
		PGSSLMODE:               os.Getenv("PGSSLMODE"),
		AZURE_TENANT_ID:         os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:         os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:     os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:              os.Getenv("AWS_REGION"),
	}
}

// ResolveConnectionParams resolves the connection with precedence
// flag > environment > pgcsv.yaml > default.
//
// A connection string is taken from --connection, then $PGCSV_CONNECTION_STRING,
// then $DATABASE_URL, then connection_string in pgcsv.yaml. Environment and file
// connection strings are ignored when granular flags are given. Giving both
// --connection and granular flags is an error.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*pgcsv.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}
	if projectConfig == nil {
		projectConfig = &config.ProjectConfig{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf("cannot specify both --connection and granular flags (-h, -p, -U, --sslmode): %w",
			pgcsv.ErrInvalidConfig)
	}

	connStr := connStringFlag
	if connStr == "" && granularFlags.IsEmpty() {
		connStr = firstNonEmpty(envVars.PGCSV_CONNECTION_STRING, envVars.DATABASE_URL, projectConfig.ConnectionString)
	}

	var cfg *pgcsv.ConnectionConfig
	var err error
	if connStr != "" {
		cfg, err = resolveFromConnectionString(connStr, granularFlags, envVars)
	} else {
		cfg, err = resolveFromGranularParams(granularFlags, envVars, &projectConfig.Connection)
	}
	if err != nil {
		return nil, err
	}

	if err := applyAuth(cfg, cloudFlags, envVars, &projectConfig.Connection); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveFromConnectionString(connStr string, flags *GranularConnFlags, envVars *EnvVars) (*pgcsv.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}
	return cfg, nil
}

func resolveFromGranularParams(flags *GranularConnFlags, envVars *EnvVars, pc *config.ConnectionConfig) (*pgcsv.ConnectionConfig, error) {
	cfg := &pgcsv.ConnectionConfig{
		AuthMethod:       pgcsv.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, "localhost")

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer: %w", envVars.PGPORT, pgcsv.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = 5432
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, pc.Database, "postgres")
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer")

	for key, value := range map[string]string{
		"sslcert":     pc.SSLCert,
		"sslkey":      pc.SSLKey,
		"sslrootcert": pc.SSLRootCert,
	} {
		if value != "" {
			cfg.AdditionalParams[key] = value
		}
	}

	return cfg, nil
}

// applyAuth selects the authentication method and attaches its parameters.
func applyAuth(cfg *pgcsv.ConnectionConfig, flags *CloudFlags, env *EnvVars, pc *config.ConnectionConfig) error {
	selected := flags.selected()
	switch {
	case len(selected) > 1:
		return fmt.Errorf("choose at most one of --azure, --aws, --google: %w", pgcsv.ErrInvalidConfig)
	case len(selected) == 1:
		cfg.AuthMethod = selected[0]
	default:
		method, err := pgcsv.ParseAuthMethod(strings.ToLower(pc.AuthMethod))
		if err != nil {
			return err
		}
		cfg.AuthMethod = method
	}

	switch cfg.AuthMethod {
	case pgcsv.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	case pgcsv.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
	case pgcsv.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
