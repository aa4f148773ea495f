package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgcsv/internal/config"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func TestResolve_ConnectionStringFlagWins(t *testing.T) {
	env := &EnvVars{
		PGCSV_CONNECTION_STRING: "postgresql://env@envhost/envdb",
		DATABASE_URL:            "postgresql://url@urlhost/urldb",
	}
	pc := &config.ProjectConfig{ConnectionString: "postgresql://file@filehost/filedb"}

	cfg, err := ResolveConnectionParams("postgresql://flag@flaghost:5433/flagdb", nil, nil, env, pc)
	require.NoError(t, err)
	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "flagdb", cfg.Database)
	assert.Equal(t, "flag", cfg.Username)
}

func TestResolve_ConnectionStringPrecedence(t *testing.T) {
	pc := &config.ProjectConfig{ConnectionString: "postgresql://file@filehost/filedb"}

	cfg, err := ResolveConnectionParams("", nil, nil, &EnvVars{
		PGCSV_CONNECTION_STRING: "postgresql://env@envhost/envdb",
		DATABASE_URL:            "postgresql://url@urlhost/urldb",
	}, pc)
	require.NoError(t, err)
	assert.Equal(t, "envhost", cfg.Host)

	cfg, err = ResolveConnectionParams("", nil, nil, &EnvVars{DATABASE_URL: "postgresql://url@urlhost/urldb"}, pc)
	require.NoError(t, err)
	assert.Equal(t, "urlhost", cfg.Host)

	cfg, err = ResolveConnectionParams("", nil, nil, &EnvVars{}, pc)
	require.NoError(t, err)
	assert.Equal(t, "filehost", cfg.Host)
}

func TestResolve_ConflictingFlags(t *testing.T) {
	_, err := ResolveConnectionParams("postgresql://localhost/db", &GranularConnFlags{Host: "other"}, nil, nil, nil)
	assert.ErrorIs(t, err, pgcsv.ErrInvalidConfig)
}

func TestResolve_DatabaseFlagOverridesConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams("postgresql://etl@db/postgres", &GranularConnFlags{Database: "voos"}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "voos", cfg.Database)
}

func TestResolve_PasswordFromEnvironment(t *testing.T) {
	cfg, err := ResolveConnectionParams("postgresql://etl@db/voos", nil, nil, &EnvVars{PGPASSWORD: "secret"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Password)

	cfg, err = ResolveConnectionParams("postgresql://etl:inline@db/voos", nil, nil, &EnvVars{PGPASSWORD: "secret"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "inline", cfg.Password)
}

func TestResolve_GranularPrecedence(t *testing.T) {
	env := &EnvVars{PGHOST: "envhost", PGPORT: "6000", PGUSER: "envuser", PGDATABASE: "envdb", PGSSLMODE: "require"}
	pc := &config.ProjectConfig{Connection: config.ConnectionConfig{
		Host: "filehost", Port: 7000, Username: "fileuser", Database: "filedb", SSLMode: "disable",
		SSLRootCert: "/ca.pem",
	}}

	cfg, err := ResolveConnectionParams("", &GranularConnFlags{Host: "flaghost", Port: 5000}, nil, env, pc)
	require.NoError(t, err)
	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "envuser", cfg.Username)
	assert.Equal(t, "envdb", cfg.Database)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, "/ca.pem", cfg.AdditionalParams["sslrootcert"])

	cfg, err = ResolveConnectionParams("", nil, nil, &EnvVars{}, pc)
	require.NoError(t, err)
	assert.Equal(t, "filehost", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "fileuser", cfg.Username)
	assert.Equal(t, "filedb", cfg.Database)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := ResolveConnectionParams("", nil, nil, &EnvVars{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "postgres", cfg.Database)
	assert.Equal(t, "prefer", cfg.SSLMode)
	assert.Equal(t, pgcsv.AuthMethodStandard, cfg.AuthMethod)
}

func TestResolve_InvalidPGPORT(t *testing.T) {
	_, err := ResolveConnectionParams("", nil, nil, &EnvVars{PGPORT: "abc"}, nil)
	assert.ErrorIs(t, err, pgcsv.ErrInvalidConfig)
}

func TestResolve_GranularFlagsIgnoreEnvironmentConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams("", &GranularConnFlags{Host: "flaghost"}, nil,
		&EnvVars{DATABASE_URL: "postgresql://url@urlhost/urldb"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "flaghost", cfg.Host)
}

func TestResolve_CloudAuth(t *testing.T) {
	env := &EnvVars{
		AZURE_TENANT_ID: "env-tenant", AZURE_CLIENT_ID: "env-client", AZURE_CLIENT_SECRET: "env-secret",
		AWS_REGION: "us-east-1",
	}

	t.Run("azure flags over environment", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("postgresql://etl@db/voos", nil,
			&CloudFlags{Azure: true, AzureTenantID: "flag-tenant"}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgcsv.AuthMethodAzureEntraID, cfg.AuthMethod)
		assert.Equal(t, "flag-tenant", cfg.AzureTenantID)
		assert.Equal(t, "env-client", cfg.AzureClientID)
		assert.Equal(t, "env-secret", cfg.AzureClientSecret)
	})

	t.Run("aws region from environment", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("postgresql://etl@db/voos", nil, &CloudFlags{AWS: true}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgcsv.AuthMethodAWSIAM, cfg.AuthMethod)
		assert.Equal(t, "us-east-1", cfg.AWSRegion)
		assert.Empty(t, cfg.AzureTenantID)
	})

	t.Run("google from config file", func(t *testing.T) {
		pc := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "google", GoogleInstance: "p:r:i"}}
		cfg, err := ResolveConnectionParams("postgresql://etl@db/voos", nil, nil, env, pc)
		require.NoError(t, err)
		assert.Equal(t, pgcsv.AuthMethodGoogleIAM, cfg.AuthMethod)
		assert.Equal(t, "p:r:i", cfg.GoogleInstance)
	})

	t.Run("azure env alone does not switch auth", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("postgresql://etl@db/voos", nil, nil, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgcsv.AuthMethodStandard, cfg.AuthMethod)
	})

	t.Run("conflicting methods", func(t *testing.T) {
		_, err := ResolveConnectionParams("postgresql://etl@db/voos", nil, &CloudFlags{AWS: true, Google: true}, env, nil)
		assert.ErrorIs(t, err, pgcsv.ErrInvalidConfig)
	})

	t.Run("unknown method in file", func(t *testing.T) {
		pc := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "kerberos"}}
		_, err := ResolveConnectionParams("postgresql://etl@db/voos", nil, nil, env, pc)
		assert.ErrorIs(t, err, pgcsv.ErrUnsupportedAuthMethod)
	})
}
