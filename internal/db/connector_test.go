package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgcsv/internal/logging"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func TestWrapConnectionError(t *testing.T) {
	tests := []struct {
		name         string
		errMsg       string
		wantContains string
	}{
		{"connection refused", "dial tcp 127.0.0.1:5432: connection refused", "connection refused to db:5432"},
		{"actively refused", "No connection could be made because the target machine actively refused it", "connection refused to db:5432"},
		{"no such host", "dial tcp: lookup db: no such host", `cannot resolve host "db"`},
		{"password", `password authentication failed for user "etl"`, `password authentication failed for database "voos"`},
		{"missing database", `database "voos" does not exist`, "createdb voos"},
		{"timeout", "dial tcp: i/o timeout", "connection timed out to db:5432"},
		{"tls", "tls: failed to verify certificate", "SSL/TLS connection error"},
		{"too many", "sorry, too many connections already", `too many connections to database "voos"`},
		{"other", "something odd", "failed to connect to database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := errors.New(tt.errMsg)
			err := wrapConnectionError(orig, "db", 5432, "voos")
			assert.Contains(t, err.Error(), tt.wantContains)
			assert.ErrorIs(t, err, orig)
			assert.ErrorIs(t, err, pgcsv.ErrConnection)
			assert.Equal(t, pgcsv.ExitConnectionError, pgcsv.ExitCodeForError(err))
		})
	}
}

func TestNewConnector_SelectsImplementation(t *testing.T) {
	base := pgcsv.ConnectionConfig{Host: "db", Port: 5432, Database: "voos", Username: "etl"}

	c, err := NewConnector(&base, ConnectorOptions{})
	require.NoError(t, err)
	assert.IsType(t, &StandardConnector{}, c)

	aws := base
	aws.AuthMethod = pgcsv.AuthMethodAWSIAM
	aws.AWSRegion = "sa-east-1"
	c, err = NewConnector(&aws, ConnectorOptions{})
	require.NoError(t, err)
	require.IsType(t, &TokenBasedConnector{}, c)
	assert.Equal(t, "AWS IAM", c.(*TokenBasedConnector).providerName)

	google := base
	google.AuthMethod = pgcsv.AuthMethodGoogleIAM
	google.GoogleInstance = "proj:region:inst"
	c, err = NewConnector(&google, ConnectorOptions{})
	require.NoError(t, err)
	assert.IsType(t, &GoogleCloudSQLConnector{}, c)
}

func TestNewConnector_InvalidCloudSettings(t *testing.T) {
	tests := []struct {
		name   string
		config pgcsv.ConnectionConfig
		want   error
	}{
		{"aws without region", pgcsv.ConnectionConfig{Host: "db", Port: 5432, Username: "etl", AuthMethod: pgcsv.AuthMethodAWSIAM}, pgcsv.ErrInvalidConfig},
		{"aws without user", pgcsv.ConnectionConfig{Host: "db", Port: 5432, AWSRegion: "x", AuthMethod: pgcsv.AuthMethodAWSIAM}, pgcsv.ErrInvalidConfig},
		{"google without instance", pgcsv.ConnectionConfig{Username: "etl", AuthMethod: pgcsv.AuthMethodGoogleIAM}, pgcsv.ErrInvalidConfig},
		{"google without user", pgcsv.ConnectionConfig{GoogleInstance: "p:r:i", AuthMethod: pgcsv.AuthMethodGoogleIAM}, pgcsv.ErrInvalidConfig},
		{"unknown method", pgcsv.ConnectionConfig{AuthMethod: pgcsv.AuthMethod(42)}, pgcsv.ErrUnsupportedAuthMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConnector(&tt.config, ConnectorOptions{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewAzureServicePrincipalProvider_RequiresAllParams(t *testing.T) {
	for _, params := range [][3]string{
		{"", "client", "secret"},
		{"tenant", "", "secret"},
		{"tenant", "client", ""},
	} {
		_, err := NewAzureServicePrincipalProvider(params[0], params[1], params[2])
		assert.ErrorIs(t, err, pgcsv.ErrInvalidConfig)
	}

	p, err := NewAzureServicePrincipalProvider("tenant", "client", "secret")
	require.NoError(t, err)
	assert.Equal(t, "AzureServicePrincipal(tenant=tenant, client=client)", p.String())
	assert.NotContains(t, p.String(), "secret")
}

func TestAWSIAMTokenProvider_String(t *testing.T) {
	p, err := NewAWSIAMTokenProvider("db:5432", "sa-east-1", "etl")
	require.NoError(t, err)
	assert.Equal(t, "AWSIAMTokenProvider(endpoint=db:5432, region=sa-east-1, user=etl)", p.String())
}

func TestTokenBasedConnector_TokenFailureIsConnectionError(t *testing.T) {
	provider := &mockTokenProvider{err: errors.New("credential chain exhausted")}
	c := NewTokenBasedConnector(&pgcsv.ConnectionConfig{Host: "db", Port: 5432}, provider, "Azure", ConnectorOptions{Retries: 2})

	_, err := c.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pgcsv.ErrConnection)
	assert.Contains(t, err.Error(), "mockTokenProvider")
	assert.Equal(t, 1, provider.calls, "token failures are not transient")
}

func TestStandardConnector_RespectsContextTimeout(t *testing.T) {
	config := &pgcsv.ConnectionConfig{Host: "nonexistent.invalid", Port: 5432, Database: "voos", Username: "etl"}
	connector := NewStandardConnector(config, ConnectorOptions{Retries: 3, Logger: logging.NewNullLogger()})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := connector.Connect(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGoogleCloudSQLConnector_CloseWithoutConnect(t *testing.T) {
	c := NewGoogleCloudSQLConnector(&pgcsv.ConnectionConfig{}, "p:r:i", ConnectorOptions{})
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
