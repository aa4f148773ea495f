package db

import (
	"context"
	"time"
)

// TokenProvider acquires short-lived database credentials from a cloud identity service.
type TokenProvider interface {
	// GetToken returns a token to use as the PostgreSQL password and its expiry.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. It must not include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// awsTokenLifetime is the validity of an RDS IAM authentication token.
const awsTokenLifetime = 15 * time.Minute
