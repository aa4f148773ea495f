package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgcsv/internal/retry"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// tokenExpiryWarning is the remaining token lifetime below which a warning is logged.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector connects to cloud-hosted PostgreSQL (AWS IAM, Azure Entra ID)
// using a short-lived token as the password. A fresh token is requested on every attempt.
type TokenBasedConnector struct {
	config        *pgcsv.ConnectionConfig
	tokenProvider TokenProvider
	retryExecutor *retry.Executor
	providerName  string
	logger        pgcsv.Logger
}

// NewTokenBasedConnector returns a connector using tokenProvider.
// providerName appears in error and warning messages.
func NewTokenBasedConnector(config *pgcsv.ConnectionConfig, tokenProvider TokenProvider, providerName string, opts ConnectorOptions) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		retryExecutor: opts.executor(),
		providerName:  providerName,
		logger:        opts.Logger,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token from %s: %w: %w", c.providerName, c.tokenProvider, pgcsv.ErrConnection, err)
		}

		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning && c.logger != nil {
			c.logger.Warn("%s token expires in %v", c.providerName, remaining.Round(time.Second))
		}

		withToken := *c.config
		withToken.Password = token

		pool, err = openPool(ctx, BuildConnectionString(&withToken), c.config, c.logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}
