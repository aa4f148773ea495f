package db

import (
	"context"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Probe runs a trivial round-trip query and reports whether the server answered
// with the expected value. It never returns an error and never panics; failures are logged.
func Probe(ctx context.Context, conn pgcsv.DBConnection, logger pgcsv.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Connection probe panicked: %v", r)
			ok = false
		}
	}()

	var one int
	if err := conn.QueryRow(ctx, pgcsv.ProbeQuery).Scan(&one); err != nil {
		logger.Error("Connection probe failed: %v", err)
		return false
	}
	if one != 1 {
		logger.Error("Connection probe returned %d, expected 1", one)
		return false
	}
	logger.Verbose("Connection probe succeeded")
	return true
}

// Prober adapts Probe to a function value for dependency injection.
type Prober func(ctx context.Context, conn pgcsv.DBConnection, logger pgcsv.Logger) bool
