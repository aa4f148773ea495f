package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Executor runs an operation until it succeeds, fails fatally or runs out of retries.
// Safe for concurrent use.
type Executor struct {
	classifier pgcsv.ErrorClassifier
	strategy   pgcsv.BackoffStrategy
	logger     pgcsv.Logger
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor returns an Executor. A nil logger disables retry logging.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier pgcsv.ErrorClassifier, strategy pgcsv.BackoffStrategy, logger pgcsv.Logger) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		logger:     logger,
	}
}

// WithOnRetry returns a copy of e that calls callback before every retry.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation. The error of the last attempt is returned, annotated
// with the attempt count when retries were exhausted.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			if attempt == 0 {
				return err
			}
			return fmt.Errorf("giving up after %d attempts: %w", attempt+1, err)
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if e.logger != nil {
			e.logger.Warn("Attempt %d failed, retrying in %v: %v", attempt+1, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
	}
	return err
}
