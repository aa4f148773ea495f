// Package retry re-runs connection establishment while failures look transient.
//
// Only opening the pool is retried. Batch writes are never retried: a failed
// write aborts the run so the destination is never written twice.
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), retry.DefaultBackoff(3), logger)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return openPool(ctx)
//	})
package retry
