package pgcsv

import "context"

// Importer runs the read → normalize → probe → load pipeline.
type Importer interface {
	// Import loads the configured source file into the destination table.
	// The first non-empty batch replaces the table, later batches are appended.
	Import(ctx context.Context, config ImportConfig) (ImportResult, error)
}
