// Package loader writes batches into the destination table.
//
// A Loader starts in the First state: the first non-empty batch fixes the
// column list and types and replaces the table. Every later non-empty batch is
// appended. Empty batches are counted and skipped without a state change.
//
// Writes are never retried. After a failure the table holds exactly the rows of
// the batches written before it.
package loader
