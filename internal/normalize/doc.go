// Package normalize converts the configured timestamp columns of a batch from
// text to time values.
//
// Column labels are trimmed first. Cells are parsed with a Go reference-time
// layout; a cell that does not match becomes NULL instead of failing the run.
// A configured column that is absent from the header is a schema error.
//
// Source wraps a pgcsv.BatchSource so every batch it yields is already normalized.
package normalize
