// Package schema derives destination column types from a batch and converts
// batch cells to the values written for those types.
//
// With strict typing, types are inferred from the first non-empty batch:
// integers become BIGINT, decimals DOUBLE PRECISION, true/false BOOLEAN,
// normalized timestamp columns TIMESTAMP and everything else TEXT.
// Without it every column is TEXT and timestamps are rendered as text.
package schema
