package pgcsv

import (
	"context"
	"fmt"
)

// Batch is a contiguous slice of source rows sharing one column list.
// Cells are string or nil as produced by the reader; after normalization
// timestamp cells hold time.Time or nil.
type Batch struct {
	// Index is the 0-based arrival order of the batch.
	Index int

	// StartLine is the 1-based source line of the first row.
	StartLine int

	Columns []string

	// Hints carries per-column type hints set by the normalizer.
	// A nil slice or TypeUnknown entry means no hint.
	Hints []ColumnType

	Rows [][]any
}

// Len returns the number of rows in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// Hint returns the type hint of column i.
func (b *Batch) Hint(i int) ColumnType {
	if i < 0 || i >= len(b.Hints) {
		return TypeUnknown
	}
	return b.Hints[i]
}

// BatchSource is a finite, forward-only sequence of batches.
// Next returns io.EOF once the sequence is exhausted and keeps returning it;
// a source is not restartable.
type BatchSource interface {
	Next(ctx context.Context) (*Batch, error)
	Close() error
}

// ColumnType is the storage type of a destination column.
type ColumnType int

const (
	TypeUnknown ColumnType = iota
	TypeText
	TypeBigInt
	TypeDouble
	TypeBoolean
	TypeTimestamp
)

// SQL returns the PostgreSQL spelling of the type.
func (t ColumnType) SQL() string {
	switch t {
	case TypeBigInt:
		return "BIGINT"
	case TypeDouble:
		return "DOUBLE PRECISION"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeTimestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

func (t ColumnType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeText:
		return "text"
	case TypeBigInt:
		return "bigint"
	case TypeDouble:
		return "double"
	case TypeBoolean:
		return "boolean"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Column describes one destination column.
type Column struct {
	Name string
	Type ColumnType
}
