package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// ConversionError reports a cell that cannot be stored in its column type.
type ConversionError struct {
	Batch  int
	Row    int
	Column string
	Type   pgcsv.ColumnType
	Value  any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("batch %d row %d: column %q: cannot store %v as %s",
		e.Batch, e.Row+1, e.Column, e.Value, e.Type.SQL())
}

// Unwrap classifies conversion failures as load errors.
func (e *ConversionError) Unwrap() error {
	return pgcsv.ErrLoad
}

// Coerce converts the cells of b to the Go values pgx writes for cols.
// b is left untouched.
func Coerce(b *pgcsv.Batch, cols []pgcsv.Column) ([][]any, error) {
	if len(b.Columns) != len(cols) {
		return nil, fmt.Errorf("batch %d has %d columns, destination has %d: %w",
			b.Index, len(b.Columns), len(cols), pgcsv.ErrLoad)
	}

	out := make([][]any, len(b.Rows))
	for r, row := range b.Rows {
		values := make([]any, len(cols))
		for c, col := range cols {
			if c >= len(row) {
				continue
			}
			v, err := convert(row[c], col.Type)
			if err != nil {
				return nil, &ConversionError{Batch: b.Index, Row: r, Column: col.Name, Type: col.Type, Value: row[c]}
			}
			values[c] = v
		}
		out[r] = values
	}
	return out, nil
}

func convert(v any, t pgcsv.ColumnType) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case pgcsv.TypeTimestamp:
		if ts, ok := v.(time.Time); ok {
			return ts, nil
		}
		return nil, strconv.ErrSyntax
	case pgcsv.TypeBigInt:
		s, ok := v.(string)
		if !ok {
			return nil, strconv.ErrSyntax
		}
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	case pgcsv.TypeDouble:
		s, ok := v.(string)
		if !ok {
			return nil, strconv.ErrSyntax
		}
		return parseFloat(s)
	case pgcsv.TypeBoolean:
		s, ok := v.(string)
		if !ok {
			return nil, strconv.ErrSyntax
		}
		return parseBool(s)
	default:
		switch x := v.(type) {
		case string:
			return x, nil
		case time.Time:
			return x.Format(pgcsv.TextTimestampLayout), nil
		default:
			return fmt.Sprint(x), nil
		}
	}
}
