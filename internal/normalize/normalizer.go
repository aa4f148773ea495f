package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Normalizer parses timestamp columns. Safe for concurrent use once built.
type Normalizer struct {
	columns []string
	layout  string
	logger  pgcsv.Logger
}

// New returns a Normalizer for the given column labels and layout.
// Labels are compared after trimming surrounding whitespace.
func New(columns []string, layout string, logger pgcsv.Logger) *Normalizer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	trimmed := make([]string, 0, len(columns))
	for _, c := range columns {
		trimmed = append(trimmed, strings.TrimSpace(c))
	}
	if layout == "" {
		layout = pgcsv.DefaultTimestampLayout
	}
	return &Normalizer{columns: trimmed, layout: layout, logger: logger}
}

// Columns returns the timestamp column labels.
func (n *Normalizer) Columns() []string {
	out := make([]string, len(n.columns))
	copy(out, n.columns)
	return out
}

// Normalize trims the column labels of b and parses its timestamp columns in place.
// Cells that fail to parse become nil. The returned batch is b.
func (n *Normalizer) Normalize(b *pgcsv.Batch) (*pgcsv.Batch, error) {
	if b == nil {
		return nil, nil
	}

	index, err := trimLabels(b.Columns)
	if err != nil {
		return nil, fmt.Errorf("batch %d: %w", b.Index, err)
	}

	targets := make([]int, 0, len(n.columns))
	for _, name := range n.columns {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("batch %d: expected column %q not found in header: %w", b.Index, name, pgcsv.ErrSchema)
		}
		targets = append(targets, i)
	}

	if len(b.Hints) != len(b.Columns) {
		hints := make([]pgcsv.ColumnType, len(b.Columns))
		copy(hints, b.Hints)
		b.Hints = hints
	}

	for _, col := range targets {
		coerced := 0
		for _, row := range b.Rows {
			if col >= len(row) {
				continue
			}
			v, ok := n.parse(row[col])
			if !ok {
				coerced++
			}
			row[col] = v
		}
		b.Hints[col] = pgcsv.TypeTimestamp
		if coerced > 0 {
			n.logger.Verbose("Batch %d: %d value(s) in %q did not match %q and were set to NULL",
				b.Index, coerced, b.Columns[col], n.layout)
		}
	}

	return b, nil
}

// parse reports false when a non-empty value was coerced to nil.
func (n *Normalizer) parse(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, true
		}
		t, err := time.Parse(n.layout, s)
		if err != nil {
			return nil, false
		}
		return t, true
	default:
		return nil, false
	}
}

// trimLabels trims every label in place and returns a name to position index.
func trimLabels(columns []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty label: %w", i+1, pgcsv.ErrSchema)
		}
		if prev, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q at positions %d and %d: %w", name, prev+1, i+1, pgcsv.ErrSchema)
		}
		index[name] = i
		columns[i] = name
	}
	return index, nil
}
