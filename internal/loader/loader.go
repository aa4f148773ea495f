package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/vvka-141/pgcsv/internal/schema"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// State is the position of a Loader in its two-state lifecycle.
type State int

const (
	// StateFirst replaces the table on the next non-empty batch.
	StateFirst State = iota
	// StateAppending appends every non-empty batch.
	StateAppending
)

func (s State) String() string {
	switch s {
	case StateFirst:
		return "FIRST"
	case StateAppending:
		return "APPENDING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts what a Loader wrote.
type Stats struct {
	Batches      int
	EmptyBatches int
	Rows         int64
}

// Options configures a Loader.
type Options struct {
	Table        string
	StrictTyping bool
	Progress     pgcsv.ProgressFunc
}

// Loader is not safe for concurrent use.
type Loader struct {
	conn    pgcsv.DBConnection
	tables  pgcsv.TableManager
	opts    Options
	logger  pgcsv.Logger
	state   State
	columns []pgcsv.Column
	stats   Stats
}

// New returns a Loader in StateFirst.
// Panics if any dependency is nil.
func New(conn pgcsv.DBConnection, tables pgcsv.TableManager, opts Options, logger pgcsv.Logger) *Loader {
	if conn == nil {
		panic("conn cannot be nil")
	}
	if tables == nil {
		panic("tables cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{conn: conn, tables: tables, opts: opts, logger: logger}
}

// State returns the current state.
func (l *Loader) State() State { return l.state }

// Columns returns the destination columns fixed by the first written batch.
func (l *Loader) Columns() []pgcsv.Column { return slices.Clone(l.columns) }

// Stats returns the counters so far.
func (l *Loader) Stats() Stats { return l.stats }

// Write writes one batch according to the current state.
func (l *Loader) Write(ctx context.Context, b *pgcsv.Batch) error {
	if b.Len() == 0 {
		l.stats.EmptyBatches++
		if b != nil {
			l.logger.Verbose("Batch %d is empty, skipping", b.Index)
		}
		return nil
	}

	replacing := l.state == StateFirst
	columns := l.columns
	if replacing {
		columns = schema.Infer(b, l.opts.StrictTyping)
	} else if err := l.checkColumns(b); err != nil {
		return err
	}

	rows, err := schema.Coerce(b, columns)
	if err != nil {
		return err
	}

	var n int64
	if replacing {
		n, err = l.tables.Replace(ctx, l.conn, l.opts.Table, columns, rows)
	} else {
		n, err = l.tables.Append(ctx, l.conn, l.opts.Table, columns, rows)
	}
	if err != nil {
		return fmt.Errorf("batch %d: %w", b.Index, wrapLoad(err))
	}

	if replacing {
		l.columns = columns
		l.state = StateAppending
		l.logger.Info("Replaced table %s with %d columns", l.opts.Table, len(columns))
	}
	l.stats.Batches++
	l.stats.Rows += n
	l.logger.WithField("batch", b.Index).Verbose("Wrote %d rows (%d total)", n, l.stats.Rows)

	if l.opts.Progress != nil {
		l.opts.Progress(pgcsv.BatchReport{Index: b.Index, Rows: int(n), Total: l.stats.Rows, Replaced: replacing})
	}
	return nil
}

// Load writes every batch of src until it is exhausted or a step fails.
func (l *Loader) Load(ctx context.Context, src pgcsv.BatchSource) (Stats, error) {
	for {
		b, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return l.stats, nil
		}
		if err != nil {
			return l.stats, err
		}
		if err := l.Write(ctx, b); err != nil {
			return l.stats, err
		}
	}
}

func (l *Loader) checkColumns(b *pgcsv.Batch) error {
	if len(b.Columns) == len(l.columns) {
		match := true
		for i, c := range l.columns {
			if b.Columns[i] != c.Name {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}
	return fmt.Errorf("batch %d: columns %q do not match table columns: %w", b.Index, b.Columns, pgcsv.ErrLoad)
}

// wrapLoad marks err as a load failure unless it already is one.
func wrapLoad(err error) error {
	if errors.Is(err, pgcsv.ErrLoad) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", pgcsv.ErrLoad, err)
}
