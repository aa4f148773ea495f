package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pgcsv/internal/checksum"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

const utf8BOM = "\ufeff"

// Options configures tokenization and batching.
type Options struct {
	Separator  rune
	BatchSize  int
	StrictRows bool
}

// DefaultOptions returns the options matching the flight-schedule export.
// Malformed rows are skipped with a warning.
func DefaultOptions() Options {
	return Options{
		Separator: pgcsv.DefaultSeparator,
		BatchSize: pgcsv.DefaultBatchSize,
	}
}

func (o Options) validate() error {
	if o.BatchSize <= 0 {
		return fmt.Errorf("batch size must be a positive integer, got %d: %w", o.BatchSize, pgcsv.ErrInvalidConfig)
	}
	if o.Separator == 0 || o.Separator == '"' || o.Separator == '\r' || o.Separator == '\n' {
		return fmt.Errorf("invalid separator %q: %w", o.Separator, pgcsv.ErrInvalidConfig)
	}
	return nil
}

// Reader produces batches from a delimited source.
// Not safe for concurrent use.
type Reader struct {
	name    string
	csv     *csv.Reader
	sum     *checksum.Reader
	closer  io.Closer
	opts    Options
	logger  pgcsv.Logger
	header  []string
	next    int
	rows    int
	skipped int
	done    bool
	closed  bool
}

// Open opens the file at path and reads its header.
// The file stays open until the sequence is exhausted or Close is called.
func Open(path string, opts Options, logger pgcsv.Logger) (*Reader, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file %q: %w: %w", path, pgcsv.ErrIO, err)
	}

	r, err := newReader(path, f, f, opts, logger)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// New reads batches from src. name is used in diagnostics only.
func New(name string, src io.Reader, opts Options, logger pgcsv.Logger) (*Reader, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	var closer io.Closer
	if c, ok := src.(io.Closer); ok {
		closer = c
	}
	return newReader(name, src, closer, opts, logger)
}

func newReader(name string, src io.Reader, closer io.Closer, opts Options, logger pgcsv.Logger) (*Reader, error) {
	sum := checksum.NewReader(src)
	cr := csv.NewReader(sum)
	cr.Comma = opts.Separator
	cr.FieldsPerRecord = -1

	r := &Reader{
		name:   name,
		csv:    cr,
		sum:    sum,
		closer: closer,
		opts:   opts,
		logger: logger,
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: missing header row: %w", name, pgcsv.ErrFormat)
	}
	if err != nil {
		return nil, r.classify(err, "header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	r.header = header

	logger.Verbose("Opened %s with %d columns (separator %q, batch size %d)",
		name, len(header), opts.Separator, opts.BatchSize)
	return r, nil
}

// Header returns the column labels exactly as read.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Rows returns the number of data rows delivered so far.
func (r *Reader) Rows() int { return r.rows }

// Skipped returns the number of malformed rows skipped under lenient row handling.
func (r *Reader) Skipped() int { return r.skipped }

// Checksum returns the hex SHA-256 of the source once it has been read to
// the end, and "" before that.
func (r *Reader) Checksum() string {
	if !r.sum.Complete() {
		return ""
	}
	return r.sum.Sum()
}

// Next returns the next batch, or io.EOF once the source is exhausted.
// Every call after exhaustion returns io.EOF again.
func (r *Reader) Next(ctx context.Context) (*pgcsv.Batch, error) {
	if r.closed {
		return nil, pgcsv.ErrSourceClosed
	}
	if r.done {
		return nil, io.EOF
	}

	batch := &pgcsv.Batch{
		Index:   r.next,
		Columns: r.Header(),
		Rows:    make([][]any, 0, r.opts.BatchSize),
	}

	for len(batch.Rows) < r.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.csv.Read()
		if err == io.EOF {
			r.finish()
			break
		}
		if err != nil {
			if !isRowError(err) {
				return nil, r.classify(err, "row")
			}
			if err := r.reject(err); err != nil {
				return nil, err
			}
			continue
		}

		line, _ := r.csv.FieldPos(0)
		if len(record) != len(r.header) {
			rowErr := fmt.Errorf("line %d: expected %d fields, got %d", line, len(r.header), len(record))
			if err := r.reject(rowErr); err != nil {
				return nil, err
			}
			continue
		}

		if batch.StartLine == 0 {
			batch.StartLine = line
		}
		batch.Rows = append(batch.Rows, toRow(record))
	}

	if len(batch.Rows) == 0 {
		return nil, io.EOF
	}

	r.next++
	r.rows += len(batch.Rows)
	return batch, nil
}

// Close releases the underlying file. Safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.release()
}

func (r *Reader) finish() {
	r.done = true
	r.logger.Verbose("Read %d bytes from %s (sha256 %s)", r.sum.Bytes(), r.name, r.sum.Sum())
	if err := r.release(); err != nil {
		r.logger.Warn("Failed to close %s: %v", r.name, err)
	}
}

func (r *Reader) release() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// reject applies the row policy to a malformed row.
func (r *Reader) reject(rowErr error) error {
	if r.opts.StrictRows {
		return fmt.Errorf("%s: %w: %w", r.name, pgcsv.ErrFormat, rowErr)
	}
	r.skipped++
	r.logger.Warn("Skipping malformed row in %s: %v", r.name, rowErr)
	return nil
}

func (r *Reader) classify(err error, what string) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%s: cannot tokenize %s: %w: %w", r.name, what, pgcsv.ErrFormat, err)
	}
	return fmt.Errorf("%s: failed to read %s: %w: %w", r.name, what, pgcsv.ErrIO, err)
}

// isRowError reports whether err is confined to one record, so reading can resume.
// An error spanning several lines (an unterminated quote) has swallowed the
// records after it and is never row-local.
func isRowError(err error) bool {
	var parseErr *csv.ParseError
	if !errors.As(err, &parseErr) || errors.Is(parseErr.Err, io.ErrUnexpectedEOF) {
		return false
	}
	return parseErr.StartLine == parseErr.Line
}

func toRow(record []string) []any {
	row := make([]any, len(record))
	for i, v := range record {
		if v == "" {
			continue
		}
		row[i] = v
	}
	return row
}

var _ pgcsv.BatchSource = (*Reader)(nil)
