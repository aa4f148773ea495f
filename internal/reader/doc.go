// Package reader turns a delimited text file into a finite, forward-only
// sequence of row batches.
//
// The first record is the header. Every later record becomes one row of the
// current batch; a batch is emitted when it holds BatchSize rows, and the
// final batch may be shorter. Empty fields become nil so they load as NULL.
//
// Row-level problems (a field count that differs from the header, or a record
// the tokenizer rejects) abort with pgcsv.ErrFormat when StrictRows is set and
// are skipped with a warning otherwise. A row is never realigned or padded.
package reader
