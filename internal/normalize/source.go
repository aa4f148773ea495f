package normalize

import (
	"context"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Source yields normalized batches from an underlying source.
type Source struct {
	src pgcsv.BatchSource
	n   *Normalizer
}

// Wrap returns a Source that normalizes every batch of src.
func Wrap(src pgcsv.BatchSource, n *Normalizer) *Source {
	return &Source{src: src, n: n}
}

// Next returns the next normalized batch. Errors from the underlying
// source, io.EOF included, are passed through unchanged.
func (s *Source) Next(ctx context.Context) (*pgcsv.Batch, error) {
	b, err := s.src.Next(ctx)
	if err != nil {
		return nil, err
	}
	return s.n.Normalize(b)
}

// Close closes the underlying source.
func (s *Source) Close() error {
	return s.src.Close()
}

var _ pgcsv.BatchSource = (*Source)(nil)
