// Package storage handles the bytes of an uploaded file. In this service
// uploads are never retained: the stream is consumed, measured and
// discarded once validation has seen it through.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrTooLarge is returned when a stream exceeds the allowed byte count.
var ErrTooLarge = errors.New("stream exceeds size limit")

// Sink consumes an upload stream.
type Sink interface {
	// Drain reads r to EOF and returns the number of bytes consumed.
	// Reading stops with ErrTooLarge as soon as more than max bytes are
	// seen; max <= 0 means unlimited. The content is not retained.
	Drain(ctx context.Context, r io.Reader, max int64) (int64, error)
}

// discardSink is the only production Sink: it streams to io.Discard.
type discardSink struct{}

// NewDiscard returns a Sink that throws the content away.
func NewDiscard() Sink {
	return discardSink{}
}

func (discardSink) Drain(ctx context.Context, r io.Reader, max int64) (int64, error) {
	if r == nil {
		return 0, errors.New("reader is nil")
	}
	// Allow one extra byte past the cap so an over-limit stream is
	// distinguishable from one that is exactly at the limit.
	src := r
	if max > 0 {
		src = io.LimitReader(r, max+1)
	}

	var total int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := src.Read(buf)
		total += int64(n)
		if max > 0 && total > max {
			return total, ErrTooLarge
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
