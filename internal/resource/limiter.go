package resource

import (
	"context"
	"io"
	"math"

	"golang.org/x/time/rate"
)

// IOLimiter caps throughput in bytes per second.
type IOLimiter struct {
	lim   *rate.Limiter
	burst int
}

// NewIOLimiter returns a limiter for bytesPerSec, or nil (unlimited) if
// bytesPerSec is not positive.
func NewIOLimiter(bytesPerSec int64) *IOLimiter {
	if bytesPerSec <= 0 {
		return nil
	}
	burst := int(min(bytesPerSec, math.MaxInt32))
	return &IOLimiter{
		lim:   rate.NewLimiter(rate.Limit(bytesPerSec), burst),
		burst: burst,
	}
}

// Acquire waits until n bytes may pass. n may exceed the burst size.
func (l *IOLimiter) Acquire(ctx context.Context, n int) error {
	if l == nil {
		return nil
	}
	for n > 0 {
		step := min(n, l.burst)
		if err := l.lim.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

// Writer wraps w so that every write first acquires its size.
func (l *IOLimiter) Writer(ctx context.Context, w io.Writer) io.Writer {
	if l == nil {
		return w
	}
	return &limitedWriter{ctx: ctx, w: w, l: l}
}

type limitedWriter struct {
	ctx context.Context //nolint:containedctx // bound to one write session
	w   io.Writer
	l   *IOLimiter
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := p[:min(len(p), lw.l.burst)]
		if err := lw.l.Acquire(lw.ctx, len(chunk)); err != nil {
			return written, err
		}
		n, err := lw.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}
