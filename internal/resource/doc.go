// Package resource throttles I/O with a token bucket.
//
//	lim := resource.NewIOLimiter(64 << 20) // 64 MiB/s
//	w := lim.Writer(ctx, f)
//
// A nil *IOLimiter never throttles, so callers can pass one through
// unconditionally.
package resource
