package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilLimiterIsUnlimited(t *testing.T) {
	var l *IOLimiter
	assert.Nil(t, NewIOLimiter(0))
	require.NoError(t, l.Acquire(context.Background(), 1<<30))

	var buf bytes.Buffer
	w := l.Writer(context.Background(), &buf)
	assert.Equal(t, io.Writer(&buf), w)
}

func TestWriterPassesAllBytes(t *testing.T) {
	l := NewIOLimiter(1 << 20)

	var buf bytes.Buffer
	w := l.Writer(context.Background(), &buf)

	payload := bytes.Repeat([]byte("x"), 3000)
	n, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf.Bytes())
}

func TestAcquireLargerThanBurst(t *testing.T) {
	l := NewIOLimiter(1000)

	// Consumes the burst plus a fraction of a second of refill.
	require.NoError(t, l.Acquire(context.Background(), 1100))
}

func TestWriterHonoursCancellation(t *testing.T) {
	l := NewIOLimiter(10)
	require.NoError(t, l.Acquire(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	_, err := l.Writer(ctx, &buf).Write(bytes.Repeat([]byte("y"), 100))
	require.Error(t, err)
}
