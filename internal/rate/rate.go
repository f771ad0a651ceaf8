// Package rate provides a token bucket limiter used to throttle FTP
// transfer bandwidth. A single limiter may be shared by the upload and
// download sides of a session; the budget then covers their sum.
package rate

import (
	"io"
	"sync"
	"time"
)

// Limiter is a token bucket limiter measured in bytes per second. The
// bucket holds one second of budget, so short bursts up to that size pass
// without waiting while the long-run rate stays at the configured limit.
//
// A nil *Limiter is valid and imposes no limit; every method is a no-op.
type Limiter struct {
	mu     sync.Mutex
	rate   float64 // bytes per second
	burst  float64 // bucket capacity
	tokens float64
	last   time.Time
}

// New returns a limiter for the given rate, or nil (unlimited) when
// bytesPerSecond is zero or negative.
func New(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}
	r := float64(bytesPerSecond)
	return &Limiter{
		rate:   r,
		burst:  r,
		tokens: r,
		last:   time.Now(),
	}
}

// take consumes n tokens, sleeping until the bucket can cover them.
func (l *Limiter) take(n int) {
	if l == nil || n <= 0 {
		return
	}

	l.mu.Lock()
	now := time.Now()
	l.tokens += now.Sub(l.last).Seconds() * l.rate
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.last = now

	l.tokens -= float64(n)
	var wait time.Duration
	if l.tokens < 0 {
		wait = time.Duration(-l.tokens / l.rate * float64(time.Second))
	}
	l.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
}

// Reader wraps r so that reads draw from the limiter's budget.
// With a nil limiter, r is returned unchanged.
func (l *Limiter) Reader(r io.Reader) io.Reader {
	if l == nil {
		return r
	}
	return &reader{r: r, l: l}
}

// Writer wraps w so that writes draw from the limiter's budget.
// With a nil limiter, w is returned unchanged.
func (l *Limiter) Writer(w io.Writer) io.Writer {
	if l == nil {
		return w
	}
	return &writer{w: w, l: l}
}

type reader struct {
	r io.Reader
	l *Limiter
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.l.take(n)
	return n, err
}

type writer struct {
	w io.Writer
	l *Limiter
}

func (w *writer) Write(p []byte) (int, error) {
	w.l.take(len(p))
	return w.w.Write(p)
}
