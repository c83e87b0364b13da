package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crimson-sun/journal/internal/model"
	"github.com/crimson-sun/journal/internal/output"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// ErrDrainTimeout is returned by Close when buffered outcomes were still
// being written after the drain timeout.
var ErrDrainTimeout = errors.New("async output: drain timed out")

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner output's Write fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Write return immediately (dropping the outcome) when the
// buffer is full, instead of blocking.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// WithDrainTimeout bounds how long Close waits for buffered outcomes. Default: 5s.
func WithDrainTimeout(d time.Duration) Option {
	return func(a *Async) { a.drainTimeout = d }
}

// Async decouples decoding from a slow output via a buffered channel.
// The pipeline writes into the channel; a background goroutine drains it
// to the wrapped output. Errors from the inner output go to errFunc
// rather than to the caller.
type Async struct {
	inner        output.Output
	ch           chan model.Outcome
	done         chan struct{}
	errFunc      func(error)
	bufSize      int
	dropOnFull   bool
	drainTimeout time.Duration
	dropped      atomic.Int64
	closeOnce    sync.Once
}

// New wraps an output.Output in an async channel-based writer.
// The background drain goroutine starts immediately.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:        inner,
		bufSize:      defaultBufferSize,
		drainTimeout: defaultDrainTimeout,
		errFunc:      func(err error) { slog.Warn("async output write error", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.Outcome, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write sends the outcome into the channel. By default it blocks while the
// channel is full, or until ctx is done. With WithDropOnFull it returns nil
// immediately and the outcome is lost.
func (a *Async) Write(ctx context.Context, outcome model.Outcome) error {
	if a.dropOnFull {
		select {
		case a.ch <- outcome:
		default:
			a.dropped.Add(1)
			slog.Warn("async output buffer full, dropping outcome",
				"source", outcome.Source, "line", outcome.Line)
		}
		return nil
	}
	select {
	case a.ch <- outcome:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns how many outcomes were discarded because the buffer was full.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

// Close closes the channel, waits for the drain goroutine to finish, then
// closes the inner output. If the drain outlives the timeout, Close returns
// ErrDrainTimeout and the inner output is closed once the drain ends, never
// while a Write is in flight.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
			err = a.inner.Close()
		case <-time.After(a.drainTimeout):
			slog.Warn("async output drain timed out", "pending", len(a.ch))
			go func() {
				<-a.done
				if err := a.inner.Close(); err != nil {
					a.errFunc(err)
				}
			}()
			err = ErrDrainTimeout
		}
	})
	return err
}

// drain reads outcomes from the channel and writes them to the inner output.
func (a *Async) drain() {
	defer close(a.done)
	for outcome := range a.ch {
		if err := a.inner.Write(context.Background(), outcome); err != nil {
			a.errFunc(err)
		}
	}
}
