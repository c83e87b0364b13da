package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/crimson-sun/journal/internal/model"
)

// streamBuffer accumulates streamed lines and decodes them as one batch when
// the window elapses or maxSize lines are pending.
type streamBuffer struct {
	process func(context.Context, []model.RawLog) ([]model.Outcome, error)
	handle  func(context.Context, model.Outcome) error
	window  time.Duration
	maxSize int // 0 means unlimited

	mu      sync.Mutex
	pending []model.RawLog
	timer   *time.Timer
}

func newStreamBuffer(process func(context.Context, []model.RawLog) ([]model.Outcome, error), handle func(context.Context, model.Outcome) error, window time.Duration, maxSize int) *streamBuffer {
	return &streamBuffer{
		process: process,
		handle:  handle,
		window:  window,
		maxSize: maxSize,
	}
}

// add appends a line to the buffer. The first line starts the flush timer.
// Returns true if the buffer is full and needs flushing.
func (b *streamBuffer) add(raw model.RawLog) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, raw)
	if len(b.pending) == 1 {
		b.timer = time.NewTimer(b.window)
	}
	return b.maxSize > 0 && len(b.pending) >= b.maxSize
}

// flushCh returns the timer's channel, or nil if no timer is active.
func (b *streamBuffer) flushCh() <-chan time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer == nil {
		return nil
	}
	return b.timer.C
}

// flush decodes all pending lines and hands the outcomes on in line order.
func (b *streamBuffer) flush(ctx context.Context) error {
	b.mu.Lock()
	raws := b.pending
	b.pending = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	if len(raws) == 0 {
		return nil
	}

	outcomes, err := b.process(ctx, raws)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := b.handle(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
