// Package pipeline connects a line source, the decoding engine and an output,
// and applies the scan policy: which lines are decoded, what happens to lines
// that fail, and when a scan gives up.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/crimson-sun/journal/internal/connector"
	"github.com/crimson-sun/journal/internal/model"
	"github.com/crimson-sun/journal/internal/output"
)

// ErrTooManyErrors aborts a scan once more lines than the configured maximum
// have failed to decode.
var ErrTooManyErrors = errors.New("too many line errors")

// Processor decodes raw lines. *engine.Engine implements it.
type Processor interface {
	Process(raw model.RawLog) model.Outcome
	ProcessBatch(ctx context.Context, raws []model.RawLog) ([]model.Outcome, error)
}

// Recorder receives per-line counts. *metrics.Metrics implements it.
type Recorder interface {
	Decoded(kind string)
	Failed(errKind string)
	Filtered()
	OutputFailed()
	ObserveBatch(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Decoded(string)             {}
func (nopRecorder) Failed(string)              {}
func (nopRecorder) Filtered()                  {}
func (nopRecorder) OutputFailed()              {}
func (nopRecorder) ObserveBatch(time.Duration) {}

// Pipeline connects a connector, processor, and output.
type Pipeline struct {
	connector connector.Connector
	processor Processor
	output    output.Output
	filter    *Filter
	recorder  Recorder

	maxErrors   int // 0 = unlimited
	skipErrors  bool
	batchWindow time.Duration // 0 = decode each streamed line on arrival
	batchSize   int

	lineErrors atomic.Int64
	filtered   atomic.Int64
	written    atomic.Int64
}

// Option configures optional Pipeline behavior.
type Option func(*Pipeline)

// WithMaxErrors aborts the scan with ErrTooManyErrors once more than n lines
// have failed. 0 means unlimited.
func WithMaxErrors(n int) Option {
	return func(p *Pipeline) { p.maxErrors = n }
}

// WithSkipErrors drops failed lines instead of writing them to the output.
// They are still logged and counted.
func WithSkipErrors() Option {
	return func(p *Pipeline) { p.skipErrors = true }
}

// WithFilter selects which lines are decoded by event kind.
func WithFilter(f *Filter) Option {
	return func(p *Pipeline) { p.filter = f }
}

// WithBatching makes Stream collect lines for up to window (or maxSize lines)
// and decode them as one parallel batch. maxSize 0 means no size limit.
func WithBatching(window time.Duration, maxSize int) Option {
	return func(p *Pipeline) {
		p.batchWindow = window
		p.batchSize = maxSize
	}
}

// WithRecorder reports per-line counts to r.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, proc Processor, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		connector: conn,
		processor: proc,
		output:    out,
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stream starts the pipeline in streaming mode, processing lines as they arrive.
// Blocks until the context is cancelled, the source closes, or the scan aborts.
func (p *Pipeline) Stream(ctx context.Context, cfg connector.ConnectorConfig) error {
	ch, err := p.connector.Stream(ctx, cfg)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}
	if p.batchWindow > 0 {
		return p.streamBatched(ctx, ch)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-ch:
			if !ok {
				return nil
			}
			if !p.allow(raw) {
				continue
			}
			if err := p.handle(ctx, p.processor.Process(raw)); err != nil {
				return err
			}
		}
	}
}

func (p *Pipeline) streamBatched(ctx context.Context, ch <-chan model.RawLog) error {
	buf := newStreamBuffer(p.processBatch, p.handle, p.batchWindow, p.batchSize)
	for {
		select {
		case <-ctx.Done():
			// Decode what already arrived before giving up.
			if err := buf.flush(context.WithoutCancel(ctx)); err != nil {
				return err
			}
			return ctx.Err()
		case raw, ok := <-ch:
			if !ok {
				return buf.flush(ctx)
			}
			if !p.allow(raw) {
				continue
			}
			if buf.add(raw) {
				if err := buf.flush(ctx); err != nil {
					return err
				}
			}
		case <-buf.flushCh():
			if err := buf.flush(ctx); err != nil {
				return err
			}
		}
	}
}

// Query runs the pipeline in one-shot mode over the lines the connector
// returns. Lines are decoded in parallel and written in source order.
func (p *Pipeline) Query(ctx context.Context, cfg connector.ConnectorConfig, params connector.QueryParams) error {
	raws, err := p.connector.Query(ctx, cfg, params)
	if err != nil {
		return fmt.Errorf("pipeline query: %w", err)
	}

	kept := raws[:0:0]
	for _, raw := range raws {
		if p.allow(raw) {
			kept = append(kept, raw)
		}
	}

	outcomes, err := p.processBatch(ctx, kept)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := p.handle(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) allow(raw model.RawLog) bool {
	if p.filter.Allow(raw.Text) {
		return true
	}
	p.filtered.Add(1)
	p.recorder.Filtered()
	return false
}

func (p *Pipeline) processBatch(ctx context.Context, raws []model.RawLog) ([]model.Outcome, error) {
	start := time.Now()
	outcomes, err := p.processor.ProcessBatch(ctx, raws)
	if err != nil {
		return nil, fmt.Errorf("pipeline process batch: %w", err)
	}
	p.recorder.ObserveBatch(time.Since(start))
	return outcomes, nil
}

// handle applies the error policy to one outcome and writes it.
func (p *Pipeline) handle(ctx context.Context, o model.Outcome) error {
	if o.Failed() {
		n := p.lineErrors.Add(1)
		kind := errorKind(o.Err)
		p.recorder.Failed(kind)
		slog.Warn("line failed to decode", "source", o.Source, "line", o.Line, "kind", kind, "error", o.Err)
		if p.maxErrors > 0 && n > int64(p.maxErrors) {
			return fmt.Errorf("%w: %d lines failed (max %d)", ErrTooManyErrors, n, p.maxErrors)
		}
		if p.skipErrors {
			return nil
		}
	} else {
		p.recorder.Decoded(o.Kind())
	}
	if err := p.output.Write(ctx, o); err != nil {
		p.recorder.OutputFailed()
		return fmt.Errorf("pipeline output: %w", err)
	}
	p.written.Add(1)
	return nil
}

func errorKind(err error) string {
	var le *model.LineError
	if errors.As(err, &le) {
		return le.Kind.String()
	}
	return "unknown"
}

// Stats counts what the pipeline has done so far.
type Stats struct {
	Written    int64
	LineErrors int64
	Filtered   int64
}

// Stats returns the running counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Written:    p.written.Load(),
		LineErrors: p.lineErrors.Load(),
		Filtered:   p.filtered.Load(),
	}
}

// Close shuts down the output and logs the final counters.
func (p *Pipeline) Close() error {
	s := p.Stats()
	slog.Info("pipeline closed", "written", s.Written, "line_errors", s.LineErrors, "filtered", s.Filtered)
	return p.output.Close()
}
