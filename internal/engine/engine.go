// Package engine decodes journal lines into typed events, one line at a time.
//
// Each line is decoded in isolation: parsing, dispatch and coercion share no
// mutable state, so a bad line cannot affect any other and lines may be
// decoded in parallel.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/journal/internal/engine/coerce"
	"github.com/crimson-sun/journal/internal/engine/dispatch"
	"github.com/crimson-sun/journal/internal/model"
)

// Engine runs the parse → dispatch → coerce pipeline.
type Engine struct {
	dispatcher *dispatch.Dispatcher
	workers    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the goroutines ProcessBatch uses. Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an Engine over d, or over every known schema when d is nil.
func New(d *dispatch.Dispatcher, opts ...Option) *Engine {
	if d == nil {
		d = dispatch.Default()
	}
	e := &Engine{dispatcher: d, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatcher returns the engine's schema table.
func (e *Engine) Dispatcher() *dispatch.Dispatcher {
	return e.dispatcher
}

// DecodeLine decodes one journal line. Any failure is a *model.LineError
// carrying lineNumber.
func (e *Engine) DecodeLine(line string, lineNumber int) (model.Event, error) {
	obj, err := parseObject(line)
	if err != nil {
		return nil, &model.LineError{Line: lineNumber, Kind: model.KindMalformedInput, Err: err}
	}
	ev, err := e.dispatcher.Dispatch(obj)
	if err != nil {
		return nil, &model.LineError{Line: lineNumber, Kind: classify(err), Err: err}
	}
	return ev, nil
}

// Process decodes a single raw log into an outcome.
func (e *Engine) Process(raw model.RawLog) model.Outcome {
	ev, err := e.DecodeLine(raw.Text, raw.Line)
	return model.Outcome{
		Source: raw.Source,
		Line:   raw.Line,
		Raw:    raw.Text,
		Event:  ev,
		Err:    err,
	}
}

// ProcessBatch decodes raws in parallel. Outcomes are returned in input
// order. The only error is cancellation of ctx.
func (e *Engine) ProcessBatch(ctx context.Context, raws []model.RawLog) ([]model.Outcome, error) {
	out := make([]model.Outcome, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, raw := range raws {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Process(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("engine batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("engine batch: %w", err)
	}
	return out, nil
}

// parseObject parses line as exactly one JSON object. Numbers stay
// json.Number so unknown records keep their original text.
func parseObject(line string) (coerce.Object, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty line")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after record")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", coerce.Describe(v))
	}
	return obj, nil
}

func classify(err error) model.ErrorKind {
	var ordinal *model.InvalidOrdinal
	switch {
	case errors.Is(err, dispatch.ErrMissingDiscriminator):
		return model.KindMissingDiscriminator
	case errors.As(err, &ordinal):
		return model.KindInvalidOrdinal
	default:
		return model.KindSchemaViolation
	}
}
