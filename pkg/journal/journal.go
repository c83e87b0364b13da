package journal

import (
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/journal/internal/connector"
	"github.com/crimson-sun/journal/internal/engine"
	"github.com/crimson-sun/journal/internal/engine/dispatch"
	"github.com/crimson-sun/journal/internal/model"
)

// Decoder decodes journal lines. Safe for concurrent use.
type Decoder struct {
	engine *engine.Engine
}

// New creates a Decoder.
func New(opts ...Option) (*Decoder, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := dispatch.Default()
	if o.kinds != nil {
		var err error
		if d, err = dispatch.Only(o.kinds...); err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
	}

	var engOpts []engine.Option
	if o.workers > 0 {
		engOpts = append(engOpts, engine.WithWorkers(o.workers))
	}
	return &Decoder{engine: engine.New(d, engOpts...)}, nil
}

// Kinds returns the event kinds decoded with a schema, sorted.
func (d *Decoder) Kinds() []string {
	return d.engine.Dispatcher().Tags()
}

// DecodeLine decodes one journal line. lineNumber is reported in errors.
// Any failure is a *LineError.
func (d *Decoder) DecodeLine(line string, lineNumber int) (Event, error) {
	return d.engine.DecodeLine(line, lineNumber)
}

// Decode decodes a single line with its origin.
func (d *Decoder) Decode(line Line) Result {
	return d.engine.Process(line)
}

// DecodeBatch decodes lines in parallel. Results are in input order.
func (d *Decoder) DecodeBatch(ctx context.Context, lines []Line) ([]Result, error) {
	return d.engine.ProcessBatch(ctx, lines)
}

// DecodeAll reads a whole journal from r, numbering lines from 1, and decodes
// it. A line that fails does not stop decoding; its Result carries the error.
// The returned error is for reading r or cancellation only.
func (d *Decoder) DecodeAll(ctx context.Context, r io.Reader, source string) ([]Result, error) {
	var lines []model.RawLog
	err := connector.ScanLines(r, source, func(raw model.RawLog) bool {
		lines = append(lines, raw)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", source, err)
	}
	return d.engine.ProcessBatch(ctx, lines)
}
