package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/journal/internal/model"
	"github.com/crimson-sun/journal/internal/output"
)

// Format selects how records are rendered.
type Format string

const (
	FormatJSON  Format = "json"  // one JSON object per line
	FormatYAML  Format = "yaml"  // one YAML document per record
	FormatDebug Format = "debug" // go-spew dump of the record
)

// ParseFormat maps a config string to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatDebug:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format %q (must be json, yaml, or debug)", s)
	}
}

// Output writes rendered outcomes to stdout, or to any writer via NewWriter.
type Output struct {
	mu        sync.Mutex
	w         io.Writer
	enc       *json.Encoder
	dumper    *spew.ConfigState
	format    Format
	verbosity output.Verbosity
}

// New creates a stdout Output with verbosity-aware field omission
// and optional pretty-printed JSON.
func New(verbosity output.Verbosity, format Format, pretty bool) *Output {
	return NewWriter(os.Stdout, verbosity, format, pretty)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, verbosity output.Verbosity, format Format, pretty bool) *Output {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{
		w:   w,
		enc: enc,
		dumper: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
		format:    format,
		verbosity: verbosity,
	}
}

func (o *Output) Write(_ context.Context, outcome model.Outcome) error {
	rec := output.FormatOutcome(outcome, o.verbosity)

	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.format {
	case FormatYAML:
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("stdout output: %w", err)
		}
		if _, err := fmt.Fprintf(o.w, "---\n%s", data); err != nil {
			return fmt.Errorf("stdout output: %w", err)
		}
	case FormatDebug:
		o.dumper.Fdump(o.w, rec)
	default:
		if err := o.enc.Encode(rec); err != nil {
			return fmt.Errorf("stdout output: %w", err)
		}
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
