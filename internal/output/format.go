package output

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/crimson-sun/journal/internal/model"
)

// Verbosity controls how much of an outcome is rendered.
type Verbosity int

const (
	Minimal  Verbosity = iota // kind and error only
	Standard                  // adds the decoded event; failed lines keep a truncated raw line
	Full                      // event and the complete raw line
)

const rawPreviewLen = 200

// ParseVerbosity maps a config string to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(s) {
	case "minimal":
		return Minimal, nil
	case "", "standard":
		return Standard, nil
	case "full":
		return Full, nil
	default:
		return Standard, fmt.Errorf("invalid verbosity %q (must be minimal, standard, or full)", s)
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Standard:
		return "standard"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

// Record is the rendered form of one outcome.
type Record struct {
	Source string       `json:"source,omitempty" yaml:"source,omitempty"`
	Line   int          `json:"line" yaml:"line"`
	Kind   string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Event  model.Event  `json:"event,omitempty" yaml:"event,omitempty"`
	Error  *ErrorRecord `json:"error,omitempty" yaml:"error,omitempty"`
	Raw    string       `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// ErrorRecord describes why a line failed to decode.
type ErrorRecord struct {
	Kind     string `json:"kind" yaml:"kind"`
	Message  string `json:"message" yaml:"message"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// FormatOutcome renders an outcome at the given verbosity. Commander ids in
// the event are masked by their own marshalers.
func FormatOutcome(o model.Outcome, v Verbosity) Record {
	rec := Record{Source: o.Source, Line: o.Line, Kind: o.Kind()}
	if o.Err != nil {
		rec.Error = formatError(o.Err)
	}
	if v >= Standard {
		rec.Event = o.Event
	}
	switch {
	case v == Full:
		rec.Raw = o.Raw
	case v == Standard && o.Failed():
		rec.Raw = truncate(o.Raw, rawPreviewLen)
	}
	return rec
}

func formatError(err error) *ErrorRecord {
	rec := &ErrorRecord{Message: err.Error()}

	var le *model.LineError
	if errors.As(err, &le) {
		rec.Kind = le.Kind.String()
	}
	var sv *model.SchemaViolation
	var ord *model.InvalidOrdinal
	switch {
	case errors.As(err, &sv):
		rec.Field, rec.Expected, rec.Actual = sv.Field, sv.Expected, sv.Actual
	case errors.As(err, &ord):
		rec.Field = ord.Field
		rec.Expected = "a level of the " + ord.Scale + " scale"
		rec.Actual = "code " + ord.CodeText()
	}
	return rec
}

// truncate cuts s to at most maxLen bytes on a rune boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
