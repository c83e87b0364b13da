package model

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies why a journal line could not be decoded.
type ErrorKind int

const (
	KindMalformedInput ErrorKind = iota + 1
	KindMissingDiscriminator
	KindSchemaViolation
	KindInvalidOrdinal
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedInput:
		return "MalformedInput"
	case KindMissingDiscriminator:
		return "MissingDiscriminator"
	case KindSchemaViolation:
		return "SchemaViolation"
	case KindInvalidOrdinal:
		return "InvalidOrdinal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// LineError ties a decode failure to the line it came from.
type LineError struct {
	Line int
	Kind ErrorKind
	Err  error
}

// Sentinels for errors.Is matching by kind, regardless of line number.
var (
	ErrMalformedInput       = &LineError{Kind: KindMalformedInput}
	ErrMissingDiscriminator = &LineError{Kind: KindMissingDiscriminator}
	ErrSchemaViolation      = &LineError{Kind: KindSchemaViolation}
	ErrInvalidOrdinal       = &LineError{Kind: KindInvalidOrdinal}
)

func (e *LineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Kind, e.Err)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a LineError of the same kind. A target with
// a non-zero Line must also match the line.
func (e *LineError) Is(target error) bool {
	t, ok := target.(*LineError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Line == 0 || t.Line == e.Line)
}

// SchemaViolation reports a required field that is missing or has the wrong shape.
type SchemaViolation struct {
	Field    string
	Expected string
	Actual   string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// InvalidOrdinal reports a ranked-scale code with no named level.
type InvalidOrdinal struct {
	Field string
	Code  int64
	// Text is the code as written when it does not fit in Code; Code then
	// holds the nearest int64.
	Text  string
	Scale string
}

// CodeText returns the code as it appeared in the input.
func (e *InvalidOrdinal) CodeText() string {
	if e.Text != "" {
		return e.Text
	}
	return strconv.FormatInt(e.Code, 10)
}

func (e *InvalidOrdinal) Error() string {
	return fmt.Sprintf("field %q: code %s is not a level of the %s scale", e.Field, e.CodeText(), e.Scale)
}
