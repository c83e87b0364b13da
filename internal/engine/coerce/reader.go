package coerce

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/crimson-sun/journal/internal/model"
)

// Reader reads the fields of one Layout from one record. The first failure
// is kept and every later accessor returns a zero value; nested readers share
// their parent's failure so the whole record reports one error.
type Reader struct {
	layout *Layout
	obj    Object
	path   string
	err    *error
}

// NewReader binds layout to obj. If the layout has a prefix, only the
// prefixed entries of obj are visible, with the prefix stripped.
func NewReader(layout *Layout, obj Object) *Reader {
	var err error
	return newReader(layout, obj, "", &err)
}

func newReader(layout *Layout, obj Object, path string, errp *error) *Reader {
	if layout.prefix != "" {
		obj = StripPrefix(obj, layout.prefix)
	}
	return &Reader{layout: layout, obj: obj, path: path, err: errp}
}

// Err returns the first failure, if any.
func (r *Reader) Err() error { return *r.err }

// With reads another layout from the same record; used to flatten shared
// blocks into one record.
func (r *Reader) With(layout *Layout) *Reader {
	return newReader(layout, r.obj, r.path, r.err)
}

func (r *Reader) failed() bool { return *r.err != nil }

func (r *Reader) fail(err error) {
	if *r.err == nil {
		*r.err = err
	}
}

func (r *Reader) qualify(name string) string {
	name = r.layout.prefix + name
	if r.path == "" {
		return name
	}
	return r.path + "." + name
}

func (r *Reader) violation(name, expected, actual string) {
	r.fail(&model.SchemaViolation{Field: r.qualify(name), Expected: expected, Actual: actual})
}

// lookup returns the raw value of a declared field. present is false when the
// key is not in the record.
func (r *Reader) lookup(canonical string) (name string, v any, present bool, ok bool) {
	if r.failed() {
		return "", nil, false, false
	}
	name, declared := r.layout.input[canonical]
	if !declared {
		r.fail(fmt.Errorf("coerce: field %q is not declared in layout %s", canonical, r.layout.name))
		return "", nil, false, false
	}
	v, present = r.obj[name]
	return name, v, present, true
}

// required is lookup for fields that must be present.
func (r *Reader) required(canonical, expected string) (string, any, bool) {
	name, v, present, ok := r.lookup(canonical)
	if !ok {
		return "", nil, false
	}
	if !present {
		r.violation(name, expected, "missing")
		return "", nil, false
	}
	return name, v, true
}

// Has reports whether the record carries the field at all.
func (r *Reader) Has(canonical string) bool {
	name, ok := r.layout.input[canonical]
	if !ok {
		return false
	}
	_, present := r.obj[name]
	return present
}

func (r *Reader) String(canonical string) string {
	name, v, ok := r.required(canonical, "string")
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		r.violation(name, "string", Describe(v))
	}
	return s
}

func (r *Reader) Bool(canonical string) bool {
	name, v, ok := r.required(canonical, "bool")
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		r.violation(name, "bool", Describe(v))
	}
	return b
}

func (r *Reader) Int64(canonical string) int64 {
	name, v, ok := r.required(canonical, "integer")
	if !ok {
		return 0
	}
	i, isInt := toInt64(v)
	if !isInt {
		r.violation(name, "integer", Describe(v))
	}
	return i
}

func (r *Reader) Uint64(canonical string) uint64 {
	name, v, ok := r.required(canonical, "unsigned integer")
	if !ok {
		return 0
	}
	u, isUint := toUint64(v)
	if !isUint {
		r.violation(name, "unsigned integer", Describe(v))
	}
	return u
}

func (r *Reader) Uint32(canonical string) uint32 {
	name, v, ok := r.required(canonical, "unsigned 32-bit integer")
	if !ok {
		return 0
	}
	u, isUint := toUint64(v)
	if !isUint || u > math.MaxUint32 {
		r.violation(name, "unsigned 32-bit integer", Describe(v))
		return 0
	}
	return uint32(u)
}

func (r *Reader) Float64(canonical string) float64 {
	name, v, ok := r.required(canonical, "number")
	if !ok {
		return 0
	}
	f, isNumber := toFloat64(v)
	if !isNumber {
		r.violation(name, "number", Describe(v))
	}
	return f
}

// OptionalString reads a required string field in which "" (or null) means
// absent. Non-string values are violations.
func (r *Reader) OptionalString(canonical string) model.Optional[string] {
	name, v, ok := r.required(canonical, "string")
	if !ok {
		return model.None[string]()
	}
	switch t := v.(type) {
	case nil:
		return model.None[string]()
	case string:
		if t == "" {
			return model.None[string]()
		}
		return model.Some(t)
	default:
		r.violation(name, "string", Describe(v))
		return model.None[string]()
	}
}

// NullableString reads a string field that may be missing or null.
func (r *Reader) NullableString(canonical string) model.Optional[string] {
	name, v, present, ok := r.lookup(canonical)
	if !ok || !present || v == nil {
		return model.None[string]()
	}
	s, isString := v.(string)
	if !isString {
		r.violation(name, "string", Describe(v))
		return model.None[string]()
	}
	return model.Some(s)
}

// NullableUint64 reads an unsigned integer field that may be missing or null.
func (r *Reader) NullableUint64(canonical string) model.Optional[uint64] {
	name, v, present, ok := r.lookup(canonical)
	if !ok || !present || v == nil {
		return model.None[uint64]()
	}
	u, isUint := toUint64(v)
	if !isUint {
		r.violation(name, "unsigned integer", Describe(v))
		return model.None[uint64]()
	}
	return model.Some(u)
}

// NullableTime reads an RFC 3339 timestamp that may be missing or null.
func (r *Reader) NullableTime(canonical string) model.Optional[time.Time] {
	name, v, present, ok := r.lookup(canonical)
	if !ok || !present || v == nil {
		return model.None[time.Time]()
	}
	s, isString := v.(string)
	if !isString {
		r.violation(name, "RFC 3339 timestamp", Describe(v))
		return model.None[time.Time]()
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		r.violation(name, "RFC 3339 timestamp", fmt.Sprintf("string %q", s))
		return model.None[time.Time]()
	}
	return model.Some(t)
}

// Enum reads a string that must be one of allowed.
func (r *Reader) Enum(canonical string, allowed ...string) string {
	name, v, ok := r.required(canonical, "string")
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		r.violation(name, "string", Describe(v))
		return ""
	}
	if !slices.Contains(allowed, s) {
		r.violation(name, fmt.Sprintf("one of %q", allowed), fmt.Sprintf("string %q", s))
		return ""
	}
	return s
}

// OptionalEnum reads a required string in which "" means absent and any
// other value must be one of allowed.
func (r *Reader) OptionalEnum(canonical string, allowed ...string) model.Optional[string] {
	v := r.OptionalString(canonical)
	if !v.Present || slices.Contains(allowed, v.Value) {
		return v
	}
	name := r.layout.input[canonical]
	r.violation(name, fmt.Sprintf("\"\" or one of %q", allowed), fmt.Sprintf("string %q", v.Value))
	return model.None[string]()
}

// Ordinal reads an integer code and maps it to its level on scale. Codes
// outside the scale fail with *model.InvalidOrdinal.
func (r *Reader) Ordinal(canonical string, scale *model.RankedScale) model.Level {
	name, v, ok := r.required(canonical, "integer code")
	if !ok {
		return model.Level{}
	}
	code, isInt := toInt64(v)
	if !isInt {
		if text, ok := bigInteger(v); ok {
			code = math.MaxInt64
			if strings.HasPrefix(text, "-") {
				code = math.MinInt64
			}
			r.fail(&model.InvalidOrdinal{Field: r.qualify(name), Code: code, Text: text, Scale: scale.Name()})
			return model.Level{}
		}
		r.violation(name, "integer code", Describe(v))
		return model.Level{}
	}
	level, inRange := scale.Level(code)
	if !inRange {
		r.fail(&model.InvalidOrdinal{Field: r.qualify(name), Code: code, Scale: scale.Name()})
		return model.Level{}
	}
	return level
}

// Object reads a nested object field against layout. On failure the returned
// reader is empty and shares the failure.
func (r *Reader) Object(canonical string, layout *Layout) *Reader {
	name, v, ok := r.required(canonical, "object")
	if !ok {
		return newReader(layout, Object{}, r.qualify(canonical), r.err)
	}
	obj, isObject := v.(map[string]any)
	if !isObject {
		r.violation(name, "object", Describe(v))
		return newReader(layout, Object{}, r.qualify(name), r.err)
	}
	return newReader(layout, obj, r.qualify(name), r.err)
}

// Objects reads an array of objects, binding each element to layout.
func (r *Reader) Objects(canonical string, layout *Layout) []*Reader {
	name, v, ok := r.required(canonical, "array")
	if !ok {
		return nil
	}
	items, isArray := v.([]any)
	if !isArray {
		r.violation(name, "array", Describe(v))
		return nil
	}
	readers := make([]*Reader, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", r.qualify(name), i)
		obj, isObject := item.(map[string]any)
		if !isObject {
			r.fail(&model.SchemaViolation{Field: path, Expected: "object", Actual: Describe(item)})
			return nil
		}
		readers = append(readers, newReader(layout, obj, path, r.err))
	}
	return readers
}

// Float3 reads an array of exactly three numbers.
func (r *Reader) Float3(canonical string) [3]float64 {
	var out [3]float64
	name, v, ok := r.required(canonical, "array of 3 numbers")
	if !ok {
		return out
	}
	items, isArray := v.([]any)
	if !isArray || len(items) != 3 {
		r.violation(name, "array of 3 numbers", Describe(v))
		return out
	}
	for i, item := range items {
		f, isNumber := toFloat64(item)
		if !isNumber {
			r.fail(&model.SchemaViolation{
				Field:    fmt.Sprintf("%s[%d]", r.qualify(name), i),
				Expected: "number",
				Actual:   Describe(item),
			})
			return [3]float64{}
		}
		out[i] = f
	}
	return out
}
