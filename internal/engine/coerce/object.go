package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Object is a parsed JSON object.
type Object = map[string]any

// StripPrefix returns the entries of obj whose key starts with prefix, with
// the prefix removed. Other entries are dropped.
func StripPrefix(obj Object, prefix string) Object {
	out := make(Object)
	for k, v := range obj {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			out[rest] = v
		}
	}
	return out
}

// Describe names the JSON shape of v for error messages.
func Describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number:
		return "number " + t.String()
	case float64, float32, int, int64, int32, uint64, uint32:
		return fmt.Sprintf("number %v", t)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		return i, err == nil
	case float64:
		if t == math.Trunc(t) && t >= math.MinInt64 && t < math.MaxInt64 {
			return int64(t), true
		}
	case int:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

// bigInteger reports whether v is a whole number too large for int64 and
// returns its text.
func bigInteger(v any) (string, bool) {
	switch t := v.(type) {
	case json.Number:
		if _, ok := new(big.Int).SetString(t.String(), 10); ok {
			return t.String(), true
		}
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'f', -1, 64), true
		}
	}
	return "", false
}

func toUint64(v any) (uint64, bool) {
	switch t := v.(type) {
	case json.Number:
		u, err := strconv.ParseUint(t.String(), 10, 64)
		return u, err == nil
	case float64:
		if t == math.Trunc(t) && t >= 0 && t < math.MaxUint64 {
			return uint64(t), true
		}
	case int:
		if t >= 0 {
			return uint64(t), true
		}
	case int64:
		if t >= 0 {
			return uint64(t), true
		}
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
