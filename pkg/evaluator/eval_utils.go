package evaluator

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dazl-dev/tokey/pkg/types"
)

// Truthy reports whether a value is truthy. The falsy set is: false, numeric
// zero, NaN, the empty string, null and undefined. Arrays and objects are
// always truthy, empty or not.
//
// This is the single truthiness rule shared by &&, ||, ! and the facade
// helpers that reduce expression results to booleans.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case types.Undefined:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}

	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// isNullish reports whether a value is null or undefined.
func isNullish(v any) bool {
	return v == nil || isUndefined(v)
}

func isUndefined(v any) bool {
	_, ok := v.(types.Undefined)
	return ok
}

// asObject reports whether a value is an object in the sense of the
// expression language: a string-keyed mapping. Arrays, scalars, null and
// undefined are not objects.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case types.Context:
		return m, true
	default:
		return nil, false
	}
}

// asArray normalizes any slice or array value to []any. The common case,
// []any from an array literal or JSON-decoded data, is returned as is.
func asArray(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// sameReference reports whether two values are the identical slice, map or
// pointer reference. Values of other kinds are never reference-equal.
func sameReference(a, b any) bool {
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}

	switch ra.Kind() {
	case reflect.Slice:
		return ra.Len() == rb.Len() && ra.UnsafePointer() == rb.UnsafePointer()
	case reflect.Map, reflect.Pointer:
		return ra.UnsafePointer() == rb.UnsafePointer()
	default:
		return false
	}
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toNumber coerces a value toward numeric for relational comparison, using
// the same table as loose equality. Values with no numeric interpretation
// become NaN.
func toNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case types.Undefined:
		return math.NaN()
	case bool:
		return boolToNumber(t)
	case string:
		return stringToNumber(t)
	}

	if f, ok := toFloat(v); ok {
		return f
	}
	return math.NaN()
}

func boolToNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// stringToNumber parses a string as a number: surrounding whitespace is
// ignored, the empty string is 0, and anything unparseable is NaN.
func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
