// Package codec converts between JSON-like values (map[string]any, []any and
// scalars, as produced by encoding/json or read back from Firestore) and typed
// records.
//
// Every record shape implements Record with one explicit encode/decode pair;
// the recursion into nested records, sequences and enumerations is provided
// once by the generic helpers in this package.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrSchemaMismatch is wrapped by every decode failure.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Object is the JSON-like form of a record.
type Object = map[string]any

// Record is a wire shape that knows its own fields.
type Record interface {
	EncodeFields(w *Writer)
	DecodeFields(r *Reader)
}

// Enum is a tagged enumeration backed by its raw string value.
type Enum interface {
	~string
	Valid() bool
}

type recordPtr[T any] interface {
	*T
	Record
}

// Encode returns the JSON-like form of rec. Unset optional fields are omitted.
func Encode(rec Record) Object {
	w := &Writer{obj: make(Object)}
	rec.EncodeFields(w)
	return w.obj
}

// EncodeList encodes every item of a homogeneous sequence.
func EncodeList[T any, P recordPtr[T]](items []T) []any {
	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, Encode(P(&items[i])))
	}
	return out
}

// Decode builds a T from its JSON-like form.
func Decode[T any, P recordPtr[T]](v any) (T, error) {
	return decodeAt[T, P](v, "")
}

// DecodeList builds a []T from a JSON-like sequence of objects.
func DecodeList[T any, P recordPtr[T]](v any) ([]T, error) {
	return decodeListAt[T, P](v, "")
}

func decodeAt[T any, P recordPtr[T]](v any, path string) (T, error) {
	var out T
	obj, ok := v.(map[string]any)
	if !ok {
		return out, mismatch(path, "expected object, got %s", kindOf(v))
	}

	r := &Reader{obj: obj, path: path}
	P(&out).DecodeFields(r)
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return out, nil
}

func decodeListAt[T any, P recordPtr[T]](v any, path string) ([]T, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, "expected array, got %s", kindOf(v))
	}
	if len(items) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		rec, err := decodeAt[T, P](item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func mismatch(path, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if path == "" {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, msg)
	}
	return fmt.Errorf("%w: %s: %s", ErrSchemaMismatch, path, msg)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
