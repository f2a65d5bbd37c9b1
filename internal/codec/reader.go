package codec

import "fmt"

// Reader hands the fields of one JSON-like object to a record. The first
// failure is kept and every later read becomes a no-op.
type Reader struct {
	obj  Object
	path string
	err  error
}

// Err reports the first failure seen by the reader.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) at(key string) string {
	if r.path == "" {
		return key
	}
	return r.path + "." + key
}

func (r *Reader) failf(key, format string, args ...any) {
	if r.err == nil {
		r.err = mismatch(r.at(key), format, args...)
	}
}

// lookup treats an explicit null the same as an absent key.
func (r *Reader) lookup(key string, required bool) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.obj[key]
	if !ok || v == nil {
		if required {
			r.failf(key, "missing required field")
		}
		return nil, false
	}
	return v, true
}

func (r *Reader) String(key string, dst *string) {
	if v, ok := r.lookup(key, true); ok {
		r.readString(key, v, dst)
	}
}

func (r *Reader) OptString(key string, dst **string) {
	v, ok := r.lookup(key, false)
	if !ok {
		return
	}
	var s string
	if r.readString(key, v, &s) {
		*dst = &s
	}
}

func (r *Reader) readString(key string, v any, dst *string) bool {
	s, ok := v.(string)
	if !ok {
		r.failf(key, "expected string, got %s", kindOf(v))
		return false
	}
	*dst = s
	return true
}

func (r *Reader) Int(key string, dst *int) {
	var n int64
	if v, ok := r.lookup(key, true); ok && r.readInt(key, v, &n) {
		*dst = int(n)
	}
}

func (r *Reader) OptInt(key string, dst **int) {
	v, ok := r.lookup(key, false)
	if !ok {
		return
	}
	var n int64
	if r.readInt(key, v, &n) {
		i := int(n)
		*dst = &i
	}
}

func (r *Reader) Int64(key string, dst *int64) {
	if v, ok := r.lookup(key, true); ok {
		r.readInt(key, v, dst)
	}
}

func (r *Reader) OptInt64(key string, dst **int64) {
	v, ok := r.lookup(key, false)
	if !ok {
		return
	}
	var n int64
	if r.readInt(key, v, &n) {
		*dst = &n
	}
}

func (r *Reader) readInt(key string, v any, dst *int64) bool {
	n, ok := toInt64(v)
	if !ok {
		r.failf(key, "expected integer, got %s %v", kindOf(v), v)
		return false
	}
	*dst = n
	return true
}

func (r *Reader) Float(key string, dst *float64) {
	if v, ok := r.lookup(key, true); ok {
		r.readFloat(key, v, dst)
	}
}

func (r *Reader) OptFloat(key string, dst **float64) {
	v, ok := r.lookup(key, false)
	if !ok {
		return
	}
	var f float64
	if r.readFloat(key, v, &f) {
		*dst = &f
	}
}

func (r *Reader) readFloat(key string, v any, dst *float64) bool {
	f, ok := toFloat64(v)
	if !ok {
		r.failf(key, "expected number, got %s", kindOf(v))
		return false
	}
	*dst = f
	return true
}

func (r *Reader) Bool(key string, dst *bool) {
	v, ok := r.lookup(key, true)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		r.failf(key, "expected bool, got %s", kindOf(v))
		return
	}
	*dst = b
}

// Strings reads a required sequence of strings.
func (r *Reader) Strings(key string, dst *[]string) {
	v, ok := r.lookup(key, true)
	if !ok {
		return
	}
	if direct, ok := v.([]string); ok {
		*dst = nil
		if len(direct) > 0 {
			*dst = append([]string(nil), direct...)
		}
		return
	}
	items, ok := v.([]any)
	if !ok {
		r.failf(key, "expected array, got %s", kindOf(v))
		return
	}
	// An empty sequence decodes to nil, matching a nil field on encode.
	if len(items) == 0 {
		*dst = nil
		return
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			r.failf(fmt.Sprintf("%s[%d]", key, i), "expected string, got %s", kindOf(item))
			return
		}
		out = append(out, s)
	}
	*dst = out
}

// ReadRecord decodes a required nested record.
func ReadRecord[T any, P recordPtr[T]](r *Reader, key string, dst *T) {
	v, ok := r.lookup(key, true)
	if !ok {
		return
	}
	rec, err := decodeAt[T, P](v, r.at(key))
	if err != nil {
		r.err = err
		return
	}
	*dst = rec
}

// ReadList decodes a required homogeneous sequence of records.
func ReadList[T any, P recordPtr[T]](r *Reader, key string, dst *[]T) {
	v, ok := r.lookup(key, true)
	if !ok {
		return
	}
	items, err := decodeListAt[T, P](v, r.at(key))
	if err != nil {
		r.err = err
		return
	}
	*dst = items
}

// ReadEnum decodes a required enumeration and rejects undeclared members.
func ReadEnum[E Enum](r *Reader, key string, dst *E) {
	if v, ok := r.lookup(key, true); ok {
		readEnum(r, key, v, dst)
	}
}

// ReadOptEnum decodes an optional enumeration. Absence is not an error; a
// present value that is not a declared member is.
func ReadOptEnum[E Enum](r *Reader, key string, dst **E) {
	v, ok := r.lookup(key, false)
	if !ok {
		return
	}
	var e E
	if readEnum(r, key, v, &e) {
		*dst = &e
	}
}

func readEnum[E Enum](r *Reader, key string, v any, dst *E) bool {
	s, ok := v.(string)
	if !ok {
		r.failf(key, "expected enum string, got %s", kindOf(v))
		return false
	}
	e := E(s)
	if !e.Valid() {
		r.failf(key, "%q is not a member of %T", s, e)
		return false
	}
	*dst = e
	return true
}
