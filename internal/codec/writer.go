package codec

// Writer collects the fields of one record. Opt* methods skip nil values so
// that unset fields are absent from the output rather than null.
type Writer struct {
	obj Object
}

func (w *Writer) String(key, v string) {
	w.obj[key] = v
}

func (w *Writer) OptString(key string, v *string) {
	if v != nil {
		w.obj[key] = *v
	}
}

func (w *Writer) Int(key string, v int) {
	w.obj[key] = int64(v)
}

func (w *Writer) OptInt(key string, v *int) {
	if v != nil {
		w.obj[key] = int64(*v)
	}
}

func (w *Writer) Int64(key string, v int64) {
	w.obj[key] = v
}

func (w *Writer) OptInt64(key string, v *int64) {
	if v != nil {
		w.obj[key] = *v
	}
}

func (w *Writer) Float(key string, v float64) {
	w.obj[key] = v
}

func (w *Writer) OptFloat(key string, v *float64) {
	if v != nil {
		w.obj[key] = *v
	}
}

func (w *Writer) Bool(key string, v bool) {
	w.obj[key] = v
}

// Strings always emits the sequence, an empty one included.
func (w *Writer) Strings(key string, v []string) {
	items := make([]any, 0, len(v))
	for _, s := range v {
		items = append(items, s)
	}
	w.obj[key] = items
}

func (w *Writer) Record(key string, rec Record) {
	w.obj[key] = Encode(rec)
}

// WriteList emits a homogeneous sequence of records.
func WriteList[T any, P recordPtr[T]](w *Writer, key string, items []T) {
	w.obj[key] = EncodeList[T, P](items)
}

// WriteEnum emits the raw value of an enumeration.
func WriteEnum[E Enum](w *Writer, key string, v E) {
	w.obj[key] = string(v)
}

func WriteOptEnum[E Enum](w *Writer, key string, v *E) {
	if v != nil {
		w.obj[key] = string(*v)
	}
}
