package codec

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

const (
	colorRed  color = "RED"
	colorBlue color = "BLUE"
)

func (c color) Valid() bool {
	return c == colorRed || c == colorBlue
}

type point struct {
	X     int
	Y     int
	Label *string
}

func (p *point) EncodeFields(w *Writer) {
	w.Int("x", p.X)
	w.Int("y", p.Y)
	w.OptString("label", p.Label)
}

func (p *point) DecodeFields(r *Reader) {
	r.Int("x", &p.X)
	r.Int("y", &p.Y)
	r.OptString("label", &p.Label)
}

type shape struct {
	Name   string
	Color  color
	Tint   *color
	Scale  *float64
	Closed bool
	Anchor point
	Points []point
	Tags   []string
}

func (s *shape) EncodeFields(w *Writer) {
	w.String("name", s.Name)
	WriteEnum(w, "color", s.Color)
	WriteOptEnum(w, "tint", s.Tint)
	w.OptFloat("scale", s.Scale)
	w.Bool("closed", s.Closed)
	w.Record("anchor", &s.Anchor)
	WriteList(w, "points", s.Points)
	w.Strings("tags", s.Tags)
}

func (s *shape) DecodeFields(r *Reader) {
	r.String("name", &s.Name)
	ReadEnum(r, "color", &s.Color)
	ReadOptEnum(r, "tint", &s.Tint)
	r.OptFloat("scale", &s.Scale)
	r.Bool("closed", &s.Closed)
	ReadRecord(r, "anchor", &s.Anchor)
	ReadList(r, "points", &s.Points)
	r.Strings("tags", &s.Tags)
}

func strPtr(s string) *string { return &s }

func sampleShape() shape {
	blue := colorBlue
	scale := 1.5
	return shape{
		Name:   "triangle",
		Color:  colorRed,
		Tint:   &blue,
		Scale:  &scale,
		Closed: true,
		Anchor: point{X: 1, Y: 2},
		Points: []point{
			{X: 0, Y: 0, Label: strPtr("origin")},
			{X: 3, Y: 0},
			{X: 0, Y: 4},
		},
		Tags: []string{"geometry", "small"},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   shape
	}{
		{name: "all fields set", in: sampleShape()},
		{name: "optional fields unset", in: shape{Name: "dot", Color: colorBlue, Anchor: point{X: 5}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Decode[shape](Encode(&tc.in))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.in, out); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeOmitsUnsetFields(t *testing.T) {
	in := shape{Name: "dot", Color: colorBlue}
	obj := Encode(&in)

	for _, key := range []string{"tint", "scale"} {
		_, present := obj[key]
		assert.Falsef(t, present, "unset field %q must be omitted", key)
	}
	anchor := obj["anchor"].(Object)
	_, present := anchor["label"]
	assert.False(t, present, "nested unset field must be omitted")

	assert.Equal(t, "BLUE", obj["color"])
	assert.Equal(t, []any{}, obj["points"])
	assert.Equal(t, []any{}, obj["tags"])
}

func TestEncodeNested(t *testing.T) {
	in := sampleShape()
	obj := Encode(&in)

	assert.Equal(t, "BLUE", obj["tint"])
	assert.Equal(t, 1.5, obj["scale"])
	assert.Equal(t, Object{"x": int64(1), "y": int64(2)}, obj["anchor"])

	points := obj["points"].([]any)
	require.Len(t, points, 3)
	assert.Equal(t, Object{"x": int64(0), "y": int64(0), "label": "origin"}, points[0])
	assert.Equal(t, []any{"geometry", "small"}, obj["tags"])
}

func TestDecodeFromJSON(t *testing.T) {
	raw := `{"name":"sq","color":"RED","closed":false,"scale":2,
		"anchor":{"x":1,"y":1},"points":[{"x":1,"y":2,"label":null}],"tags":[],
		"unknown":{"ignored":true}}`

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))

	out, err := Decode[shape](v)
	require.NoError(t, err)
	assert.Equal(t, "sq", out.Name)
	require.NotNil(t, out.Scale)
	assert.Equal(t, 2.0, *out.Scale)
	require.Len(t, out.Points, 1)
	assert.Nil(t, out.Points[0].Label, "null counts as absent")
	assert.Nil(t, out.Tint)
}

func TestDecodeAcceptsStoredNumbers(t *testing.T) {
	v := Object{"x": int64(7), "y": float64(8)}
	out, err := Decode[point](v)
	require.NoError(t, err)
	assert.Equal(t, point{X: 7, Y: 8}, out)
}

func TestDecodeSchemaMismatch(t *testing.T) {
	base := func() Object {
		in := sampleShape()
		return Encode(&in)
	}

	tests := []struct {
		name     string
		mutate   func(Object)
		wantPath string
	}{
		{name: "invalid enum", mutate: func(o Object) { o["color"] = "GREEN" }, wantPath: "color"},
		{name: "invalid optional enum", mutate: func(o Object) { o["tint"] = "PINK" }, wantPath: "tint"},
		{name: "enum of wrong type", mutate: func(o Object) { o["color"] = int64(3) }, wantPath: "color"},
		{name: "missing required field", mutate: func(o Object) { delete(o, "name") }, wantPath: "name"},
		{name: "string instead of int", mutate: func(o Object) { o["anchor"] = Object{"x": "1", "y": int64(1)} }, wantPath: "anchor.x"},
		{name: "fractional int", mutate: func(o Object) { o["anchor"] = Object{"x": 1.5, "y": int64(1)} }, wantPath: "anchor.x"},
		{name: "object instead of list", mutate: func(o Object) { o["points"] = Object{} }, wantPath: "points"},
		{name: "bad list element", mutate: func(o Object) { o["points"] = []any{Object{"x": int64(1), "y": int64(1)}, "oops"} }, wantPath: "points[1]"},
		{name: "bad string in sequence", mutate: func(o Object) { o["tags"] = []any{"a", int64(1)} }, wantPath: "tags[1]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obj := base()
			tc.mutate(obj)

			_, err := Decode[shape](obj)
			require.ErrorIs(t, err, ErrSchemaMismatch)
			assert.Contains(t, err.Error(), tc.wantPath)
		})
	}
}

func TestOmittedOptionalEnumIsNotAnError(t *testing.T) {
	obj := Object{
		"name": "dot", "color": "RED", "closed": false,
		"anchor": Object{"x": int64(0), "y": int64(0)},
		"points": []any{}, "tags": []any{},
	}
	out, err := Decode[shape](obj)
	require.NoError(t, err)
	assert.Nil(t, out.Tint)
}

func TestDecodeList(t *testing.T) {
	items, err := DecodeList[point]([]any{
		Object{"x": int64(1), "y": int64(2)},
		Object{"x": int64(3), "y": int64(4), "label": "b"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", *items[1].Label)

	_, err = DecodeList[point](Object{})
	require.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Decode[point]([]any{})
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestEmptySequencesDecodeToNil(t *testing.T) {
	in := shape{Name: "dot", Color: colorRed, Points: []point{}, Tags: []string{}}
	out, err := Decode[shape](Encode(&in))
	require.NoError(t, err)
	assert.Nil(t, out.Points)
	assert.Nil(t, out.Tags)

	obj := Encode(&in)
	obj["tags"] = []string{}
	out, err = Decode[shape](obj)
	require.NoError(t, err)
	assert.Nil(t, out.Tags)

	items, err := DecodeList[point]([]any{})
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestDecodeRejectsIntOverflow(t *testing.T) {
	for _, n := range []float64{1 << 63, math.MaxInt64, -(1 << 64)} {
		_, err := Decode[point](Object{"x": n, "y": int64(0)})
		require.ErrorIsf(t, err, ErrSchemaMismatch, "x=%v", n)
	}

	out, err := Decode[point](Object{"x": float64(-(1 << 63)), "y": float64(1 << 62)})
	require.NoError(t, err)
	assert.Equal(t, point{X: math.MinInt64, Y: 1 << 62}, out)
}
