// Package jsonenc extends encoding/json with the numeric kinds produced by
// the array helpers: sized integers and floats become plain JSON numbers
// and gonum vectors and matrices become (nested) lists.
package jsonenc

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	marshalerType     = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Normalize converts v into a value encoding/json serializes as plain
// numbers and lists. Slices, arrays, maps, pointers and struct fields are
// walked; strings, bools and json.Marshaler values are handed to
// encoding/json unchanged. Nil pointers become null. Channels, functions
// and complex numbers fail with *json.UnsupportedTypeError.
func Normalize(v any) (any, error) {
	if isNilPointer(v) {
		return nil, nil
	}
	switch x := v.(type) {
	case nil:
		return nil, nil
	case json.Marshaler:
		return x, nil
	case mat.Vector:
		return vectorList(x), nil
	case mat.Matrix:
		return matrixList(x), nil
	}
	return normalizeValue(reflect.ValueOf(v))
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func normalizeValue(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.CanInterface() && rv.Type().Implements(marshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, nil
		}
		return rv.Interface(), nil
	}
	if rv.CanAddr() && rv.CanInterface() && reflect.PointerTo(rv.Type()).Implements(marshalerType) {
		return rv.Addr().Interface(), nil
	}
	arr := rv
	if rv.Kind() == reflect.Struct && rv.CanAddr() {
		arr = rv.Addr()
	}
	if arr.CanInterface() {
		x := arr.Interface()
		if isNilPointer(x) {
			return nil, nil
		}
		switch x := x.(type) {
		case mat.Vector:
			return vectorList(x), nil
		case mat.Matrix:
			return matrixList(x), nil
		}
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalizeValue(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte keeps its base64 encoding.
			return rv.Bytes(), nil
		}
		return normalizeList(rv)
	case reflect.Array:
		return normalizeList(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		return normalizeMap(rv)
	case reflect.Struct:
		return normalizeStruct(rv)
	default:
		return nil, &json.UnsupportedTypeError{Type: rv.Type()}
	}
}

func normalizeList(rv reflect.Value) ([]any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		v, err := normalizeValue(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func normalizeMap(rv reflect.Value) (map[string]any, error) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return nil, err
		}
		v, err := normalizeValue(iter.Value())
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// normalizeStruct walks the exported fields of rv into a map keyed by
// their JSON names, honouring the "-" and omitempty tag options. Fields
// of untagged embedded structs are promoted.
func normalizeStruct(rv reflect.Value) (map[string]any, error) {
	if !rv.CanAddr() {
		c := reflect.New(rv.Type()).Elem()
		c.Set(rv)
		rv = c
	}
	out := make(map[string]any, rv.NumField())
	if err := collectFields(rv, out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectFields(rv reflect.Value, out map[string]any) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := collectFields(fv, out); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		if _, dup := out[name]; dup {
			continue
		}
		v, err := normalizeValue(fv)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		out[name] = v
	}
	return nil
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.Type().Implements(textMarshalerType) {
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", &json.UnsupportedTypeError{Type: k.Type()}
}

func vectorList(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func matrixList(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

// Marshal is json.Marshal with Normalize applied first.
func Marshal(v any) ([]byte, error) {
	n, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

// MarshalIndent is json.MarshalIndent with Normalize applied first.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	n, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(n, prefix, indent)
}

// Encoder writes normalized JSON values to an output stream.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// SetIndent behaves like json.Encoder.SetIndent.
func (e *Encoder) SetIndent(prefix, indent string) {
	e.enc.SetIndent(prefix, indent)
}

// Encode writes the JSON encoding of v followed by a newline.
func (e *Encoder) Encode(v any) error {
	n, err := Normalize(v)
	if err != nil {
		return fmt.Errorf("jsonenc: %w", err)
	}
	return e.enc.Encode(n)
}
