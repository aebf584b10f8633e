package jsonvalue

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"
)

// Wrap converts a host value to the stored representation without failing.
// Supported kinds are returned as is (host numbers become Number), maps with
// string keys become *Object, slices and arrays become *Array, and
// fmt.Stringer values become their text. Anything else yields nil; nil
// itself yields Null. Non-finite numbers also yield nil, so containers skip
// them as members and hold Null in their place as elements.
//
// Wrap never reflects over struct fields or methods. Use FromStruct or
// FromBean for that.
func Wrap(v any) any {
	wrapped, _ := wrapHost(v)
	return wrapped
}

// wrapHost is Wrap that also reports whether a non-finite number was
// dropped anywhere inside v.
func wrapHost(v any) (wrapped any, nonFinite bool) {
	var w wrapper
	defer func() {
		if r := recover(); r != nil {
			logSwallowed(defaultLogger(), "wrap", r)
			wrapped = nil
		}
	}()
	wrapped = w.value(v)
	return wrapped, w.nonFinite
}

// wrapper carries the state of one Wrap call.
type wrapper struct {
	nonFinite bool
}

func (w *wrapper) value(v any) any {
	switch x := v.(type) {
	case nil:
		return Null
	case *Object:
		if x == nil {
			return Null
		}
		return x
	case *Array:
		if x == nil {
			return Null
		}
		return x
	case nullValue, bool, string, Serializer:
		return x
	case map[string]any:
		return w.object(x)
	case []any:
		return w.array(x)
	}
	if n, ok := numberOf(v); ok {
		if !n.IsFinite() {
			w.nonFinite = true
			logSwallowed(defaultLogger(), "wrap", fmt.Sprintf("non-finite number %v", v))
			return nil
		}
		return n
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		o := &Object{members: make(map[string]any, rv.Len())}
		iter := rv.MapRange()
		for iter.Next() {
			elem := iter.Value().Interface()
			if elem == nil {
				continue
			}
			if wrapped := w.value(elem); wrapped != nil {
				o.members[iter.Key().String()] = wrapped
			}
		}
		return o
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null
		}
		arr := &Array{elems: make([]any, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			arr.elems = append(arr.elems, orNull(w.value(rv.Index(i).Interface())))
		}
		return arr
	case reflect.Pointer:
		if rv.IsNil() {
			return Null
		}
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	logSwallowed(defaultLogger(), "wrap", fmt.Sprintf("unsupported type %T", v))
	return nil
}

func (w *wrapper) object(m map[string]any) *Object {
	o := &Object{members: make(map[string]any, len(m))}
	for key, value := range m {
		if value == nil {
			continue
		}
		if wrapped := w.value(value); wrapped != nil {
			o.members[key] = wrapped
		}
	}
	return o
}

func (w *wrapper) array(s []any) *Array {
	arr := &Array{elems: make([]any, 0, len(s))}
	for _, v := range s {
		arr.elems = append(arr.elems, orNull(w.value(v)))
	}
	return arr
}

// FromStruct converts a struct (or anything goccy/go-json can encode) into
// an Object by encoding it and parsing the text back, so struct tags apply.
func FromStruct(v any) (*Object, error) {
	data, err := gojson.Marshal(v)
	if err != nil {
		return nil, &Error{Op: "from_struct", Message: err.Error(), Err: ErrTypeMismatch}
	}
	return ParseObject(string(data))
}

// FromBean builds an Object from the accessor methods of v: exported
// methods named GetX or IsX that take no arguments and return one value.
// The key is X with its first letter lower-cased, unless X starts with an
// acronym (second letter upper-case too). Nil results and results Wrap
// cannot convert are skipped.
func FromBean(v any) (*Object, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return nil, newError("from_bean", "", "nil bean", ErrTypeMismatch)
	}

	o := NewObject()
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		key := beanKey(method.Name)
		if key == "" {
			continue
		}
		mt := method.Type
		// Receiver counts as the first input.
		if mt.NumIn() != 1 || mt.NumOut() != 1 {
			continue
		}
		result, ok := callAccessor(rv.Method(i))
		if !ok || result == nil {
			continue
		}
		if w := Wrap(result); w != nil {
			o.set(key, w)
		}
	}
	return o, nil
}

func callAccessor(m reflect.Value) (result any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logSwallowed(defaultLogger(), "from_bean", r)
			result, ok = nil, false
		}
	}()
	out := m.Call(nil)[0]
	switch out.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if out.IsNil() {
			return nil, true
		}
	}
	return out.Interface(), true
}

// beanKey maps an accessor name to its member key, or "" when the name is
// not an accessor.
func beanKey(name string) string {
	var rest string
	switch {
	case strings.HasPrefix(name, "Get"):
		rest = name[3:]
	case strings.HasPrefix(name, "Is"):
		rest = name[2:]
	default:
		return ""
	}
	if rest == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(first) {
		return ""
	}
	if len(rest) == size {
		return string(unicode.ToLower(first))
	}
	second, _ := utf8.DecodeRuneInString(rest[size:])
	if unicode.IsUpper(second) {
		return rest
	}
	return string(unicode.ToLower(first)) + rest[size:]
}
