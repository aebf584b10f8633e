package jsonvalue

import (
	"iter"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// Array is an ordered sequence of values. Duplicates and Null elements are
// permitted.
//
// An Array is not safe for concurrent mutation.
type Array struct {
	elems []any
}

// NewArray returns an empty array.
func NewArray() *Array {
	return &Array{}
}

// ArrayOf builds an array from values, normalizing each one.
func ArrayOf(values ...any) (*Array, error) {
	arr := &Array{elems: make([]any, 0, len(values))}
	for _, v := range values {
		if err := arr.Put(v); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// ArrayFromSlice wraps every element of s. Nil elements and elements Wrap
// cannot convert become Null.
func ArrayFromSlice(s []any) *Array {
	var w wrapper
	return w.array(s)
}

// Len returns the number of elements, Null included.
func (a *Array) Len() int {
	return len(a.elems)
}

// Opt returns the element at index, or nil when index is out of range.
func (a *Array) Opt(index int) any {
	if index < 0 || index >= len(a.elems) {
		return nil
	}
	return a.elems[index]
}

// IsNull reports whether the element at index is missing or Null.
func (a *Array) IsNull(index int) bool {
	return IsNull(a.Opt(index))
}

// Get returns the element at index.
func (a *Array) Get(index int) (any, error) {
	v := a.Opt(index)
	if v == nil {
		return nil, notFound("get", indexPath(index))
	}
	return v, nil
}

// GetBool returns a boolean element.
func (a *Array) GetBool(index int) (bool, error) {
	v, err := a.Get(index)
	if err != nil {
		return false, err
	}
	b, ok := coerceBool(v)
	if !ok {
		return false, typeMismatch("get_bool", indexPath(index), "boolean", v)
	}
	return b, nil
}

// GetNumber returns a numeric element, parsing numeric strings.
func (a *Array) GetNumber(index int) (Number, error) {
	v, err := a.Get(index)
	if err != nil {
		return Number{}, err
	}
	n, ok := coerceNumber(v)
	if !ok {
		return Number{}, typeMismatch("get_number", indexPath(index), "number", v)
	}
	return n, nil
}

// GetInt returns a numeric element as an int.
func (a *Array) GetInt(index int) (int, error) {
	n, err := a.GetInt64(index)
	return int(n), err
}

// GetInt64 returns a numeric element as an int64.
func (a *Array) GetInt64(index int) (int64, error) {
	v, err := a.Get(index)
	if err != nil {
		return 0, err
	}
	n, ok := coerceInt64(v)
	if !ok {
		return 0, typeMismatch("get_int", indexPath(index), "number", v)
	}
	return n, nil
}

// GetFloat64 returns a numeric element as a float64.
func (a *Array) GetFloat64(index int) (float64, error) {
	v, err := a.Get(index)
	if err != nil {
		return 0, err
	}
	f, ok := coerceFloat64(v)
	if !ok {
		return 0, typeMismatch("get_float", indexPath(index), "number", v)
	}
	return f, nil
}

// GetBigInt returns a numeric element as a big integer.
func (a *Array) GetBigInt(index int) (*big.Int, error) {
	v, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	bi, ok := coerceBigInt(v)
	if !ok {
		return nil, typeMismatch("get_big_int", indexPath(index), "number", v)
	}
	return bi, nil
}

// GetDecimal returns a numeric element as a decimal.
func (a *Array) GetDecimal(index int) (*apd.Decimal, error) {
	v, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	d, ok := coerceDecimal(v)
	if !ok {
		return nil, typeMismatch("get_decimal", indexPath(index), "number", v)
	}
	return d, nil
}

// GetString returns a string element.
func (a *Array) GetString(index int) (string, error) {
	v, err := a.Get(index)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch("get_string", indexPath(index), "string", v)
	}
	return s, nil
}

// GetObject returns an object element.
func (a *Array) GetObject(index int) (*Object, error) {
	v, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, typeMismatch("get_object", indexPath(index), "object", v)
	}
	return obj, nil
}

// GetArray returns an array element.
func (a *Array) GetArray(index int) (*Array, error) {
	v, err := a.Get(index)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, typeMismatch("get_array", indexPath(index), "array", v)
	}
	return arr, nil
}

// OptBool returns a boolean element, a "true" or "false" string, or def.
func (a *Array) OptBool(index int, def bool) bool {
	if b, ok := coerceBool(a.Opt(index)); ok {
		return b
	}
	return def
}

// OptNumber returns a numeric element or def.
func (a *Array) OptNumber(index int, def Number) Number {
	if n, ok := coerceNumber(a.Opt(index)); ok {
		return n
	}
	return def
}

// OptInt returns a numeric element as an int or def.
func (a *Array) OptInt(index int, def int) int {
	if n, ok := coerceInt64(a.Opt(index)); ok {
		return int(n)
	}
	return def
}

// OptInt64 returns a numeric element as an int64 or def.
func (a *Array) OptInt64(index int, def int64) int64 {
	if n, ok := coerceInt64(a.Opt(index)); ok {
		return n
	}
	return def
}

// OptFloat64 returns a numeric element as a float64 or def.
func (a *Array) OptFloat64(index int, def float64) float64 {
	if f, ok := coerceFloat64(a.Opt(index)); ok {
		return f
	}
	return def
}

// OptBigInt returns a numeric element as a big integer or def.
func (a *Array) OptBigInt(index int, def *big.Int) *big.Int {
	if bi, ok := coerceBigInt(a.Opt(index)); ok {
		return bi
	}
	return def
}

// OptDecimal returns a numeric element as a decimal or def.
func (a *Array) OptDecimal(index int, def *apd.Decimal) *apd.Decimal {
	if d, ok := coerceDecimal(a.Opt(index)); ok {
		return d
	}
	return def
}

// OptString returns a string element or def. Null yields def; other
// elements are rendered as JSON text.
func (a *Array) OptString(index int, def string) string {
	if s, ok := coerceString(a.Opt(index)); ok {
		return s
	}
	return def
}

// OptObject returns an object element or def.
func (a *Array) OptObject(index int, def *Object) *Object {
	if obj, ok := a.Opt(index).(*Object); ok {
		return obj
	}
	return def
}

// OptArray returns an array element or def.
func (a *Array) OptArray(index int, def *Array) *Array {
	if arr, ok := a.Opt(index).(*Array); ok {
		return arr
	}
	return def
}

// Put appends value. Unlike Object.Put, nil is not a removal request: pass
// Null to store a null element.
func (a *Array) Put(value any) error {
	if value == nil {
		return newError("put", indexPath(len(a.elems)), "nil is not a value, use Null", ErrTypeMismatch)
	}
	v, err := normalize("put", indexPath(len(a.elems)), value)
	if err != nil {
		return err
	}
	a.elems = append(a.elems, v)
	return nil
}

// PutAt replaces the element at index. Writing past the end pads the gap
// with Null.
func (a *Array) PutAt(index int, value any) error {
	if index < 0 {
		return notFound("put", indexPath(index))
	}
	if value == nil {
		return newError("put", indexPath(index), "nil is not a value, use Null", ErrTypeMismatch)
	}
	v, err := normalize("put", indexPath(index), value)
	if err != nil {
		return err
	}
	if index < len(a.elems) {
		a.elems[index] = v
		return nil
	}
	for len(a.elems) < index {
		a.elems = append(a.elems, Null)
	}
	a.elems = append(a.elems, v)
	return nil
}

// Remove deletes the element at index and returns it, or nil when index is
// out of range.
func (a *Array) Remove(index int) any {
	if index < 0 || index >= len(a.elems) {
		return nil
	}
	v := a.elems[index]
	a.elems = append(a.elems[:index], a.elems[index+1:]...)
	return v
}

// All iterates over index/value pairs.
func (a *Array) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range a.elems {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Join renders every element as JSON text separated by sep.
func (a *Array) Join(sep string) (string, error) {
	var sb strings.Builder
	for i, v := range a.elems {
		if i > 0 {
			sb.WriteString(sep)
		}
		text, err := ValueToString(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// ToList deep-copies a into plain Go values.
func (a *Array) ToList() []any {
	list := make([]any, len(a.elems))
	for i, v := range a.elems {
		list[i] = toNative(v)
	}
	return list
}

// ToStringList renders every element as text: strings unquoted, Null as
// "null", everything else as JSON text.
func (a *Array) ToStringList() []string {
	list := make([]string, len(a.elems))
	for i, v := range a.elems {
		if s, ok := coerceString(v); ok {
			list[i] = s
		} else {
			list[i] = "null"
		}
	}
	return list
}

// ToObject pairs names with the elements of a by position. It returns nil
// when either side is empty and a fault when a name is not a string.
func (a *Array) ToObject(names *Array) (*Object, error) {
	if names == nil || names.Len() == 0 || len(a.elems) == 0 {
		return nil, nil
	}
	o := NewObject()
	for i := range names.elems {
		key, err := names.GetString(i)
		if err != nil {
			return nil, err
		}
		if v := a.Opt(i); v != nil {
			o.members[key] = v
		}
	}
	return o, nil
}

// Similar reports whether other is an array of similar elements in the same
// order.
func (a *Array) Similar(other any) bool {
	return Similar(a, other)
}

func (a *Array) similar(other *Array) bool {
	if a == other {
		return true
	}
	if other == nil || len(a.elems) != len(other.elems) {
		return false
	}
	for i, v := range a.elems {
		if !similarValues(v, other.elems[i]) {
			return false
		}
	}
	return true
}

// Query resolves a JSON Pointer against a.
func (a *Array) Query(pointer string) (any, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return p.Query(a)
}

// OptQuery resolves a JSON Pointer against a, returning nil on any failure.
func (a *Array) OptQuery(pointer string) any {
	return OptQuery(a, pointer)
}

func indexPath(index int) string {
	return "[" + strconv.Itoa(index) + "]"
}
