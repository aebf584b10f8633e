package jsonvalue

import (
	"iter"
	"math/big"
	"sort"

	"github.com/cockroachdb/apd/v2"
)

// Object is an unordered collection of name/value pairs. Member order is not
// significant; writers emit members sorted by key.
//
// An Object is not safe for concurrent mutation.
type Object struct {
	members map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{members: make(map[string]any)}
}

// ObjectFromMap wraps every value of m. Nil values and values Wrap cannot
// convert are skipped.
func ObjectFromMap(m map[string]any) *Object {
	var w wrapper
	return w.object(m)
}

// Subset copies the named members of src that are present into a new object.
func Subset(src *Object, names ...string) *Object {
	o := NewObject()
	for _, name := range names {
		if v, ok := src.members[name]; ok {
			o.members[name] = v
		}
	}
	return o
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// Has reports whether key is present, even if it holds Null.
func (o *Object) Has(key string) bool {
	_, ok := o.members[key]
	return ok
}

// IsNull reports whether key is absent or holds Null.
func (o *Object) IsNull(key string) bool {
	return IsNull(o.members[key])
}

// Opt returns the value stored under key, or nil when the key is absent.
func (o *Object) Opt(key string) any {
	return o.members[key]
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, error) {
	v, ok := o.members[key]
	if !ok {
		return nil, notFound("get", key)
	}
	return v, nil
}

// GetBool returns a boolean member. The strings "true" and "false" are
// accepted in any case.
func (o *Object) GetBool(key string) (bool, error) {
	v, err := o.Get(key)
	if err != nil {
		return false, err
	}
	b, ok := coerceBool(v)
	if !ok {
		return false, typeMismatch("get_bool", key, "boolean", v)
	}
	return b, nil
}

// GetNumber returns a numeric member, parsing numeric strings.
func (o *Object) GetNumber(key string) (Number, error) {
	v, err := o.Get(key)
	if err != nil {
		return Number{}, err
	}
	n, ok := coerceNumber(v)
	if !ok {
		return Number{}, typeMismatch("get_number", key, "number", v)
	}
	return n, nil
}

// GetInt returns a numeric member as an int, truncating fractions.
func (o *Object) GetInt(key string) (int, error) {
	n, err := o.GetInt64(key)
	return int(n), err
}

// GetInt64 returns a numeric member as an int64, truncating fractions.
func (o *Object) GetInt64(key string) (int64, error) {
	v, err := o.Get(key)
	if err != nil {
		return 0, err
	}
	n, ok := coerceInt64(v)
	if !ok {
		return 0, typeMismatch("get_int", key, "number", v)
	}
	return n, nil
}

// GetFloat64 returns a numeric member as a float64.
func (o *Object) GetFloat64(key string) (float64, error) {
	v, err := o.Get(key)
	if err != nil {
		return 0, err
	}
	f, ok := coerceFloat64(v)
	if !ok {
		return 0, typeMismatch("get_float", key, "number", v)
	}
	return f, nil
}

// GetBigInt returns a numeric member as a big integer.
func (o *Object) GetBigInt(key string) (*big.Int, error) {
	v, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	bi, ok := coerceBigInt(v)
	if !ok {
		return nil, typeMismatch("get_big_int", key, "number", v)
	}
	return bi, nil
}

// GetDecimal returns a numeric member as an arbitrary-precision decimal.
func (o *Object) GetDecimal(key string) (*apd.Decimal, error) {
	v, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	d, ok := coerceDecimal(v)
	if !ok {
		return nil, typeMismatch("get_decimal", key, "number", v)
	}
	return d, nil
}

// GetString returns a string member. Other kinds are not converted.
func (o *Object) GetString(key string) (string, error) {
	v, err := o.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch("get_string", key, "string", v)
	}
	return s, nil
}

// GetObject returns an object member.
func (o *Object) GetObject(key string) (*Object, error) {
	v, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, typeMismatch("get_object", key, "object", v)
	}
	return obj, nil
}

// GetArray returns an array member.
func (o *Object) GetArray(key string) (*Array, error) {
	v, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, typeMismatch("get_array", key, "array", v)
	}
	return arr, nil
}

// OptBool returns a boolean member or def.
func (o *Object) OptBool(key string, def bool) bool {
	if b, ok := coerceBool(o.members[key]); ok {
		return b
	}
	return def
}

// OptNumber returns a numeric member or def.
func (o *Object) OptNumber(key string, def Number) Number {
	if n, ok := coerceNumber(o.members[key]); ok {
		return n
	}
	return def
}

// OptInt returns a numeric member as an int or def.
func (o *Object) OptInt(key string, def int) int {
	if n, ok := coerceInt64(o.members[key]); ok {
		return int(n)
	}
	return def
}

// OptInt64 returns a numeric member as an int64 or def.
func (o *Object) OptInt64(key string, def int64) int64 {
	if n, ok := coerceInt64(o.members[key]); ok {
		return n
	}
	return def
}

// OptFloat64 returns a numeric member as a float64 or def.
func (o *Object) OptFloat64(key string, def float64) float64 {
	if f, ok := coerceFloat64(o.members[key]); ok {
		return f
	}
	return def
}

// OptBigInt returns a numeric member as a big integer or def.
func (o *Object) OptBigInt(key string, def *big.Int) *big.Int {
	if bi, ok := coerceBigInt(o.members[key]); ok {
		return bi
	}
	return def
}

// OptDecimal returns a numeric member as a decimal or def.
func (o *Object) OptDecimal(key string, def *apd.Decimal) *apd.Decimal {
	if d, ok := coerceDecimal(o.members[key]); ok {
		return d
	}
	return def
}

// OptString returns a member as text or def when the key is absent or Null.
// Non-string members are rendered as JSON text.
func (o *Object) OptString(key string, def string) string {
	if s, ok := coerceString(o.members[key]); ok {
		return s
	}
	return def
}

// OptObject returns an object member or def.
func (o *Object) OptObject(key string, def *Object) *Object {
	if obj, ok := o.members[key].(*Object); ok {
		return obj
	}
	return def
}

// OptArray returns an array member or def.
func (o *Object) OptArray(key string, def *Array) *Array {
	if arr, ok := o.members[key].(*Array); ok {
		return arr
	}
	return def
}

// Put stores value under key. A nil value removes the key; pass Null to
// store an explicit JSON null.
func (o *Object) Put(key string, value any) error {
	if value == nil {
		delete(o.members, key)
		return nil
	}
	v, err := normalize("put", key, value)
	if err != nil {
		return err
	}
	o.set(key, v)
	return nil
}

// PutOnce stores value only if key is not already present. A nil value is
// ignored.
func (o *Object) PutOnce(key string, value any) error {
	if value == nil {
		return nil
	}
	if o.Has(key) {
		return newError("put_once", key, "duplicate key", ErrDuplicateKey)
	}
	return o.Put(key, value)
}

// PutOpt stores value unless it is nil.
func (o *Object) PutOpt(key string, value any) error {
	if value == nil {
		return nil
	}
	return o.Put(key, value)
}

// Accumulate collects values under key. The first value is stored as is
// (an array value is wrapped in a one-element array), a second value
// promotes the member to an array [old, value], later values are appended.
func (o *Object) Accumulate(key string, value any) error {
	v, err := normalize("accumulate", key, orNull(value))
	if err != nil {
		return err
	}
	switch current := o.members[key].(type) {
	case nil:
		if _, isArray := v.(*Array); isArray {
			v = &Array{elems: []any{v}}
		}
		o.set(key, v)
	case *Array:
		current.elems = append(current.elems, v)
	default:
		o.set(key, &Array{elems: []any{current, v}})
	}
	return nil
}

// Append adds value to the array stored under key, creating a one-element
// array when the key is absent. Any other member kind is a fault.
func (o *Object) Append(key string, value any) error {
	v, err := normalize("append", key, orNull(value))
	if err != nil {
		return err
	}
	switch current := o.members[key].(type) {
	case nil:
		o.set(key, &Array{elems: []any{v}})
	case *Array:
		current.elems = append(current.elems, v)
	default:
		return typeMismatch("append", key, "array", current)
	}
	return nil
}

// Increment adds one to the number under key, keeping its kind. An absent
// key is set to 1.
func (o *Object) Increment(key string) error {
	switch current := o.members[key].(type) {
	case nil:
		o.set(key, Int32(1))
	case Number:
		o.set(key, current.Increment())
	default:
		return typeMismatch("increment", key, "number", current)
	}
	return nil
}

// Remove deletes key and returns the value it held, or nil.
func (o *Object) Remove(key string) any {
	v, ok := o.members[key]
	if !ok {
		return nil
	}
	delete(o.members, key)
	return v
}

// Names returns the keys as an array of strings in sorted order.
func (o *Object) Names() *Array {
	keys := o.sortedKeys()
	arr := &Array{elems: make([]any, len(keys))}
	for i, k := range keys {
		arr.elems[i] = k
	}
	return arr
}

// Keys iterates over the live key set. Removing the current key during
// iteration is allowed.
func (o *Object) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range o.members {
			if !yield(k) {
				return
			}
		}
	}
}

// KeySet returns a view of the keys backed by o.
func (o *Object) KeySet() *KeyView {
	return &KeyView{o: o}
}

// Entries returns a view of the members backed by o.
func (o *Object) Entries() *EntryView {
	return &EntryView{o: o}
}

// ValuesOf returns the values stored under names, with Null for missing
// names. It returns nil when names is empty.
func (o *Object) ValuesOf(names *Array) *Array {
	if names == nil || names.Len() == 0 {
		return nil
	}
	arr := &Array{elems: make([]any, 0, names.Len())}
	for _, name := range names.elems {
		key, _ := coerceString(name)
		arr.elems = append(arr.elems, orNull(o.members[key]))
	}
	return arr
}

// ToMap deep-copies o into plain Go values. Null becomes nil, nested
// objects and arrays become maps and slices, numbers their Native form.
func (o *Object) ToMap() map[string]any {
	m := make(map[string]any, len(o.members))
	for k, v := range o.members {
		m[k] = toNative(v)
	}
	return m
}

// Similar reports whether other is an object with the same keys holding
// similar values.
func (o *Object) Similar(other any) bool {
	return Similar(o, other)
}

func (o *Object) similar(other *Object) bool {
	if o == other {
		return true
	}
	if other == nil || len(o.members) != len(other.members) {
		return false
	}
	for k, v := range o.members {
		w, ok := other.members[k]
		if !ok || !similarValues(v, w) {
			return false
		}
	}
	return true
}

// Query resolves a JSON Pointer against o.
func (o *Object) Query(pointer string) (any, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return p.Query(o)
}

// OptQuery resolves a JSON Pointer against o, returning nil on any failure.
func (o *Object) OptQuery(pointer string) any {
	return OptQuery(o, pointer)
}

func (o *Object) sortedKeys() []string {
	keys := make([]string, 0, len(o.members))
	for k := range o.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o *Object) set(key string, v any) {
	if o.members == nil {
		o.members = make(map[string]any)
	}
	o.members[key] = v
}

func orNull(v any) any {
	if v == nil {
		return Null
	}
	return v
}
