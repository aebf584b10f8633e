package jsonvalue

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// nullValue is the type of the Null sentinel.
type nullValue struct{}

// Null is the explicit JSON null. A Go nil means "absent": Object.Opt
// returns nil for a missing key and Null for a key holding JSON null.
var Null = nullValue{}

func (nullValue) String() string {
	return "null"
}

// MarshalJSON implements json.Marshaler.
func (nullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IsNull reports whether v is Null or absent.
func IsNull(v any) bool {
	return v == nil || v == Null
}

// Serializer lets a host type supply its own JSON text. The text must be a
// strictly valid JSON value; writers emit it verbatim.
type Serializer interface {
	ToJSON() (string, error)
}

// normalize turns a host value into the stored representation used by
// Object and Array. It rejects non-finite numbers, including those nested
// in maps and slices, and types Wrap cannot convert.
func normalize(op, path string, v any) (any, error) {
	switch x := v.(type) {
	case nullValue, bool, string, Serializer:
		return x, nil
	case *Object:
		if x == nil {
			return Null, nil
		}
		return x, nil
	case *Array:
		if x == nil {
			return Null, nil
		}
		return x, nil
	}
	if n, ok := numberOf(v); ok {
		if err := checkNumber(op, n); err != nil {
			return nil, &Error{Op: op, Path: path, Message: "JSON does not allow non-finite numbers", Err: ErrInvalidNumber}
		}
		return n, nil
	}
	wrapped, nonFinite := wrapHost(v)
	if nonFinite {
		return nil, &Error{Op: op, Path: path, Message: "JSON does not allow non-finite numbers", Err: ErrInvalidNumber}
	}
	if wrapped == nil {
		return nil, typeMismatch(op, path, "JSON value", v)
	}
	return wrapped, nil
}

// TestValidity reports an ErrInvalidNumber fault for non-finite numbers and
// nil for everything else.
func TestValidity(v any) error {
	if n, ok := numberOf(v); ok && !n.IsFinite() {
		return newError("test_validity", "", "JSON does not allow non-finite numbers", ErrInvalidNumber)
	}
	return nil
}

// Similar reports whether two values are structurally equal. Objects must
// hold the same key set with similar values, arrays the same length with
// similar elements in order. Numbers compare by numeric value across kinds.
// Similar never fails; incomparable inputs yield false.
func Similar(a, b any) (similar bool) {
	defer func() {
		if recover() != nil {
			similar = false
		}
	}()
	return similarValues(a, b)
}

func similarValues(a, b any) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		return ok && x.similar(y)
	case *Array:
		y, ok := b.(*Array)
		return ok && x.similar(y)
	case nil, nullValue:
		return IsNull(b)
	case Serializer:
		y, ok := b.(Serializer)
		if !ok {
			return false
		}
		xs, errX := x.ToJSON()
		ys, errY := y.ToJSON()
		return errX == nil && errY == nil && xs == ys
	}
	if n, ok := numberOf(a); ok {
		m, ok := numberOf(b)
		return ok && n.Equal(m)
	}
	switch x := a.(type) {
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	}
	return false
}

// Native converts n to a plain Go value: int for int32, int64, *big.Int,
// float64 or *apd.Decimal.
func (n Number) Native() any {
	switch n.kind {
	case KindInt32:
		return int(n.i)
	case KindInt64:
		return n.i
	case KindBigInt:
		return new(big.Int).Set(n.big)
	case KindDouble:
		return n.f
	case KindDecimal:
		return new(apd.Decimal).Set(n.dec)
	}
	return nil
}

// toNative deep-copies a stored value into plain Go containers.
func toNative(v any) any {
	switch x := v.(type) {
	case nil, nullValue:
		return nil
	case *Object:
		return x.ToMap()
	case *Array:
		return x.ToList()
	case Number:
		return x.Native()
	}
	return v
}
