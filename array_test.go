package jsonvalue

import (
	"math"
	"testing"
)

func TestArrayPutRejectsNestedNonFinite(t *testing.T) {
	helper := NewTestHelper(t)
	a := NewArray()

	helper.AssertErrorIs(a.Put([]float64{1, math.Inf(1)}), ErrInvalidNumber)
	helper.AssertErrorIs(a.Put(map[string]any{"x": math.NaN()}), ErrInvalidNumber)
	helper.AssertErrorIs(a.PutAt(3, []any{math.Inf(-1)}), ErrInvalidNumber)
	helper.AssertEqual(0, a.Len())

	fromSlice := ArrayFromSlice([]any{math.NaN(), 1})
	helper.AssertEqual(Null, fromSlice.Opt(0))
	text, err := Marshal(fromSlice)
	helper.AssertNoError(err)
	helper.AssertEqual("[null,1]", text)
}

func TestArrayPutAndPutAt(t *testing.T) {
	helper := NewTestHelper(t)
	a := NewArray()

	helper.AssertNoError(a.Put(1))
	helper.AssertNoError(a.Put("two"))
	helper.AssertErrorIs(a.Put(nil), ErrTypeMismatch)
	helper.AssertEqual(2, a.Len())

	helper.AssertNoError(a.PutAt(4, true))
	helper.AssertEqual(5, a.Len())
	helper.AssertEqual(Null, a.Opt(2), "gaps are padded with null")
	helper.AssertEqual(Null, a.Opt(3))
	helper.AssertEqual(true, a.Opt(4))

	helper.AssertNoError(a.PutAt(0, "first"))
	helper.AssertEqual("first", a.Opt(0))
	helper.AssertEqual(5, a.Len())

	helper.AssertErrorIs(a.PutAt(-1, 1), ErrNotFound)
}

func TestArrayAccess(t *testing.T) {
	helper := NewTestHelper(t)
	a, err := ParseArray(`[true, "7", 2.5, "s", {"k": 1}, [0], null]`)
	helper.AssertNoError(err)

	helper.AssertNil(a.Opt(-1))
	helper.AssertNil(a.Opt(99))
	helper.AssertTrue(a.IsNull(6))
	helper.AssertTrue(a.IsNull(99))

	_, err = a.Get(7)
	helper.AssertErrorIs(err, ErrNotFound)

	b, err := a.GetBool(0)
	helper.AssertNoError(err)
	helper.AssertTrue(b)

	i, err := a.GetInt(1)
	helper.AssertNoError(err)
	helper.AssertEqual(7, i)

	f, err := a.GetFloat64(2)
	helper.AssertNoError(err)
	helper.AssertEqual(2.5, f)

	_, err = a.GetInt(3)
	helper.AssertErrorIs(err, ErrTypeMismatch)

	obj, err := a.GetObject(4)
	helper.AssertNoError(err)
	helper.AssertEqual(Int32(1), obj.Opt("k"))

	inner, err := a.GetArray(5)
	helper.AssertNoError(err)
	helper.AssertEqual(1, inner.Len())

	_, err = a.GetString(2)
	helper.AssertErrorIs(err, ErrTypeMismatch)

	helper.AssertEqual(-1, a.OptInt(3, -1))
	helper.AssertEqual("2.5", a.OptString(2, ""))
	helper.AssertEqual("d", a.OptString(6, "d"))
	helper.AssertTrue(a.OptObject(0, nil) == nil)

	var fault *Error
	_, err = a.GetObject(0)
	helper.AssertTrue(asError(err, &fault))
	helper.AssertEqual("[0]", fault.Path)
}

func TestArrayRemoveAndIterate(t *testing.T) {
	helper := NewTestHelper(t)
	a, err := ArrayOf("a", "b", "c")
	helper.AssertNoError(err)

	helper.AssertEqual("b", a.Remove(1))
	helper.AssertNil(a.Remove(5))
	helper.AssertEqual([]string{"a", "c"}, a.ToStringList())

	var seen []int
	for i, v := range a.All() {
		seen = append(seen, i)
		helper.AssertNotNil(v)
	}
	helper.AssertEqual([]int{0, 1}, seen)
}

func TestArrayConversions(t *testing.T) {
	helper := NewTestHelper(t)
	a, err := ParseArray(`["x", 1, null, [true], {"k": "v"}]`)
	helper.AssertNoError(err)

	joined, err := a.Join(",")
	helper.AssertNoError(err)
	helper.AssertEqual(`"x",1,null,[true],{"k":"v"}`, joined)

	helper.AssertEqual([]string{"x", "1", "null", "[true]", `{"k":"v"}`}, a.ToStringList())
	helper.AssertEqual([]any{"x", 1, nil, []any{true}, map[string]any{"k": "v"}}, a.ToList())

	fromSlice := ArrayFromSlice([]any{1, nil, "s"})
	helper.AssertEqual(3, fromSlice.Len())
	helper.AssertEqual(Null, fromSlice.Opt(1))

	_, err = ArrayOf(struct{}{})
	helper.AssertErrorIs(err, ErrTypeMismatch)
}

func TestArrayToObject(t *testing.T) {
	helper := NewTestHelper(t)
	values, _ := ArrayOf(1, 2)
	names, _ := ArrayOf("a", "b", "c")

	o, err := values.ToObject(names)
	helper.AssertNoError(err)
	helper.AssertEqual(2, o.Len())
	helper.AssertEqual(Int32(2), o.Opt("b"))
	helper.AssertFalse(o.Has("c"))

	o, err = values.ToObject(NewArray())
	helper.AssertNoError(err)
	helper.AssertTrue(o == nil)

	o, err = NewArray().ToObject(names)
	helper.AssertNoError(err)
	helper.AssertTrue(o == nil)

	bad, _ := ArrayOf(1)
	_, err = values.ToObject(bad)
	helper.AssertErrorIs(err, ErrTypeMismatch)
}

func TestArraySimilar(t *testing.T) {
	helper := NewTestHelper(t)
	a, _ := ParseArray(`[1, {"x": [2.0]}]`)
	b, _ := ParseArray(`[1.0, {"x": [2]}]`)
	c, _ := ParseArray(`[{"x": [2]}, 1]`)

	helper.AssertTrue(a.Similar(b))
	helper.AssertFalse(a.Similar(c), "order matters")
	helper.AssertFalse(a.Similar(NewObject()))
}

func TestArrayQuery(t *testing.T) {
	helper := NewTestHelper(t)
	a, _ := ParseArray(`[{"a": [10, 20]}]`)

	v, err := a.Query("/0/a/1")
	helper.AssertNoError(err)
	helper.AssertEqual(Int32(20), v)

	_, err = a.Query("/1")
	helper.AssertErrorIs(err, ErrNotFound)
	helper.AssertNil(a.OptQuery("/x"))
}
