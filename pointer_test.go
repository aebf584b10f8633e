package jsonvalue

import (
	"testing"
)

const pointerDoc = `{
	"foo": ["bar", "baz"],
	"": 0,
	"a/b": 1,
	"c%d": 2,
	"e^f": 3,
	"g|h": 4,
	"i\\j": 5,
	"k\"l": 6,
	" ": 7,
	"m~n": 8,
	"deep": {"list": [{"x": "y"}]}
}`

func TestPointerRFC6901Examples(t *testing.T) {
	doc, err := Parse(pointerDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		pointer string
		want    any
	}{
		{"/foo/0", "bar"},
		{"/", Int32(0)},
		{"/a~1b", Int32(1)},
		{"/c%d", Int32(2)},
		{"/e^f", Int32(3)},
		{"/g|h", Int32(4)},
		{`/i\\j`, Int32(5)},
		{`/k\"l`, Int32(6)},
		{"/ ", Int32(7)},
		{"/m~0n", Int32(8)},
		{"/deep/list/0/x", "y"},
		{"#/foo/1", "baz"},
		{"#/a~1b", Int32(1)},
		{"#/c%25d", Int32(2)},
		{"#/+", Int32(7)},
		{"#/%20", Int32(7)},
	}
	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			helper := NewTestHelper(t)
			v, err := Query(doc, tt.pointer)
			helper.AssertNoError(err)
			helper.AssertEqual(tt.want, v)
		})
	}

	helper := NewTestHelper(t)
	for _, root := range []string{"", "#"} {
		v, err := Query(doc, root)
		helper.AssertNoError(err)
		helper.AssertTrue(v == doc, "root pointer %q returns the document", root)
	}
}

func TestPointerUnescapeOrder(t *testing.T) {
	helper := NewTestHelper(t)
	p, err := ParsePointer("/~01")
	helper.AssertNoError(err)
	helper.AssertEqual([]string{"~1"}, p.Tokens())

	p, err = ParsePointer("/a//b/")
	helper.AssertNoError(err)
	helper.AssertEqual([]string{"a", "", "b", ""}, p.Tokens())
}

func TestPointerFaults(t *testing.T) {
	doc, err := Parse(pointerDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		name    string
		pointer string
		kind    error
	}{
		{"missing key", "/nope", ErrNotFound},
		{"index into object", "/deep/0", ErrTypeMismatch},
		{"non-numeric index", "/foo/x", ErrTypeMismatch},
		{"negative index", "/foo/-1", ErrTypeMismatch},
		{"index out of bounds", "/foo/2", ErrNotFound},
		{"descend into scalar", "/foo/0/x", ErrTypeMismatch},
		{"bad prefix", "foo", ErrSyntax},
		{"bad percent encoding", "#/%zz", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := NewTestHelper(t)
			_, err := Query(doc, tt.pointer)
			helper.AssertErrorIs(err, tt.kind)
			helper.AssertNil(OptQuery(doc, tt.pointer))
		})
	}

	helper := NewTestHelper(t)
	_, err = Query(doc, "/deep/list/5")
	var fault *Error
	helper.AssertTrue(asError(err, &fault))
	helper.AssertEqual("/deep/list/5", fault.Path)
	helper.AssertErrorContains(err, "out of bounds")
}

func TestPointerRendering(t *testing.T) {
	helper := NewTestHelper(t)

	p := NewPointerBuilder().Add("a/b").Add("c~d").AddIndex(3).Build()
	helper.AssertEqual("/a~1b/c~0d/3", p.String())
	helper.AssertEqual("#/a~1b/c~0d/3", p.URIFragment())

	quoted := NewPointer(`k"l`, `i\j`)
	helper.AssertEqual(`/k\"l/i\\j`, quoted.String())

	for _, text := range []string{"/a~1b/c~0d", `/k\"l/i\\j`, "/x y/0"} {
		parsed, err := ParsePointer(text)
		helper.AssertNoError(err)
		helper.AssertEqual(text, parsed.String(), "text round trip")

		again, err := ParsePointer(parsed.URIFragment())
		helper.AssertNoError(err)
		helper.AssertEqual(parsed.Tokens(), again.Tokens(), "fragment round trip")
	}

	root, _ := ParsePointer("#")
	helper.AssertTrue(root.IsRoot())
	helper.AssertEqual("", root.String())
	helper.AssertEqual("#", root.URIFragment())
}

func TestPointerBuilderIsolation(t *testing.T) {
	helper := NewTestHelper(t)
	b := NewPointerBuilder().Add("a")
	first := b.Build()
	b.Add("b")
	helper.AssertEqual([]string{"a"}, first.Tokens())
	helper.AssertEqual([]string{"a", "b"}, b.Build().Tokens())

	tokens := first.Tokens()
	tokens[0] = "changed"
	helper.AssertEqual([]string{"a"}, first.Tokens())
}
