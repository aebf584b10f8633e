package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"
)

type rawJSON string

func (r rawJSON) ToJSON() (string, error) {
	return string(r), nil
}

type failingSerializer struct{}

func (failingSerializer) ToJSON() (string, error) {
	return "", errors.New("no text")
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", `""`},
		{"plain", "hello", `"hello"`},
		{"quote and backslash", `a"b\c`, `"a\"b\\c"`},
		{"closing tag", "</script>", `"<\/script>"`},
		{"lone slash", "a/b", `"a/b"`},
		{"short escapes", "\b\t\n\f\r", `"\b\t\n\f\r"`},
		{"control", "\x01\x1f", `"\u0001\u001f"`},
		{"c1 controls", "\u0085", `"\u0085"`},
		{"general punctuation", "\u2003\u20ac", `"\u2003\u20ac"`},
		{"other unicode", "é中😀", `"é中😀"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NewTestHelper(t).AssertEqual(tt.want, Quote(tt.input))
		})
	}
}

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "null"},
		{"null", Null, "null"},
		{"true", true, "true"},
		{"int", 12, "12"},
		{"int32 number", Int32(-3), "-3"},
		{"double", 2.50, "2.5"},
		{"whole double", 100.0, "100"},
		{"big", new(big.Int).Lsh(big.NewInt(1), 64), "18446744073709551616"},
		{"string", "x", `"x"`},
		{"serializer", rawJSON(`{"raw":true}`), `{"raw":true}`},
		{"host slice", []int{1, 2}, "[1,2]"},
		{"host map", map[string]bool{"k": true}, `{"k":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := NewTestHelper(t)
			text, err := Marshal(tt.input)
			helper.AssertNoError(err)
			helper.AssertEqual(tt.want, text)
		})
	}
}

func TestMarshalFaults(t *testing.T) {
	helper := NewTestHelper(t)

	_, err := Marshal(Double(math.NaN()))
	helper.AssertErrorIs(err, ErrInvalidNumber)
	_, err = Marshal(math.Inf(-1))
	helper.AssertErrorIs(err, ErrInvalidNumber)
	_, err = Marshal(map[string]any{"x": []any{math.NaN()}})
	helper.AssertErrorIs(err, ErrInvalidNumber)

	o := NewObject()
	inner := NewObject()
	helper.AssertNoError(inner.Put("bad", failingSerializer{}))
	helper.AssertNoError(o.Put("outer", inner))
	_, err = Marshal(o)
	helper.AssertErrorIs(err, ErrTypeMismatch)
	helper.AssertErrorContains(err, "bad value from ToJSON")

	var fault *Error
	helper.AssertTrue(asError(err, &fault))
	helper.AssertEqual("outer.bad", fault.Path)
	helper.AssertEqual("", o.String(), "String swallows the fault")

	arr, _ := ArrayOf(1, failingSerializer{})
	_, err = Marshal(arr)
	helper.AssertTrue(asError(err, &fault))
	helper.AssertEqual("[1]", fault.Path)

	_, err = Marshal(struct{}{})
	helper.AssertErrorIs(err, ErrTypeMismatch)
}

func TestMarshalSortsKeys(t *testing.T) {
	helper := NewTestHelper(t)
	o, err := ParseObject(`{"b": 1, "a": 2, "c": {"z": 0, "y": 1}}`)
	helper.AssertNoError(err)
	helper.AssertEqual(`{"a":2,"b":1,"c":{"y":1,"z":0}}`, o.String())
}

func TestMarshalIndentLayout(t *testing.T) {
	helper := NewTestHelper(t)
	o, err := ParseObject(`{"a": 1, "b": [1, 2], "c": {"d": [true]}}`)
	helper.AssertNoError(err)

	text, err := o.Format(2)
	helper.AssertNoError(err)
	helper.AssertEqual("{\n"+
		"  \"a\": 1,\n"+
		"  \"b\": [\n"+
		"    1,\n"+
		"    2\n"+
		"  ],\n"+
		"  \"c\": {\"d\": [true]}\n"+
		"}", text)

	single, _ := ParseObject(`{"only": {"x": 1}}`)
	text, err = single.Format(4)
	helper.AssertNoError(err)
	helper.AssertEqual(`{"only": {"x": 1}}`, text)

	empty, err := NewArray().Format(2)
	helper.AssertNoError(err)
	helper.AssertEqual("[]", empty)
}

func TestWriteTo(t *testing.T) {
	helper := NewTestHelper(t)
	a, _ := ParseArray(`[1, 2]`)

	var buf bytes.Buffer
	helper.AssertNoError(a.Write(&buf, 2, 4))
	helper.AssertEqual("[\n      1,\n      2\n    ]", buf.String())

	var failing failingWriter
	err := WriteTo(&failing, a, 0, 0)
	helper.AssertTrue(errors.Is(err, errWriteFailed))
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (*failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func TestEncodingJSONInterop(t *testing.T) {
	helper := NewTestHelper(t)
	o, err := ParseObject(`{"n": 123456789012345678901, "s": "x", "z": null}`)
	helper.AssertNoError(err)

	data, err := json.Marshal(map[string]any{"doc": o, "null": Null})
	helper.AssertNoError(err)
	helper.AssertEqual(`{"doc":{"n":123456789012345678901,"s":"x","z":null},"null":null}`, string(data))

	var decoded struct {
		Doc *Object `json:"doc"`
	}
	helper.AssertNoError(json.Unmarshal(data, &decoded))
	helper.AssertSimilar(o, decoded.Doc)
}

func TestRoundTrip(t *testing.T) {
	helper := NewTestHelper(t)
	generator := NewTestDataGenerator()

	inputs := append([]string{generator.GenerateComplexJSON()}, generator.GenerateLenientJSON()...)
	for _, input := range inputs {
		first, err := Parse(input)
		helper.AssertNoError(err)
		for _, indent := range []int{0, 3} {
			text, err := MarshalIndent(first, indent)
			helper.AssertNoError(err)
			second, err := Parse(text)
			helper.AssertNoError(err)
			helper.AssertSimilar(first, second, "round trip of %s", text)
		}
	}
}
