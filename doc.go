// Package jsonvalue provides a mutable JSON value model with a lenient
// parser, a strict writer, a streaming Composer and a JSON Pointer engine.
//
// The package uses an internal package for implementation details:
//
//   - internal: limits, literal classification and pooled buffers
//
// # Values
//
// A value is one of Null, bool, Number, string, *Object, *Array or a
// Serializer. Go nil means "absent" and is distinct from Null:
//
//	obj := jsonvalue.NewObject()
//	_ = obj.Put("a", 1)               // stores Int32(1)
//	_ = obj.Put("b", jsonvalue.Null)  // stores an explicit null
//	_ = obj.Put("a", nil)             // removes "a"
//
// Numbers keep the narrowest exact kind: int32, int64, big integer, double
// or arbitrary-precision decimal.
//
// # Parsing
//
// The parser accepts a superset of JSON: single quotes, bare tokens,
// comments, ';' between members, trailing commas and comma elision:
//
//	v, err := jsonvalue.Parse(`{a: 1, list: [1,,3,], /* note */ 'b': true}`)
//
// Use NewParser with a Config to bound nesting depth and input size or to
// attach a slog.Logger.
//
// # Writing
//
// Marshal and MarshalIndent always produce strict JSON with members sorted
// by key. Composer writes JSON token by token and rejects out-of-order
// calls.
//
// # Pointers
//
//	p, _ := jsonvalue.ParsePointer("/a/b")
//	v, err := p.Query(doc)
//	v = jsonvalue.OptQuery(doc, "#/a/b") // nil on failure
//
// Select evaluates JSONPath expressions, FromYAML and ToYAML bridge YAML
// documents.
package jsonvalue
