package jsonvalue

import (
	"encoding/json"

	"github.com/theory/jsonpath"
)

// Select evaluates an RFC 9535 JSONPath expression against doc and returns
// the matched nodes in document order. Matched objects and arrays are
// copies, not views into doc.
//
// Filters compare int32, int64 and double members natively; big integers
// compare as JSON numbers and decimals only match by existence.
func Select(doc any, expr string) (*Array, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, newError("select", expr, err.Error(), ErrSyntax)
	}
	nodes := path.Select(selectable(doc))
	result := &Array{elems: make([]any, 0, len(nodes))}
	for _, node := range nodes {
		result.elems = append(result.elems, fromSelectable(node))
	}
	return result, nil
}

// selectable converts a tree into the plain shapes the JSONPath engine
// walks: map[string]any, []any and encoding/json scalars.
func selectable(v any) any {
	switch x := v.(type) {
	case nil, nullValue:
		return nil
	case *Object:
		m := make(map[string]any, len(x.members))
		for k, member := range x.members {
			m[k] = selectable(member)
		}
		return m
	case *Array:
		list := make([]any, len(x.elems))
		for i, elem := range x.elems {
			list[i] = selectable(elem)
		}
		return list
	case Number:
		switch x.Kind() {
		case KindInt32, KindInt64:
			return x.Int64()
		case KindDouble:
			return x.Float64()
		case KindBigInt:
			return json.Number(x.String())
		}
		return x
	case Serializer:
		text, err := x.ToJSON()
		if err != nil {
			return nil
		}
		parsed, err := Parse(text)
		if err != nil {
			return nil
		}
		return selectable(parsed)
	}
	return v
}

func fromSelectable(v any) any {
	switch x := v.(type) {
	case nil:
		return Null
	case map[string]any:
		o := &Object{members: make(map[string]any, len(x))}
		for k, member := range x {
			o.members[k] = fromSelectable(member)
		}
		return o
	case []any:
		arr := &Array{elems: make([]any, len(x))}
		for i, elem := range x {
			arr.elems[i] = fromSelectable(elem)
		}
		return arr
	case json.Number:
		n, err := StringToNumber(string(x))
		if err != nil {
			return string(x)
		}
		return n
	case int64:
		return Int64(x)
	case float64:
		return Double(x)
	}
	return v
}
