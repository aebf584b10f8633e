package jsonvalue

import (
	"bytes"
	"io"

	"github.com/cybergodev/jsonvalue/internal"
)

// ValueToString renders a single value as strict JSON text without
// indentation. Host values are converted with Wrap first.
func ValueToString(v any) (string, error) {
	return Marshal(v)
}

// Marshal renders v as compact JSON text.
func Marshal(v any) (string, error) {
	return MarshalIndent(v, 0)
}

// MarshalIndent renders v with indentFactor spaces per nesting level.
// Objects and arrays with a single member stay on one line.
func MarshalIndent(v any, indentFactor int) (string, error) {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	if err := writeValue(buf, v, indentFactor, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo writes v to w. indent is the column the value starts at and
// applies to the lines after the first.
func WriteTo(w io.Writer, v any, indentFactor, indent int) error {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	if err := writeValue(buf, v, indentFactor, indent); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &Error{Op: "write", Message: err.Error(), Err: err}
	}
	return nil
}

func writeValue(buf *bytes.Buffer, v any, indentFactor, indent int) error {
	switch x := v.(type) {
	case nil, nullValue:
		buf.WriteString("null")
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		quoteTo(buf, x)
	case Number:
		text, err := NumberToString(x)
		if err != nil {
			return err
		}
		buf.WriteString(text)
	case *Object:
		if x == nil {
			buf.WriteString("null")
			return nil
		}
		return x.write(buf, indentFactor, indent)
	case *Array:
		if x == nil {
			buf.WriteString("null")
			return nil
		}
		return x.write(buf, indentFactor, indent)
	case Serializer:
		text, err := x.ToJSON()
		if err != nil {
			return &Error{Op: "write", Message: "bad value from ToJSON: " + err.Error(), Err: ErrTypeMismatch}
		}
		buf.WriteString(text)
	default:
		wrapped, nonFinite := wrapHost(v)
		if nonFinite {
			return newError("write", "", "JSON does not allow non-finite numbers", ErrInvalidNumber)
		}
		if wrapped == nil {
			return typeMismatch("write", "", "JSON value", v)
		}
		return writeValue(buf, wrapped, indentFactor, indent)
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}

func (o *Object) write(buf *bytes.Buffer, indentFactor, indent int) error {
	buf.WriteByte('{')
	keys := o.sortedKeys()
	switch len(keys) {
	case 0:
	case 1:
		if err := o.writeMember(buf, keys[0], indentFactor, indent); err != nil {
			return err
		}
	default:
		inner := indent + indentFactor
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if indentFactor > 0 {
				buf.WriteByte('\n')
			}
			writeIndent(buf, inner)
			if err := o.writeMember(buf, key, indentFactor, inner); err != nil {
				return err
			}
		}
		if indentFactor > 0 {
			buf.WriteByte('\n')
		}
		writeIndent(buf, indent)
	}
	buf.WriteByte('}')
	return nil
}

func (o *Object) writeMember(buf *bytes.Buffer, key string, indentFactor, indent int) error {
	quoteTo(buf, key)
	buf.WriteByte(':')
	if indentFactor > 0 {
		buf.WriteByte(' ')
	}
	if err := writeValue(buf, o.members[key], indentFactor, indent); err != nil {
		return wrapWriteError(err, key)
	}
	return nil
}

func (a *Array) write(buf *bytes.Buffer, indentFactor, indent int) error {
	buf.WriteByte('[')
	switch len(a.elems) {
	case 0:
	case 1:
		if err := writeValue(buf, a.elems[0], indentFactor, indent); err != nil {
			return wrapWriteError(err, indexPath(0))
		}
	default:
		inner := indent + indentFactor
		for i, v := range a.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if indentFactor > 0 {
				buf.WriteByte('\n')
			}
			writeIndent(buf, inner)
			if err := writeValue(buf, v, indentFactor, inner); err != nil {
				return wrapWriteError(err, indexPath(i))
			}
		}
		if indentFactor > 0 {
			buf.WriteByte('\n')
		}
		writeIndent(buf, indent)
	}
	buf.WriteByte(']')
	return nil
}

// wrapWriteError prefixes the member path onto a nested write fault.
func wrapWriteError(err error, segment string) error {
	fault, ok := err.(*Error)
	if !ok {
		return err
	}
	clone := *fault
	switch {
	case clone.Path == "":
		clone.Path = segment
	case clone.Path[0] == '[':
		clone.Path = segment + clone.Path
	default:
		clone.Path = segment + "." + clone.Path
	}
	return &clone
}

// String returns the compact JSON text of o, or "" if a Serializer member
// fails.
func (o *Object) String() string {
	text, err := Marshal(o)
	if err != nil {
		return ""
	}
	return text
}

// Format returns the JSON text of o indented by indentFactor.
func (o *Object) Format(indentFactor int) (string, error) {
	return MarshalIndent(o, indentFactor)
}

// Write writes o to w starting at column indent.
func (o *Object) Write(w io.Writer, indentFactor, indent int) error {
	return WriteTo(w, o, indentFactor, indent)
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	text, err := Marshal(o)
	return []byte(text), err
}

// UnmarshalJSON implements json.Unmarshaler with the lenient parser.
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := ParseObject(string(data))
	if err != nil {
		return err
	}
	o.members = parsed.members
	return nil
}

// String returns the compact JSON text of a, or "" if a Serializer element
// fails.
func (a *Array) String() string {
	text, err := Marshal(a)
	if err != nil {
		return ""
	}
	return text
}

// Format returns the JSON text of a indented by indentFactor.
func (a *Array) Format(indentFactor int) (string, error) {
	return MarshalIndent(a, indentFactor)
}

// Write writes a to w starting at column indent.
func (a *Array) Write(w io.Writer, indentFactor, indent int) error {
	return WriteTo(w, a, indentFactor, indent)
}

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) {
	text, err := Marshal(a)
	return []byte(text), err
}

// UnmarshalJSON implements json.Unmarshaler with the lenient parser.
func (a *Array) UnmarshalJSON(data []byte) error {
	parsed, err := ParseArray(string(data))
	if err != nil {
		return err
	}
	a.elems = parsed.elems
	return nil
}
