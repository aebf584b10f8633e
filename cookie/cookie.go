// Package cookie converts Set-Cookie strings and cookie lists to
// jsonvalue objects and back.
//
// Names and values are escaped with a gentle form of URL encoding: only
// '+', '%', '=', ';' and control characters are written as %hh.
package cookie

import (
	"strings"

	"github.com/cybergodev/jsonvalue"
)

// Escape trims s and replaces '+', '%', '=', ';' and control characters
// with %hh sequences.
func Escape(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < ' ' || c == '+' || c == '%' || c == '=' || c == ';' {
			sb.WriteByte('%')
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0f])
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

const hexDigits = "0123456789abcdef"

// Unescape converts '+' to a space and %hh sequences to the byte they
// encode. Malformed sequences are kept as is.
func Unescape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			c = ' '
		case c == '%' && i+2 < len(s):
			d := jsonvalue.Dehex(rune(s[i+1]))
			e := jsonvalue.Dehex(rune(s[i+2]))
			if d >= 0 && e >= 0 {
				c = byte(d<<4 | e)
				i += 2
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Parse reads a Set-Cookie string such as
//
//	SID=31d4; Path=/; Domain=example.com; secure
//
// into an object holding "name" and "value" plus one member per attribute.
// The valueless secure attribute is stored as true; any other attribute
// without '=' is a fault.
func Parse(header string) (*jsonvalue.Object, error) {
	t := jsonvalue.NewTokenizer(header)
	o := jsonvalue.NewObject()

	if err := o.Put("name", Unescape(t.NextTo('='))); err != nil {
		return nil, err
	}
	if _, err := t.NextRune('='); err != nil {
		return nil, err
	}
	if err := o.Put("value", Unescape(t.NextTo(';'))); err != nil {
		return nil, err
	}
	t.Next()

	for t.More() {
		name := Unescape(t.NextToAny("=;"))
		var value any
		if t.Next() != '=' {
			if !strings.EqualFold(name, "secure") {
				return nil, t.SyntaxError("missing '=' in cookie parameter")
			}
			value = true
		} else {
			value = Unescape(t.NextTo(';'))
			t.Next()
		}
		if err := o.Put(name, value); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Format renders an object holding "name" and "value" as a
// Set-Cookie string. The expires, domain and path members and a true secure
// member are appended; other members are ignored.
func Format(o *jsonvalue.Object) (string, error) {
	name, err := o.GetString("name")
	if err != nil {
		return "", err
	}
	value, err := o.GetString("value")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Escape(name))
	sb.WriteByte('=')
	sb.WriteString(Escape(value))
	if o.Has("expires") {
		expires, err := o.GetString("expires")
		if err != nil {
			return "", err
		}
		sb.WriteString(";expires=")
		sb.WriteString(expires)
	}
	for _, attr := range []string{"domain", "path"} {
		if !o.Has(attr) {
			continue
		}
		text, err := o.GetString(attr)
		if err != nil {
			return "", err
		}
		sb.WriteString(";" + attr + "=")
		sb.WriteString(Escape(text))
	}
	if o.OptBool("secure", false) {
		sb.WriteString(";secure")
	}
	return sb.String(), nil
}

// ParseList reads a cookie list, name=value pairs separated by ';', into an
// object with one member per cookie.
func ParseList(list string) (*jsonvalue.Object, error) {
	t := jsonvalue.NewTokenizer(list)
	o := jsonvalue.NewObject()
	for t.More() {
		name := Unescape(t.NextTo('='))
		if _, err := t.NextRune('='); err != nil {
			return nil, err
		}
		if err := o.Put(name, Unescape(t.NextTo(';'))); err != nil {
			return nil, err
		}
		t.Next()
	}
	return o, nil
}

// FormatList renders an object as a cookie list in key order. Null members
// are skipped; other non-string members are written as their JSON text.
func FormatList(o *jsonvalue.Object) string {
	var sb strings.Builder
	for _, name := range o.KeySet().Sorted() {
		if o.IsNull(name) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(Escape(name))
		sb.WriteByte('=')
		sb.WriteString(Escape(o.OptString(name, "")))
	}
	return sb.String()
}
