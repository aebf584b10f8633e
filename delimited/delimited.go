// Package delimited converts comma-delimited text to jsonvalue arrays and
// objects and back.
//
// The first row of a document holds the column names. Cells may be quoted
// with '"' or '\''; inside a quoted cell a doubled quote stands for one
// quote character and line breaks are kept. Rows end with LF, CRLF or CR,
// and a blank line ends the document.
package delimited

import (
	"strings"

	"github.com/cybergodev/jsonvalue"
)

// cell reads one cell. ok is false at the end of the input.
func cell(t *jsonvalue.Tokenizer) (value string, ok bool, err error) {
	c := t.Next()
	for c == ' ' || c == '\t' {
		c = t.Next()
	}
	switch c {
	case 0:
		return "", false, nil
	case '"', '\'':
		quote := c
		var sb strings.Builder
		for {
			c = t.Next()
			if c == quote {
				if t.Next() != quote {
					_ = t.Back()
					return sb.String(), true, nil
				}
			} else if c == 0 {
				return "", false, t.SyntaxError("missing close quote " + string(quote))
			}
			sb.WriteRune(c)
		}
	case ',':
		_ = t.Back()
		return "", true, nil
	}
	_ = t.Back()
	return t.NextTo(','), true, nil
}

// RowToArray reads one row of cells as an array of strings. It returns nil
// at the end of the input or at a blank line.
func RowToArray(t *jsonvalue.Tokenizer) (*jsonvalue.Array, error) {
	row := jsonvalue.NewArray()
	for {
		value, ok, err := cell(t)
		if err != nil {
			return nil, err
		}
		c := t.Next()
		if !ok && row.Len() > 0 {
			// a trailing comma at the end of the input
			value, ok = "", true
		}
		if !ok || (row.Len() == 0 && value == "" && c != ',') {
			skipRowEnd(t, c)
			return nil, nil
		}
		if err := row.Put(value); err != nil {
			return nil, err
		}
		for c != ',' {
			switch c {
			case ' ':
				c = t.Next()
				continue
			case '\n', '\r', 0:
				skipRowEnd(t, c)
				return row, nil
			}
			return nil, t.SyntaxError("bad character " + string(c) + " after a cell")
		}
	}
}

// skipRowEnd consumes the LF of a CRLF pair once c, the CR, was read.
func skipRowEnd(t *jsonvalue.Tokenizer, c rune) {
	if c != '\r' {
		return
	}
	if t.Next() != '\n' {
		_ = t.Back()
	}
}

// RowToObject reads one row and pairs its cells with names. It returns nil
// at the end of the input.
func RowToObject(names *jsonvalue.Array, t *jsonvalue.Tokenizer) (*jsonvalue.Object, error) {
	row, err := RowToArray(t)
	if err != nil || row == nil {
		return nil, err
	}
	return row.ToObject(names)
}

// ToArray reads a whole document. The first row supplies the names, every
// following row becomes an object. It returns nil when there are no data
// rows.
func ToArray(text string) (*jsonvalue.Array, error) {
	t := jsonvalue.NewTokenizer(text)
	names, err := RowToArray(t)
	if err != nil {
		return nil, err
	}
	return rows(names, t)
}

// ToArrayWithNames reads text as data rows only, naming the cells with
// names.
func ToArrayWithNames(names *jsonvalue.Array, text string) (*jsonvalue.Array, error) {
	return rows(names, jsonvalue.NewTokenizer(text))
}

func rows(names *jsonvalue.Array, t *jsonvalue.Tokenizer) (*jsonvalue.Array, error) {
	if names == nil || names.Len() == 0 {
		return nil, nil
	}
	result := jsonvalue.NewArray()
	for {
		o, err := RowToObject(names, t)
		if err != nil {
			return nil, err
		}
		if o == nil {
			break
		}
		if err := result.Put(o); err != nil {
			return nil, err
		}
	}
	if result.Len() == 0 {
		return nil, nil
	}
	return result, nil
}

// ArrayToRow renders the elements of a as one row terminated by a newline.
// Strings are written as is, other values as their JSON text. A cell is
// quoted when it contains a comma, a double quote or a line break, starts
// with a single quote or has surrounding whitespace. NUL characters are
// dropped.
func ArrayToRow(a *jsonvalue.Array) string {
	var sb strings.Builder
	for i, text := range a.ToStringList() {
		if i > 0 {
			sb.WriteByte(',')
		}
		if needsQuotes(text) {
			sb.WriteByte('"')
			for _, c := range text {
				switch c {
				case '"':
					sb.WriteString(`""`)
				case 0:
				default:
					sb.WriteRune(c)
				}
			}
			sb.WriteByte('"')
			continue
		}
		sb.WriteString(text)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func needsQuotes(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsAny(s, ",\"\n\r") || s[0] == '\'' || strings.TrimSpace(s) != s
}

// FromArray renders an array of objects with a header row taken from the
// sorted names of the first object. Elements that are not objects are
// skipped. It returns "" when the first element is not an object.
func FromArray(a *jsonvalue.Array) string {
	first := a.OptObject(0, nil)
	if first == nil || first.Len() == 0 {
		return ""
	}
	names := first.Names()
	return ArrayToRow(names) + FromArrayWithNames(names, a)
}

// FromArrayWithNames renders the objects of a as rows holding the members
// named by names, in that order. Missing members are written as null.
func FromArrayWithNames(names *jsonvalue.Array, a *jsonvalue.Array) string {
	if names == nil || names.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, v := range a.All() {
		o, ok := v.(*jsonvalue.Object)
		if !ok {
			continue
		}
		sb.WriteString(ArrayToRow(o.ValuesOf(names)))
	}
	return sb.String()
}
