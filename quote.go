package jsonvalue

import (
	"bytes"

	"github.com/cybergodev/jsonvalue/internal"
)

// Quote returns s as a JSON string literal. Besides the mandatory escapes
// it escapes "</" as "<\/" and writes control characters, U+0080 through
// U+009F and U+2000 through U+20FF as \uXXXX.
func Quote(s string) string {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	quoteTo(buf, s)
	return buf.String()
}

func quoteTo(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	var prev rune
	for _, r := range s {
		switch r {
		case '\\', '"':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '/':
			if prev == '<' {
				buf.WriteByte('\\')
			}
			buf.WriteByte('/')
		case '\b':
			buf.WriteString(`\b`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\f':
			buf.WriteString(`\f`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if needsUnicodeEscape(r) {
				writeUnicodeEscape(buf, r)
			} else {
				buf.WriteRune(r)
			}
		}
		prev = r
	}
	buf.WriteByte('"')
}

func needsUnicodeEscape(r rune) bool {
	return r < ' ' || (r >= 0x80 && r < 0xa0) || (r >= 0x2000 && r < 0x2100)
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(internal.HexChars[r>>12&0xf])
	buf.WriteByte(internal.HexChars[r>>8&0xf])
	buf.WriteByte(internal.HexChars[r>>4&0xf])
	buf.WriteByte(internal.HexChars[r&0xf])
}
