package internal

import (
	"bytes"
	"strings"
	"sync"
)

// IsSpace reports whether the character is insignificant whitespace
func IsSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

// IsDigit reports whether the character is a decimal digit
func IsDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// HexDigit returns the value of a hexadecimal digit, or -1.
func HexDigit(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return -1
}

// HexChars contains hex characters for escape sequences
var HexChars = [16]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f',
}

var bufferPool = sync.Pool{
	New: func() any {
		buf := &bytes.Buffer{}
		buf.Grow(2048)
		return buf
	},
}

// GetBuffer gets a reset buffer from the pool
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. Oversized buffers are dropped.
func PutBuffer(buf *bytes.Buffer) {
	const maxPoolBufferSize = 64 * 1024
	if buf == nil || buf.Cap() > maxPoolBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// IsDecimalNotation reports whether a numeric literal must be read as a
// decimal rather than an integer.
func IsDecimalNotation(s string) bool {
	return s == "-0" || ContainsAnyByte(s, ".eE")
}

// IsDecimalLiteral checks the shape -?digits[.digits][(e|E)[+-]digits].
// Either side of the point may be empty but not both.
func IsDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	intDigits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			fracDigits++
		}
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}

// IsIntegerLiteral checks the shape -?digits.
func IsIntegerLiteral(s string) bool {
	start := 0
	if len(s) > 0 && s[0] == '-' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseIndex parses a non-negative decimal array index without sign or
// surrounding space. It returns false on overflow.
func ParseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	const maxIndex = int(^uint(0) >> 1)
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if n > (maxIndex-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// ContainsAnyByte checks if string contains any of the specified bytes
func ContainsAnyByte(s, chars string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return true
			}
		}
	}
	return false
}

// TrimFractionZeros shaves trailing zeros and a dangling point off a plain
// decimal string. Strings with an exponent are returned unchanged.
func TrimFractionZeros(s string) string {
	if strings.IndexByte(s, '.') < 0 || ContainsAnyByte(s, "eE") {
		return s
	}
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	return s[:end]
}
