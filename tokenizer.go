package jsonvalue

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cybergodev/jsonvalue/internal"
)

// Tokenizer reads runes from an in-memory string with exactly one rune of
// pushback. It is the scanner behind Parse and the primitive surface the
// cookie, httpheader and delimited packages are built on.
//
// Next returns 0 once the input is exhausted, so a NUL rune in the input
// reads as the end of text.
type Tokenizer struct {
	src string
	pos int

	line   int
	column int

	last    step
	stepped bool
	backed  bool
	eof     bool

	depth    int
	maxDepth int
}

// step remembers enough about the last Next to undo it.
type step struct {
	size   int
	line   int
	column int
}

// NewTokenizer returns a Tokenizer over text.
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{
		src:      text,
		line:     1,
		column:   1,
		maxDepth: DefaultMaxNestingDepth,
	}
}

// Next consumes and returns the next rune, or 0 at the end of the input.
func (t *Tokenizer) Next() rune {
	t.stepped = true
	t.backed = false
	t.last = step{line: t.line, column: t.column}
	if t.pos >= len(t.src) {
		t.eof = true
		return 0
	}
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])
	t.last.size = size
	t.pos += size
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r
}

// Back undoes the last Next. Only one rune can be pushed back.
func (t *Tokenizer) Back() error {
	if !t.stepped || t.backed {
		return t.SyntaxError("stepping back two steps is not supported")
	}
	t.back()
	return nil
}

func (t *Tokenizer) back() {
	t.pos -= t.last.size
	t.line, t.column = t.last.line, t.last.column
	t.backed = true
	t.eof = false
}

// More reports whether input remains.
func (t *Tokenizer) More() bool {
	return t.pos < len(t.src)
}

// End reports whether a read has run past the end of the input.
func (t *Tokenizer) End() bool {
	return t.eof
}

// Offset returns the byte offset of the next rune.
func (t *Tokenizer) Offset() int {
	return t.pos
}

// NextRune consumes the next rune and requires it to be c.
func (t *Tokenizer) NextRune(c rune) (rune, error) {
	n := t.Next()
	if n != c {
		if n == 0 {
			return n, t.SyntaxError(fmt.Sprintf("expected %q and instead saw end of input", c))
		}
		return n, t.SyntaxError(fmt.Sprintf("expected %q and instead saw %q", c, n))
	}
	return n, nil
}

// NextN consumes the next n runes.
func (t *Tokenizer) NextN(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	start := t.pos
	for i := 0; i < n; i++ {
		if t.Next() == 0 {
			return "", t.SyntaxError("substring bounds error")
		}
	}
	return t.src[start:t.pos], nil
}

// NextClean skips whitespace and comments and returns the next rune, or 0
// at the end of the input. Comments are //, /* */ and #.
func (t *Tokenizer) NextClean() (rune, error) {
	for {
		c := t.Next()
		switch {
		case c == '/':
			switch t.peek() {
			case '/':
				t.Next()
				t.skipLine()
			case '*':
				t.Next()
				if err := t.skipBlockComment(); err != nil {
					return 0, err
				}
			default:
				return '/', nil
			}
		case c == '#':
			t.skipLine()
		case c == 0 || c > ' ':
			return c, nil
		}
	}
}

// peek returns the next byte without consuming it, or 0 at the end.
func (t *Tokenizer) peek() byte {
	if t.pos >= len(t.src) {
		return 0
	}
	return t.src[t.pos]
}

func (t *Tokenizer) skipLine() {
	for {
		c := t.Next()
		if c == '\n' || c == '\r' || c == 0 {
			return
		}
	}
}

func (t *Tokenizer) skipBlockComment() error {
	for {
		c := t.Next()
		if c == 0 {
			return t.SyntaxError("unclosed comment")
		}
		if c == '*' && t.peek() == '/' {
			t.Next()
			return nil
		}
	}
}

// NextString reads the rest of a string opened by quote and returns it
// unescaped. The opening quote must already be consumed.
func (t *Tokenizer) NextString(quote rune) (string, error) {
	var sb strings.Builder
	for {
		c := t.Next()
		switch c {
		case 0, '\n', '\r':
			return "", t.SyntaxError("unterminated string")
		case '\\':
			c = t.Next()
			switch c {
			case 'b':
				sb.WriteByte('\b')
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'f':
				sb.WriteByte('\f')
			case 'r':
				sb.WriteByte('\r')
			case 'u':
				r, err := t.nextEscapedRune()
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
			case '"', '\'', '\\', '/':
				sb.WriteRune(c)
			default:
				return "", t.SyntaxError("illegal escape")
			}
		default:
			if c == quote {
				return sb.String(), nil
			}
			sb.WriteRune(c)
		}
	}
}

// nextEscapedRune decodes the hex digits of a \u escape, combining a
// surrogate pair when a low surrogate escape follows a high one.
func (t *Tokenizer) nextEscapedRune() (rune, error) {
	r, err := t.nextHex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r) {
		return r, nil
	}
	if !strings.HasPrefix(t.src[t.pos:], `\u`) {
		return utf8.RuneError, nil
	}
	save := *t
	t.Next()
	t.Next()
	low, err := t.nextHex4()
	if err != nil {
		return 0, err
	}
	if combined := utf16.DecodeRune(r, low); combined != utf8.RuneError {
		return combined, nil
	}
	*t = save
	return utf8.RuneError, nil
}

func (t *Tokenizer) nextHex4() (rune, error) {
	hex, err := t.NextN(4)
	if err != nil {
		return 0, t.SyntaxError("illegal escape")
	}
	var r rune
	for _, h := range hex {
		d := internal.HexDigit(h)
		if d < 0 {
			return 0, t.SyntaxError("illegal escape")
		}
		r = r<<4 | rune(d)
	}
	return r, nil
}

// NextTo returns the text up to delimiter or the end of the line, trimmed.
// The delimiter is not consumed.
func (t *Tokenizer) NextTo(delimiter rune) string {
	var sb strings.Builder
	for {
		c := t.Next()
		if c == delimiter || c == 0 || c == '\n' || c == '\r' {
			if c != 0 {
				t.back()
			}
			return strings.TrimSpace(sb.String())
		}
		sb.WriteRune(c)
	}
}

// NextToAny returns the text up to any rune of delimiters or the end of the
// line, trimmed. The delimiter is not consumed.
func (t *Tokenizer) NextToAny(delimiters string) string {
	var sb strings.Builder
	for {
		c := t.Next()
		if strings.ContainsRune(delimiters, c) || c == 0 || c == '\n' || c == '\r' {
			if c != 0 {
				t.back()
			}
			return strings.TrimSpace(sb.String())
		}
		sb.WriteRune(c)
	}
}

// SkipTo advances to the next occurrence of to and returns it without
// consuming it. When to does not occur the position is left unchanged and
// 0 is returned.
func (t *Tokenizer) SkipTo(to rune) rune {
	save := *t
	for {
		c := t.Next()
		if c == 0 {
			*t = save
			return 0
		}
		if c == to {
			t.back()
			return c
		}
	}
}

// SkipPast advances past the next occurrence of marker. When marker does
// not occur the input is consumed entirely and false is returned.
func (t *Tokenizer) SkipPast(marker string) bool {
	if marker == "" {
		return true
	}
	idx := strings.Index(t.src[t.pos:], marker)
	target := len(t.src)
	if idx >= 0 {
		target = t.pos + idx + len(marker)
	}
	for t.pos < target {
		t.Next()
	}
	return idx >= 0
}

// NextValue reads the next value: an object, an array, a quoted string or
// a bare token coerced with StringToValue. A decimal literal outside the
// representable exponent range is an ErrInvalidNumber fault.
func (t *Tokenizer) NextValue() (any, error) {
	c, err := t.NextClean()
	if err != nil {
		return nil, err
	}
	switch c {
	case '"', '\'':
		return t.NextString(c)
	case '{':
		t.back()
		return t.parseObject()
	case '[':
		t.back()
		return t.parseArray()
	}

	var sb strings.Builder
	for c >= ' ' && !internal.IsSpace(c) && !isTokenDelimiter(c) {
		sb.WriteRune(c)
		c = t.Next()
	}
	t.back()

	token := strings.TrimSpace(sb.String())
	if token == "" {
		return nil, t.SyntaxError("missing value")
	}
	if internal.IsDecimalNotation(token) && internal.IsDecimalLiteral(token) {
		n, err := StringToNumber(token)
		if err != nil {
			return nil, t.fault("number "+token+" is out of range", ErrInvalidNumber)
		}
		return n, nil
	}
	return StringToValue(token), nil
}

func isTokenDelimiter(c rune) bool {
	return strings.ContainsRune(",:]}/\\\"[{;=#", c)
}

// Dehex returns the value of a hexadecimal digit, or -1.
func Dehex(c rune) int {
	return internal.HexDigit(c)
}

// Position returns the scan position of the next rune.
func (t *Tokenizer) Position() Position {
	return Position{Offset: t.pos, Line: t.line, Column: t.column}
}

// SyntaxError returns an ErrSyntax fault at the current position.
func (t *Tokenizer) SyntaxError(message string) error {
	return t.fault(message, ErrSyntax)
}

func (t *Tokenizer) fault(message string, kind error) error {
	pos := t.Position()
	return &Error{Op: "parse", Message: message, Pos: &pos, Err: kind}
}

func (t *Tokenizer) String() string {
	return " at " + t.Position().String()
}
