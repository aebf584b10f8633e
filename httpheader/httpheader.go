// Package httpheader converts the head of an HTTP request or response to a
// jsonvalue object and back.
//
// A request head yields the members "Method", "Request-URI" and
// "HTTP-Version"; a response head yields "HTTP-Version", "Status-Code" and
// "Reason-Phrase". Every header field becomes a member named after the
// field. Values are kept as text: dates are not parsed and URIs are not
// decoded.
package httpheader

import (
	"strings"
	"unicode"

	"github.com/cybergodev/jsonvalue"
)

// CRLF terminates every line Format writes.
const CRLF = "\r\n"

// Start-line member names.
const (
	Method       = "Method"
	RequestURI   = "Request-URI"
	HTTPVersion  = "HTTP-Version"
	StatusCode   = "Status-Code"
	ReasonPhrase = "Reason-Phrase"
)

// Parse reads a request or response head. Lines may end with CRLF or LF;
// an empty line ends the head.
func Parse(text string) (*jsonvalue.Object, error) {
	t := jsonvalue.NewTokenizer(text)
	o := jsonvalue.NewObject()

	token, err := nextToken(t)
	if err != nil {
		return nil, err
	}
	var startLine [3]string
	var names [3]string
	if strings.HasPrefix(strings.ToUpper(token), "HTTP") {
		names = [3]string{HTTPVersion, StatusCode, ReasonPhrase}
		startLine[0] = token
		if startLine[1], err = nextToken(t); err != nil {
			return nil, err
		}
		startLine[2] = t.NextTo(0)
	} else {
		names = [3]string{Method, RequestURI, HTTPVersion}
		startLine[0] = token
		for i := 1; i < 3; i++ {
			if startLine[i], err = nextToken(t); err != nil {
				return nil, err
			}
		}
		t.NextTo(0)
	}
	for i, name := range names {
		if err := o.Put(name, startLine[i]); err != nil {
			return nil, err
		}
	}

	for skipLineBreak(t) {
		if !t.More() || atLineBreak(t) {
			break
		}
		name := t.NextTo(':')
		if _, err := t.NextRune(':'); err != nil {
			return nil, err
		}
		if err := o.Put(name, t.NextTo(0)); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// nextToken skips whitespace and reads a bare or quoted token.
func nextToken(t *jsonvalue.Tokenizer) (string, error) {
	c := t.Next()
	for c != 0 && unicode.IsSpace(c) {
		c = t.Next()
	}
	var sb strings.Builder
	if c == '"' || c == '\'' {
		quote := c
		for {
			c = t.Next()
			if c < ' ' {
				return "", t.SyntaxError("unterminated string")
			}
			if c == quote {
				return sb.String(), nil
			}
			sb.WriteRune(c)
		}
	}
	for c != 0 && !unicode.IsSpace(c) {
		sb.WriteRune(c)
		c = t.Next()
	}
	if c != 0 {
		_ = t.Back()
	}
	return sb.String(), nil
}

// skipLineBreak consumes one CRLF, LF or CR and reports whether it found one.
func skipLineBreak(t *jsonvalue.Tokenizer) bool {
	switch t.Next() {
	case '\r':
		if t.Next() != '\n' {
			_ = t.Back()
		}
		return true
	case '\n':
		return true
	case 0:
		return false
	}
	_ = t.Back()
	return false
}

func atLineBreak(t *jsonvalue.Tokenizer) bool {
	c := t.Next()
	_ = t.Back()
	return c == '\r' || c == '\n'
}

// Format renders o as an HTTP head ending with an empty line. o must hold
// either the response members Status-Code and Reason-Phrase or the request
// members Method and Request-URI. The remaining members are written as
// header fields in key order; Null members are skipped.
func Format(o *jsonvalue.Object) (string, error) {
	var sb strings.Builder
	var fields []string
	switch {
	case o.Has(StatusCode) && o.Has(ReasonPhrase):
		fields = []string{HTTPVersion, StatusCode, ReasonPhrase}
	case o.Has(Method) && o.Has(RequestURI):
		fields = []string{Method, RequestURI, HTTPVersion}
	default:
		return "", &jsonvalue.Error{Op: "format_http", Message: "not enough material for an HTTP header", Err: jsonvalue.ErrNotFound}
	}
	for i, field := range fields {
		text, err := startLineText(o, field)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	sb.WriteString(CRLF)

	for _, key := range o.KeySet().Sorted() {
		switch key {
		case Method, RequestURI, HTTPVersion, StatusCode, ReasonPhrase:
			continue
		}
		if o.IsNull(key) {
			continue
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(o.OptString(key, ""))
		sb.WriteString(CRLF)
	}
	sb.WriteString(CRLF)
	return sb.String(), nil
}

// startLineText accepts numbers for Status-Code so that parsed and
// hand-built objects both format.
func startLineText(o *jsonvalue.Object, key string) (string, error) {
	if _, err := o.Get(key); err != nil {
		return "", err
	}
	if o.IsNull(key) {
		return "", &jsonvalue.Error{Op: "format_http", Path: key, Message: "start line member is null", Err: jsonvalue.ErrTypeMismatch}
	}
	return o.OptString(key, ""), nil
}
