package jsonvalue

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cybergodev/jsonvalue/internal"
)

// Pointer is a parsed JSON Pointer: an immutable list of unescaped
// reference tokens. The empty Pointer refers to the whole document.
//
// Besides the RFC 6901 escapes ~0 and ~1, tokens may carry \" and \\,
// and "#/"-prefixed pointers are form-decoded first (so '+' reads as a
// space).
type Pointer struct {
	tokens []string
}

// ParsePointer parses "", "#", "/..." or "#/..." pointer text.
func ParsePointer(text string) (*Pointer, error) {
	if text == "" || text == "#" {
		return &Pointer{}, nil
	}
	var refs string
	switch {
	case strings.HasPrefix(text, "#/"):
		decoded, err := url.QueryUnescape(text[2:])
		if err != nil {
			return nil, newError("parse_pointer", text, "bad percent encoding: "+err.Error(), ErrSyntax)
		}
		refs = decoded
	case strings.HasPrefix(text, "/"):
		refs = text[1:]
	default:
		return nil, newError("parse_pointer", text, "a JSON pointer should start with '/' or '#/'", ErrSyntax)
	}
	parts := strings.Split(refs, "/")
	tokens := make([]string, len(parts))
	for i, part := range parts {
		tokens[i] = unescapeToken(part)
	}
	return &Pointer{tokens: tokens}, nil
}

// NewPointer builds a Pointer from raw, unescaped tokens.
func NewPointer(tokens ...string) *Pointer {
	return &Pointer{tokens: append([]string(nil), tokens...)}
}

var (
	tokenUnescaper = strings.NewReplacer(`\"`, `"`, `\\`, `\`)
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1", `\`, `\\`, `"`, `\"`)
)

// unescapeToken applies ~1 before ~0, so "~01" reads as "~1".
func unescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return tokenUnescaper.Replace(token)
}

// Tokens returns a copy of the reference tokens.
func (p *Pointer) Tokens() []string {
	return append([]string(nil), p.tokens...)
}

// IsRoot reports whether p refers to the whole document.
func (p *Pointer) IsRoot() bool {
	return len(p.tokens) == 0
}

// String returns the escaped "/a/b" form.
func (p *Pointer) String() string {
	var sb strings.Builder
	for _, token := range p.tokens {
		sb.WriteByte('/')
		sb.WriteString(tokenEscaper.Replace(token))
	}
	return sb.String()
}

// URIFragment returns the "#/a/b" form. Tokens are escaped as in String and
// then form-encoded, so the result parses back to the same tokens.
func (p *Pointer) URIFragment() string {
	var sb strings.Builder
	sb.WriteByte('#')
	for _, token := range p.tokens {
		sb.WriteByte('/')
		sb.WriteString(url.QueryEscape(tokenEscaper.Replace(token)))
	}
	return sb.String()
}

// Query resolves p against doc.
func (p *Pointer) Query(doc any) (any, error) {
	current := doc
	for i, token := range p.tokens {
		path := (&Pointer{tokens: p.tokens[:i+1]}).String()
		switch node := current.(type) {
		case *Object:
			v, ok := node.members[token]
			if !ok {
				if _, isIndex := internal.ParseIndex(token); isIndex {
					return nil, newError("query", path, "object is not an array", ErrTypeMismatch)
				}
				return nil, newError("query", path, fmt.Sprintf("key %q not found", token), ErrNotFound)
			}
			current = v
		case *Array:
			index, ok := internal.ParseIndex(token)
			if !ok {
				return nil, newError("query", path, fmt.Sprintf("%q is not an array index", token), ErrTypeMismatch)
			}
			if index >= len(node.elems) {
				return nil, newError("query", path,
					"index "+strconv.Itoa(index)+" is out of bounds, the array has "+strconv.Itoa(len(node.elems))+" elements",
					ErrNotFound)
			}
			current = node.elems[index]
		default:
			return nil, newError("query", path,
				fmt.Sprintf("%s is not an array or object, key %q cannot be resolved", describe(current), token),
				ErrTypeMismatch)
		}
	}
	return current, nil
}

// OptQuery resolves p against doc, returning nil on any failure.
func (p *Pointer) OptQuery(doc any) any {
	v, err := p.Query(doc)
	if err != nil {
		return nil
	}
	return v
}

// OptQuery parses pointer and resolves it against doc, returning nil when
// either step fails.
func OptQuery(doc any, pointer string) any {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil
	}
	return p.OptQuery(doc)
}

// Query parses pointer and resolves it against doc.
func Query(doc any, pointer string) (any, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return p.Query(doc)
}

// PointerBuilder accumulates raw tokens for a Pointer.
type PointerBuilder struct {
	tokens []string
}

// NewPointerBuilder returns an empty builder.
func NewPointerBuilder() *PointerBuilder {
	return &PointerBuilder{}
}

// Add appends a raw, unescaped token.
func (b *PointerBuilder) Add(token string) *PointerBuilder {
	b.tokens = append(b.tokens, token)
	return b
}

// AddIndex appends an array index token.
func (b *PointerBuilder) AddIndex(index int) *PointerBuilder {
	b.tokens = append(b.tokens, strconv.Itoa(index))
	return b
}

// Build returns a Pointer holding a copy of the tokens added so far.
func (b *PointerBuilder) Build() *Pointer {
	return NewPointer(b.tokens...)
}
