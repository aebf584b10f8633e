package jsonvalue

import (
	"errors"
	"fmt"
)

// Error categories. Every fault returned by this package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNotFound        = errors.New("not found")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrNestingTooDeep  = errors.New("nesting too deep")
	ErrNestingMismatch = errors.New("nesting mismatch")
)

// Position locates a fault inside parsed text. Offset is a byte offset,
// Line and Column are 1-based and count runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("offset %d [line %d column %d]", p.Offset, p.Line, p.Column)
}

// Error is the single structured fault type of the package.
type Error struct {
	Op      string    `json:"op"`      // Operation that failed
	Path    string    `json:"path"`    // Key, index or pointer involved, if any
	Message string    `json:"message"` // Human-readable error message
	Pos     *Position `json:"pos"`     // Scan position for parse faults
	Err     error     `json:"err"`     // Category sentinel
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s failed at %q: %s", e.Op, e.Path, msg)
	} else {
		msg = fmt.Sprintf("%s failed: %s", e.Op, msg)
	}
	if e.Pos != nil {
		msg += " at " + e.Pos.String()
	}
	return msg
}

// Unwrap returns the category sentinel.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Err == t.Err
	}
	return errors.Is(e.Err, target)
}

func newError(op, path, message string, kind error) error {
	return &Error{Op: op, Path: path, Message: message, Err: kind}
}

func notFound(op, path string) error {
	return newError(op, path, "not found", ErrNotFound)
}

func typeMismatch(op, path, want string, got any) error {
	return newError(op, path, fmt.Sprintf("%s is not a %s", describe(got), want), ErrTypeMismatch)
}

// describe names the kind of a stored value for error messages.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "absent value"
	case nullValue:
		return "null"
	case bool:
		return "boolean"
	case Number:
		return x.Kind().String()
	case string:
		return "string"
	case *Object:
		return "object"
	case *Array:
		return "array"
	case Serializer:
		return "serializer"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Category returns the sentinel a fault belongs to, or nil for foreign errors.
func Category(err error) error {
	for _, kind := range []error{
		ErrSyntax, ErrDuplicateKey, ErrTypeMismatch, ErrNotFound,
		ErrInvalidNumber, ErrNestingTooDeep, ErrNestingMismatch,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
