package jsonvalue

import (
	"io"
	"log/slog"

	"github.com/cybergodev/jsonvalue/internal"
)

type composerMode uint8

const (
	modeInitial composerMode = iota
	modeKey                  // inside an object, expecting a key or EndObject
	modeValue                // inside an object, expecting the value of a key
	modeArray                // inside an array
	modeDone                 // the outermost value is closed
)

// Composer writes JSON text to a writer one token at a time. Misuse, such
// as a key inside an array or an unbalanced end, is reported as a fault
// instead of producing malformed text.
type Composer struct {
	w        io.Writer
	mode     composerMode
	comma    bool
	scopes   []map[string]struct{} // nil entry marks an array scope
	maxDepth int
	logger   *slog.Logger
}

// NewComposer returns a Composer writing to w with the default limits.
func NewComposer(w io.Writer) *Composer {
	return NewComposerWithConfig(w, nil)
}

// NewComposerWithConfig returns a Composer writing to w, bounded by
// config.MaxNestingDepth.
func NewComposerWithConfig(w io.Writer, config *Config) *Composer {
	if config == nil {
		config = DefaultConfig()
	} else {
		config = config.Clone()
		_ = ValidateConfig(config)
	}
	return &Composer{
		w:        w,
		maxDepth: config.MaxNestingDepth,
		logger:   config.Logger,
	}
}

// Depth returns the number of open scopes.
func (c *Composer) Depth() int {
	return len(c.scopes)
}

// Object opens an object.
func (c *Composer) Object() error {
	if c.mode == modeInitial {
		c.mode = modeValue
	}
	if c.mode != modeValue && c.mode != modeArray {
		return c.fail("object", "misplaced object", ErrNestingMismatch)
	}
	if err := c.checkDepth(); err != nil {
		return err
	}
	if err := c.append("{"); err != nil {
		return err
	}
	if err := c.push(make(map[string]struct{})); err != nil {
		return err
	}
	c.comma = false
	return nil
}

// EndObject closes the innermost scope, which must be an object.
func (c *Composer) EndObject() error {
	return c.end(modeKey, '}')
}

// Array opens an array.
func (c *Composer) Array() error {
	if c.mode != modeInitial && c.mode != modeValue && c.mode != modeArray {
		return c.fail("array", "misplaced array", ErrNestingMismatch)
	}
	if err := c.checkDepth(); err != nil {
		return err
	}
	if c.mode == modeInitial {
		c.mode = modeArray
	}
	if err := c.append("["); err != nil {
		return err
	}
	if err := c.push(nil); err != nil {
		return err
	}
	c.comma = false
	return nil
}

// EndArray closes the innermost scope, which must be an array.
func (c *Composer) EndArray() error {
	return c.end(modeArray, ']')
}

// Key writes a member name. Keys must be unique within their object.
func (c *Composer) Key(name string) error {
	if c.mode != modeKey {
		return c.fail("key", "misplaced key", ErrNestingMismatch)
	}
	scope := c.scopes[len(c.scopes)-1]
	if _, dup := scope[name]; dup {
		return &Error{Op: "key", Path: name, Message: "duplicate key", Err: ErrDuplicateKey}
	}
	scope[name] = struct{}{}

	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	if c.comma {
		buf.WriteByte(',')
	}
	quoteTo(buf, name)
	buf.WriteByte(':')
	if err := c.emit(buf.Bytes()); err != nil {
		return err
	}
	c.comma = false
	c.mode = modeValue
	return nil
}

// Value writes a scalar or a complete tree. Serializer values write their
// own text.
func (c *Composer) Value(v any) error {
	if c.mode != modeValue && c.mode != modeArray {
		return c.fail("value", "value out of sequence", ErrNestingMismatch)
	}
	text, err := ValueToString(v)
	if err != nil {
		return err
	}
	return c.append(text)
}

// append writes a value or an opening bracket in the current scope.
func (c *Composer) append(text string) error {
	if c.comma && c.mode == modeArray {
		if err := c.emit([]byte{','}); err != nil {
			return err
		}
	}
	if err := c.emit([]byte(text)); err != nil {
		return err
	}
	if c.mode == modeValue {
		c.mode = modeKey
	}
	c.comma = true
	return nil
}

func (c *Composer) end(want composerMode, closer byte) error {
	if c.mode != want {
		message := "misplaced endObject"
		if want == modeArray {
			message = "misplaced endArray"
		}
		return c.fail("end", message, ErrNestingMismatch)
	}
	c.pop()
	if err := c.emit([]byte{closer}); err != nil {
		return err
	}
	c.comma = true
	return nil
}

func (c *Composer) checkDepth() error {
	if len(c.scopes) >= c.maxDepth {
		return c.fail("push", "nesting too deep", ErrNestingTooDeep)
	}
	return nil
}

func (c *Composer) push(scope map[string]struct{}) error {
	if err := c.checkDepth(); err != nil {
		return err
	}
	c.scopes = append(c.scopes, scope)
	if scope == nil {
		c.mode = modeArray
	} else {
		c.mode = modeKey
	}
	return nil
}

func (c *Composer) pop() {
	c.scopes = c.scopes[:len(c.scopes)-1]
	switch {
	case len(c.scopes) == 0:
		c.mode = modeDone
	case c.scopes[len(c.scopes)-1] == nil:
		c.mode = modeArray
	default:
		c.mode = modeKey
	}
}

func (c *Composer) emit(p []byte) error {
	if _, err := c.w.Write(p); err != nil {
		return &Error{Op: "compose", Message: err.Error(), Err: err}
	}
	return nil
}

func (c *Composer) fail(op, message string, kind error) error {
	if c.logger != nil {
		c.logger.Debug("composer rejected call",
			slog.String("operation", op),
			slog.String("error", message),
			slog.Int("depth", len(c.scopes)),
		)
	}
	return newError(op, "", message, kind)
}
