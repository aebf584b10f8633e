package jsonvalue

import (
	"context"
	"fmt"
)

// Parser turns lenient JSON text into value trees under a Config.
// A Parser holds no per-call state and may be shared.
type Parser struct {
	config *Config
}

// NewParser returns a Parser using config, or the default configuration
// when config is nil. Non-positive limits are replaced by the defaults.
func NewParser(config *Config) *Parser {
	if config == nil {
		config = DefaultConfig()
	} else {
		config = config.Clone()
		_ = ValidateConfig(config)
	}
	return &Parser{config: config}
}

// Parse reads exactly one value from text. Anything but whitespace and
// comments after the value is a fault.
func (p *Parser) Parse(text string) (any, error) {
	t, err := p.tokenizer(text)
	if err != nil {
		return nil, p.fail("parse", err)
	}
	v, err := t.NextValue()
	if err != nil {
		return nil, p.fail("parse", err)
	}
	if err := t.expectEnd(); err != nil {
		return nil, p.fail("parse", err)
	}
	return v, nil
}

// ParseObject reads an object from text.
func (p *Parser) ParseObject(text string) (*Object, error) {
	t, err := p.tokenizer(text)
	if err != nil {
		return nil, p.fail("parse_object", err)
	}
	o, err := t.parseObject()
	if err != nil {
		return nil, p.fail("parse_object", err)
	}
	if err := t.expectEnd(); err != nil {
		return nil, p.fail("parse_object", err)
	}
	return o, nil
}

// ParseArray reads an array from text.
func (p *Parser) ParseArray(text string) (*Array, error) {
	t, err := p.tokenizer(text)
	if err != nil {
		return nil, p.fail("parse_array", err)
	}
	a, err := t.parseArray()
	if err != nil {
		return nil, p.fail("parse_array", err)
	}
	if err := t.expectEnd(); err != nil {
		return nil, p.fail("parse_array", err)
	}
	return a, nil
}

func (p *Parser) tokenizer(text string) (*Tokenizer, error) {
	if int64(len(text)) > p.config.MaxInputSize {
		return nil, newError("parse", "", fmt.Sprintf("input of %d bytes exceeds the limit of %d", len(text), p.config.MaxInputSize), ErrSyntax)
	}
	t := NewTokenizer(text)
	t.maxDepth = p.config.MaxNestingDepth
	return t, nil
}

func (p *Parser) fail(op string, err error) error {
	logFault(context.Background(), p.config.Logger, op, err)
	return err
}

// Parse reads one value from text with the default configuration.
func Parse(text string) (any, error) {
	return NewParser(nil).Parse(text)
}

// ParseObject reads an object from text with the default configuration.
func ParseObject(text string) (*Object, error) {
	return NewParser(nil).ParseObject(text)
}

// ParseArray reads an array from text with the default configuration.
func ParseArray(text string) (*Array, error) {
	return NewParser(nil).ParseArray(text)
}

func (t *Tokenizer) expectEnd() error {
	c, err := t.NextClean()
	if err != nil {
		return err
	}
	if c != 0 {
		return t.SyntaxError(fmt.Sprintf("unexpected %q after the value", c))
	}
	return nil
}

func (t *Tokenizer) enter() error {
	t.depth++
	if t.depth > t.maxDepth {
		return t.fault(fmt.Sprintf("nesting exceeds %d levels", t.maxDepth), ErrNestingTooDeep)
	}
	return nil
}

func (t *Tokenizer) leave() {
	t.depth--
}

// parseObject reads '{' key ':' value ((',' | ';') key ':' value)* '}'.
// A separator directly before '}' is tolerated.
func (t *Tokenizer) parseObject() (*Object, error) {
	c, err := t.NextClean()
	if err != nil {
		return nil, err
	}
	if c != '{' {
		return nil, t.SyntaxError("a JSON object text must begin with '{'")
	}
	if err := t.enter(); err != nil {
		return nil, err
	}
	defer t.leave()

	o := NewObject()
	for {
		c, err := t.NextClean()
		if err != nil {
			return nil, err
		}
		switch c {
		case 0:
			return nil, t.SyntaxError("a JSON object text must end with '}'")
		case '}':
			return o, nil
		}
		t.back()

		keyPos := t.Position()
		raw, err := t.NextValue()
		if err != nil {
			return nil, err
		}
		key, err := keyText(raw)
		if err != nil {
			return nil, err
		}

		c, err = t.NextClean()
		if err != nil {
			return nil, err
		}
		if c != ':' {
			return nil, t.SyntaxError("expected a ':' after a key")
		}
		if o.Has(key) {
			return nil, &Error{Op: "parse", Path: key, Message: "duplicate key", Pos: &keyPos, Err: ErrDuplicateKey}
		}
		value, err := t.NextValue()
		if err != nil {
			return nil, err
		}
		o.members[key] = value

		c, err = t.NextClean()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',', ';':
			c, err = t.NextClean()
			if err != nil {
				return nil, err
			}
			if c == '}' {
				return o, nil
			}
			t.back()
		case '}':
			return o, nil
		default:
			return nil, t.SyntaxError("expected a ',' or '}'")
		}
	}
}

// parseArray reads '[' (value? ',')* value? ']'. An empty slot between two
// commas holds Null; a trailing comma is tolerated.
func (t *Tokenizer) parseArray() (*Array, error) {
	c, err := t.NextClean()
	if err != nil {
		return nil, err
	}
	if c != '[' {
		return nil, t.SyntaxError("a JSON array text must begin with '['")
	}
	if err := t.enter(); err != nil {
		return nil, err
	}
	defer t.leave()

	a := NewArray()
	c, err = t.NextClean()
	if err != nil {
		return nil, err
	}
	switch c {
	case 0:
		return nil, t.SyntaxError("expected a ',' or ']'")
	case ']':
		return a, nil
	}
	t.back()

	for {
		c, err = t.NextClean()
		if err != nil {
			return nil, err
		}
		t.back()
		if c == ',' {
			a.elems = append(a.elems, Null)
		} else {
			v, err := t.NextValue()
			if err != nil {
				return nil, err
			}
			a.elems = append(a.elems, v)
		}

		c, err = t.NextClean()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			c, err = t.NextClean()
			if err != nil {
				return nil, err
			}
			switch c {
			case 0:
				return nil, t.SyntaxError("expected a ',' or ']'")
			case ']':
				return a, nil
			}
			t.back()
		case ']':
			return a, nil
		default:
			return nil, t.SyntaxError("expected a ',' or ']'")
		}
	}
}

// keyText renders a parsed key value as a member name.
func keyText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return ValueToString(v)
}
