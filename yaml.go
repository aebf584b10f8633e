package jsonvalue

import (
	"github.com/goccy/go-yaml"
)

// FromYAML reads a YAML document into a value tree. The document is
// converted to JSON text first, so the usual numeric narrowing applies.
func FromYAML(data []byte) (any, error) {
	text, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, &Error{Op: "from_yaml", Message: yaml.FormatError(err, false, false), Err: ErrSyntax}
	}
	return Parse(string(text))
}

// ToYAML renders v as a YAML document. Member order follows the writer's
// sorted key order.
func ToYAML(v any) ([]byte, error) {
	text, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	out, err := yaml.JSONToYAML([]byte(text))
	if err != nil {
		return nil, &Error{Op: "to_yaml", Message: err.Error(), Err: ErrTypeMismatch}
	}
	return out, nil
}
