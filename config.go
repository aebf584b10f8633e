package jsonvalue

import (
	"log/slog"

	"github.com/cybergodev/jsonvalue/internal"
)

// Default limits
const (
	DefaultMaxNestingDepth = internal.MaxNestingDepth
	DefaultMaxInputSize    = internal.MaxInputSize
)

// Config holds the limits and collaborators shared by Parser and Composer.
type Config struct {
	// MaxNestingDepth bounds how deeply objects and arrays may nest, both
	// while parsing and while composing.
	MaxNestingDepth int `json:"max_nesting_depth"`

	// MaxInputSize bounds the length in bytes of text handed to the parser.
	MaxInputSize int64 `json:"max_input_size"`

	// Logger receives debug records for rejected input and swallowed
	// conversion failures. Nil disables logging.
	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxNestingDepth: DefaultMaxNestingDepth,
		MaxInputSize:    DefaultMaxInputSize,
		Logger:          defaultLogger(),
	}
}

// ValidateConfig validates configuration values and applies corrections
func ValidateConfig(config *Config) error {
	if config == nil {
		return newError("validate_config", "", "config cannot be nil", ErrTypeMismatch)
	}
	if config.MaxNestingDepth <= 0 {
		config.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if config.MaxInputSize <= 0 {
		config.MaxInputSize = DefaultMaxInputSize
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
