package jsonvalue

import (
	"bytes"
	"log/slog"
	"testing"
)

// TestConfiguration tests configuration creation, validation, and cloning
func TestConfiguration(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()
		helper.AssertNotNil(config)
		helper.AssertEqual(DefaultMaxNestingDepth, config.MaxNestingDepth)
		helper.AssertEqual(int64(DefaultMaxInputSize), config.MaxInputSize)
		helper.AssertTrue(config.Logger == nil)
	})

	t.Run("DefaultConfigPicksUpPackageLogger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		SetDefaultLogger(logger)
		defer SetDefaultLogger(nil)
		helper.AssertTrue(DefaultConfig().Logger == logger)
	})

	t.Run("ValidateConfig", func(t *testing.T) {
		config := &Config{MaxNestingDepth: -1, MaxInputSize: 0}
		helper.AssertNoError(ValidateConfig(config))
		helper.AssertEqual(DefaultMaxNestingDepth, config.MaxNestingDepth)
		helper.AssertEqual(int64(DefaultMaxInputSize), config.MaxInputSize)

		custom := &Config{MaxNestingDepth: 3, MaxInputSize: 10}
		helper.AssertNoError(ValidateConfig(custom))
		helper.AssertEqual(3, custom.MaxNestingDepth)

		helper.AssertErrorIs(ValidateConfig(nil), ErrTypeMismatch)
	})

	t.Run("Clone", func(t *testing.T) {
		original := &Config{MaxNestingDepth: 5, MaxInputSize: 50}
		clone := original.Clone()
		clone.MaxNestingDepth = 9
		helper.AssertEqual(5, original.MaxNestingDepth)

		var missing *Config
		helper.AssertTrue(missing.Clone() == nil)
	})

	t.Run("NewParserDoesNotMutateCaller", func(t *testing.T) {
		config := &Config{}
		NewParser(config)
		helper.AssertEqual(0, config.MaxNestingDepth)
		NewComposerWithConfig(&bytes.Buffer{}, config)
		helper.AssertEqual(int64(0), config.MaxInputSize)
	})
}
