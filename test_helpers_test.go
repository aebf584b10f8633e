package jsonvalue

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// TestHelper provides assertions shared by the package tests
type TestHelper struct {
	t *testing.T
}

// NewTestHelper wraps t.
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

func message(def string, msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return def
	}
	return fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
}

// AssertEqual fails unless expected and actual are deeply equal.
func (h *TestHelper) AssertEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		h.t.Errorf("%s\nExpected: %v (%T)\nActual: %v (%T)",
			message("Values are not equal", msgAndArgs), expected, expected, actual, actual)
	}
}

// AssertSimilar checks two value trees with Similar
func (h *TestHelper) AssertSimilar(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	if !Similar(expected, actual) {
		want, _ := Marshal(expected)
		got, _ := Marshal(actual)
		h.t.Errorf("%s\nExpected: %s\nActual: %s", message("Values are not similar", msgAndArgs), want, got)
	}
}

// AssertNoError fails on any error.
func (h *TestHelper) AssertNoError(err error, msgAndArgs ...any) {
	h.t.Helper()
	if err != nil {
		h.t.Errorf("%s, but got: %v", message("Expected no error", msgAndArgs), err)
	}
}

// AssertError fails when err is nil.
func (h *TestHelper) AssertError(err error, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Error(message("Expected an error", msgAndArgs) + ", but got nil")
	}
}

// AssertErrorIs checks that err matches the category sentinel
func (h *TestHelper) AssertErrorIs(err, target error, msgAndArgs ...any) {
	h.t.Helper()
	if !errors.Is(err, target) {
		h.t.Errorf("%s: want %v, got %v", message("Unexpected error category", msgAndArgs), target, err)
	}
}

// AssertErrorContains fails unless err mentions contains.
func (h *TestHelper) AssertErrorContains(err error, contains string, msgAndArgs ...any) {
	h.t.Helper()
	if err == nil {
		h.t.Error(message("Expected an error", msgAndArgs) + ", but got nil")
		return
	}
	if !strings.Contains(err.Error(), contains) {
		h.t.Errorf("%s, but got: %v", message(fmt.Sprintf("Expected error to contain '%s'", contains), msgAndArgs), err)
	}
}

// AssertTrue fails unless condition holds.
func (h *TestHelper) AssertTrue(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	if !condition {
		h.t.Error(message("Expected condition to be true", msgAndArgs))
	}
}

// AssertFalse fails when condition holds.
func (h *TestHelper) AssertFalse(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	if condition {
		h.t.Error(message("Expected condition to be false", msgAndArgs))
	}
}

// AssertNotNil fails when value is nil.
func (h *TestHelper) AssertNotNil(value any, msgAndArgs ...any) {
	h.t.Helper()
	if value == nil {
		h.t.Error(message("Expected value to be not nil", msgAndArgs))
	}
}

// AssertNil fails unless value is an untyped nil.
func (h *TestHelper) AssertNil(value any, msgAndArgs ...any) {
	h.t.Helper()
	if value != nil {
		h.t.Errorf("%s, but got: %v (%T)", message("Expected value to be nil", msgAndArgs), value, value)
	}
}

// TestDataGenerator produces documents for round-trip and benchmark tests
type TestDataGenerator struct {
	rand *rand.Rand
}

// NewTestDataGenerator creates a generator with a fixed seed so failures
// reproduce.
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{rand: rand.New(rand.NewSource(42))}
}

// GenerateSimpleJSON picks one small strict document
func (g *TestDataGenerator) GenerateSimpleJSON() string {
	templates := []string{
		`{"name":"John","age":30}`,
		`{"active":true,"score":95.5}`,
		`{"items":[1,2,3,4,5]}`,
		`{"user":{"name":"Alice","email":"alice@example.com"}}`,
		`{"data":null,"empty":""}`,
	}
	return templates[g.rand.Intn(len(templates))]
}

// GenerateComplexJSON returns a nested strict document
func (g *TestDataGenerator) GenerateComplexJSON() string {
	return `{
		"users": [
			{
				"id": 1,
				"name": "Alice Johnson",
				"profile": {"age": 28, "languages": ["en", "es", "fr"]},
				"roles": ["admin", "user"],
				"loginCount": 156
			},
			{
				"id": 2,
				"name": "Bob Smith",
				"profile": {"age": 35, "languages": ["en"]},
				"roles": ["user"],
				"loginCount": 89
			}
		],
		"settings": {
			"version": "1.2.3",
			"limits": {"maxUsers": 1000, "timeout": 30.5, "quota": 123456789012345678901}
		}
	}`
}

// GenerateLenientJSON returns documents using the grammar extensions
func (g *TestDataGenerator) GenerateLenientJSON() []string {
	return []string{
		`{a: 1, b: 'two'; c: [1,,3,],}`,
		"// leading comment\n{\"x\": /* inline */ true}",
		"# hash comment\n[null, NULL, True]",
		`{'single': 'quotes', bare: token}`,
	}
}

// GenerateInvalidJSON returns text the parser must reject
func (g *TestDataGenerator) GenerateInvalidJSON() []string {
	return []string{
		`{"unclosed": "string}`,
		`{"a":1,"a":2}`,
		`{"missing" 1}`,
		`[1, 2`,
		`{"nested": {"unclosed": 1}`,
		``,
		`null extra`,
		`/* never closed`,
	}
}
