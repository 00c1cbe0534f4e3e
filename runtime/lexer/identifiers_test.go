package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opal-lang/idfilter/core/pattern"
)

// TestIdentifier tests [A-Za-z_][A-Za-z0-9_]* recognition
func TestIdentifier(t *testing.T) {
	runRecognizerCases(t, Identifier, []recognizerCase{
		{name: "empty input", input: ""},
		{name: "single letter", input: "x", matched: true, pos: 1},
		{name: "underscore", input: "_", matched: true, pos: 1},
		{name: "mixed case", input: "myVar", matched: true, pos: 5},
		{name: "digits after start", input: "abc123", matched: true, pos: 6},
		{name: "underscore start", input: "_x9", matched: true, pos: 3},
		{name: "stops at space", input: "int bar", matched: true, pos: 3},
		{name: "stops at punctuation", input: "bar;", matched: true, pos: 3},
		{name: "no hyphens", input: "foo-bar", matched: true, pos: 3},
		{name: "stops at non-ascii", input: "caf\xc3\xa9", matched: true, pos: 3},
		{name: "digit start", input: "9lives", matched: false},
		{name: "dollar", input: "$x", matched: false},
		{name: "non-ascii start", input: "\xc3\xa9t\xc3\xa9", matched: false},
		{name: "space", input: " x", matched: false},
	})
}

func TestIdentifierRespectsEnd(t *testing.T) {
	src := []byte("identifier")
	assert.Equal(t, pattern.Hit(5), Identifier.Match(src, 0, 5))
	assert.Equal(t, pattern.Hit(10), Identifier.Match(src, 5, 10))
	assert.Equal(t, pattern.Miss(10), Identifier.Match(src, 10, 10))
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"a", "_", "Z9", "snake_case", "__init__"}
	invalid := []string{"", "1a", "a-b", "a b", "é", "a\x00"}

	for _, s := range valid {
		assert.True(t, IsIdentifier(s), "%q should be an identifier", s)
	}
	for _, s := range invalid {
		assert.False(t, IsIdentifier(s), "%q should not be an identifier", s)
	}
}
