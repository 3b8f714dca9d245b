package jstest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specvital/smellscan/pkg/domain"
)

func TestUnquoteString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "should unquote double quotes", input: `"hello"`, want: "hello"},
		{name: "should unquote single quotes", input: `'hello'`, want: "hello"},
		{name: "should unquote backticks", input: "`hello`", want: "hello"},
		{name: "should return short string as-is", input: "a", want: "a"},
		{name: "should return unquoted string as-is", input: "hello", want: "hello"},
		{name: "should handle mismatched quotes", input: `"hello'`, want: `"hello'`},
		{name: "should handle escaped single quotes", input: `'it\'s working'`, want: "it's working"},
		{name: "should keep double quotes inside single quotes", input: `'say "hi"'`, want: `say "hi"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, UnquoteString(tt.input))
		})
	}
}

func TestParseModifierStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.TestStatusSkipped, ParseModifierStatus(ModifierSkip))
	assert.Equal(t, domain.TestStatusTodo, ParseModifierStatus(ModifierTodo))
	assert.Equal(t, domain.TestStatusFocused, ParseModifierStatus(ModifierOnly))
	assert.Equal(t, domain.TestStatusActive, ParseModifierStatus(ModifierConcurrent))
	assert.Equal(t, domain.TestStatusSkipped, ParseModifierStatus(ModifierFixme))
	assert.Equal(t, domain.TestStatusActive, ParseModifierStatus(ModifierFail))
	assert.Equal(t, domain.TestStatusActive, ParseModifierStatus(ModifierFailing))
	assert.Equal(t, domain.TestStatusActive, ParseModifierStatus(ModifierSlow))
}
