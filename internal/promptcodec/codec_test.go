package promptcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quizforge/quiz-core/internal/utils"
)

func TestEncode_BlankSnippetIsIdentity(t *testing.T) {
	assert.Equal(t, "What does this print?", Encode("What does this print?", ""))
	assert.Equal(t, "What does this print?", Encode("What does this print?", "   \n\t"))
}

func TestEncode_AddsMarker(t *testing.T) {
	encoded := Encode("What does this print?", "print(1)")

	assert.True(t, len(encoded) > len(Marker))
	assert.Equal(t, Marker, encoded[:len(Marker)])
}

func TestRoundTrip(t *testing.T) {
	logger := utils.NewDevelopmentLogger()

	tests := []struct {
		name    string
		prompt  string
		snippet string
	}{
		{name: "plain", prompt: "What does this print?", snippet: "print(1)"},
		{name: "empty prompt", prompt: "", snippet: "x := 1"},
		{name: "multiline snippet", prompt: "Fix the bug", snippet: "func main() {\n\tfmt.Println(1)\n}"},
		{name: "prompt containing marker text", prompt: "explain " + Marker, snippet: "y = 2"},
		{name: "unicode", prompt: "¿Qué imprime?", snippet: "print('café')"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded := Decode(Encode(tc.prompt, tc.snippet), logger)
			assert.Equal(t, tc.prompt, decoded.Prompt)
			assert.Equal(t, tc.snippet, decoded.CodeSnippet)
		})
	}
}

func TestDecode_PassThroughForUnmarkedStrings(t *testing.T) {
	decoded := Decode("a plain legacy prompt", nil)

	assert.Equal(t, "a plain legacy prompt", decoded.Prompt)
	assert.Empty(t, decoded.CodeSnippet)
}

func TestDecode_IsTotal(t *testing.T) {
	logger := utils.NewDevelopmentLogger()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "garbage", raw: "\x00\xff{{{"},
		{name: "marker with invalid payload", raw: Marker + "{not json"},
		{name: "marker with truncated payload", raw: Marker + `{"prompt":"x"`},
		{name: "marker alone", raw: Marker},
		{name: "marker with wrong type", raw: Marker + `{"prompt":42}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded := Decode(tc.raw, logger)
			// Malformed payloads fall back to the entire raw string.
			assert.Equal(t, tc.raw, decoded.Prompt)
			assert.Empty(t, decoded.CodeSnippet)
		})
	}
}

func TestDecode_NilLoggerDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Decode(Marker+"{broken", nil)
	})
}
