// Package promptcodec packs an optional auxiliary code snippet into a
// question's prompt string. The backend question schema exposes a single
// free-text prompt field; this is a client-side convention layered on top,
// so questions written before the convention existed must keep decoding to
// their raw prompt unchanged.
package promptcodec

import (
	"encoding/json"
	"strings"

	"github.com/quizforge/quiz-core/internal/utils"
)

// Marker prefixes prompts that carry an embedded snippet payload.
const Marker = "__QUIZ_SNIPPET__:"

type payload struct {
	Prompt      string `json:"prompt"`
	CodeSnippet string `json:"codeSnippet,omitempty"`
}

// Decoded is the result of unpacking a raw prompt field.
type Decoded struct {
	Prompt      string
	CodeSnippet string
}

// Encode packs prompt and snippet for transport. A blank snippet returns the
// prompt unchanged so questions without snippets never grow the marker.
func Encode(prompt, codeSnippet string) string {
	if strings.TrimSpace(codeSnippet) == "" {
		return prompt
	}

	encoded, err := json.Marshal(payload{Prompt: prompt, CodeSnippet: codeSnippet})
	if err != nil {
		// Marshalling two strings cannot fail; guard anyway.
		return prompt
	}
	return Marker + string(encoded)
}

// Decode unpacks a raw prompt field. It is total: unmarked strings pass
// through, and a marked string with a malformed payload falls back to the
// entire raw value as the prompt. Decode runs on every read path and must
// never return an error.
func Decode(raw string, logger utils.Logger) Decoded {
	if !strings.HasPrefix(raw, Marker) {
		return Decoded{Prompt: raw}
	}

	var parsed payload
	if err := json.Unmarshal([]byte(strings.TrimPrefix(raw, Marker)), &parsed); err != nil {
		if logger != nil {
			logger.Warn("failed to decode prompt payload", "error", err)
		}
		return Decoded{Prompt: raw}
	}

	return Decoded{Prompt: parsed.Prompt, CodeSnippet: parsed.CodeSnippet}
}
