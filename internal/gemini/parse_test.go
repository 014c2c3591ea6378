// filepath: internal/gemini/parse_test.go
package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripFences(tc.input))
		})
	}
}

func TestParseQuantification_CleanJSON(t *testing.T) {
	raw := `{"emotions_quantified": {"happy": 0.7, "calm": 0.3}, "topics": ["work", "family"]}`

	q, ok := ParseQuantification(raw)
	assert.True(t, ok)
	assert.Equal(t, 0.7, q.EmotionsQuantified["happy"])
	assert.Equal(t, []string{"work", "family"}, q.Topics)
}

func TestParseQuantification_FencedJSON(t *testing.T) {
	raw := "```json\n{\"emotions_quantified\": {\"sad\": 1.0}, \"topics\": [\"health\"]}\n```"

	q, ok := ParseQuantification(raw)
	assert.True(t, ok)
	assert.Equal(t, 1.0, q.EmotionsQuantified["sad"])
	assert.Equal(t, []string{"health"}, q.Topics)
}

func TestParseQuantification_ProseFallback(t *testing.T) {
	// The model sometimes wraps the JSON in commentary. The regex fallback
	// should still recover both fields.
	raw := `Here is the analysis you asked for:
"emotions_quantified": {"anxious": 0.6, "hopeful": 0.4}
and the relevant "topics": ["work"] for this entry.`

	q, ok := ParseQuantification(raw)
	assert.True(t, ok)
	assert.Equal(t, 0.6, q.EmotionsQuantified["anxious"])
	assert.Equal(t, []string{"work"}, q.Topics)
}

func TestParseQuantification_Unrecoverable(t *testing.T) {
	_, ok := ParseQuantification("I cannot analyze this entry.")
	assert.False(t, ok)

	_, ok = ParseQuantification(`{"emotions_quantified": {}}`)
	assert.False(t, ok)
}
