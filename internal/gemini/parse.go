// filepath: internal/gemini/parse.go
package gemini

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Quantification is the parsed stage-1 model output, before lexicon filtering.
type Quantification struct {
	EmotionsQuantified map[string]float64 `json:"emotions_quantified"`
	Topics             []string           `json:"topics"`
}

var (
	fenceOpenRegex  = regexp.MustCompile("^```(json)?\\s*")
	fenceCloseRegex = regexp.MustCompile("\\s*```$")

	emotionsObjRegex = regexp.MustCompile(`"emotions_quantified"\s*:\s*(\{[^}]*\})`)
	topicsArrRegex   = regexp.MustCompile(`"topics"\s*:\s*(\[[^\]]*\])`)
)

// StripFences removes a markdown code fence the model sometimes wraps its
// JSON output in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRegex.ReplaceAllString(s, "")
	s = fenceCloseRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseQuantification parses the stage-1 response. It first tries a straight
// JSON decode of the fence-stripped text, then falls back to regex extraction
// of the two fields. The second return value reports whether anything usable
// was recovered; callers fall back to a neutral result when it is false.
func ParseQuantification(raw string) (Quantification, bool) {
	cleaned := StripFences(raw)

	var q Quantification
	if err := json.Unmarshal([]byte(cleaned), &q); err == nil && len(q.EmotionsQuantified) > 0 {
		return q, true
	}

	// Fallback: the model wrapped the JSON in prose. Fish the fields out.
	recovered := false
	if m := emotionsObjRegex.FindStringSubmatch(cleaned); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &q.EmotionsQuantified); err == nil && len(q.EmotionsQuantified) > 0 {
			recovered = true
		}
	}
	if m := topicsArrRegex.FindStringSubmatch(cleaned); m != nil {
		var topics []string
		if err := json.Unmarshal([]byte(m[1]), &topics); err == nil {
			q.Topics = topics
		}
	}
	return q, recovered
}
