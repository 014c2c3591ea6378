// filepath: internal/gemini/lexicon.go
package gemini

import "strings"

// validEmotions is the allowlist of emotion labels accepted from the model.
var validEmotions = map[string]bool{
	"happy": true, "sad": true, "anxious": true, "calm": true, "excited": true,
	"proud": true, "frustrated": true, "overwhelmed": true, "grateful": true,
	"content": true, "stressed": true, "relaxed": true, "worried": true,
	"confident": true, "confused": true, "angry": true, "peaceful": true,
	"hopeful": true, "disappointed": true, "motivated": true, "tired": true,
	"energetic": true, "lonely": true, "loved": true, "fearful": true,
	"optimistic": true, "pessimistic": true, "curious": true, "satisfied": true,
	"nervous": true, "neutral": true,
}

// negativeEmotions marks the subset of the allowlist that counts toward the
// negative polarity share.
var negativeEmotions = map[string]bool{
	"sad": true, "anxious": true, "frustrated": true, "overwhelmed": true,
	"stressed": true, "worried": true, "confused": true, "angry": true,
	"disappointed": true, "tired": true, "lonely": true, "fearful": true,
	"pessimistic": true, "nervous": true,
}

// validTopics is the allowlist of topic labels accepted from the model.
var validTopics = map[string]bool{
	"family": true, "work": true, "exercise": true, "relationships": true,
	"health": true, "travel": true, "social": true, "personal_growth": true,
	"education": true, "finances": true, "hobbies": true, "spiritual": true,
	"career": true, "creativity": true, "nature": true, "technology": true,
	"food": true, "entertainment": true, "home": true, "friends": true,
	"goals": true, "challenges": true, "general": true,
}

// NormalizeEmotions filters model output against the emotion allowlist and
// renormalizes the remaining weights so they sum to exactly 1.0. An empty or
// fully rejected map becomes the neutral distribution.
func NormalizeEmotions(raw map[string]float64) map[string]float64 {
	filtered := make(map[string]float64)
	var sum float64
	for label, weight := range raw {
		label = strings.ToLower(strings.TrimSpace(label))
		if !validEmotions[label] || weight <= 0 {
			continue
		}
		filtered[label] += weight
		sum += weight
	}
	if len(filtered) == 0 || sum == 0 {
		return map[string]float64{"neutral": 1.0}
	}
	for label := range filtered {
		filtered[label] /= sum
	}
	return filtered
}

// NormalizeTopics filters model output against the topic allowlist. An empty
// or fully rejected list becomes ["general"].
func NormalizeTopics(raw []string) []string {
	topics := make([]string, 0, len(raw))
	seen := make(map[string]bool)
	for _, topic := range raw {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if !validTopics[topic] || seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
	}
	if len(topics) == 0 {
		return []string{"general"}
	}
	return topics
}

// NegativeShare sums the weight of negative-lexicon labels in a normalized
// emotion distribution.
func NegativeShare(emotions map[string]float64) float64 {
	var share float64
	for label, weight := range emotions {
		if negativeEmotions[label] {
			share += weight
		}
	}
	return share
}
