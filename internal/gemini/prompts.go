// filepath: internal/gemini/prompts.go
package gemini

import (
	"fmt"
	"strings"
)

// FallbackReflection is returned when the reflection stage fails upstream.
const FallbackReflection = "Thank you for sharing your thoughts. Every experience contributes " +
	"to your personal growth journey, and it's wonderful that you're " +
	"taking time to reflect on your feelings."

// SampleEntry is the fixed input for the /api/test endpoint.
const SampleEntry = "Today I felt overwhelmed at work but managed to complete " +
	"my important project. I'm proud of what I accomplished despite the stress."

// QuantifyPrompt builds the stage-1 prompt: emotion quantification and topics.
func QuantifyPrompt(entryText string) string {
	return fmt.Sprintf(`You are an expert emotion and topic analyzer. Analyze the following text and quantify its emotions and extract topics.

Text to analyze: "%s"

Please respond in the following JSON format:
{
    "emotions_quantified": {"emotion1": 0.5, "emotion2": 0.3, "emotion3": 0.2},
    "topics": ["topic1", "topic2"]
}

Guidelines:
- emotions_quantified: Use common emotion words like happy, sad, anxious, calm, excited, proud, frustrated, overwhelmed, grateful, content, etc. The values must be positive numbers summing to 1.0.
- topics: Use broad categories like family, work, exercise, relationships, health, travel, social, personal_growth, etc.
- Include 1-4 emotions that best represent the text
- Return 1-3 topics that best categorize the content
- Only return valid JSON, no additional text`, entryText)
}

// ReflectionPrompt builds the stage-2 prompt. recentTopics carries the user's
// historical entry pattern and may be empty for guests.
func ReflectionPrompt(entryText string, emotions, topics, recentTopics []string) string {
	var sb strings.Builder
	sb.WriteString(`You are a compassionate life coach and therapist. Based on the journal entry and emotional analysis below, create a thoughtful, empathetic reflection.

`)
	fmt.Fprintf(&sb, "Original Entry: %q\n", entryText)
	fmt.Fprintf(&sb, "Detected Emotions: %s\n", strings.Join(emotions, ", "))
	fmt.Fprintf(&sb, "Detected Topics: %s\n", strings.Join(topics, ", "))
	if len(recentTopics) > 0 {
		fmt.Fprintf(&sb, "Topics from the person's recent journal entries: %s\n", strings.Join(recentTopics, ", "))
	}
	sb.WriteString(`
Please create a reflection that:
1. Acknowledges the emotions the person is experiencing
2. Provides gentle insights about the situation
3. Offers perspective, encouragement, or gentle advice where appropriate`)
	if len(recentTopics) > 0 {
		sb.WriteString(`
4. Gently references recurring themes from their recent entries where relevant`)
	}
	sb.WriteString(`
5. Is supportive, warm, and non-judgmental
6. Is 2-4 sentences long
7. Feels personal and human, not robotic

Write the reflection directly without any formatting or labels:`)
	return sb.String()
}

// YSYMPrompt builds the stage-3 prompt, only issued when the negative emotion
// share reaches the threshold.
func YSYMPrompt(entryText string, emotions, topics []string) string {
	return fmt.Sprintf(`You are an insightful, gentle therapist. The journal entry below carries a predominantly negative emotional charge. Read between the lines and articulate what the writer may really be expressing underneath the words.

Original Entry: %q
Detected Emotions: %s
Detected Topics: %s

Please write a short "you said, you meant" interpretation that:
1. Names the deeper feeling or unmet need the entry hints at
2. Is careful, non-diagnostic, and never presumes facts not in the text
3. Is 2-3 sentences long
4. Speaks directly to the writer in a warm second person

Write the interpretation directly without any formatting or labels:`, entryText, strings.Join(emotions, ", "), strings.Join(topics, ", "))
}
