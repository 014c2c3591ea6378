// Package models contains the core data structures for the application.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Info represents general information about the service.
type Info struct {
	ServiceName string    `json:"service"`
	Version     string    `json:"version"`
	Status      string    `json:"status"`
	UptimeSince time.Time `json:"uptime_since"`
}

// User represents an account row. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"user_id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	PlanType     string    `json:"plan_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmotionPolarity splits the quantified emotion mass into a positive and a
// negative share. The two values sum to 1.0.
type EmotionPolarity struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// Analysis is the structured result of the quantification stage.
type Analysis struct {
	EntryText          string             `json:"entry_text"`
	EmotionsQuantified map[string]float64 `json:"emotions_quantified"`
	EmotionPolarity    EmotionPolarity    `json:"emotion_polarity"`
	Topics             []string           `json:"topics"`
	Timestamp          string             `json:"timestamp"`
}

// AnalyzeResult bundles the full pipeline output for one entry.
type AnalyzeResult struct {
	Analysis      Analysis `json:"analysis"`
	Reflection    string   `json:"reflection"`
	YSYM          string   `json:"ysym,omitempty"`
	YSYMTriggered bool     `json:"ysym_triggered"`
}

// Entry is a persisted journal-entry row.
type Entry struct {
	EntryID            string             `json:"entry_id"`
	UserID             int64              `json:"-"`
	EntryText          string             `json:"entry_text"`
	EmotionsQuantified map[string]float64 `json:"emotions_quantified"`
	EmotionPolarity    EmotionPolarity    `json:"emotion_polarity"`
	Topics             []string           `json:"topics"`
	Reflection         string             `json:"reflection,omitempty"`
	YSYM               string             `json:"ysym,omitempty"`
	Source             string             `json:"source"`
	CreatedAt          int64              `json:"created_at"`
}

// Entry sources.
const (
	EntrySourceLive     = "live"
	EntrySourceImported = "imported"
)

// SearchRequest is the JSON body for POST /api/search.
type SearchRequest struct {
	Keyword   string   `json:"keyword,omitempty"`
	StartDate string   `json:"start_date,omitempty"` // RFC3339 or Unix seconds
	EndDate   string   `json:"end_date,omitempty"`
	Topics    []string `json:"topics,omitempty"`
	Limit     *int     `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// WeightedLabel pairs an emotion label with its aggregated weight.
type WeightedLabel struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// CountedLabel pairs a topic label with an occurrence count.
type CountedLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ProfileStats aggregates a user's stored entries for GET /api/user/profile.
type ProfileStats struct {
	User         User            `json:"user"`
	TotalEntries int             `json:"total_entries"`
	FirstEntryAt *int64          `json:"first_entry_at,omitempty"`
	LastEntryAt  *int64          `json:"last_entry_at,omitempty"`
	TopEmotions  []WeightedLabel `json:"top_emotions"`
	TopTopics    []CountedLabel  `json:"top_topics"`
	YSYMCount    int             `json:"ysym_count"`
}

// FlexTime is a Unix-seconds timestamp that decodes from either a JSON
// number or a string (Unix seconds, RFC3339, or a plain date). Guest exports
// carry whichever shape the client produced. Unparseable values decode to
// zero and storage substitutes the current time.
type FlexTime int64

// UnmarshalJSON implements lenient timestamp decoding.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = FlexTime(ts)
		return nil
	}
	// JS clients often export Date.now()/1000 with a fractional part.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*t = FlexTime(int64(f))
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		*t = FlexTime(parsed.Unix())
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", s); err == nil {
		*t = FlexTime(parsed.Unix())
		return nil
	}
	*t = 0
	return nil
}

// ImportRecord is one prior guest analysis submitted for import.
type ImportRecord struct {
	EntryText          string             `json:"entry_text"`
	EmotionsQuantified map[string]float64 `json:"emotions_quantified"`
	Topics             []string           `json:"topics"`
	Reflection         string             `json:"reflection,omitempty"`
	CreatedAt          FlexTime           `json:"created_at"`
}
