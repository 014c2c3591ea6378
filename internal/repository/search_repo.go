// filepath: internal/repository/search_repo.go
package repository

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Masterminds/squirrel"
)

// SearchParams are the already-validated search filters. Validation (limit
// clamping, date parsing) happens in the service layer.
type SearchParams struct {
	Keyword string
	TStart  int64 // Unix seconds, 0 = unbounded
	TEnd    int64
	Topics  []string
	Limit   int
	Offset  int
}

// SearchEntries returns a user's entries matching the filters, newest first.
func (s *Repository) SearchEntries(userID int64, params SearchParams) ([]models.Entry, error) {
	query := s.Builder.
		Select(entryColumns).
		From("entries").
		Where(squirrel.Eq{"user_id": userID})

	if params.Keyword != "" {
		query = query.Where(squirrel.Like{"entry_text": "%" + params.Keyword + "%"})
	}
	if params.TStart > 0 {
		query = query.Where(squirrel.GtOrEq{"created_at": params.TStart})
	}
	if params.TEnd > 0 {
		query = query.Where(squirrel.LtOrEq{"created_at": params.TEnd})
	}
	// Topics are stored as a JSON array; a quoted-label LIKE matches exactly
	// one element because labels cannot contain quotes.
	for _, topic := range params.Topics {
		query = query.Where(squirrel.Like{"topics_json": fmt.Sprintf(`%%"%s"%%`, topic)})
	}

	query = query.
		OrderBy("created_at DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	logging.Log.Debugf("Generated SQL for SearchEntries: %s", sqlQuery)

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		logging.Log.Errorf("Error executing SearchEntries query: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			logging.Log.Errorf("Error scanning entry row: %v", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetUserStats aggregates a user's stored entries for the profile endpoint.
// Emotion weights and topic counts are aggregated in Go because they live in
// JSON columns.
func (s *Repository) GetUserStats(userID int64, topN int) (*models.ProfileStats, error) {
	stats := &models.ProfileStats{
		TopEmotions: []models.WeightedLabel{},
		TopTopics:   []models.CountedLabel{},
	}

	row := s.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0),
		       COALESCE(SUM(CASE WHEN ysym != '' THEN 1 ELSE 0 END), 0)
		FROM entries WHERE user_id = ?`, userID)

	var first, last int64
	if err := row.Scan(&stats.TotalEntries, &first, &last, &stats.YSYMCount); err != nil {
		return nil, err
	}
	if stats.TotalEntries == 0 {
		return stats, nil
	}
	stats.FirstEntryAt = &first
	stats.LastEntryAt = &last

	rows, err := s.DB.Query("SELECT emotions_json, topics_json FROM entries WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emotionWeights := make(map[string]float64)
	topicCounts := make(map[string]int)
	for rows.Next() {
		var emotionsJSON, topicsJSON string
		if err := rows.Scan(&emotionsJSON, &topicsJSON); err != nil {
			return nil, err
		}
		var emotions map[string]float64
		if err := json.Unmarshal([]byte(emotionsJSON), &emotions); err == nil {
			for label, weight := range emotions {
				emotionWeights[label] += weight
			}
		}
		var topics []string
		if err := json.Unmarshal([]byte(topicsJSON), &topics); err == nil {
			for _, topic := range topics {
				topicCounts[topic]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.TopEmotions = topWeightedLabels(emotionWeights, topN)
	stats.TopTopics = topCountedLabels(topicCounts, topN)
	return stats, nil
}

func topWeightedLabels(weights map[string]float64, n int) []models.WeightedLabel {
	labels := make([]models.WeightedLabel, 0, len(weights))
	for label, weight := range weights {
		labels = append(labels, models.WeightedLabel{Label: label, Weight: weight})
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Weight != labels[j].Weight {
			return labels[i].Weight > labels[j].Weight
		}
		return labels[i].Label < labels[j].Label
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}

func topCountedLabels(counts map[string]int, n int) []models.CountedLabel {
	labels := make([]models.CountedLabel, 0, len(counts))
	for label, count := range counts {
		labels = append(labels, models.CountedLabel{Label: label, Count: count})
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Count != labels[j].Count {
			return labels[i].Count > labels[j].Count
		}
		return labels[i].Label < labels[j].Label
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}
