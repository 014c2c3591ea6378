// filepath: internal/repository/entry_repo.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gary0302/Mind-BE/internal/gemini"
	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/oklog/ulid/v2"
)

const entryColumns = "entry_id, user_id, entry_text, emotions_json, polarity_positive, polarity_negative, topics_json, reflection, ysym, source, created_at"

// scanEntry reads one entry row and unpacks the JSON columns.
func scanEntry(rows *sql.Rows) (models.Entry, error) {
	var entry models.Entry
	var emotionsJSON, topicsJSON string
	if err := rows.Scan(
		&entry.EntryID, &entry.UserID, &entry.EntryText,
		&emotionsJSON, &entry.EmotionPolarity.Positive, &entry.EmotionPolarity.Negative,
		&topicsJSON, &entry.Reflection, &entry.YSYM, &entry.Source, &entry.CreatedAt,
	); err != nil {
		return models.Entry{}, err
	}
	if err := json.Unmarshal([]byte(emotionsJSON), &entry.EmotionsQuantified); err != nil {
		return models.Entry{}, fmt.Errorf("corrupt emotions_json for entry %s: %w", entry.EntryID, err)
	}
	if err := json.Unmarshal([]byte(topicsJSON), &entry.Topics); err != nil {
		return models.Entry{}, fmt.Errorf("corrupt topics_json for entry %s: %w", entry.EntryID, err)
	}
	return entry, nil
}

func marshalEntryJSON(entry *models.Entry) (emotions string, topics string, err error) {
	emotionsBytes, err := json.Marshal(entry.EmotionsQuantified)
	if err != nil {
		return "", "", err
	}
	topicsBytes, err := json.Marshal(entry.Topics)
	if err != nil {
		return "", "", err
	}
	return string(emotionsBytes), string(topicsBytes), nil
}

// CreateEntry persists a single analyzed entry. A ULID is assigned when the
// caller did not provide one.
func (s *Repository) CreateEntry(entry *models.Entry) (*models.Entry, error) {
	if entry.EntryID == "" {
		entry.EntryID = ulid.Make().String()
	}
	if entry.Source == "" {
		entry.Source = models.EntrySourceLive
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	emotionsJSON, topicsJSON, err := marshalEntryJSON(entry)
	if err != nil {
		return nil, err
	}

	query := "INSERT INTO entries (" + entryColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err = s.DB.Exec(query,
		entry.EntryID, entry.UserID, entry.EntryText,
		emotionsJSON, entry.EmotionPolarity.Positive, entry.EmotionPolarity.Negative,
		topicsJSON, entry.Reflection, entry.YSYM, entry.Source, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateEntry: Stored entry %s for user %d", entry.EntryID, entry.UserID)
	return entry, nil
}

// ImportEntries performs a transactional bulk insert of prior guest analyses.
// Either every record is inserted or none is.
func (s *Repository) ImportEntries(userID int64, records []models.ImportRecord) ([]models.Entry, error) {
	if len(records) == 0 {
		return []models.Entry{}, nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO entries (" + entryColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	imported := make([]models.Entry, 0, len(records))
	for _, rec := range records {
		// Guest payloads are untrusted: filter and renormalize the emotions
		// so the stored polarity shares sum to 1.0 like live entries.
		emotions := gemini.NormalizeEmotions(rec.EmotionsQuantified)
		negative := gemini.NegativeShare(emotions)

		entry := models.Entry{
			EntryID:            ulid.Make().String(),
			UserID:             userID,
			EntryText:          rec.EntryText,
			EmotionsQuantified: emotions,
			EmotionPolarity:    models.EmotionPolarity{Positive: 1.0 - negative, Negative: negative},
			Topics:             gemini.NormalizeTopics(rec.Topics),
			Reflection:         rec.Reflection,
			Source:             models.EntrySourceImported,
			CreatedAt:          int64(rec.CreatedAt),
		}
		if entry.CreatedAt == 0 {
			entry.CreatedAt = time.Now().Unix()
		}

		emotionsJSON, topicsJSON, err := marshalEntryJSON(&entry)
		if err != nil {
			return nil, err
		}
		if _, err := stmt.Exec(
			entry.EntryID, entry.UserID, entry.EntryText,
			emotionsJSON, entry.EmotionPolarity.Positive, entry.EmotionPolarity.Negative,
			topicsJSON, entry.Reflection, entry.YSYM, entry.Source, entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to insert imported entry: %w", err)
		}
		imported = append(imported, entry)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logging.Log.Debugf("ImportEntries: Imported %d entries for user %d", len(imported), userID)
	return imported, nil
}

// GetRecentTopics returns the distinct topics of a user's most recent entries,
// newest first. Used to give the reflection prompt historical context.
func (s *Repository) GetRecentTopics(userID int64, entryLimit int) ([]string, error) {
	query := s.Builder.
		Select("topics_json").
		From("entries").
		Where("user_id = ?", userID).
		OrderBy("created_at DESC").
		Limit(uint64(entryLimit))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	topics := make([]string, 0)
	for rows.Next() {
		var topicsJSON string
		if err := rows.Scan(&topicsJSON); err != nil {
			return nil, err
		}
		var rowTopics []string
		if err := json.Unmarshal([]byte(topicsJSON), &rowTopics); err != nil {
			continue
		}
		for _, topic := range rowTopics {
			if !seen[topic] {
				seen[topic] = true
				topics = append(topics, topic)
			}
		}
	}
	return topics, rows.Err()
}
