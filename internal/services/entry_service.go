// filepath: internal/services/entry_service.go
package services

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/repository"
)

var _ EntryService = (*entryService)(nil)

// entryService handles persistence and querying of analyzed entries.
type entryService struct {
	Repo *repository.Repository
	Cfg  *config.Config
}

// NewEntryService creates a new EntryService.
func NewEntryService(repo *repository.Repository, cfg *config.Config) *entryService {
	return &entryService{Repo: repo, Cfg: cfg}
}

// StoreResult persists a finished pipeline result for a user.
func (s *entryService) StoreResult(userID int64, result *models.AnalyzeResult) (*models.Entry, error) {
	entry := &models.Entry{
		UserID:             userID,
		EntryText:          result.Analysis.EntryText,
		EmotionsQuantified: result.Analysis.EmotionsQuantified,
		EmotionPolarity:    result.Analysis.EmotionPolarity,
		Topics:             result.Analysis.Topics,
		Reflection:         result.Reflection,
		YSYM:               result.YSYM,
		Source:             models.EntrySourceLive,
		CreatedAt:          time.Now().Unix(),
	}
	return s.Repo.CreateEntry(entry)
}

// Search validates the request, clamps the limit, and runs the query.
func (s *entryService) Search(userID int64, req *models.SearchRequest) ([]models.Entry, error) {
	limit := s.Cfg.Limits.SearchDefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
		if limit <= 0 {
			return nil, fmt.Errorf("%w: limit must be positive", ErrValidation)
		}
		if limit > s.Cfg.Limits.SearchMaxLimit {
			return nil, fmt.Errorf("%w: limit exceeds maximum of %d", ErrValidation, s.Cfg.Limits.SearchMaxLimit)
		}
	}
	if req.Offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", ErrValidation)
	}

	tstart, err := parseTimestamp(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date: %s", ErrValidation, req.StartDate)
	}
	tend, err := parseTimestamp(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date: %s", ErrValidation, req.EndDate)
	}
	if tstart > 0 && tend > 0 && tstart > tend {
		return nil, fmt.Errorf("%w: start_date is after end_date", ErrValidation)
	}

	entries, err := s.Repo.SearchEntries(userID, repository.SearchParams{
		Keyword: req.Keyword,
		TStart:  tstart,
		TEnd:    tend,
		Topics:  req.Topics,
		Limit:   limit,
		Offset:  req.Offset,
	})
	if err != nil {
		logging.Log.Errorf("EntryService: Search failed for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to search entries")
	}
	return entries, nil
}

// ImportGuestData validates and bulk-inserts prior guest analyses.
func (s *entryService) ImportGuestData(userID int64, records []models.ImportRecord) ([]models.Entry, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to import", ErrValidation)
	}
	if max := s.Cfg.Limits.MaxImportRecords; len(records) > max {
		return nil, fmt.Errorf("%w: too many records (max %d per import)", ErrValidation, max)
	}
	for i, rec := range records {
		if rec.EntryText == "" {
			return nil, fmt.Errorf("%w: record %d is missing entry_text", ErrValidation, i)
		}
		if utf8.RuneCountInString(rec.EntryText) > s.Cfg.Limits.MaxEntryChars {
			return nil, fmt.Errorf("%w: record %d exceeds %d characters", ErrValidation, i, s.Cfg.Limits.MaxEntryChars)
		}
	}

	imported, err := s.Repo.ImportEntries(userID, records)
	if err != nil {
		logging.Log.Errorf("EntryService: Import failed for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to import entries")
	}
	return imported, nil
}

// parseTimestamp parses a string into Unix seconds. It supports RFC3339,
// plain dates (2024-01-31), and raw Unix timestamps. Empty input maps to 0.
func parseTimestamp(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ts, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Unix(), nil
	}
	return 0, fmt.Errorf("unrecognized timestamp format: %s", s)
}
