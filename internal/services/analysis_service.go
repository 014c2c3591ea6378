// filepath: internal/services/analysis_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/gemini"
	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/repository"
)

// YSYMThreshold is the negative polarity share at which the deeper
// interpretation stage runs. The boundary value itself triggers.
const YSYMThreshold = 0.6

// recentTopicsWindow is how many recent entries feed the reflection prompt's
// historical context.
const recentTopicsWindow = 20

var _ AnalysisService = (*analysisService)(nil)

// analysisService orchestrates the staged Gemini pipeline.
type analysisService struct {
	Generator gemini.Generator
	Repo      *repository.Repository
	Cfg       *config.Config
}

// NewAnalysisService creates a new AnalysisService. repo may be nil when no
// store is attached; reflections then run without historical context.
func NewAnalysisService(generator gemini.Generator, repo *repository.Repository, cfg *config.Config) *analysisService {
	return &analysisService{
		Generator: generator,
		Repo:      repo,
		Cfg:       cfg,
	}
}

// ValidateEntryText trims and checks one entry against the documented limits.
func (s *analysisService) ValidateEntryText(entryText string) (string, error) {
	entryText = strings.TrimSpace(entryText)
	if entryText == "" {
		return "", fmt.Errorf("%w: entry_text cannot be empty", ErrValidation)
	}
	if maxChars := s.Cfg.Limits.MaxEntryChars; utf8.RuneCountInString(entryText) > maxChars {
		return "", fmt.Errorf("%w: entry_text too long (max %d characters)", ErrValidation, maxChars)
	}
	return entryText, nil
}

// Analyze runs the pipeline: quantify emotions/topics, generate a reflection,
// and, when the negative share reaches the threshold, a YSYM interpretation.
// Upstream failures degrade to documented fallback values instead of aborting
// the request.
func (s *analysisService) Analyze(ctx context.Context, entryText string, user *models.User) (*models.AnalyzeResult, error) {
	// Stage 1: quantification.
	emotions := map[string]float64{"neutral": 1.0}
	topics := []string{"general"}

	raw, err := s.Generator.GenerateText(ctx, gemini.QuantifyPrompt(entryText))
	if err != nil {
		logging.Log.Errorf("Analyze: quantification call failed, using neutral fallback: %v", err)
	} else if q, ok := gemini.ParseQuantification(raw); ok {
		emotions = gemini.NormalizeEmotions(q.EmotionsQuantified)
		topics = gemini.NormalizeTopics(q.Topics)
	} else {
		logging.Log.Errorf("Analyze: unparseable quantification response, using neutral fallback: %.200s", raw)
	}

	negative := gemini.NegativeShare(emotions)
	polarity := models.EmotionPolarity{
		Positive: 1.0 - negative,
		Negative: negative,
	}

	emotionLabels := labelsByWeight(emotions)

	// Stage 2: reflection, with historical topic context for logged-in users.
	var recentTopics []string
	if user != nil && s.Repo != nil {
		recentTopics, err = s.Repo.GetRecentTopics(user.ID, recentTopicsWindow)
		if err != nil {
			logging.Log.Warnf("Analyze: failed to load recent topics for user %d: %v", user.ID, err)
			recentTopics = nil
		}
	}

	reflection, err := s.Generator.GenerateText(ctx, gemini.ReflectionPrompt(entryText, emotionLabels, topics, recentTopics))
	if err != nil {
		logging.Log.Errorf("Analyze: reflection call failed, using fallback: %v", err)
		reflection = gemini.FallbackReflection
	}

	result := &models.AnalyzeResult{
		Analysis: models.Analysis{
			EntryText:          entryText,
			EmotionsQuantified: emotions,
			EmotionPolarity:    polarity,
			Topics:             topics,
			Timestamp:          time.Now().UTC().Format(time.RFC3339),
		},
		Reflection:    reflection,
		YSYMTriggered: negative >= YSYMThreshold,
	}

	// Stage 3: YSYM, conditional on the threshold.
	if result.YSYMTriggered {
		ysym, err := s.Generator.GenerateText(ctx, gemini.YSYMPrompt(entryText, emotionLabels, topics))
		if err != nil {
			// The trigger flag stays set so clients still see the condition.
			logging.Log.Errorf("Analyze: ysym call failed, omitting text: %v", err)
		} else {
			result.YSYM = ysym
		}
	}

	return result, nil
}

// labelsByWeight returns emotion labels ordered by descending weight.
func labelsByWeight(emotions map[string]float64) []string {
	labels := make([]string, 0, len(emotions))
	for label := range emotions {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if emotions[labels[i]] != emotions[labels[j]] {
			return emotions[labels[i]] > emotions[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}
