// filepath: internal/api/handlers/analyze_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/services"
	"github.com/Gary0302/Mind-BE/internal/services/auth"
)

// analyzeRequest is the JSON body for POST /api/analyze.
type analyzeRequest struct {
	EntryText string `json:"entry_text"`
}

// analyzeResponse is the JSON body returned by analyze and test endpoints.
type analyzeResponse struct {
	models.AnalyzeResult
	Mode           string  `json:"mode"`
	Stored         bool    `json:"stored"`
	ProcessingTime float64 `json:"processing_time"`
}

// batchAnalyzeRequest is the JSON body for POST /api/batch-analyze.
type batchAnalyzeRequest struct {
	Entries []string `json:"entries"`
}

// batchAnalyzeResponse aggregates the per-entry results of a batch run.
type batchAnalyzeResponse struct {
	Results        []models.AnalyzeResult `json:"results"`
	Count          int                    `json:"count"`
	ProcessingTime float64                `json:"processing_time"`
}

// @Summary Analyze a journal entry
// @Description Runs the staged pipeline (quantify, reflect, conditional YSYM) on one entry. Authenticated requests are persisted.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param entry body analyzeRequest true "Journal entry"
// @Success 200 {object} analyzeResponse
// @Failure 400 {object} ErrorResponse "Missing, empty, or oversized entry_text"
// @Failure 401 {object} ErrorResponse "Invalid bearer token"
// @Failure 500 {object} ErrorResponse "Pipeline or storage failure"
// @Security BearerAuth
// @Router /analyze [post]
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	entryText, err := h.Analysis.ValidateEntryText(req.EntryText)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Optional auth: a user in the context means the result is persisted.
	user, _ := auth.UserFromContext(r.Context())

	result, err := h.Analysis.Analyze(r.Context(), entryText, user)
	if err != nil {
		logging.Log.Errorf("Analyze: pipeline failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	resp := analyzeResponse{
		AnalyzeResult: *result,
		Mode:          "guest",
		Stored:        false,
	}

	if user != nil {
		entry, err := h.Entry.StoreResult(user.ID, result)
		if err != nil {
			logging.Log.Errorf("Analyze: failed to store entry for user %d: %v", user.ID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to store analysis")
			return
		}
		resp.Mode = "user"
		resp.Stored = true
		h.Audit.Log(r.Context(), "entry.analyze", actorFor(user), fmt.Sprintf("Entry:%s", entry.EntryID), nil)
	}

	resp.ProcessingTime = roundSeconds(time.Since(start).Seconds())
	respondWithJSON(w, http.StatusOK, resp)
}

// @Summary Analyze a batch of journal entries
// @Description Runs the pipeline on up to 10 entries. Results are never persisted. Any invalid entry rejects the whole batch.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param entries body batchAnalyzeRequest true "Entries to analyze"
// @Success 200 {object} batchAnalyzeResponse
// @Failure 400 {object} ErrorResponse "Empty batch, too many entries, or an invalid entry"
// @Failure 500 {object} ErrorResponse "Pipeline failure"
// @Router /batch-analyze [post]
func (h *Handlers) BatchAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req batchAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	if len(req.Entries) == 0 {
		respondWithError(w, http.StatusBadRequest, "entries must not be empty")
		return
	}
	if len(req.Entries) > h.Cfg.Limits.MaxBatchEntries {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("batch size exceeds maximum of %d entries", h.Cfg.Limits.MaxBatchEntries))
		return
	}

	// Validate every entry up front: one bad entry rejects the whole batch.
	validated := make([]string, 0, len(req.Entries))
	for i, entryText := range req.Entries {
		text, err := h.Analysis.ValidateEntryText(entryText)
		if err != nil {
			respondWithErrorDetail(w, http.StatusBadRequest, err.Error(),
				fmt.Sprintf("entry at index %d is invalid", i))
			return
		}
		validated = append(validated, text)
	}

	results := make([]models.AnalyzeResult, 0, len(validated))
	for _, entryText := range validated {
		result, err := h.Analysis.Analyze(r.Context(), entryText, nil)
		if err != nil {
			logging.Log.Errorf("BatchAnalyze: pipeline failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Analysis failed")
			return
		}
		results = append(results, *result)
	}

	respondWithJSON(w, http.StatusOK, batchAnalyzeResponse{
		Results:        results,
		Count:          len(results),
		ProcessingTime: roundSeconds(time.Since(start).Seconds()),
	})
}

// mapServiceError translates sentinel service errors to HTTP status codes.
func mapServiceError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
