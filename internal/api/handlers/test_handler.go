// filepath: internal/api/handlers/test_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/Gary0302/Mind-BE/internal/gemini"
	"github.com/Gary0302/Mind-BE/internal/logging"
)

// @Summary Run the pipeline on a fixed sample entry
// @Description Exercises the full Gemini pipeline with a built-in sample entry. Nothing is persisted.
// @Tags Info
// @Produce json
// @Success 200 {object} analyzeResponse
// @Failure 500 {object} ErrorResponse "Pipeline failure"
// @Router /test [get]
func (h *Handlers) TestPipeline(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.Analysis.Analyze(r.Context(), gemini.SampleEntry, nil)
	if err != nil {
		logging.Log.Errorf("TestPipeline: pipeline failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	respondWithJSON(w, http.StatusOK, analyzeResponse{
		AnalyzeResult:  *result,
		Mode:           "guest",
		Stored:         false,
		ProcessingTime: roundSeconds(time.Since(start).Seconds()),
	})
}
