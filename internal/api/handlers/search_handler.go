// filepath: internal/api/handlers/search_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/services/auth"
)

// searchResponse is the JSON body returned by POST /api/search.
type searchResponse struct {
	Entries []models.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// @Summary Search stored entries
// @Description Retrieves the caller's entries matching keyword, date-range, and topic filters, newest first.
// @Tags Entries
// @Accept json
// @Produce json
// @Param search body models.SearchRequest true "Search filters"
// @Success 200 {object} searchResponse "Returns an empty array if nothing matches"
// @Failure 400 {object} ErrorResponse "Invalid JSON, limit, offset, or date range"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Failed to retrieve entries"
// @Security BearerAuth
// @Router /search [post]
func (h *Handlers) SearchEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No user found in context")
		return
	}

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	entries, err := h.Entry.Search(user.ID, &req)
	if err != nil {
		code := mapServiceError(err)
		if code == http.StatusInternalServerError {
			logging.Log.Errorf("SearchEntries: failed for user %d: %v", user.ID, err)
			respondWithError(w, code, "Failed to process search request")
			return
		}
		respondWithError(w, code, err.Error())
		return
	}

	// Ensure an empty array `[]` is returned instead of `null`
	if entries == nil {
		entries = []models.Entry{}
	}

	respondWithJSON(w, http.StatusOK, searchResponse{Entries: entries, Count: len(entries)})
}
