// filepath: internal/api/handlers/user_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/services/auth"
)

// importRequest is the JSON body for POST /api/user/import-guest-data.
type importRequest struct {
	Records []models.ImportRecord `json:"records"`
}

// importResponse reports the outcome of a guest-data import.
type importResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// @Summary Get the current user's profile
// @Description Returns account details plus aggregate stats over the user's stored entries.
// @Tags Users
// @Produce json
// @Success 200 {object} models.ProfileStats
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Failed to compute profile"
// @Security BearerAuth
// @Router /user/profile [get]
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No user found in context")
		return
	}

	stats, err := h.User.GetProfile(user.ID)
	if err != nil {
		logging.Log.Errorf("GetProfile: failed for user %d: %v", user.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to compute profile")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// @Summary Import guest analyses
// @Description Bulk-inserts prior guest analyses into the caller's history. All-or-nothing.
// @Tags Users
// @Accept json
// @Produce json
// @Param records body importRequest true "Guest analyses to import"
// @Success 200 {object} importResponse
// @Failure 400 {object} ErrorResponse "Empty batch, too many records, or an invalid record"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Import failed"
// @Security BearerAuth
// @Router /user/import-guest-data [post]
func (h *Handlers) ImportGuestData(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No user found in context")
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	entries, err := h.Entry.ImportGuestData(user.ID, req.Records)
	if err != nil {
		code := mapServiceError(err)
		if code == http.StatusInternalServerError {
			logging.Log.Errorf("ImportGuestData: failed for user %d: %v", user.ID, err)
			respondWithError(w, code, "Import failed")
			return
		}
		respondWithError(w, code, err.Error())
		return
	}

	h.Audit.Log(r.Context(), "entry.import", user.Email, userResource(user),
		map[string]interface{}{"count": len(entries)})

	respondWithJSON(w, http.StatusOK, importResponse{
		Imported: len(entries),
		Message:  fmt.Sprintf("Imported %d entries.", len(entries)),
	})
}
