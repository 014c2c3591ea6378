// filepath: internal/api/handlers/health_handler.go
package handlers

import (
	"net/http"
)

// @Summary Health check
// @Description Liveness probe with service metadata.
// @Tags Info
// @Produce json
// @Success 200 {object} models.Info
// @Router /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Info.GetInfo())
}
