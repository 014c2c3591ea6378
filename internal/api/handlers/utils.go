// filepath: internal/api/handlers/utils.go
package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/services/auth"
)

// actorFor names the acting principal for audit events.
func actorFor(user *models.User) string {
	if user == nil {
		return "guest"
	}
	return user.Email
}

// actorFromRequest resolves the audit actor from the request context.
func actorFromRequest(r *http.Request) string {
	user, _ := auth.UserFromContext(r.Context())
	return actorFor(user)
}

// userResource formats a user as an audit resource name.
func userResource(user *models.User) string {
	return fmt.Sprintf("User:%d", user.ID)
}

// roundSeconds formats an elapsed duration in seconds with two decimals,
// matching the processing_time field clients already consume.
func roundSeconds(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}
