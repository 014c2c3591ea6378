// filepath: internal/httpserver/router.go
package httpserver

import (
	"github.com/Gary0302/Mind-BE/internal/api/handlers"
	"github.com/Gary0302/Mind-BE/internal/services/auth"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()

	// Public Endpoints
	r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/test", h.TestPipeline).Methods("GET")
	r.HandleFunc("/api/batch-analyze", h.BatchAnalyze).Methods("POST")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public Auth Endpoints (not protected by middleware)
	r.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/api/auth/refresh", h.RefreshToken).Methods("POST")

	// Optional-auth analyze: guests get an ephemeral analysis, users get it stored.
	analyzeRouter := r.PathPrefix("/api/analyze").Subrouter()
	analyzeRouter.Use(am.OptionalAuth)
	analyzeRouter.HandleFunc("", h.Analyze).Methods("POST")

	// Authenticated API Routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(am.RequireAuth)
	apiRouter.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	apiRouter.HandleFunc("/search", h.SearchEntries).Methods("POST")
	apiRouter.HandleFunc("/user/profile", h.GetProfile).Methods("GET")
	apiRouter.HandleFunc("/user/import-guest-data", h.ImportGuestData).Methods("POST")

	return r
}
