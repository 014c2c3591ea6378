// filepath: internal/api/handlers/main.go
package handlers

import (
	"time"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/services"
	"github.com/Gary0302/Mind-BE/internal/services/auth"
)

// Handlers provides a struct to hold shared dependencies for API handlers.
type Handlers struct {
	// --- Depend on interfaces, not concrete structs ---
	Info     services.InfoService
	User     services.UserService
	Analysis services.AnalysisService
	Entry    services.EntryService
	Token    auth.TokenService
	Audit    services.Auditor

	Cfg       *config.Config
	Version   string
	StartTime time.Time
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	user services.UserService,
	analysis services.AnalysisService,
	entry services.EntryService,
	token auth.TokenService,
	audit services.Auditor,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:      info,
		User:      user,
		Analysis:  analysis,
		Entry:     entry,
		Token:     token,
		Audit:     audit,
		Cfg:       cfg,
		Version:   info.GetInfo().Version,
		StartTime: info.GetInfo().UptimeSince,
	}
}
