// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/repository"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "auth.login", "entry.import")
	// actor: who did it (email, or "guest")
	// resource: what was affected (e.g., "Entry:01H...", "User:3")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// UserService defines the interface for the user service.
type UserService interface {
	Register(args repository.UserCreateArgs) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetProfile(userID int64) (*models.ProfileStats, error)
}

// AnalysisService runs the staged Gemini pipeline over journal entries.
type AnalysisService interface {
	// Analyze runs the full pipeline for one entry. user is nil for guests.
	Analyze(ctx context.Context, entryText string, user *models.User) (*models.AnalyzeResult, error)
	// ValidateEntryText enforces the documented entry limits.
	ValidateEntryText(entryText string) (string, error)
}

// EntryService persists and queries analyzed entries.
type EntryService interface {
	StoreResult(userID int64, result *models.AnalyzeResult) (*models.Entry, error)
	Search(userID int64, req *models.SearchRequest) ([]models.Entry, error)
	ImportGuestData(userID int64, records []models.ImportRecord) ([]models.Entry, error)
}
