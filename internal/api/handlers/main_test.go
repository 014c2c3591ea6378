// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"context"

	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/repository"
	"github.com/Gary0302/Mind-BE/internal/services"
	"github.com/Gary0302/Mind-BE/internal/services/auth"

	"github.com/stretchr/testify/mock"
)

// --- MOCK AUDITOR ---
type MockAuditor struct {
	mock.Mock
}

var _ services.Auditor = (*MockAuditor)(nil)

func (m *MockAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	m.Called(ctx, action, actor, resource, details)
}

// --- MOCK INFO SERVICE ---
type MockInfoService struct {
	mock.Mock
}

var _ services.InfoService = (*MockInfoService)(nil)

func (m *MockInfoService) GetInfo() models.Info {
	args := m.Called()
	return args.Get(0).(models.Info)
}

// --- MOCK USER SERVICE ---
type MockUserService struct {
	mock.Mock
}

var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(cArgs repository.UserCreateArgs) (*models.User, error) {
	args := m.Called(cArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) Authenticate(email, password string) (*models.User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) GetProfile(userID int64) (*models.ProfileStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileStats), args.Error(1)
}

// --- MOCK ANALYSIS SERVICE ---
type MockAnalysisService struct {
	mock.Mock
}

var _ services.AnalysisService = (*MockAnalysisService)(nil)

func (m *MockAnalysisService) Analyze(ctx context.Context, entryText string, user *models.User) (*models.AnalyzeResult, error) {
	args := m.Called(ctx, entryText, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyzeResult), args.Error(1)
}
func (m *MockAnalysisService) ValidateEntryText(entryText string) (string, error) {
	args := m.Called(entryText)
	return args.String(0), args.Error(1)
}

// --- MOCK ENTRY SERVICE ---
type MockEntryService struct {
	mock.Mock
}

var _ services.EntryService = (*MockEntryService)(nil)

func (m *MockEntryService) StoreResult(userID int64, result *models.AnalyzeResult) (*models.Entry, error) {
	args := m.Called(userID, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}
func (m *MockEntryService) Search(userID int64, req *models.SearchRequest) ([]models.Entry, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}
func (m *MockEntryService) ImportGuestData(userID int64, records []models.ImportRecord) ([]models.Entry, error) {
	args := m.Called(userID, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}

// --- MOCK TOKEN SERVICE ---
type MockTokenService struct {
	mock.Mock
}

// Ensure MockTokenService implements auth.TokenService
var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateTokens(user *models.User) (string, string, error) {
	args := m.Called(user)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockTokenService) Logout(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}
