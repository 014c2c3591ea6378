// filepath: internal/api/handlers/user_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/services"
	"github.com/Gary0302/Mind-BE/internal/services/auth"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userTestEnv struct {
	server *httptest.Server
	user   *MockUserService
	entry  *MockEntryService
	token  *MockTokenService
	audit  *MockAuditor
}

func setupUserTestAPI(t *testing.T) *userTestEnv {
	t.Helper()

	env := &userTestEnv{
		user:  new(MockUserService),
		entry: new(MockEntryService),
		token: new(MockTokenService),
		audit: new(MockAuditor),
	}

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	infoSvc := new(MockInfoService)
	infoSvc.On("GetInfo").Return(models.Info{Version: "test", UptimeSince: time.Now()})

	h := NewHandlers(infoSvc, env.user, nil, env.entry, env.token, env.audit, cfg)
	am := auth.NewMiddleware(env.token)

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/user").Subrouter()
	protected.Use(am.RequireAuth)
	protected.HandleFunc("/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/import-guest-data", h.ImportGuestData).Methods("POST")

	env.server = httptest.NewServer(r)
	t.Cleanup(env.server.Close)
	return env
}

func TestGetProfile(t *testing.T) {
	env := setupUserTestAPI(t)

	user := &models.User{ID: 5, Email: "gary@example.com", Username: "gary"}
	env.token.On("ValidateAccessToken", "good-token").Return(user, nil)

	first := int64(100)
	last := int64(200)
	env.user.On("GetProfile", int64(5)).Return(&models.ProfileStats{
		User:         *user,
		TotalEntries: 4,
		FirstEntryAt: &first,
		LastEntryAt:  &last,
		TopEmotions:  []models.WeightedLabel{{Label: "happy", Weight: 2.1}},
		TopTopics:    []models.CountedLabel{{Label: "work", Count: 3}},
		YSYMCount:    1,
	}, nil)

	req, _ := http.NewRequest("GET", env.server.URL+"/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.ProfileStats
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 4, got.TotalEntries)
	assert.Equal(t, "gary@example.com", got.User.Email)
	assert.Equal(t, 1, got.YSYMCount)
}

func TestGetProfile_RequiresAuth(t *testing.T) {
	env := setupUserTestAPI(t)

	resp, err := http.Get(env.server.URL + "/api/user/profile")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestImportGuestData(t *testing.T) {
	env := setupUserTestAPI(t)

	user := &models.User{ID: 5, Email: "gary@example.com", Username: "gary"}
	env.token.On("ValidateAccessToken", "good-token").Return(user, nil)

	records := []models.ImportRecord{
		{EntryText: "First guest entry."},
		{EntryText: "Second guest entry."},
	}
	env.entry.On("ImportGuestData", int64(5), records).Return([]models.Entry{
		{EntryID: "01HA", Source: models.EntrySourceImported},
		{EntryID: "01HB", Source: models.EntrySourceImported},
	}, nil)
	env.audit.On("Log", mock.Anything, "entry.import", "gary@example.com", "User:5",
		map[string]interface{}{"count": 2}).Return()

	body, _ := json.Marshal(importRequest{Records: records})
	req, _ := http.NewRequest("POST", env.server.URL+"/api/user/import-guest-data", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got importResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 2, got.Imported)

	env.audit.AssertExpectations(t)
}

func TestImportGuestData_AcceptsStringTimestamps(t *testing.T) {
	env := setupUserTestAPI(t)

	user := &models.User{ID: 5, Email: "gary@example.com", Username: "gary"}
	env.token.On("ValidateAccessToken", "good-token").Return(user, nil)

	// Browser exports commonly carry ISO timestamps; the decoder maps them to
	// Unix seconds instead of rejecting the whole import.
	want := []models.ImportRecord{
		{EntryText: "From a browser export.", CreatedAt: 1706659200},
		{EntryText: "From an older export.", CreatedAt: 1700000000},
	}
	env.entry.On("ImportGuestData", int64(5), want).Return([]models.Entry{
		{EntryID: "01HA", Source: models.EntrySourceImported},
		{EntryID: "01HB", Source: models.EntrySourceImported},
	}, nil)
	env.audit.On("Log", mock.Anything, "entry.import", "gary@example.com", "User:5",
		map[string]interface{}{"count": 2}).Return()

	body := `{"records": [
		{"entry_text": "From a browser export.", "created_at": "2024-01-31T00:00:00Z"},
		{"entry_text": "From an older export.", "created_at": 1700000000}
	]}`
	req, _ := http.NewRequest("POST", env.server.URL+"/api/user/import-guest-data", bytes.NewReader([]byte(body)))
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env.entry.AssertExpectations(t)
}

func TestImportGuestData_ValidationError(t *testing.T) {
	env := setupUserTestAPI(t)

	user := &models.User{ID: 5, Email: "gary@example.com", Username: "gary"}
	env.token.On("ValidateAccessToken", "good-token").Return(user, nil)
	env.entry.On("ImportGuestData", int64(5), mock.Anything).
		Return(nil, fmt.Errorf("%w: too many records (max 100 per import)", services.ErrValidation))

	records := make([]models.ImportRecord, 101)
	for i := range records {
		records[i].EntryText = "x"
	}
	body, _ := json.Marshal(importRequest{Records: records})
	req, _ := http.NewRequest("POST", env.server.URL+"/api/user/import-guest-data", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
