// filepath: internal/api/handlers/search_handler_test.go
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

func setupSearchTestAPI(t *testing.T) (*httptest.Server, *MockEntryService, *MockTokenService) {
	t.Helper()

	entrySvc := new(MockEntryService)
	tokenSvc := new(MockTokenService)

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	infoSvc := new(MockInfoService)
	infoSvc.On("GetInfo").Return(models.Info{Version: "test", UptimeSince: time.Now()})

	h := NewHandlers(infoSvc, nil, nil, entrySvc, tokenSvc, new(MockAuditor), cfg)
	am := auth.NewMiddleware(tokenSvc)

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/search").Subrouter()
	protected.Use(am.RequireAuth)
	protected.HandleFunc("", h.SearchEntries).Methods("POST")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, entrySvc, tokenSvc
}

func TestSearchEntries_Success(t *testing.T) {
	server, entrySvc, tokenSvc := setupSearchTestAPI(t)

	user := &models.User{ID: 3, Email: "gary@example.com", Username: "gary"}
	tokenSvc.On("ValidateAccessToken", "good-token").Return(user, nil)

	found := []models.Entry{
		{EntryID: "01HNEWER", EntryText: "newer", CreatedAt: 200},
		{EntryID: "01HOLDER", EntryText: "older", CreatedAt: 100},
	}
	entrySvc.On("Search", int64(3), mock.AnythingOfType("*models.SearchRequest")).Return(found, nil)

	body, _ := json.Marshal(models.SearchRequest{Keyword: "day"})
	req, _ := http.NewRequest("POST", server.URL+"/api/search", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got searchResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "01HNEWER", got.Entries[0].EntryID)
}

func TestSearchEntries_EmptyResultIsArray(t *testing.T) {
	server, entrySvc, tokenSvc := setupSearchTestAPI(t)

	user := &models.User{ID: 3, Email: "gary@example.com", Username: "gary"}
	tokenSvc.On("ValidateAccessToken", "good-token").Return(user, nil)
	entrySvc.On("Search", int64(3), mock.Anything).Return(nil, nil)

	body, _ := json.Marshal(models.SearchRequest{})
	req, _ := http.NewRequest("POST", server.URL+"/api/search", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]json.RawMessage
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, "[]", string(raw["entries"]))
}

func TestSearchEntries_ValidationError(t *testing.T) {
	server, entrySvc, tokenSvc := setupSearchTestAPI(t)

	user := &models.User{ID: 3, Email: "gary@example.com", Username: "gary"}
	tokenSvc.On("ValidateAccessToken", "good-token").Return(user, nil)
	entrySvc.On("Search", int64(3), mock.Anything).
		Return(nil, fmt.Errorf("%w: limit exceeds maximum of 100", services.ErrValidation))

	body, _ := json.Marshal(models.SearchRequest{})
	req, _ := http.NewRequest("POST", server.URL+"/api/search", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEntries_RequiresAuth(t *testing.T) {
	server, _, _ := setupSearchTestAPI(t)

	body, _ := json.Marshal(models.SearchRequest{})
	resp, err := http.Post(server.URL+"/api/search", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
