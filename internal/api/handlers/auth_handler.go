// filepath: internal/api/handlers/auth_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/repository"
)

// registerRequest is the JSON body for POST /api/auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginRequest is the JSON body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenRequest is the JSON body for refresh and logout endpoints.
type tokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// authResponse is the JSON body returned on successful authentication.
type authResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// tokenResponse is the JSON body returned on token refresh.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// @Summary Register a new user
// @Description Creates an account and returns an access/refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "New account"
// @Success 201 {object} authResponse
// @Failure 400 {object} ErrorResponse "Invalid email, username, or password"
// @Failure 409 {object} ErrorResponse "Email or username already registered"
// @Failure 500 {object} ErrorResponse "Token generation failed"
// @Router /auth/register [post]
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	user, err := h.User.Register(repository.UserCreateArgs{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		code := mapServiceError(err)
		if code == http.StatusInternalServerError {
			logging.Log.Errorf("Register: failed for %s: %v", req.Email, err)
			respondWithError(w, code, "Registration failed")
			return
		}
		respondWithError(w, code, err.Error())
		return
	}

	accessToken, refreshToken, err := h.Token.GenerateTokens(user)
	if err != nil {
		logging.Log.Errorf("Register: token generation failed for %s: %v", user.Email, err)
		respondWithError(w, http.StatusInternalServerError, "Could not generate tokens")
		return
	}

	h.Audit.Log(r.Context(), "auth.register", user.Email, userResource(user), nil)

	respondWithJSON(w, http.StatusCreated, authResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// @Summary Log in
// @Description Authenticates by email and password and returns an access/refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} authResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication failed"
// @Failure 500 {object} ErrorResponse "Token generation failed"
// @Router /auth/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	user, err := h.User.Authenticate(req.Email, req.Password)
	if err != nil {
		// Avoid revealing whether the account exists
		respondWithError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	accessToken, refreshToken, err := h.Token.GenerateTokens(user)
	if err != nil {
		logging.Log.Errorf("Login: token generation failed for %s: %v", user.Email, err)
		respondWithError(w, http.StatusInternalServerError, "Could not generate tokens")
		return
	}

	h.Audit.Log(r.Context(), "auth.login", user.Email, userResource(user), nil)

	respondWithJSON(w, http.StatusOK, authResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// @Summary Refresh the access token
// @Description Provide a valid refresh token to receive a new token pair. The old refresh token is revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body tokenRequest true "Refresh Token"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Failure 500 {object} ErrorResponse "Token generation failed"
// @Router /auth/refresh [post]
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate the refresh token (checks signature and DB)
	user, err := h.Token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	// Token Rotation: Invalidate the old refresh token immediately
	if err := h.Token.Logout(req.RefreshToken); err != nil {
		logging.Log.Warnf("Failed to invalidate old refresh token during refresh for user %s: %v", user.Username, err)
	}

	// Issue new token pair
	accessToken, refreshToken, err := h.Token.GenerateTokens(user)
	if err != nil {
		logging.Log.Errorf("Token refresh failed for %s: %v", user.Username, err)
		respondWithError(w, http.StatusInternalServerError, "Could not generate tokens")
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// @Summary Logout
// @Description Invalidates a refresh token. This endpoint is protected by an Access Token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body tokenRequest true "Refresh Token to invalidate"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Could not process token"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Token.Logout(req.RefreshToken); err != nil {
		logging.Log.Errorf("Logout failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	h.Audit.Log(r.Context(), "auth.logout", actorFromRequest(r), "", nil)

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully."})
}
