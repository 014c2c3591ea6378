// filepath: internal/services/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
)

// contextKey avoids collisions with other packages storing values on the request context.
type contextKey string

// UserContextKey is the request-context key under which the authenticated user is stored.
const UserContextKey contextKey = "user"

// UserFromContext returns the authenticated user stored by the middleware, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// writeError sends a JSON error response in the service envelope.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "status": "error"})
}

// Middleware provides authentication middleware.
type Middleware struct {
	Token TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(token TokenService) *Middleware {
	return &Middleware{Token: token}
}

// RequireAuth checks for a valid JWT Bearer token and rejects the request otherwise.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		user, ok := m.authenticate(w, authHeader)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth lets unauthenticated requests through as guests, but still
// rejects requests that present an invalid Authorization header.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Guest request: no user in context.
			next.ServeHTTP(w, r)
			return
		}

		user, ok := m.authenticate(w, authHeader)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate resolves a Bearer Authorization header to a user.
// On failure it writes the error response and returns ok=false.
func (m *Middleware) authenticate(w http.ResponseWriter, authHeader string) (*models.User, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	user, err := m.Token.ValidateAccessToken(tokenString)
	if err != nil {
		logging.Log.Warnf("auth: invalid Bearer token: %v", err)
		if strings.Contains(err.Error(), "expired") {
			writeError(w, http.StatusUnauthorized, "Token expired")
		} else {
			writeError(w, http.StatusUnauthorized, "Invalid token")
		}
		return nil, false
	}
	return user, true
}
