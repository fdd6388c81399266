// Package middleware holds the HTTP request pipeline layers that run
// before the handlers.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/blogapi/handlers"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/repository"
	"github.com/akinalp/blogapi/services"
)

// AuthMiddleware resolves the current user from a bearer token.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware is the constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, userRepo: userRepo}
}

// Require rejects requests without a valid bearer token.
//
// Chain: Authorization header → "Bearer " prefix → signature+expiry check
// → user lookup by the email subject. Any failure is a 401 and the
// wrapped handler never runs.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		email, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// The token may outlive the account.
		user, err := m.userRepo.GetByEmail(r.Context(), email)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
			return
		}
		user.HashedPassword = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
