package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/pkg/ratelimit"
	"github.com/akinalp/blogapi/services"
)

// AuthHandler serves registration, login, and the auth-gated example
// route.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler is the constructor. loginLimiter may be nil to disable
// brute-force protection (tests).
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, loginLimiter: loginLimiter}
}

// Register godoc
// POST /register/
// Body: { "email": "...", "password": "...", "username": optional }
// A duplicate email is a 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

// Login godoc
// POST /login/
// Body: { "email": "...", "password": "..." }
// Returns a bearer token; wrong credentials are a 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Successful login clears the counter so legitimate users never
	// accumulate toward the limit.
	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, tokens)
}

// Protected godoc
// GET /protected/
// Requires a valid bearer token; the auth middleware resolves the user.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Hello, %s", user.DisplayName()),
	})
}
