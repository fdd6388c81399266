package models

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// User is a registered account. Email is the identity; username is an
// optional display handle.
type User struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Username       *string `json:"username"`
	HashedPassword string  `json:"-"` // never serialized
}

// DisplayName returns the username when set, otherwise the email.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterRequest is the body of POST /register/.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Username *string `json:"username"`
}

// Validate checks email shape and password length.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if utf8.RuneCountInString(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if r.Username != nil {
		trimmed := strings.TrimSpace(*r.Username)
		if trimmed == "" {
			r.Username = nil
		} else {
			if utf8.RuneCountInString(trimmed) > 32 {
				return fmt.Errorf("username must be at most 32 characters")
			}
			r.Username = &trimmed
		}
	}
	return nil
}

// LoginRequest is the body of POST /login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// TokenResponse is the body of a successful POST /login/.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
