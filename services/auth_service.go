package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hashing time for brute-force resistance.
const bcryptCost = 12

// tokenIssuer is stamped into every access token.
const tokenIssuer = "blogapi"

// AuthService handles registration, login, and bearer-token validation.
//
// The email address is the one identity claim: it is the token subject
// and the lookup key for protected routes. There is no server-side
// session; a token stays valid until it expires.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	// ValidateAccessToken verifies signature and expiry and returns the
	// subject email. Tampered, expired, and malformed tokens all come
	// back as pkg.ErrUnauthorized, never as a panic or a raw parse error.
	ValidateAccessToken(tokenString string) (string, error)
}

type authService struct {
	db        *database.DB
	users     repository.UserRepository
	jwtSecret []byte
	accessExp time.Duration
}

// NewAuthService wires an AuthService.
func NewAuthService(db *database.DB, users repository.UserRepository, jwtSecret string, accessExpMinutes int) AuthService {
	return &authService{
		db:        db,
		users:     users,
		jwtSecret: []byte(jwtSecret),
		accessExp: time.Duration(accessExpMinutes) * time.Minute,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		users := repository.NewSQLUserRepo(tx)

		// Duplicate emails are rejected as a bad request, matching the
		// registration contract rather than a generic conflict.
		_, err := users.GetByEmail(ctx, req.Email)
		if err == nil {
			return fmt.Errorf("%w: email already registered", pkg.ErrBadRequest)
		}
		if !errors.Is(err, pkg.ErrNotFound) {
			return err
		}

		return users.Create(ctx, &models.User{
			Email:          req.Email,
			Username:       req.Username,
			HashedPassword: string(hash),
		})
	})
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Same message as a wrong password so login attempts cannot
			// probe which emails exist.
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &models.TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: invalid or expired token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	return claims.Subject, nil
}
