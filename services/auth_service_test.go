package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/repository"
	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "test-secret-not-for-production"

func newAuthFixture(t *testing.T, expiryMinutes int) AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(db, repository.NewSQLUserRepo(db.Conn), testJWTSecret, expiryMinutes)
}

func register(t *testing.T, svc AuthService, email, password string) {
	t.Helper()
	err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t, 30)
	ctx := context.Background()

	register(t, svc, "alice@example.com", "hunter22")

	resp, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %s", resp.TokenType)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}

	email, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if email != "alice@example.com" {
		t.Fatalf("expected subject email, got %s", email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t, 30)
	ctx := context.Background()

	register(t, svc, "dup@example.com", "password1")

	err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password2",
	})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for duplicate email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture(t, 30)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing email", models.RegisterRequest{Password: "longenough"}},
		{"malformed email", models.RegisterRequest{Email: "not-an-email", Password: "longenough"}},
		{"short password", models.RegisterRequest{Email: "a@b.co", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Register(ctx, &tc.req); !errors.Is(err, pkg.ErrBadRequest) {
				t.Fatalf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t, 30)
	ctx := context.Background()

	register(t, svc, "alice@example.com", "correct-password")

	_, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newAuthFixture(t, 30)
	ctx := context.Background()

	register(t, svc, "alice@example.com", "correct-password")

	_, unknownErr := svc.Login(ctx, &models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	_, wrongErr := svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	// Identical messages so attempts cannot probe which emails exist.
	if unknownErr == nil || wrongErr == nil {
		t.Fatal("expected both logins to fail")
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", unknownErr, wrongErr)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	// Negative expiry mints tokens that are already expired.
	svc := newAuthFixture(t, -1)
	ctx := context.Background()

	register(t, svc, "alice@example.com", "hunter22")
	resp, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.ValidateAccessToken(resp.AccessToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestValidateTamperedToken(t *testing.T) {
	svc := newAuthFixture(t, 30)
	ctx := context.Background()

	register(t, svc, "alice@example.com", "hunter22")
	resp, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(resp.AccessToken, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.ValidateAccessToken(tampered); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestValidateForeignKeyToken(t *testing.T) {
	svc := newAuthFixture(t, 30)

	claims := jwt.RegisteredClaims{Subject: "mallory@example.com"}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("different-secret"))
	if err != nil {
		t.Fatalf("sign foreign token: %v", err)
	}

	if _, err := svc.ValidateAccessToken(foreign); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign-signed token, got %v", err)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newAuthFixture(t, 30)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, pkg.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", tok, err)
		}
	}
}
