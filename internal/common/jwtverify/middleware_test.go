package jwtverify_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountshq/accounts-service/internal/common/jwtverify"
	"github.com/accountshq/accounts-service/internal/common/logger"
)

const testSecret = "test-secret-key-that-is-32-bytes!"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"id":       "user-123",
		"username": "alice",
		"email":    "a@x.com",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
}

func runMiddleware(t *testing.T, authorization string) (*httptest.ResponseRecorder, jwtverify.Claims, bool) {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	var gotClaims jwtverify.Claims
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, called = jwtverify.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	jwtverify.Middleware(testSecret, log)(next).ServeHTTP(rec, req)
	return rec, gotClaims, called
}

func TestMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	rec, claims, called := runMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !called {
		t.Fatal("expected next handler to run with claims attached")
	}
	if claims.UserID != "user-123" || claims.Username != "alice" || claims.Email != "a@x.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	rec, _, called := runMiddleware(t, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler must not run without authorization")
	}
}

func TestMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, "another-secret-key-of-32-bytes!!", validClaims())

	rec, _, called := runMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler must not run with a forged token")
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	rec, _, called := runMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler must not run with an expired token")
	}
}

func TestMiddleware_MissingIdentityClaims(t *testing.T) {
	claims := validClaims()
	delete(claims, "email")
	token := signToken(t, testSecret, claims)

	rec, _, called := runMiddleware(t, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler must not run with incomplete claims")
	}
}
