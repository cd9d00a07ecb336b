package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountshq/accounts-service/internal/auth/domain"
	"github.com/accountshq/accounts-service/internal/auth/service"
	commonerrors "github.com/accountshq/accounts-service/internal/common/errors"
)

func storedUser() domain.User {
	return domain.User{
		ID:           "user-123",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hashed_secret1",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, hasher, _, mockClock := setupAuthService(t)

	repo.findByEmailFunc = func(_ context.Context, email string) (domain.User, error) {
		if email != "a@x.com" {
			t.Errorf("unexpected lookup email %q", email)
		}
		return storedUser(), nil
	}
	hasher.compareFunc = func(hash, password string) error {
		if hash != "hashed_secret1" || password != "secret1" {
			return errors.New("mismatch")
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "a@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
	if result.User.ID != "user-123" || result.User.Username != "alice" || result.User.Email != "a@x.com" {
		t.Errorf("unexpected user echo: %+v", result.User)
	}

	parsed, err := jwt.Parse(result.AccessToken, func(token *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithTimeFunc(mockClock.Now))
	if err != nil || !parsed.Valid {
		t.Fatalf("failed to parse issued token: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["id"] != "user-123" || claims["username"] != "alice" || claims["email"] != "a@x.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	exp := int64(claims["exp"].(float64))
	wantExp := mockClock.Now().Add(24 * time.Hour).Unix()
	if exp != wantExp {
		t.Errorf("expected expiry %d (24h ahead), got %d", wantExp, exp)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.LoginInput
	}{
		{name: "missing email", input: service.LoginInput{Password: "secret1"}},
		{name: "missing password", input: service.LoginInput{Email: "a@x.com"}},
		{name: "both missing", input: service.LoginInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, _ := setupAuthService(t)

			_, err := svc.Login(context.Background(), tt.input)
			if !errors.Is(err, service.ErrValidationMissingFields) {
				t.Fatalf("expected ErrValidationMissingFields, got %v", err)
			}
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UniformFailureMessage(t *testing.T) {
	svcNotFound, _, _, _, _ := setupAuthService(t)
	_, errNotFound := svcNotFound.Login(context.Background(), service.LoginInput{
		Email:    "nobody@x.com",
		Password: "secret1",
	})

	svcBadPassword, repo, hasher, _, _ := setupAuthService(t)
	repo.findByEmailFunc = func(_ context.Context, _ string) (domain.User, error) {
		return storedUser(), nil
	}
	hasher.compareFunc = func(_, _ string) error {
		return errors.New("mismatch")
	}
	_, errBadPassword := svcBadPassword.Login(context.Background(), service.LoginInput{
		Email:    "a@x.com",
		Password: "wrong",
	})

	for _, err := range []error{errNotFound, errBadPassword} {
		de, ok := commonerrors.AsDomainError(err)
		if !ok {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if de.HTTPStatus() != 401 {
			t.Errorf("expected status 401, got %d", de.HTTPStatus())
		}
		if de.Message() != "Email or password is invalid" {
			t.Errorf("expected uniform message, got %q", de.Message())
		}
	}

	deA, _ := commonerrors.AsDomainError(errNotFound)
	deB, _ := commonerrors.AsDomainError(errBadPassword)
	if deA.Message() != deB.Message() || deA.Code() != deB.Code() {
		t.Error("both failure causes must produce an identical error")
	}
}

func TestAuthService_Login_FetchFailure(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.findByEmailFunc = func(_ context.Context, _ string) (domain.User, error) {
		return domain.User{}, errors.New("connection reset")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "a@x.com",
		Password: "secret1",
	})

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Code() != "LOGIN_FAILED" || de.HTTPStatus() != 500 {
		t.Errorf("unexpected error mapping: code=%s status=%d", de.Code(), de.HTTPStatus())
	}
}
