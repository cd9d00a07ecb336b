package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/accountshq/accounts-service/internal/auth/domain"
	authrepo "github.com/accountshq/accounts-service/internal/auth/repository"
	"github.com/accountshq/accounts-service/internal/auth/service"
	commonerrors "github.com/accountshq/accounts-service/internal/common/errors"
)

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _, idGen, mockClock := setupAuthService(t)

	idGen.newIDFunc = func() (string, error) {
		return "user-123", nil
	}

	var created domain.User
	repo.createFunc = func(_ context.Context, user domain.User) error {
		created = user
		return nil
	}

	result, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.ID != "user-123" {
		t.Errorf("expected id user-123, got %s", result.ID)
	}
	if result.Username != "alice" || result.Email != "a@x.com" {
		t.Errorf("unexpected identity echo: %+v", result)
	}

	if created.PasswordHash == "secret1" {
		t.Error("stored hash must not equal the plaintext password")
	}
	if !strings.HasPrefix(created.PasswordHash, "hashed_") {
		t.Errorf("expected hashed password to be stored, got %q", created.PasswordHash)
	}
	if !created.CreatedAt.Equal(mockClock.Now()) {
		t.Errorf("expected created_at %v, got %v", mockClock.Now(), created.CreatedAt)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   service.RegisterInput
		wantErr error
	}{
		{
			name:    "missing username",
			input:   service.RegisterInput{Email: "a@x.com", Password: "secret1"},
			wantErr: service.ErrValidationMissingFields,
		},
		{
			name:    "missing email",
			input:   service.RegisterInput{Username: "alice", Password: "secret1"},
			wantErr: service.ErrValidationMissingFields,
		},
		{
			name:    "missing password",
			input:   service.RegisterInput{Username: "alice", Email: "a@x.com"},
			wantErr: service.ErrValidationMissingFields,
		},
		{
			name:    "password too short",
			input:   service.RegisterInput{Username: "alice", Email: "a@x.com", Password: "five5"},
			wantErr: service.ErrValidationPasswordTooShort,
		},
		{
			name:    "password too long",
			input:   service.RegisterInput{Username: "alice", Email: "a@x.com", Password: strings.Repeat("p", 73)},
			wantErr: service.ErrValidationPasswordTooLong,
		},
		{
			name:    "invalid email",
			input:   service.RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1"},
			wantErr: service.ErrValidationEmailFormat,
		},
		{
			name:    "username too long",
			input:   service.RegisterInput{Username: strings.Repeat("a", 65), Email: "a@x.com", Password: "secret1"},
			wantErr: service.ErrValidationUsernameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _, _ := setupAuthService(t)

			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			de, ok := commonerrors.AsDomainError(err)
			if !ok {
				t.Fatal("expected a domain error")
			}
			if de.HTTPStatus() != 400 {
				t.Errorf("expected status 400, got %d", de.HTTPStatus())
			}

			if repo.createCalls != 0 {
				t.Error("store must not be touched on validation failure")
			}
		})
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.createFunc = func(_ context.Context, _ domain.User) error {
		return authrepo.ErrEmailAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	de, _ := commonerrors.AsDomainError(err)
	if de.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", de.HTTPStatus())
	}
	if de.Category() != commonerrors.CategoryConflict {
		t.Errorf("expected conflict category, got %s", de.Category())
	}
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	svc, repo, hasher, _, _ := setupAuthService(t)

	cause := errors.New("bcrypt exploded")
	hasher.hashFunc = func(_ string) (string, error) {
		return "", cause
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Code() != "REGISTRATION_FAILED" {
		t.Errorf("expected code REGISTRATION_FAILED, got %s", de.Code())
	}
	if de.HTTPStatus() != 500 {
		t.Errorf("expected status 500, got %d", de.HTTPStatus())
	}
	// Cause stays attached for the server log, the client-facing message
	// stays generic.
	if !errors.Is(err, cause) {
		t.Error("expected cause to be wrapped")
	}
	if de.Message() != "Registration failed" {
		t.Errorf("expected generic message, got %q", de.Message())
	}
	if repo.createCalls != 0 {
		t.Error("store must not be touched when hashing fails")
	}
}

func TestAuthService_Register_CreateFailure(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.createFunc = func(_ context.Context, _ domain.User) error {
		return errors.New("connection reset")
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Code() != "REGISTRATION_FAILED" || de.HTTPStatus() != 500 {
		t.Errorf("unexpected error mapping: code=%s status=%d", de.Code(), de.HTTPStatus())
	}
}
