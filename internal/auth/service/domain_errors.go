package service

import (
	"net/http"

	commonerrors "github.com/accountshq/accounts-service/internal/common/errors"
)

var (
	ErrValidationMissingFields = commonerrors.NewDomainError(
		"VALIDATION_MISSING_FIELDS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"all fields are mandatory",
	)

	ErrValidationPasswordTooShort = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must be at least 6 characters",
	)

	ErrValidationPasswordTooLong = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must be at most 72 characters",
	)

	ErrValidationUsernameTooLong = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username must be at most 64 characters",
	)

	ErrValidationEmailFormat = commonerrors.NewDomainError(
		"VALIDATION_EMAIL_FORMAT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"email is not a valid address",
	)

	// Duplicate registration stays a plain 400 rather than 409 so existing
	// clients keep seeing the same status.
	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"user already registered",
	)

	// One message for both unknown email and wrong password so a caller
	// cannot probe which emails are registered.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Email or password is invalid",
	)

	ErrRegistrationFailed = commonerrors.NewDomainError(
		"REGISTRATION_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Registration failed",
	)

	ErrLoginFailed = commonerrors.NewDomainError(
		"LOGIN_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Login failed",
	)
)
