package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/accountshq/accounts-service/internal/common/constants"
)

var validate = validator.New()

func validateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return ErrValidationMissingFields
	}

	if len(username) > constants.UsernameMaxLength {
		return ErrValidationUsernameTooLong
	}

	if len(email) > constants.EmailMaxLength || validate.Var(email, "email") != nil {
		return ErrValidationEmailFormat
	}

	if len(password) < constants.PasswordMinLength {
		return ErrValidationPasswordTooShort
	}

	if len(password) > constants.PasswordMaxLength {
		return ErrValidationPasswordTooLong
	}

	return nil
}

func validateLogin(email, password string) error {
	if email == "" || password == "" {
		return ErrValidationMissingFields
	}
	return nil
}
