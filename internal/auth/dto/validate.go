package dto

import (
	"net/mail"

	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
)

const minPasswordLength = 8

func validateEmail(fields map[string]string, email string) {
	if email == "" {
		fields["email"] = "is required"
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "must be a valid email address"
	}
}

func validatePassword(fields map[string]string, field, password string) {
	if password == "" {
		fields[field] = "is required"
		return
	}
	if len(password) < minPasswordLength {
		fields[field] = "must be at least 8 characters"
	}
}

func fieldErrors(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return apperr.ValidationFields("validation failed", fields)
}
