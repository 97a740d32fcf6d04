// Package errors defines the service-wide error taxonomy. Every failure that
// reaches the transport layer is either one of these or gets mapped to an
// internal error without exposing details.
package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

// Error carries a classification, an HTTP status hint and a stable
// user-facing message. Fields holds optional per-field validation detail.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// Conflict reports duplicate-resource failures. Status stays 400 to match the
// existing client contract.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message}
}

var (
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrEmailAlreadyInUse  = Conflict("user account already exists")
	ErrInvalidOtp         = Unauthorized("invalid or expired OTP")
	ErrOtpNotVerified     = Unauthorized("OTP not verified for this operation")
	ErrInvalidToken       = Unauthorized("invalid or expired token")
	ErrInvalidAuthHeader  = Unauthorized("invalid or missing Authorization header")
	ErrAccountNotFound    = Validation("user account does not exist")
	ErrDuplicatePassword  = Validation("new password cannot be the same as old password")
	ErrUserNotFound       = NotFound("user not found")
)

// StatusOf resolves the HTTP status for any error, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
