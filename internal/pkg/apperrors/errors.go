package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrPaymentExceedsBalance = errors.New("payment exceeds outstanding balance")

	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrForbidden = errors.New("forbidden")

	ErrConflict = errors.New("resource conflict")
)

const (
	MsgAlreadyExists      = "This record already exists."
	MsgPermissionDenied   = "You do not have permission to perform this action."
	MsgInvalidCredentials = "Invalid email or password."
	MsgNotFound           = "Resource not found."
	MsgGeneric            = "An unexpected error occurred. Please try again."
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

// UserMessage turns any error into the short text shown to an operator.
// Wrapped sentinels win; otherwise the raw text is matched against the
// driver phrases for duplicate keys, permission and credential failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return MsgAlreadyExists
	case errors.Is(err, ErrForbidden):
		return MsgPermissionDenied
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.As(err, &validationErr):
		return validationErr.Message
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "duplicate key"), strings.Contains(text, "unique constraint"), strings.Contains(text, "already exists"):
		return MsgAlreadyExists
	case strings.Contains(text, "permission denied"), strings.Contains(text, "row-level security"):
		return MsgPermissionDenied
	case strings.Contains(text, "invalid login"), strings.Contains(text, "invalid credentials"), strings.Contains(text, "invalid password"):
		return MsgInvalidCredentials
	}
	return MsgGeneric
}
