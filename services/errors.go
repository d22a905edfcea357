package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorKind classifies a ServiceError for translation at the HTTP boundary
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindMissingField    ErrorKind = "missing_field"
	KindInvalidField    ErrorKind = "invalid_field"
	KindConflict        ErrorKind = "conflict"
	KindNotFound        ErrorKind = "not_found"
	KindUnavailable     ErrorKind = "unavailable"
	KindInternal        ErrorKind = "internal"
)

// Stable error codes returned to clients
const (
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeMissingField        = "MISSING_FIELD"
	CodeInvalidField        = "INVALID_FIELD"
	CodePartySizeOutOfRange = "PARTY_SIZE_OUT_OF_RANGE"
	CodeDateInPast          = "DATE_IN_PAST"
	CodeInvalidTimeSlot     = "INVALID_TIME_SLOT"
	CodeSlotUnavailable     = "SLOT_UNAVAILABLE"
	CodeMissingAddress      = "MISSING_ADDRESS"
	CodeItemUnavailable     = "ITEM_UNAVAILABLE"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeNotFound            = "NOT_FOUND"
	CodeDatabaseError       = "DATABASE_ERROR"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// ServiceError is returned by admission and lifecycle operations
type ServiceError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ServiceError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Kind == kind
}

// ErrorCode returns the client code of a ServiceError, or "" for other errors
func ErrorCode(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return ""
}

func missingFieldError(message string, fields []string) *ServiceError {
	return &ServiceError{Kind: KindMissingField, Code: CodeMissingField, Message: message, Details: fields}
}

func invalidFieldError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidField, Code: code, Message: message}
}

func notFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Code: CodeDatabaseError, Message: message, Err: err}
}

// isUniqueViolation detects unique constraint failures from PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// Untranslated driver errors (SQLite without TranslateError)
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique constraint")
}
