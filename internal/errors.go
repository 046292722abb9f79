package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeProtected    ErrorType = "PROTECTED_RESOURCE"
	ErrorTypeInvariant    ErrorType = "INVARIANT_VIOLATION"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDepartment ErrorCode = "INVALID_DEPARTMENT"
	ErrCodeInvalidPermission ErrorCode = "INVALID_PERMISSION"
	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidEmail      ErrorCode = "INVALID_EMAIL"

	ErrCodeItemNotFound ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"

	ErrCodeInsufficientPermission ErrorCode = "INSUFFICIENT_PERMISSION"
	ErrCodeOutOfScope             ErrorCode = "OUT_OF_SCOPE"
	ErrCodeAdminRequired          ErrorCode = "ADMIN_REQUIRED"
	ErrCodeProtectedAdmin         ErrorCode = "PROTECTED_ADMIN"
	ErrCodeNegativeQuantity       ErrorCode = "NEGATIVE_QUANTITY"
	ErrCodeUsernameTaken          ErrorCode = "USERNAME_TAKEN"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
		messages := make([]string, len(validationErrors.Errors))
		for i, err := range validationErrors.Errors {
			messages[i] = err.Message
		}
		return strings.Join(messages, "; ")
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Type, and on Code when the target carries one, so a
// freshly built error still satisfies errors.Is against the sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && (t.Code == "" || e.Code == t.Code)
}

// WithCause returns a copy so shared sentinels are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.Cause = cause
	return &c
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	c := *e
	c.Details = details
	return &c
}

func (e *AppError) WithMessage(message string) *AppError {
	c := *e
	c.Message = message
	return &c
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError builds an authorization failure: a missing permission
// or a department outside the requester's scope.
func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewProtectedResourceError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeProtected,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInvariantViolationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeInvariant,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// Kind sentinels match any error of their type.
var (
	ErrAuthorization      = &AppError{Type: ErrorTypeForbidden, Message: "not authorized", StatusCode: http.StatusForbidden}
	ErrNotFound           = &AppError{Type: ErrorTypeNotFound, Message: "not found", StatusCode: http.StatusNotFound}
	ErrProtectedResource  = &AppError{Type: ErrorTypeProtected, Message: "protected resource", StatusCode: http.StatusForbidden}
	ErrInvariantViolation = &AppError{Type: ErrorTypeInvariant, Message: "invariant violation", StatusCode: http.StatusUnprocessableEntity}
	ErrValidation         = &AppError{Type: ErrorTypeValidation, Message: "validation failed", StatusCode: http.StatusBadRequest}
)

var (
	ErrMissingPermission = NewForbiddenError("insufficient permissions", ErrCodeInsufficientPermission)
	ErrOutOfScope        = NewForbiddenError("department is outside the requester's scope", ErrCodeOutOfScope)
	ErrAdminRequired     = NewForbiddenError("administrator privileges required", ErrCodeAdminRequired)

	ErrItemNotFound = NewNotFoundError("inventory item not found", ErrCodeItemNotFound)
	ErrUserNotFound = NewNotFoundError("user not found", ErrCodeUserNotFound)

	ErrProtectedAdmin    = NewProtectedResourceError("the built-in administrator cannot be deleted", ErrCodeProtectedAdmin)
	ErrNegativeQuantity  = NewInvariantViolationError("quantity must not be negative", ErrCodeNegativeQuantity)
	ErrUsernameTaken     = NewConflictError("username is already taken", ErrCodeUsernameTaken)
	ErrInvalidDepartment = NewValidationError("unknown department", ErrCodeInvalidDepartment)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid username or password", ErrCodeInvalidCredentials)
	ErrMissingToken       = NewUnauthorizedError("missing authorization token", ErrCodeMissingToken)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorTypeOf returns the type of the first AppError in err's chain, or
// ErrorTypeInternal for anything else.
func ErrorTypeOf(err error) ErrorType {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Type
	}
	return ErrorTypeInternal
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	status := e.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return status, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
