package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Registry Error Constructors ---

// NotRegistered creates a new AppError for a lookup of a type that has no cached instance.
func NotRegistered(typeName string) *AppError {
	return &AppError{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("Service %s is not registered.", typeName),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"type": typeName},
	}
}

// NoEligibleConstructor creates a new AppError for a type whose constructors
// do not yield exactly one candidate. marked and single are the number of
// constructors carrying the injection marker and taking exactly one parameter.
func NoEligibleConstructor(typeName string, total, marked, single int) *AppError {
	var reason string
	switch {
	case total == 0:
		reason = "no constructors are known"
	case marked > 1:
		reason = fmt.Sprintf("%d constructors carry the injection marker", marked)
	case single == 0:
		reason = "no constructor is marked and none takes exactly one parameter"
	default:
		reason = fmt.Sprintf("no constructor is marked and %d take exactly one parameter", single)
	}
	return &AppError{
		Code: ErrCodeNoEligibleConstructor, Message: fmt.Sprintf("No eligible constructor for %s: %s.", typeName, reason),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"type": typeName, "constructors": total, "marked": marked, "single_param": single},
	}
}

// ConstructionFailed creates a new AppError for a constructor that failed to produce an instance.
func ConstructionFailed(typeName, constructor string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConstructionFailed, Message: fmt.Sprintf("Failed to construct %s.", typeName),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"type": typeName, "constructor": constructor}, Cause: cause,
	}
}

// CyclicDependency creates a new AppError for a dependency cycle. path lists
// the types on the cycle, starting and ending with the same type.
func CyclicDependency(path []string) *AppError {
	typeName := ""
	if len(path) > 0 {
		typeName = path[len(path)-1]
	}
	return &AppError{
		Code: ErrCodeCyclicDependency, Message: fmt.Sprintf("Dependency cycle detected: %s.", strings.Join(path, " -> ")),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"type": typeName, "path": path},
	}
}

// InvalidConstructor creates a new AppError for a function that cannot act as a constructor.
func InvalidConstructor(fn, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConstructor, Message: fmt.Sprintf("Invalid constructor %s: %s.", fn, reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"type": fn},
	}
}

// TypeMismatch creates a new AppError for a cached instance that is not of the requested type.
func TypeMismatch(want, got string) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("Service %s holds a %s.", want, got),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"type": want, "got": got},
	}
}

// --- Common Error Constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
