package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registry errors
const (
	// ErrCodeNotRegistered indicates no instance is cached for the requested type.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
	// ErrCodeNoEligibleConstructor indicates the constructor selection rule found no unique candidate.
	ErrCodeNoEligibleConstructor ErrorCode = "NO_ELIGIBLE_CONSTRUCTOR"
	// ErrCodeConstructionFailed indicates a constructor returned an error, panicked or produced nil.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
	// ErrCodeCyclicDependency indicates a type depends on itself through its constructor parameters.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
	// ErrCodeInvalidConstructor indicates a function cannot be used as a constructor.
	ErrCodeInvalidConstructor ErrorCode = "INVALID_CONSTRUCTOR"
	// ErrCodeTypeMismatch indicates a cached instance is not of the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// None of the registry failures go away on their own: the registry never
// retries and a type's constructors do not change between calls.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeNotRegistered:         false,
	ErrCodeNoEligibleConstructor: false,
	ErrCodeConstructionFailed:    false,
	ErrCodeCyclicDependency:      false,
	ErrCodeInternal:              false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
