package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("authentication token missing")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Infrastructure errors
	ErrStore  = errors.New("store operation failed")
	ErrRender = errors.New("document rendering failed")
)

// Student errors
var (
	ErrStudentNotFound    = NewCustomError(ErrNotFound, "student not found")
	ErrEmailAlreadyExists = NewCustomError(ErrConflict, "email already exists")
	ErrInvalidEmail       = NewCustomError(ErrValidationFailed, "invalid email")
	ErrInvalidPassword    = NewCustomError(ErrValidationFailed, "invalid password")
	ErrInvalidLevel       = NewCustomError(ErrValidationFailed, "invalid level")
)

// Catalog errors
var (
	ErrDepartmentNotFound = NewCustomError(ErrNotFound, "department not found")
	ErrCourseNotFound     = NewCustomError(ErrNotFound, "course not found")
)

// Registration errors
var (
	// ErrEmptyRegistration is returned when the combined compulsory and elective
	// set for a registration is empty.
	ErrEmptyRegistration = NewCustomError(ErrValidationFailed, "at least one course must be registered")
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewStoreError wraps an underlying database failure. The cause is kept in
// Details for logging and never shown to clients.
func NewStoreError(op string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrStore, cause),
		Message: op + ": " + ErrStore.Error(),
	}
}

// NewRenderError wraps a document generation failure.
func NewRenderError(cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrRender, cause),
		Message: ErrRender.Error(),
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error. It returns a copy so shared
// sentinel values are never mutated.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	cp := *e
	cp.Code = code
	return &cp
}

// DetailsOf returns the details attached to the first CustomError in err's chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
