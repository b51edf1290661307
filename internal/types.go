// internal/types.go - Common types for internal packages
package internal

// Error represents application-specific errors
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new application error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode constants for common error types
const (
	ErrorCodeConfig     = "CONFIG_ERROR"
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeDatasource = "DATASOURCE_QUERY_FAILED"
	ErrorCodeCacheRead  = "CACHE_READ_CORRUPT"
	ErrorCodeCacheWrite = "CACHE_WRITE_FAILED"
	ErrorCodeNotFound   = "NOT_FOUND"
)
