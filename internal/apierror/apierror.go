// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// Kind classifies an error so clients can branch without string-matching
// the detail message.
const (
	KindValidation = "validation_error"
	KindAuth       = "auth_error"
	KindNotFound   = "not_found"
	KindNoSession  = "no_session"
	KindBackend    = "backend_error"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// Backend wraps an unexpected infrastructure failure without exposing it.
func Backend(msg string) *APIError {
	return &APIError{Code: KindBackend, Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: KindValidation, Detail: "Error de validacion", Fields: fields}
}
