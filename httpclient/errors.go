package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTransportUnavailable indicates no transport was configured or discoverable.
	ErrCodeTransportUnavailable ErrorCode = iota
	// ErrCodeTimeout indicates the client's automatic per-request timeout fired.
	ErrCodeTimeout
	// ErrCodeTransport indicates the transport failed or the caller cancelled.
	ErrCodeTransport
	// ErrCodeInterceptor indicates a request or response interceptor failed.
	ErrCodeInterceptor
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a client-side error (other 4xx).
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTransportUnavailable:
		return "transport_unavailable"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeTransport:
		return "transport"
	case ErrCodeInterceptor:
		return "interceptor"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Interceptor phases reported in Error.Phase.
const (
	PhaseRequest  = "request"
	PhaseResponse = "response"
)

// ErrTransportUnavailable is returned when a client has no transport.
var ErrTransportUnavailable = errors.New("no transport available")

// Error is a structured HTTP client error with classification.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 for non-status errors).
	StatusCode int
	// Message describes the error.
	Message string
	// Phase is "request" or "response" for interceptor errors.
	Phase string
	// Index is the position of the failing interceptor in the chain snapshot.
	Index int
	// Retryable indicates whether the operation could be retried by the caller.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code == ErrCodeInterceptor:
		return fmt.Sprintf("httpclient: %s %s[%d]: %s", e.Code, e.Phase, e.Index, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportUnavailableError creates a transport-unavailable error.
// A nil cause wraps ErrTransportUnavailable.
func NewTransportUnavailableError(cause error) *Error {
	err := ErrTransportUnavailable
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrTransportUnavailable, cause)
	}
	return &Error{
		Code:    ErrCodeTransportUnavailable,
		Message: err.Error(),
		Err:     err,
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewTransportError wraps a transport failure unchanged.
func NewTransportError(err error) *Error {
	return &Error{
		Code:      ErrCodeTransport,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewInterceptorError wraps a failure raised by the interceptor at index in phase.
func NewInterceptorError(phase string, index int, err error) *Error {
	return &Error{
		Code:    ErrCodeInterceptor,
		Message: err.Error(),
		Phase:   phase,
		Index:   index,
		Err:     err,
	}
}

// NewAuthError creates an authentication error.
func NewAuthError(statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeAuth,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(body []byte) *Error {
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeNotFound,
		Message:    "HTTP 404",
		Body:       body,
	}
}

// NewRateLimitError creates a rate-limit error.
func NewRateLimitError(body []byte) *Error {
	return &Error{
		StatusCode: http.StatusTooManyRequests,
		Code:       ErrCodeRateLimit,
		Message:    "HTTP 429",
		Retryable:  true,
		Body:       body,
	}
}

// NewValidationError creates a client-side validation error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewServerError creates a server error.
func NewServerError(statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeServer,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  true,
		Body:       body,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 1xx, 2xx and 3xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	switch {
	case statusCode < 400:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return NewAuthError(statusCode, body)
	case statusCode == http.StatusNotFound:
		return NewNotFoundError(body)
	case statusCode == http.StatusTooManyRequests:
		return NewRateLimitError(body)
	case statusCode < 500:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeValidation,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
			Body:       body,
		}
	default:
		return NewServerError(statusCode, body)
	}
}

// hasCode walks the whole wrap chain, so an interceptor error wrapping a
// status error reports both codes.
func hasCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// IsTransportUnavailable checks if an error is a transport-unavailable error.
func IsTransportUnavailable(err error) bool { return hasCode(err, ErrCodeTransportUnavailable) }

// IsTimeout checks if an error is a client timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool { return hasCode(err, ErrCodeTransport) }

// IsInterceptor checks if an error was raised by an interceptor.
func IsInterceptor(err error) bool { return hasCode(err, ErrCodeInterceptor) }

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool { return hasCode(err, ErrCodeRateLimit) }

// IsValidation checks if an error is a client-side validation error.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsRetryable checks if any error in the chain is retryable.
func IsRetryable(err error) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Retryable {
			return true
		}
		err = e.Err
	}
	return false
}
