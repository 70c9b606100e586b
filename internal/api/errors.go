package api

// errors.go defines the HTTP level errors raised outside the certificate operations
// (malformed bodies, unknown routes, rate limiting etc)

import "fmt"

// APIError represents a structured error raised by the HTTP layer.
type APIError struct {
	// code is the error code
	code ErrorCode

	// message is returned to the client
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *APIError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *APIError) Code() ErrorCode { return e.code }
func (e *APIError) Message() string { return e.message }
func (e *APIError) Unwrap() error   { return e.wrapped }

type ErrorCode string

const (
	// ErrCodeMalformedRequest is used when the request body is not valid JSON
	ErrCodeMalformedRequest ErrorCode = "malformed_request"

	// ErrCodeRouteNotFound is used for requests to an unknown path
	ErrCodeRouteNotFound ErrorCode = "route_not_found"

	// ErrCodeMethodNotAllowed is used when the path exists but not for the request method
	ErrCodeMethodNotAllowed ErrorCode = "method_not_allowed"

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware and when decoding request bodies
	ErrCodeRequestTooLarge ErrorCode = "request_too_large"

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"

	// ErrCodeInternalError is used for unexpected failures, including recovered panics
	ErrCodeInternalError ErrorCode = "internal_error"
)

// WrapMalformedRequestError wraps a decoding error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &APIError{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// NewRouteNotFoundError creates an error for an unknown route.
func NewRouteNotFoundError(msg string) error {
	return &APIError{code: ErrCodeRouteNotFound, message: msg}
}

// NewMethodNotAllowedError creates an error for a known route called with the wrong method.
func NewMethodNotAllowedError(msg string) error {
	return &APIError{code: ErrCodeMethodNotAllowed, message: msg}
}

// NewRequestTooLargeError creates an error for requests exceeding the size limit.
func NewRequestTooLargeError(msg string) error {
	return &APIError{code: ErrCodeRequestTooLarge, message: msg}
}

// NewRateLimitError creates an error for requests rejected by the rate limiter.
func NewRateLimitError(msg string) error {
	return &APIError{code: ErrCodeRateLimitExceeded, message: msg}
}

// WrapInternalError wraps an unexpected failure.
func WrapInternalError(err error, msg string) error {
	return &APIError{code: ErrCodeInternalError, message: msg, wrapped: err}
}
