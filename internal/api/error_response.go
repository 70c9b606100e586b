package api

// error_response.go maps errors to the JSON error body returned by the gateway:
//
//	{"success": false, "error": "<stable message>", "details": "<raw error, dev and test only>"}

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/certgw/internal/certificate"
	"github.com/information-sharing-networks/certgw/internal/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"A certificate with this hash already exists"`

	// Details holds the raw underlying error. It is only populated in dev and test environments.
	Details string `json:"details,omitempty" example:"execution reverted: CertificateHashAlreadyExists"`

	// StatusCode is the HTTP status sent with the response
	StatusCode int `json:"-"`
}

type errorDetailsKey struct{}

// ErrorDetails returns a middleware that controls whether raw error details are included in error responses.
func ErrorDetails(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), errorDetailsKey{}, enabled)))
		})
	}
}

func showDetails(ctx context.Context) bool {
	enabled, _ := ctx.Value(errorDetailsKey{}).(bool)
	return enabled
}

// MapErrorToResponse maps certificate.CertError, APIError or generic errors to an error response.
//
// The full error is logged server-side by RespondWithErrorResponse; the response carries the stable message
// and, when enabled with ErrorDetails, the raw cause.
func MapErrorToResponse(err error, r *http.Request) *ErrorResponse {
	var certErr *certificate.CertError
	if errors.As(err, &certErr) {
		return errorResponseFromCertificate(certErr, r)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return errorResponseFromAPI(apiErr, r)
	}

	// fallback - this is not expected - if it does happen, return an internal error response and log the unmapped error
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	return newErrorResponse(r, http.StatusInternalServerError, "Internal server error", err.Error())
}

func errorResponseFromCertificate(err *certificate.CertError, r *http.Request) *ErrorResponse {
	var statusCode int

	switch err.Code() {
	case certificate.ErrCodeValidation:
		statusCode = http.StatusBadRequest
	case certificate.ErrCodeNotFound:
		statusCode = http.StatusNotFound
	default:
		statusCode = http.StatusInternalServerError
	}

	return newErrorResponse(r, statusCode, err.Message(), err.Detail())
}

func errorResponseFromAPI(err *APIError, r *http.Request) *ErrorResponse {
	var statusCode int

	switch err.Code() {
	case ErrCodeMalformedRequest:
		statusCode = http.StatusBadRequest
	case ErrCodeRouteNotFound:
		statusCode = http.StatusNotFound
	case ErrCodeMethodNotAllowed:
		statusCode = http.StatusMethodNotAllowed
	case ErrCodeRequestTooLarge:
		statusCode = http.StatusRequestEntityTooLarge
	case ErrCodeRateLimitExceeded:
		statusCode = http.StatusTooManyRequests
	default:
		statusCode = http.StatusInternalServerError
	}

	var details string
	if err.wrapped != nil {
		details = err.wrapped.Error()
	}

	return newErrorResponse(r, statusCode, err.Message(), details)
}

func newErrorResponse(r *http.Request, statusCode int, message, details string) *ErrorResponse {
	resp := &ErrorResponse{
		Success:    false,
		Error:      message,
		StatusCode: statusCode,
	}
	if showDetails(r.Context()) {
		resp.Details = details
	}
	return resp
}
