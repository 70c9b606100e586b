package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/information-sharing-networks/certgw/internal/certificate"
)

func TestMapErrorToResponse(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails string
	}{
		{
			name:        "validation",
			err:         certificate.NewValidationError(certificate.FieldCertificateID, "certificateId is required and must be a valid integer"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "certificateId is required and must be a valid integer",
		},
		{
			name:        "not found",
			err:         certificate.NewNotFoundError("Certificate not found"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Certificate not found",
		},
		{
			name:        "ledger",
			err:         certificate.WrapLedgerError(errors.New("execution reverted: CertificateHashAlreadyExists")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "A certificate with this hash already exists",
			wantDetails: "execution reverted: CertificateHashAlreadyExists",
		},
		{
			name:        "infrastructure",
			err:         certificate.WrapInfrastructureError(errors.New("connection refused"), "ledger unavailable"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "ledger unavailable",
			wantDetails: "connection refused",
		},
		{
			name:        "malformed request",
			err:         WrapMalformedRequestError(errors.New("unexpected EOF"), "Invalid JSON request body"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON request body",
			wantDetails: "unexpected EOF",
		},
		{
			name:        "route not found",
			err:         NewRouteNotFoundError("Route not found"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Route not found",
		},
		{
			name:        "method not allowed",
			err:         NewMethodNotAllowedError("Method not allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method not allowed",
		},
		{
			name:        "too large",
			err:         NewRequestTooLargeError("too big"),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: "too big",
		},
		{
			name:        "rate limit",
			err:         NewRateLimitError("slow down"),
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "slow down",
		},
		{
			name:        "unmapped error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantDetails: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			var got *ErrorResponse
			handler := ErrorDetails(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = MapErrorToResponse(tt.err, r)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.StatusCode, tt.wantStatus)
			}
			if got.Error != tt.wantMessage {
				t.Errorf("error = %q, want %q", got.Error, tt.wantMessage)
			}
			if got.Details != tt.wantDetails {
				t.Errorf("details = %q, want %q", got.Details, tt.wantDetails)
			}
			if got.Success {
				t.Error("success should be false")
			}
		})
	}
}

func TestErrorDetailsHidden(t *testing.T) {
	err := certificate.WrapLedgerError(errors.New("execution reverted: CertificateAlreadyRevoked"))

	rr := httptest.NewRecorder()
	handler := ErrorDetails(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondWithErrorResponse(w, r, err)
	}))
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/revoke-certificate", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Certificate is already revoked" {
		t.Errorf("unexpected error message %v", body["error"])
	}
	if _, ok := body["details"]; ok {
		t.Error("details should be omitted when disabled")
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
}
