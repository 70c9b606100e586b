package handlers

// certificates.go implements the certificate endpoints:
//
//	POST /issue-certificate
//	GET  /verify-certificate
//	POST /revoke-certificate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/information-sharing-networks/certgw/internal/api"
	"github.com/information-sharing-networks/certgw/internal/certificate"
	"github.com/information-sharing-networks/certgw/internal/logger"
)

// CertificateService performs the certificate operations. *gateway.Gateway implements it.
type CertificateService interface {
	Issue(ctx context.Context, req certificate.IssuanceRequest) (*certificate.IssuanceOutcome, error)
	Verify(ctx context.Context, q certificate.VerificationQuery) (*certificate.Certificate, error)
	Revoke(ctx context.Context, req certificate.RevocationRequest) (*certificate.RevocationOutcome, error)
}

// CertificateHandler handles the certificate endpoints
type CertificateHandler struct {
	service CertificateService
}

// NewCertificateHandler creates a new handler for the certificate endpoints
func NewCertificateHandler(service CertificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// HandleIssueCertificate godoc
//
//	@Summary		Issue a certificate
//	@Description	Records a new certificate on the ledger and waits for the transaction to be mined.
//	@Description
//	@Description	`certificateHash` is a bytes32 hex string; the `0x` prefix is added if it is missing.
//	@Description	`certificateId` and `eventData` are null if the CertificateIssued event could not be found in the receipt.
//
//	@Tags			Certificates
//
//	@Param			request	body		api.IssueCertificateRequest		true	"Certificate details"
//
//	@Success		200		{object}	api.IssueCertificateResponse	"Certificate issued"
//	@Failure		400		{object}	api.ErrorResponse				"Validation failed or malformed body"
//	@Failure		500		{object}	api.ErrorResponse				"Ledger rejected the transaction (e.g. duplicate hash) or ledger unavailable"
//
//	@Router			/issue-certificate [post]
func (h *CertificateHandler) HandleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input certificate.IssuanceInput
	if err := decodeJSONBody(r, &input); err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	req, err := certificate.ValidateIssuance(input)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	outcome, err := h.service.Issue(ctx, req)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	if id := outcome.CertificateID(); id != nil {
		logger.ContextWithLogAttrs(ctx, slog.String("certificate_id", *id))
	}
	logger.ContextWithLogAttrs(ctx, slog.String("tx_hash", outcome.TxHash))

	api.RespondWithJSONPayload(w, http.StatusOK, api.IssueCertificateResponse{
		Success:       true,
		TxHash:        outcome.TxHash,
		BlockNumber:   outcome.BlockNumber,
		CertificateID: outcome.CertificateID(),
		EventData:     outcome.Event,
		GasUsed:       outcome.GasUsed,
		Issuer:        outcome.Issuer,
	})
}

// HandleVerifyCertificate godoc
//
//	@Summary		Verify a certificate
//	@Description	Looks up a certificate by id or by hash. At least one is required; when both are supplied the id is used.
//
//	@Tags			Certificates
//
//	@Param			certificateId	query		string	false	"Certificate id (non-negative integer)"
//	@Param			certificateHash	query		string	false	"Certificate hash (bytes32 hex)"
//
//	@Success		200				{object}	api.VerifyCertificateResponse	"Certificate found"
//	@Failure		400				{object}	api.ErrorResponse				"Validation failed"
//	@Failure		404				{object}	api.ErrorResponse				"Certificate not found"
//	@Failure		500				{object}	api.ErrorResponse				"Ledger unavailable"
//
//	@Router			/verify-certificate [get]
func (h *CertificateHandler) HandleVerifyCertificate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q, err := certificate.ValidateVerification(certificate.VerificationInput{
		CertificateID:   query.Get("certificateId"),
		CertificateHash: query.Get("certificateHash"),
	})
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	cert, err := h.service.Verify(r.Context(), q)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	api.RespondWithJSONPayload(w, http.StatusOK, api.VerifyCertificateResponse{
		Success:     true,
		Certificate: cert,
	})
}

// HandleRevokeCertificate godoc
//
//	@Summary		Revoke a certificate
//	@Description	Marks a certificate as revoked on the ledger and waits for the transaction to be mined.
//	@Description	Revocation is permanent.
//
//	@Tags			Certificates
//
//	@Param			request	body		api.RevokeCertificateRequest	true	"Certificate to revoke"
//
//	@Success		200		{object}	api.RevokeCertificateResponse	"Certificate revoked"
//	@Failure		400		{object}	api.ErrorResponse				"Validation failed or malformed body"
//	@Failure		500		{object}	api.ErrorResponse				"Ledger rejected the transaction (e.g. already revoked) or ledger unavailable"
//
//	@Router			/revoke-certificate [post]
func (h *CertificateHandler) HandleRevokeCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input certificate.RevocationInput
	if err := decodeJSONBody(r, &input); err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	req, err := certificate.ValidateRevocation(input)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	outcome, err := h.service.Revoke(ctx, req)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	logger.ContextWithLogAttrs(ctx,
		slog.String("certificate_id", req.CertificateID.String()),
		slog.String("tx_hash", outcome.TxHash),
	)

	api.RespondWithJSONPayload(w, http.StatusOK, api.RevokeCertificateResponse{
		Success:     true,
		TxHash:      outcome.TxHash,
		BlockNumber: outcome.BlockNumber,
		EventData:   outcome.Event,
		GasUsed:     outcome.GasUsed,
	})
}

// decodeJSONBody decodes the request body into v. Numbers are kept as json.Number so large ids are not rounded.
//
// An empty body is treated as {} so validation can name the first missing field.
func decodeJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return api.NewRequestTooLargeError(
				fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", maxBytesErr.Limit),
			)
		}
		return api.WrapMalformedRequestError(err, "Invalid JSON request body")
	}
	return nil
}
