// Package client is a Go client for the certificate gateway HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/information-sharing-networks/certgw/internal/api"
)

// ResponseError is returned when the gateway answers with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Message    string
	Details    string
	RequestID  string
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// Client calls a certificate gateway. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the gateway at baseURL.
//
// timeout applies to each request. Issue and revoke wait for the ledger transaction to be mined,
// so it should exceed the gateway's confirmation timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) IssueCertificate(ctx context.Context, req api.IssueCertificateRequest) (*api.IssueCertificateResponse, error) {
	var resp api.IssueCertificateResponse
	if err := c.do(ctx, http.MethodPost, "/issue-certificate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyCertificate looks up a certificate by id or hash. Either may be empty but not both.
func (c *Client) VerifyCertificate(ctx context.Context, certificateID, certificateHash string) (*api.VerifyCertificateResponse, error) {
	query := url.Values{}
	if certificateID != "" {
		query.Set("certificateId", certificateID)
	}
	if certificateHash != "" {
		query.Set("certificateHash", certificateHash)
	}

	var resp api.VerifyCertificateResponse
	if err := c.do(ctx, http.MethodGet, "/verify-certificate?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RevokeCertificate(ctx context.Context, certificateID string) (*api.RevokeCertificateResponse, error) {
	var resp api.RevokeCertificateResponse
	if err := c.do(ctx, http.MethodPost, "/revoke-certificate", api.RevokeCertificateRequest{CertificateID: certificateID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Version(ctx context.Context) (*api.VersionResponse, error) {
	var resp api.VersionResponse
	if err := c.do(ctx, http.MethodGet, "/version", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeErrorResponse(resp *http.Response) error {
	respErr := &ResponseError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Request-ID"),
	}

	var body api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		respErr.Message = http.StatusText(resp.StatusCode)
		return respErr
	}

	respErr.Message = body.Error
	respErr.Details = body.Details
	return respErr
}
