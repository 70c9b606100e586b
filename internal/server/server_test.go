package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/information-sharing-networks/certgw/internal/config"
	"github.com/information-sharing-networks/certgw/internal/ledger"
)

// stubLedger answers every ledger call without a node. Transactions are mined immediately with no logs.
type stubLedger struct {
	closed bool
}

func (s *stubLedger) IssueCertificate(ctx context.Context, studentIdentifier string, hash common.Hash, metadataURI string) (*types.Transaction, error) {
	return nil, errors.New("execution reverted: CertificateHashAlreadyExists")
}

func (s *stubLedger) RevokeCertificate(ctx context.Context, id *big.Int) (*types.Transaction, error) {
	return types.NewTx(&types.LegacyTx{Nonce: id.Uint64()}), nil
}

func (s *stubLedger) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash(), BlockNumber: big.NewInt(1)}, nil
}

func (s *stubLedger) DecodeLog(log *types.Log) (*ledger.DecodedEvent, error) {
	return nil, ledger.ErrUnknownEventID
}

func (s *stubLedger) CertificateExists(ctx context.Context, id *big.Int) (bool, error) { return false, nil }

func (s *stubLedger) CertificateHashExists(ctx context.Context, hash common.Hash) (bool, error) {
	return false, nil
}

func (s *stubLedger) GetCertificate(ctx context.Context, id *big.Int) (*ledger.CertificateRecord, error) {
	return nil, errors.New("not reached")
}

func (s *stubLedger) GetCertificateByHash(ctx context.Context, hash common.Hash) (*ledger.CertificateRecord, error) {
	return nil, errors.New("not reached")
}

func (s *stubLedger) TotalCertificates(ctx context.Context) (*big.Int, error) { return big.NewInt(0), nil }

func (s *stubLedger) ContractAddress() common.Address {
	return common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
}

func (s *stubLedger) SignerAddress() common.Address {
	return common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
}

func (s *stubLedger) Close() { s.closed = true }

func testConfig() *config.ServerEnvironment {
	return &config.ServerEnvironment{
		Environment:           "test",
		Host:                  "localhost",
		Port:                  0,
		ServerShutdownTimeout: time.Second,
		MaxRequestBodyBytes:   1024,
		SubmitTimeout:         time.Second,
		ConfirmationTimeout:   time.Second,
	}
}

func newTestServer(t *testing.T) (*Server, *stubLedger) {
	t.Helper()

	l := &stubLedger{}
	s, err := NewServer(l, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewServer() returned error: %v", err)
	}
	return s, l
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"api info", http.MethodGet, "/", "", http.StatusOK, ""},
		{"health", http.MethodGet, "/health", "", http.StatusOK, ""},
		{"version", http.MethodGet, "/version", "", http.StatusOK, ""},
		{"swagger", http.MethodGet, "/swagger/doc.json", "", http.StatusOK, ""},
		{"unknown route", http.MethodGet, "/certificates", "", http.StatusNotFound, "Route not found"},
		{"wrong method", http.MethodGet, "/issue-certificate", "", http.StatusMethodNotAllowed, "Method not allowed"},
		{"malformed body", http.MethodPost, "/revoke-certificate", "{", http.StatusBadRequest, "Invalid JSON request body"},
		{"revoke", http.MethodPost, "/revoke-certificate", `{"certificateId":"7"}`, http.StatusOK, ""},
		{"verify unknown hash", http.MethodGet, "/verify-certificate?certificateHash=" + strings.Repeat("1", 64), "", http.StatusNotFound, "Certificate not found"},
		{"duplicate hash", http.MethodPost, "/issue-certificate", `{"studentIdentifier":"S1","certificateHash":"` + strings.Repeat("1", 64) + `","metadataURI":"ipfs://x"}`, http.StatusInternalServerError, "A certificate with this hash already exists"},
		{"body too large", http.MethodPost, "/issue-certificate", strings.Repeat(" ", 2048), http.StatusRequestEntityTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header not set")
			}
			if tt.wantError == "" {
				return
			}

			var body map[string]any
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
			if body["success"] != false {
				t.Errorf("success = %v", body["success"])
			}
		})
	}
}

func TestErrorDetailsHiddenInProd(t *testing.T) {
	cfg := testConfig()
	cfg.Environment = "prod"

	s, err := NewServer(&stubLedger{}, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewServer() returned error: %v", err)
	}

	body := `{"studentIdentifier":"S1","certificateHash":"` + strings.Repeat("1", 64) + `","metadataURI":"ipfs://x"}`
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/issue-certificate", strings.NewReader(body)))

	if strings.Contains(rr.Body.String(), "details") {
		t.Errorf("details should not be returned in prod: %s", rr.Body.String())
	}
}

func TestStartAndShutdown(t *testing.T) {
	s, l := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	s.LedgerShutdown()
	if !l.closed {
		t.Error("ledger connection was not closed")
	}
}

// every registered route must be described in the OpenAPI document and vice versa
func TestSwaggerDocMatchesRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d", rr.Code)
	}

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("failed to decode swagger doc: %v", err)
	}

	documented := make(map[string]bool)
	for path, operations := range doc.Paths {
		for method := range operations {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	registered := make(map[string]bool)
	err := chi.Walk(s.router, func(method, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		if route != "/swagger/doc.json" {
			registered[method+" "+route] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk() returned error: %v", err)
	}

	for route := range registered {
		if !documented[route] {
			t.Errorf("route %s is not documented", route)
		}
	}
	for route := range documented {
		if !registered[route] {
			t.Errorf("documented route %s is not registered", route)
		}
	}
}
