package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/information-sharing-networks/certgw/internal/api"
	"github.com/information-sharing-networks/certgw/internal/certificate"
)

// execute runs certctl with args and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "none")

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{ "b": 1,
		"a": "x" }`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "hash", "--alg", "sha256", path)
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}

	// sha256 of the canonical form {"a":"x","b":1}
	got := strings.TrimSpace(out)
	if !strings.HasPrefix(got, "0x") || len(got) != 66 {
		t.Fatalf("unexpected hash output %q", got)
	}

	// formatting must not change the hash
	other := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(other, []byte(`{"a":"x","b":1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	out2, err := execute(t, "hash", "--alg", "sha256", other)
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	if strings.TrimSpace(out2) != got {
		t.Errorf("hash of reformatted document differs: %s vs %s", strings.TrimSpace(out2), got)
	}
}

func TestVerifyCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("certificateId") != "7" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		api.RespondWithJSONPayload(w, http.StatusOK, api.VerifyCertificateResponse{
			Success: true,
			Certificate: &certificate.Certificate{
				CertificateID:     "7",
				StudentIdentifier: "S123",
				Revoked:           true,
			},
		})
	}))
	defer srv.Close()

	t.Setenv("CERTGW_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "none")

	out, err := execute(t, "verify", "--id", "7")
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if !strings.Contains(out, "certificate 7: revoked") {
		t.Errorf("expected revoked status in output, got:\n%s", out)
	}
	if !strings.Contains(out, `"studentIdentifier": "S123"`) {
		t.Errorf("expected certificate JSON in output, got:\n%s", out)
	}
}

func TestRevokeCommandRejectsInvalidID(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	t.Setenv("CERTGW_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "none")

	_, err := execute(t, "revoke", "abc")
	if err == nil {
		t.Fatal("expected an error for a non numeric certificate id")
	}
	if called {
		t.Error("gateway should not be called for invalid input")
	}
}

func TestStatusCommandReportsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSONPayload(w, http.StatusInternalServerError, api.HealthResponse{
			Status: "unhealthy",
			Error:  "ledger unavailable",
		})
	}))
	defer srv.Close()

	t.Setenv("CERTGW_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "none")

	_, err := execute(t, "status")
	if err == nil || !strings.Contains(err.Error(), "ledger unavailable") {
		t.Errorf("expected ledger unavailable error, got %v", err)
	}
}
