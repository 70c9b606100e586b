//go:build integration

package integration

// Test environment setup and server lifecycle management.
//
// The integration tests start the certgw-server HTTP server in-process, backed by a fresh memoryRegistry,
// and run tests against it. Every test gets its own server and registry.
//
// By default the server logs are not included in the test output, you can enable them with:
//
//	ENABLE_SERVER_LOGS=true go test -tags=integration -v ./test/integration
//

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/information-sharing-networks/certgw/internal/client"
	"github.com/information-sharing-networks/certgw/internal/config"
	"github.com/information-sharing-networks/certgw/internal/logger"
	"github.com/information-sharing-networks/certgw/internal/server"
)

// well known development key (hardhat account #0), never used to sign anything here
const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// testEnv provides access to the running server and its registry
type testEnv struct {
	baseURL  string
	cfg      *config.ServerEnvironment
	registry *memoryRegistry
	client   *client.Client
	shutdown func()
}

// startInProcessServer starts certgw-server in-process for testing.
// extraEnv overrides the default test configuration.
func startInProcessServer(t *testing.T, extraEnv map[string]string) *testEnv {
	t.Helper()

	testEnv := &testEnv{}

	t.Log("Starting in-process server...")

	port := findFreePort(t)

	logLevel := "none"
	if os.Getenv("ENABLE_SERVER_LOGS") == "true" {
		logLevel = "debug"
	}

	testEnvVars := map[string]string{
		"HOST":             "localhost",
		"PORT":             fmt.Sprintf("%d", port),
		"ENVIRONMENT":      "test",
		"LOG_LEVEL":        logLevel,
		"RATE_LIMIT_RPS":   "0",
		"RPC_URL":          "http://localhost:8545",
		"PRIVATE_KEY":      testPrivateKey,
		"CONTRACT_ADDRESS": registryAddress.Hex(),
	}
	for key, value := range extraEnv {
		testEnvVars[key] = value
	}

	// t.Setenv restores the original values when the test completes
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	registry, err := newMemoryRegistry()
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	serverInstance, err := server.NewServer(registry, cfg, appLogger)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := serverInstance.Start(serverCtx); err != nil {
			serverDone <- err
		}
	}()

	testEnv.shutdown = func() {
		t.Log("Stopping server...")

		serverCancel()

		select {
		case err := <-serverDone:
			if err != nil {
				t.Logf("❌ Server shutdown with error: %v", err)
			} else {
				t.Log("✅ Server shut down gracefully")
			}
		case <-time.After(5 * time.Second):
			t.Log("⚠️ Server shutdown timeout")
		}

		serverInstance.LedgerShutdown()
	}

	testEnv.baseURL = fmt.Sprintf("http://localhost:%d", port)
	testEnv.cfg = cfg
	testEnv.registry = registry
	testEnv.client = client.New(testEnv.baseURL, 10*time.Second)

	if !waitForServer(t, testEnv.baseURL+"/health", 30*time.Second) {
		testEnv.shutdown()
		t.Fatal("Server failed to start within timeout")
	}

	t.Log("✅ Server started")
	return testEnv
}

func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port
}

func waitForServer(t *testing.T, url string, timeout time.Duration) bool {
	t.Helper()

	client := &http.Client{Timeout: 1 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
