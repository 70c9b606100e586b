package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/certgw/internal/config"
	"github.com/information-sharing-networks/certgw/internal/ledger"
	"github.com/information-sharing-networks/certgw/internal/logger"
	"github.com/information-sharing-networks/certgw/internal/server"
	"github.com/information-sharing-networks/certgw/internal/version"
)

//	@title			certgw-server
//	@description	certgw-server is an HTTP gateway to a certificate registry smart contract.
//	@description	It issues, verifies and revokes academic certificates recorded on an EVM ledger.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Ledger or infrastructure failure
//	@description
//	@description	Error bodies have the form `{"success": false, "error": "...", "details": "..."}`.
//	@description	`details` carries the raw ledger message and is only included outside production.
//	@description
//	@description	## Transactions
//	@description	Issue and revoke requests wait until the transaction is mined before responding.
//	@description	A transaction that times out waiting for confirmation may still be mined later; it is not retried.
//	@description
//	@description	## Authentication & Authorization
//	@description	The gateway does not authenticate callers. All transactions are signed with the single
//	@description	college identity configured on the server, and it is expected to run behind an authenticating proxy.
//	@description
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Certificates
//	@tag.description	Issue, verify and revoke certificates

//	@tag.name			Common
//	@tag.description	Server API endpoints (api description, health, version)

func main() {
	cmd := &cobra.Command{
		Use:   "certgw-server",
		Short: "Certificate registry gateway",
		Long:  `certgw-server exposes the certificate registry contract as a JSON HTTP API`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	// PRIVATE_KEY is deliberately left out
	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("RPC_URL", cfg.RPCURL),
		slog.String("CONTRACT_ADDRESS", cfg.ContractAddress),
		slog.String("ABI_PATH", cfg.ABIPath),
		slog.Int64("CHAIN_ID", cfg.ChainID),
		slog.Uint64("GAS_LIMIT", cfg.GasLimit),
		slog.Duration("SUBMIT_TIMEOUT", cfg.SubmitTimeout),
		slog.Duration("CONFIRMATION_TIMEOUT", cfg.ConfirmationTimeout),
		slog.Duration("WRITE_TIMEOUT", cfg.WriteTimeout),
		slog.String("ALLOWED_ORIGINS", strings.Join(cfg.AllowedOrigins, "|")),
		slog.Int("RATE_LIMIT_RPS", int(cfg.RateLimitRPS)),
		slog.Int64("MAX_REQUEST_BODY_BYTES", cfg.MaxRequestBodyBytes),
	)

	dialCtx, dialCancel := context.WithTimeout(context.Background(), cfg.LedgerDialTimeout)
	defer dialCancel()

	ledgerClient, err := ledger.Dial(dialCtx, ledger.Config{
		RPCURL:          cfg.RPCURL,
		PrivateKey:      cfg.PrivateKey,
		ContractAddress: cfg.ContractAddress,
		ABIPath:         cfg.ABIPath,
		ChainID:         cfg.ChainID,
		GasLimit:        cfg.GasLimit,
		CallTimeout:     cfg.LedgerCallTimeout,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize ledger client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// the node may come up after the gateway, so a failed connection test is not fatal
	if err := ledgerClient.Ping(dialCtx); err != nil {
		appLogger.Warn("ledger connection test failed", slog.String("error", err.Error()))
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := server.NewServer(ledgerClient, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer server.LedgerShutdown()

	if err := server.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
