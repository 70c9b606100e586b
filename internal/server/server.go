package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/information-sharing-networks/certgw/internal/api"
	_ "github.com/information-sharing-networks/certgw/internal/apidocs"
	"github.com/information-sharing-networks/certgw/internal/config"
	"github.com/information-sharing-networks/certgw/internal/gateway"
	"github.com/information-sharing-networks/certgw/internal/logger"
	"github.com/information-sharing-networks/certgw/internal/server/handlers"
	"github.com/information-sharing-networks/certgw/internal/server/middleware"
	"github.com/information-sharing-networks/certgw/internal/version"
)

// Ledger is the shared ledger connection used by the server. *ledger.Client implements it.
type Ledger interface {
	gateway.Ledger
	Close()
}

type Server struct {
	ledger  Ledger
	gateway *gateway.Gateway
	config  *config.ServerEnvironment
	logger  *slog.Logger
	router  *chi.Mux
}

func NewServer(
	ledgerClient Ledger,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) (*Server, error) {
	server := &Server{
		ledger: ledgerClient,
		gateway: gateway.New(ledgerClient, gateway.Config{
			SubmitTimeout:       cfg.SubmitTimeout,
			ConfirmationTimeout: cfg.ConfirmationTimeout,
		}),
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
	}

	server.setupMiddleware()
	if err := server.registerRoutes(); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}

// Handler returns the server's router
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.CORS(s.config.Environment, s.config.AllowedOrigins))
	s.router.Use(api.ErrorDetails(s.config.ShowErrorDetails()))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxRequestBodyBytes))
}

func (s *Server) registerRoutes() error {
	apiInfo, err := handlers.NewAPIInfoHandler()
	if err != nil {
		return err
	}

	v := version.Get()

	s.router.NotFound(handlers.HandleNotFound)
	s.router.MethodNotAllowed(handlers.HandleMethodNotAllowed)

	s.router.Get("/", apiInfo)
	s.router.Get("/health", handlers.HandleHealth(s.gateway))
	s.router.Get("/version", handlers.HandleVersion(v.Version, v.BuildDate))
	s.router.Get("/swagger/doc.json", handlers.HandleSwaggerDoc)

	certificateHandler := handlers.NewCertificateHandler(s.gateway)
	s.router.Post("/issue-certificate", certificateHandler.HandleIssueCertificate)
	s.router.Get("/verify-certificate", certificateHandler.HandleVerifyCertificate)
	s.router.Post("/revoke-certificate", certificateHandler.HandleRevokeCertificate)

	return nil
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	s.logEndpoints(serverAddr)

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	// in-flight transactions keep running until they are confirmed or the shutdown timeout expires
	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// LedgerShutdown closes the ledger connection. Call it once, after Start has returned.
func (s *Server) LedgerShutdown() {
	if s.ledger != nil {
		s.ledger.Close()
		s.logger.Info("ledger connection closed")
	}
}

func (s *Server) logEndpoints(serverAddr string) {
	s.logger.Info("certificate gateway started",
		slog.String("contract_address", s.ledger.ContractAddress().Hex()),
		slog.String("college_address", s.ledger.SignerAddress().Hex()),
	)

	for _, endpoint := range []string{
		"POST /issue-certificate",
		"GET  /verify-certificate?certificateId=<id>",
		"POST /revoke-certificate",
		"GET  /health",
	} {
		s.logger.Debug("endpoint available",
			slog.String("endpoint", endpoint),
			slog.String("address", serverAddr),
		)
	}
}
