package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/information-sharing-networks/certgw/internal/api"
	"github.com/information-sharing-networks/certgw/internal/gateway"
	"github.com/information-sharing-networks/certgw/internal/logger"
)

// HealthChecker reports on the ledger connection. *gateway.Gateway implements it.
type HealthChecker interface {
	Health(ctx context.Context) (*gateway.HealthReport, error)
}

// HandleHealth godoc
//
//	@Summary		Health Check
//	@Description	Checks the registry contract can be reached by reading the number of issued certificates.
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	api.HealthResponse	"status healthy"
//	@Failure		500	{object}	api.HealthResponse	"status unhealthy"
//	@Router			/health [get]
func HandleHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := checker.Health(r.Context())
		if err != nil {
			logger.ContextRequestLogger(r.Context()).Error("health check failed", slog.String("error", err.Error()))

			api.RespondWithJSONPayload(w, http.StatusInternalServerError, api.HealthResponse{
				Status: "unhealthy",
				Error:  err.Error(),
			})
			return
		}

		api.RespondWithJSONPayload(w, http.StatusOK, api.HealthResponse{
			Status:            "healthy",
			Timestamp:         time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
			ContractAddress:   report.ContractAddress,
			CollegeAddress:    report.CollegeAddress,
			TotalCertificates: report.TotalCertificates,
		})
	}
}
