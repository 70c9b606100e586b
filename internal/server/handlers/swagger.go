package handlers

import (
	"log/slog"
	"net/http"

	"github.com/swaggo/swag"

	"github.com/information-sharing-networks/certgw/internal/api"
	"github.com/information-sharing-networks/certgw/internal/logger"
)

// HandleSwaggerDoc serves the OpenAPI document registered with swag (see internal/apidocs).
func HandleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Error("failed to read API docs", slog.String("error", err.Error()))
		api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "API documentation unavailable"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
