package handlers

import (
	"net/http"

	"github.com/information-sharing-networks/certgw/internal/api"
)

// HandleNotFound answers requests for unknown routes.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	api.RespondWithErrorResponse(w, r, api.NewRouteNotFoundError("Route not found"))
}

// HandleMethodNotAllowed answers requests for a known route with an unsupported method.
func HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	api.RespondWithErrorResponse(w, r, api.NewMethodNotAllowedError("Method not allowed"))
}
