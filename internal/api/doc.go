// Package api defines the JSON bodies exchanged with the gateway and the helpers used to write them.
//
// Errors from the certificate package and the HTTP layer (APIError) are mapped to
// status codes and a stable client facing message by MapErrorToResponse.
package api
