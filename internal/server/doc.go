// Package server provides the HTTP server for the certificate gateway.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// The package wires the certificate handlers, the common infrastructure handlers
// (health, version, API description, docs) and the middleware chain.
//
// handlers are in internal/server/handlers, middleware is in internal/server/middleware
package server
