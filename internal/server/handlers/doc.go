// Package handlers provides the gateway's HTTP handlers.
//
// certificates.go implements the certificate endpoints (issue, verify, revoke).
// The remaining files are general infrastructure handlers (health, version, API description, docs).
package handlers
