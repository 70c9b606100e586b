// Package integration contains end-to-end tests for the certificate gateway.
//
// These tests start the certgw-server HTTP server in-process and drive it over HTTP with the
// certctl client. The server is backed by an in-memory registry that enforces the same rules
// as the registry contract and emits ABI encoded receipt logs, so request validation, event
// decoding and error translation all run as they do against a real node.
//
// These tests assume the certificate, ledger and gateway packages are working correctly (tested separately).
// If bugs are introduced in lower-level packages, there will be cascading failures here -
// fix the low-level problems first.
package integration
