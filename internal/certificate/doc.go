// Package certificate holds the certificate domain model used by the gateway:
// the request types, the input validators, the error taxonomy and the
// translation of ledger failure messages into stable user-facing text.
//
// **validation**
// Requests are validated and normalized before any ledger call is made.
// Inputs arrive loosely typed (decoded JSON or URL query values) so the validators
// can tell "missing" apart from "wrong type" and report the first offending field.
//
// **errors**
// All failures are reported as *CertError values. The Code() of the error selects the HTTP status
// (see internal/api) and Message() is the text returned to the client.
// Ledger errors carry the raw ledger message as the wrapped error, which is only exposed to
// clients in non-production environments.
//
// The package has no dependency on the ledger client or the HTTP layer.
package certificate
