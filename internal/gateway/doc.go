/*
Package gateway implements the certificate operations exposed over HTTP.

Each operation takes validated input from the certificate package and calls the ledger:

  - Issue submits an issueCertificate transaction, waits for it to be mined and decodes the CertificateIssued event
  - Revoke does the same for revokeCertificate and CertificateRevoked
  - Verify checks the certificate exists and reads it, by id or by hash
  - Health reads the number of issued certificates

Failures are returned as certificate.CertError values. Ledger failures carry a translated message
(see certificate.TranslateLedgerError) and the raw error as the wrapped cause.

A transaction is submitted at most once per call. The confirmation wait is bounded by
Config.ConfirmationTimeout; when it expires the transaction may still be mined.
*/
package gateway
