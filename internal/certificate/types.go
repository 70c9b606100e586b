package certificate

import "math/big"

// IssuanceRequest is a validated request to issue a certificate.
type IssuanceRequest struct {
	StudentIdentifier string

	// CertificateHash is always 0x-prefixed followed by 64 hex digits
	CertificateHash string

	MetadataURI string
}

// RevocationRequest is a validated request to revoke a certificate.
type RevocationRequest struct {
	CertificateID *big.Int
}

// VerificationQuery identifies the certificate to verify.
//
// At least one of CertificateID or CertificateHash is set.
// When both are set the id takes precedence.
type VerificationQuery struct {
	CertificateID *big.Int

	// CertificateHash is empty or 0x-prefixed followed by 64 hex digits
	CertificateHash string
}

// ByID reports whether the query should be resolved by certificate id.
func (q VerificationQuery) ByID() bool {
	return q.CertificateID != nil
}

// Certificate is the formatted view of a certificate record read from the ledger.
type Certificate struct {
	CertificateID     string `json:"certificateId" example:"7"`
	StudentIdentifier string `json:"studentIdentifier" example:"S123"`
	CertificateHash   string `json:"certificateHash" example:"0x9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658"`
	MetadataURI       string `json:"metadataURI" example:"ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"`

	// IssuedAt is the ledger timestamp in seconds since the epoch
	IssuedAt string `json:"issuedAt" example:"1717171717"`

	// IssuedAtDate is IssuedAt formatted as an ISO-8601 UTC date
	IssuedAtDate string `json:"issuedAtDate" example:"2024-05-31T16:08:37.000Z"`

	Revoked bool `json:"revoked" example:"false"`
}

// IssuedEvent is the decoded CertificateIssued event.
type IssuedEvent struct {
	CertificateID     string `json:"certificateId"`
	StudentIdentifier string `json:"studentIdentifier"`
	CertificateHash   string `json:"certificateHash"`
	MetadataURI       string `json:"metadataURI"`
	IssuedAt          string `json:"issuedAt"`
}

// RevokedEvent is the decoded CertificateRevoked event.
type RevokedEvent struct {
	CertificateID string `json:"certificateId"`
	RevokedAt     string `json:"revokedAt"`
}

// TransactionOutcome describes a confirmed ledger transaction.
type TransactionOutcome struct {
	TxHash      string
	BlockNumber uint64

	// GasUsed is a decimal string
	GasUsed string
}

// IssuanceOutcome is the result of a confirmed issuance transaction.
//
// Event is nil when the receipt did not contain a CertificateIssued event.
// The transaction itself still succeeded in that case.
type IssuanceOutcome struct {
	TransactionOutcome
	Event *IssuedEvent

	// Issuer is the address of the signing identity that submitted the transaction
	Issuer string
}

// CertificateID returns the issued certificate id, or nil if the event was not found.
func (o *IssuanceOutcome) CertificateID() *string {
	if o.Event == nil {
		return nil
	}
	id := o.Event.CertificateID
	return &id
}

// RevocationOutcome is the result of a confirmed revocation transaction.
//
// Event is nil when the receipt did not contain a CertificateRevoked event.
type RevocationOutcome struct {
	TransactionOutcome
	Event *RevokedEvent
}
