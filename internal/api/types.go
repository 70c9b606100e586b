package api

import "github.com/information-sharing-networks/certgw/internal/certificate"

// IssueCertificateRequest is the body of POST /issue-certificate.
//
// Documentation only: handlers decode into certificate.IssuanceInput so that values of the wrong type can be reported.
type IssueCertificateRequest struct {
	StudentIdentifier string `json:"studentIdentifier" example:"S123"`
	CertificateHash   string `json:"certificateHash" example:"0x9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658"`
	MetadataURI       string `json:"metadataURI" example:"ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"`
}

// RevokeCertificateRequest is the body of POST /revoke-certificate. certificateId may be a number or a string.
type RevokeCertificateRequest struct {
	CertificateID string `json:"certificateId" example:"7"`
}

type IssueCertificateResponse struct {
	Success     bool   `json:"success" example:"true"`
	TxHash      string `json:"txHash" example:"0x4f1b0e3cb5a1c8e4b0f5d3f5a7c2e1d0b9a8f7e6d5c4b3a2918f7e6d5c4b3a29"`
	BlockNumber uint64 `json:"blockNumber" example:"42"`

	// CertificateID is null when the CertificateIssued event was not found in the receipt
	CertificateID *string                  `json:"certificateId" example:"7"`
	EventData     *certificate.IssuedEvent `json:"eventData"`
	GasUsed       string                   `json:"gasUsed" example:"187523"`
	Issuer        string                   `json:"issuer" example:"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"`
}

type RevokeCertificateResponse struct {
	Success     bool                      `json:"success" example:"true"`
	TxHash      string                    `json:"txHash" example:"0x4f1b0e3cb5a1c8e4b0f5d3f5a7c2e1d0b9a8f7e6d5c4b3a2918f7e6d5c4b3a29"`
	BlockNumber uint64                    `json:"blockNumber" example:"43"`
	EventData   *certificate.RevokedEvent `json:"eventData"`
	GasUsed     string                    `json:"gasUsed" example:"31245"`
}

type VerifyCertificateResponse struct {
	Success     bool                     `json:"success" example:"true"`
	Certificate *certificate.Certificate `json:"certificate"`
}

// HealthResponse is returned by GET /health.
//
// On failure Status is "unhealthy", Error is set and the ledger fields are empty.
type HealthResponse struct {
	Status            string `json:"status" example:"healthy"`
	Timestamp         string `json:"timestamp,omitempty" example:"2024-05-31T16:08:37.000Z"`
	ContractAddress   string `json:"contractAddress,omitempty" example:"0x5FbDB2315678afecb367f032d93F642f64180aa3"`
	CollegeAddress    string `json:"collegeAddress,omitempty" example:"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"`
	TotalCertificates string `json:"totalCertificates,omitempty" example:"3"`
	Error             string `json:"error,omitempty"`
}

type VersionResponse struct {
	Version   string `json:"version" example:"1.0.0"`
	BuildTime string `json:"build_time" example:"2024-01-28T10:00:00Z"`
	Service   string `json:"service" example:"certgw-server"`
}
