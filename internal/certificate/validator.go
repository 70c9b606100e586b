package certificate

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
)

// request field names, used in validation errors
const (
	FieldStudentIdentifier = "studentIdentifier"
	FieldCertificateHash   = "certificateHash"
	FieldMetadataURI       = "metadataURI"
	FieldCertificateID     = "certificateId"
)

// hashLength is the length of a 0x-prefixed bytes32 hex string
const hashLength = 66

// IssuanceInput is the raw body of an issuance request.
//
// The fields are untyped so a value of the wrong JSON type can be told apart from a missing one.
type IssuanceInput struct {
	StudentIdentifier any `json:"studentIdentifier"`
	CertificateHash   any `json:"certificateHash"`
	MetadataURI       any `json:"metadataURI"`
}

// RevocationInput is the raw body of a revocation request.
// CertificateID may be a JSON number or a string.
type RevocationInput struct {
	CertificateID any `json:"certificateId"`
}

// VerificationInput holds the raw query parameters of a verification request.
type VerificationInput struct {
	CertificateID   string
	CertificateHash string
}

// ValidateIssuance checks an issuance request and normalizes the certificate hash.
//
// Fields are checked in order (studentIdentifier, certificateHash, metadataURI) and the
// first failure is returned.
func ValidateIssuance(in IssuanceInput) (IssuanceRequest, error) {
	studentIdentifier, ok := in.StudentIdentifier.(string)
	if !ok || strings.TrimSpace(studentIdentifier) == "" {
		return IssuanceRequest{}, NewValidationError(FieldStudentIdentifier,
			"studentIdentifier is required and must be a non-empty string")
	}

	rawHash, ok := in.CertificateHash.(string)
	if !ok || rawHash == "" {
		return IssuanceRequest{}, NewValidationError(FieldCertificateHash,
			"certificateHash is required and must be a valid hex string (bytes32)")
	}

	certificateHash, err := NormalizeHash(rawHash)
	if err != nil {
		return IssuanceRequest{}, err
	}

	metadataURI, ok := in.MetadataURI.(string)
	if !ok || strings.TrimSpace(metadataURI) == "" {
		return IssuanceRequest{}, NewValidationError(FieldMetadataURI,
			"metadataURI is required and must be a non-empty string (URL or IPFS CID)")
	}

	return IssuanceRequest{
		StudentIdentifier: studentIdentifier,
		CertificateHash:   certificateHash,
		MetadataURI:       metadataURI,
	}, nil
}

// ValidateRevocation checks a revocation request and converts the certificate id to an integer.
//
// Any value that parses as a base 10 integer is accepted; the ledger is responsible for range checks.
func ValidateRevocation(in RevocationInput) (RevocationRequest, error) {
	id, ok := parseInteger(in.CertificateID)
	if !ok {
		return RevocationRequest{}, NewValidationError(FieldCertificateID,
			"certificateId is required and must be a valid integer")
	}
	return RevocationRequest{CertificateID: id}, nil
}

// ValidateVerification checks the verification query parameters.
//
// At least one of certificateId or certificateHash is required. Both may be supplied,
// in which case both are validated and the id takes precedence when querying the ledger.
func ValidateVerification(in VerificationInput) (VerificationQuery, error) {
	if in.CertificateID == "" && in.CertificateHash == "" {
		return VerificationQuery{}, NewValidationError(FieldCertificateID,
			"Either certificateId or certificateHash query parameter is required")
	}

	var q VerificationQuery

	if in.CertificateID != "" {
		id, ok := parseInteger(in.CertificateID)
		if !ok || id.Sign() < 0 {
			return VerificationQuery{}, NewValidationError(FieldCertificateID,
				"certificateId must be a valid non-negative integer")
		}
		q.CertificateID = id
	}

	if in.CertificateHash != "" {
		certificateHash, err := NormalizeHash(in.CertificateHash)
		if err != nil {
			return VerificationQuery{}, err
		}
		q.CertificateHash = certificateHash
	}

	return q, nil
}

// NormalizeHash adds the 0x prefix if it is missing and checks the result encodes 32 bytes.
func NormalizeHash(raw string) (string, error) {
	h := raw
	if !strings.HasPrefix(h, "0x") {
		h = "0x" + h
	}

	if len(h) != hashLength {
		return "", NewValidationError(FieldCertificateHash,
			"Invalid certificateHash format: Hash must be 32 bytes (64 hex characters)")
	}

	for _, c := range h[2:] {
		if !isHexDigit(c) {
			return "", NewValidationError(FieldCertificateHash,
				"Invalid certificateHash format: Hash must contain only hex characters")
		}
	}

	return h, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// maxIntegerBits bounds JSON numbers written with a fraction or exponent (e.g. 7.0, 1e2)
const maxIntegerBits = 256

// parseWholeNumber accepts a JSON number in decimal or exponent form whose value is a whole number.
func parseWholeNumber(s string) (*big.Int, bool) {
	f, _, err := big.ParseFloat(s, 10, 1024, big.ToNearestEven)
	if err != nil || !f.IsInt() || f.MantExp(nil) > maxIntegerBits {
		return nil, false
	}
	id, _ := f.Int(nil)
	return id, true
}

// parseInteger accepts the integer encodings that can arrive in a decoded JSON body or query string.
func parseInteger(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case string:
		return new(big.Int).SetString(strings.TrimSpace(n), 10)
	case json.Number:
		if id, ok := new(big.Int).SetString(n.String(), 10); ok {
			return id, true
		}
		return parseWholeNumber(n.String())
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
			return nil, false
		}
		id, _ := big.NewFloat(n).Int(nil)
		return id, true
	case int:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	default:
		return nil, false
	}
}
